package mal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"animehub/pkg/models"
)

// MyAnimeList v2 API base (public, client-id auth)
const defaultBase = "https://api.myanimelist.net/v2"

// Fixed request shape: completed lists, sorted by the user's own
// scores, one page. The field projection keeps responses small.
const (
	listStatus = "completed"
	listSort   = "list_score"
	listLimit  = 1000
	nodeFields = "id,title,rank,mean,genres"
)

// Client fetches one user's ranked watchlist per call.
type Client struct {
	HTTP     *http.Client
	BaseURL  string
	ClientID string // sent as X-MAL-CLIENT-ID
}

func NewClient(clientID string) *Client {
	return &Client{
		HTTP:     &http.Client{Timeout: 15 * time.Second},
		BaseURL:  defaultBase,
		ClientID: clientID,
	}
}

type listResponse struct {
	Data []struct {
		Node struct {
			ID     int64    `json:"id"`
			Title  string   `json:"title"`
			Rank   *int64   `json:"rank"`
			Mean   *float64 `json:"mean"`
			Genres []struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			} `json:"genres"`
		} `json:"node"`
	} `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

// Watchlist returns the user's completed list in the order the service
// ranked it. An empty list is (nil, nil); a non-2xx status is an error
// the scheduler absorbs as "zero entries for this user".
func (c *Client) Watchlist(ctx context.Context, username string) ([]models.ListEntry, error) {
	u, err := url.Parse(fmt.Sprintf("%s/users/%s/animelist", c.BaseURL, url.PathEscape(username)))
	if err != nil {
		return nil, fmt.Errorf("mal: build url for %s: %w", username, err)
	}
	q := u.Query()
	q.Set("status", listStatus)
	q.Set("sort", listSort)
	q.Set("limit", fmt.Sprintf("%d", listLimit))
	q.Set("fields", nodeFields)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("mal: build request: %w", err)
	}
	req.Header.Set("X-MAL-CLIENT-ID", c.ClientID)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mal: request: %w", err)
	}

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("mal: status %d for %s", resp.StatusCode, username)
	}

	var lr listResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("mal: decode list for %s: %w", username, err)
	}

	if len(lr.Data) == 0 {
		return nil, nil
	}

	entries := make([]models.ListEntry, 0, len(lr.Data))
	for _, item := range lr.Data {
		if item.Node.ID == 0 || item.Node.Title == "" {
			continue
		}
		e := models.ListEntry{
			AnimeID:   item.Node.ID,
			Title:     item.Node.Title,
			Rank:      item.Node.Rank,
			MeanScore: item.Node.Mean,
		}
		for _, g := range item.Node.Genres {
			if g.Name != "" {
				e.Genres = append(e.Genres, g.Name)
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}
