package mal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleList = `{
  "data": [
    {"node": {"id": 5114, "title": "Fullmetal Alchemist: Brotherhood", "rank": 1, "mean": 9.1,
              "genres": [{"id": 1, "name": "Action"}, {"id": 2, "name": "Adventure"}]}},
    {"node": {"id": 40357, "title": "Obscure Short", "genres": []}}
  ],
  "paging": {}
}`

func testClient(srv *httptest.Server) *Client {
	c := NewClient("test-client-id")
	c.BaseURL = srv.URL
	c.HTTP = srv.Client()
	return c
}

func TestWatchlistRequestShape(t *testing.T) {
	var gotHeader, gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-MAL-CLIENT-ID")
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Encode()
		w.Write([]byte(sampleList))
	}))
	defer srv.Close()

	entries, err := testClient(srv).Watchlist(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Watchlist: %v", err)
	}

	if gotHeader != "test-client-id" {
		t.Fatalf("client id header not sent, got %q", gotHeader)
	}
	if gotPath != "/users/alice/animelist" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	for _, want := range []string{"status=completed", "sort=list_score", "limit=1000", "fields="} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("query missing %q: %s", want, gotQuery)
		}
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	first := entries[0]
	if first.AnimeID != 5114 || first.Rank == nil || *first.Rank != 1 || first.MeanScore == nil {
		t.Fatalf("first entry decoded wrong: %+v", first)
	}
	if len(first.Genres) != 2 || first.Genres[0] != "Action" {
		t.Fatalf("genre names decoded wrong: %v", first.Genres)
	}
	second := entries[1]
	if second.Rank != nil || second.MeanScore != nil {
		t.Fatalf("absent rank/mean must decode to nil: %+v", second)
	}
}

func TestWatchlistNonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := testClient(srv).Watchlist(context.Background(), "private_user"); err == nil {
		t.Fatalf("expected error for non-2xx status")
	}
}

func TestWatchlistEmptyDataIsNoEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [], "paging": {}}`))
	}))
	defer srv.Close()

	entries, err := testClient(srv).Watchlist(context.Background(), "empty_user")
	if err != nil {
		t.Fatalf("empty data must not be an error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}
