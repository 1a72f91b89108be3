package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"animehub/pkg/models"
)

// ReadUsernames reads the username source file. The whole file is read
// into memory before fetching starts; a missing or unreadable file is
// fatal to the run (nothing has been fetched yet).
func ReadUsernames(path string) ([]string, error) {
	var usernames []string
	err := readRows(path, func(header map[string]int, row []string) {
		if u := valueAt(header, row, "username"); u != "" {
			usernames = append(usernames, u)
		}
	})
	if err != nil {
		return nil, err
	}
	return usernames, nil
}

// ReadUsers reads a users.csv written by a previous fetch run.
func ReadUsers(path string) ([]models.User, error) {
	var users []models.User
	err := readRows(path, func(header map[string]int, row []string) {
		id, ok := parseKey(valueAt(header, row, "user_id"))
		username := valueAt(header, row, "username")
		if !ok || username == "" {
			log.Printf("[record] %s: skipping malformed user row %v", path, row)
			return
		}
		users = append(users, models.User{ID: id, Username: username})
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ReadAnimes reads an animes.csv. Unparsable rank/score values are
// coerced to null rather than dropping the record.
func ReadAnimes(path string) ([]models.Anime, error) {
	var animes []models.Anime
	err := readRows(path, func(header map[string]int, row []string) {
		id, ok := parseKey(valueAt(header, row, "anime_id"))
		title := valueAt(header, row, "title")
		if !ok || title == "" {
			log.Printf("[record] %s: skipping malformed anime row %v", path, row)
			return
		}
		animes = append(animes, models.Anime{
			ID:          id,
			Title:       title,
			OverallRank: parseNullInt(valueAt(header, row, "overall_rank")),
			MeanScore:   parseNullFloat(valueAt(header, row, "mean_score")),
		})
	})
	if err != nil {
		return nil, err
	}
	return animes, nil
}

// ReadGenreLinks reads an anime_genres.csv.
func ReadGenreLinks(path string) ([]models.GenreLink, error) {
	var links []models.GenreLink
	err := readRows(path, func(header map[string]int, row []string) {
		animeID, okA := parseKey(valueAt(header, row, "anime_id"))
		genreID, okG := parseKey(valueAt(header, row, "genre_id"))
		if !okA || !okG {
			log.Printf("[record] %s: skipping malformed genre link row %v", path, row)
			return
		}
		links = append(links, models.GenreLink{AnimeID: animeID, GenreID: genreID})
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

// ReadWatchlists reads a user_watchlists.csv.
func ReadWatchlists(path string) ([]models.WatchlistEntry, error) {
	var entries []models.WatchlistEntry
	err := readRows(path, func(header map[string]int, row []string) {
		userID, okU := parseKey(valueAt(header, row, "user_id"))
		animeID, okA := parseKey(valueAt(header, row, "anime_id"))
		rank, okR := parseKey(valueAt(header, row, "user_rank"))
		if !okU || !okA || !okR || rank < 1 {
			log.Printf("[record] %s: skipping malformed watchlist row %v", path, row)
			return
		}
		entries = append(entries, models.WatchlistEntry{UserID: userID, AnimeID: animeID, Rank: rank})
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ReadDetails reads an anime_details.csv produced by the detail
// crawler: anime_id, studio, promo_video_url.
func ReadDetails(path string) ([]models.AnimeDetail, error) {
	var details []models.AnimeDetail
	err := readRows(path, func(header map[string]int, row []string) {
		id, ok := parseKey(valueAt(header, row, "anime_id"))
		if !ok {
			log.Printf("[record] %s: skipping malformed detail row %v", path, row)
			return
		}
		details = append(details, models.AnimeDetail{
			AnimeID:   id,
			Studio:    nullString(valueAt(header, row, "studio")),
			PromoLink: nullString(valueAt(header, row, "promo_video_url")),
		})
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}

// ReadReviews reads a reviews.csv: anime_id, username, date,
// rating_score, review_text. A non-numeric rating becomes null and the
// review is kept.
func ReadReviews(path string) ([]models.Review, error) {
	var reviews []models.Review
	err := readRows(path, func(header map[string]int, row []string) {
		id, ok := parseKey(valueAt(header, row, "anime_id"))
		author := valueAt(header, row, "username")
		date := valueAt(header, row, "date")
		if !ok || author == "" || date == "" {
			log.Printf("[record] %s: skipping malformed review row %v", path, row)
			return
		}
		reviews = append(reviews, models.Review{
			AnimeID:    id,
			Author:     author,
			ReviewDate: date,
			Rating:     parseNullInt(valueAt(header, row, "rating_score")),
			Text:       valueAt(header, row, "review_text"),
		})
	})
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func readRows(path string, visit func(header map[string]int, row []string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return fmt.Errorf("read header of %s: %w", path, err)
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if len(row) == 0 {
			continue
		}
		visit(header, row)
	}
	return nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseKey parses a required integer column. Rows with bad keys are
// skipped by callers; keys cannot be coerced to null.
func parseKey(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseNullInt coerces unparsable values to null instead of failing.
func parseNullInt(raw string) *int64 {
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func parseNullFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func nullString(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}
