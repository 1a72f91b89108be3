package load

import (
	"context"
	"database/sql"
	"fmt"

	"animehub/pkg/genres"
	"animehub/pkg/models"
)

// Loader applies record collections to the relational store.
//
// Append-only entities go in with insert-if-absent semantics (INSERT OR
// IGNORE on the primary/natural key), so re-running any load against
// previously loaded data inserts zero duplicates and raises zero
// errors. Each insert is independently idempotent, so the append-only
// paths run without an enclosing transaction and the four record types
// stay independently restartable.
type Loader struct {
	DB *sql.DB
}

func New(db *sql.DB) *Loader {
	return &Loader{DB: db}
}

// LoadUsers inserts users, skipping ids already present. Returns the
// number of rows actually inserted.
func (l *Loader) LoadUsers(ctx context.Context, users []models.User) (int64, error) {
	stmt, err := l.DB.PrepareContext(ctx, `
		INSERT OR IGNORE INTO users (user_id, username)
		VALUES (?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare users insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, u := range users {
		res, err := stmt.ExecContext(ctx, u.ID, u.Username)
		if err != nil {
			return inserted, fmt.Errorf("insert user %d: %w", u.ID, err)
		}
		n, _ := res.RowsAffected()
		inserted += n
	}
	return inserted, nil
}

// LoadGenres inserts the injected genre enumeration.
func (l *Loader) LoadGenres(ctx context.Context, table genres.Table) (int64, error) {
	stmt, err := l.DB.PrepareContext(ctx, `
		INSERT OR IGNORE INTO genres (genre_id, name)
		VALUES (?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare genres insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, g := range table.All() {
		res, err := stmt.ExecContext(ctx, g.ID, g.Name)
		if err != nil {
			return inserted, fmt.Errorf("insert genre %d: %w", g.ID, err)
		}
		n, _ := res.RowsAffected()
		inserted += n
	}
	return inserted, nil
}

// LoadAnimes inserts catalog rows. An id already present keeps its
// existing fields (the cross-run version of first-seen-wins); the
// enrichment path is the only way to change an existing row.
func (l *Loader) LoadAnimes(ctx context.Context, animes []models.Anime) (int64, error) {
	stmt, err := l.DB.PrepareContext(ctx, `
		INSERT OR IGNORE INTO animes (anime_id, title, overall_rank, mean_score)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare animes insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, a := range animes {
		res, err := stmt.ExecContext(ctx, a.ID, a.Title, a.OverallRank, a.MeanScore)
		if err != nil {
			return inserted, fmt.Errorf("insert anime %d: %w", a.ID, err)
		}
		n, _ := res.RowsAffected()
		inserted += n
	}
	return inserted, nil
}

// LoadGenreLinks inserts (anime, genre) edges. The pipeline emits
// duplicates for popular animes; the composite key absorbs them here.
func (l *Loader) LoadGenreLinks(ctx context.Context, links []models.GenreLink) (int64, error) {
	stmt, err := l.DB.PrepareContext(ctx, `
		INSERT OR IGNORE INTO anime_genres (anime_id, genre_id)
		VALUES (?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare genre links insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, link := range links {
		res, err := stmt.ExecContext(ctx, link.AnimeID, link.GenreID)
		if err != nil {
			return inserted, fmt.Errorf("insert genre link %d/%d: %w", link.AnimeID, link.GenreID, err)
		}
		n, _ := res.RowsAffected()
		inserted += n
	}
	return inserted, nil
}

// LoadWatchlists inserts watchlist rows keyed (user_id, anime_id).
func (l *Loader) LoadWatchlists(ctx context.Context, entries []models.WatchlistEntry) (int64, error) {
	stmt, err := l.DB.PrepareContext(ctx, `
		INSERT OR IGNORE INTO user_watchlists (user_id, anime_id, user_rank)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare watchlists insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, e := range entries {
		res, err := stmt.ExecContext(ctx, e.UserID, e.AnimeID, e.Rank)
		if err != nil {
			return inserted, fmt.Errorf("insert watchlist row %d/%d: %w", e.UserID, e.AnimeID, err)
		}
		n, _ := res.RowsAffected()
		inserted += n
	}
	return inserted, nil
}
