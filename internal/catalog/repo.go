package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"animehub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Stats summarizes what the loader has put into the store so far.
type Stats struct {
	Users      int64 `json:"users"`
	Animes     int64 `json:"animes"`
	Watchlists int64 `json:"watchlist_rows"`
	Reviews    int64 `json:"reviews"`
}

func (r *Repo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	row := r.DB.QueryRowContext(ctx, `
		SELECT
		  (SELECT COUNT(*) FROM users),
		  (SELECT COUNT(*) FROM animes),
		  (SELECT COUNT(*) FROM user_watchlists),
		  (SELECT COUNT(*) FROM reviews)
	`)
	if err := row.Scan(&s.Users, &s.Animes, &s.Watchlists, &s.Reviews); err != nil {
		return Stats{}, fmt.Errorf("stats scan: %w", err)
	}
	return s, nil
}

// SearchAnime does a case-insensitive substring match on titles,
// best-ranked first (null ranks last).
func (r *Repo) SearchAnime(ctx context.Context, q string, limit int) ([]models.Anime, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	kw := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"

	rows, err := r.DB.QueryContext(ctx, `
		SELECT anime_id, title, overall_rank, mean_score
		FROM animes
		WHERE LOWER(title) LIKE ?
		ORDER BY overall_rank IS NULL, overall_rank ASC
		LIMIT ?
	`, kw, limit)
	if err != nil {
		return nil, fmt.Errorf("search anime query: %w", err)
	}
	defer rows.Close()

	out := make([]models.Anime, 0, limit)
	for rows.Next() {
		var (
			a    models.Anime
			rank sql.NullInt64
			mean sql.NullFloat64
		)
		if err := rows.Scan(&a.ID, &a.Title, &rank, &mean); err != nil {
			return nil, fmt.Errorf("search anime scan: %w", err)
		}
		if rank.Valid {
			a.OverallRank = &rank.Int64
		}
		if mean.Valid {
			a.MeanScore = &mean.Float64
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// SearchGenres matches genre names by substring, id order.
func (r *Repo) SearchGenres(ctx context.Context, q string, limit int) ([]string, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	kw := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"

	rows, err := r.DB.QueryContext(ctx, `
		SELECT name
		FROM genres
		WHERE LOWER(name) LIKE ?
		ORDER BY genre_id
		LIMIT ?
	`, kw, limit)
	if err != nil {
		return nil, fmt.Errorf("search genres query: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0, limit)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("search genres scan: %w", err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
