package load

import (
	"context"
	"fmt"

	"animehub/pkg/models"
)

// EnrichDetails applies studio/promo-link updates to already-loaded
// anime rows, all-or-nothing for the whole batch: any failing update
// (including an anime id the store has never seen) rolls the entire
// batch back. This path only updates, never inserts.
func (l *Loader) EnrichDetails(ctx context.Context, details []models.AnimeDetail) error {
	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin enrichment tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE animes
		SET studio = ?, promo_link = ?
		WHERE anime_id = ?
	`)
	if err != nil {
		return fmt.Errorf("prepare enrichment update: %w", err)
	}
	defer stmt.Close()

	for _, d := range details {
		res, err := stmt.ExecContext(ctx, d.Studio, d.PromoLink, d.AnimeID)
		if err != nil {
			return fmt.Errorf("enrich anime %d: %w", d.AnimeID, err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("enrich anime %d: rows affected: %w", d.AnimeID, err)
		}
		if rows == 0 {
			return fmt.Errorf("enrich anime %d: not present in store", d.AnimeID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit enrichment tx: %w", err)
	}
	return nil
}

// ImportReviews inserts reviews keyed by (anime_id, author, date), so
// re-importing a previously seen review is a no-op rather than a
// duplicate. Returns the number of new rows.
func (l *Loader) ImportReviews(ctx context.Context, reviews []models.Review) (int64, error) {
	stmt, err := l.DB.PrepareContext(ctx, `
		INSERT OR IGNORE INTO reviews (anime_id, author, review_date, rating, review_text)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare reviews insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, r := range reviews {
		res, err := stmt.ExecContext(ctx, r.AnimeID, r.Author, r.ReviewDate, r.Rating, r.Text)
		if err != nil {
			return inserted, fmt.Errorf("insert review for anime %d by %s: %w", r.AnimeID, r.Author, err)
		}
		n, _ := res.RowsAffected()
		inserted += n
	}
	return inserted, nil
}
