package models

// Review is one free-text review imported by the enrichment stage.
// (AnimeID, Author, ReviewDate) is the natural key: re-importing a
// previously seen review is a no-op. Rating is null when the source
// value failed numeric parsing.
type Review struct {
	AnimeID    int64  `json:"anime_id"`
	Author     string `json:"author"`
	ReviewDate string `json:"review_date"`
	Rating     *int64 `json:"rating,omitempty"`
	Text       string `json:"review_text,omitempty"`
}

// AnimeDetail carries the update-only enrichment fields for an anime
// that was loaded by an earlier run.
type AnimeDetail struct {
	AnimeID   int64   `json:"anime_id"`
	Studio    *string `json:"studio,omitempty"`
	PromoLink *string `json:"promo_link,omitempty"`
}
