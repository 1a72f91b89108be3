package models

// User is one distinct username seen during a pipeline run.
// The id is assigned by the identity resolver and is stable for the
// whole run; a username never gets a second id.
type User struct {
	ID       int64  `json:"user_id"`
	Username string `json:"username"`
}

// Anime is the catalog entry for one external anime id.
//
// Fields are filled from the first watchlist entry that mentions the
// anime (first-seen-wins); later sightings in the same run never
// overwrite them. Rank and mean score are nullable because the list
// service omits them for obscure titles.
type Anime struct {
	ID          int64    `json:"anime_id"` // external id, never locally generated
	Title       string   `json:"title"`
	OverallRank *int64   `json:"overall_rank,omitempty"`
	MeanScore   *float64 `json:"mean_score,omitempty"`
}

// GenreLink is one (anime, genre) edge. The pipeline may emit the same
// pair once per user watching the anime; the loader deduplicates.
type GenreLink struct {
	AnimeID int64 `json:"anime_id"`
	GenreID int64 `json:"genre_id"`
}

// WatchlistEntry is one anime on one user's list. Rank is the 1-based
// position in the order the list service returned, unique and
// contiguous per user.
type WatchlistEntry struct {
	UserID  int64 `json:"user_id"`
	AnimeID int64 `json:"anime_id"`
	Rank    int64 `json:"user_rank"`
}

// ListEntry is one raw item of a user's fetched watchlist, after JSON
// decoding but before normalization. Genres holds names only; mapping
// to ids happens against the injected genre table.
type ListEntry struct {
	AnimeID   int64
	Title     string
	Rank      *int64
	MeanScore *float64
	Genres    []string
}
