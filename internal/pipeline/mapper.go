package pipeline

import (
	"animehub/pkg/genres"
	"animehub/pkg/models"
)

// mapList normalizes one user's raw watchlist into flat records.
//
// Rank is the 1-based position in the as-received order: the list
// service returns entries pre-sorted by the requested sort key and we
// do not re-sort. Genre names missing from the injected table are
// dropped. A nil/empty genre list is fine, it just yields no links.
func mapList(res *Resolver, agg *Aggregate, table genres.Table, userID int64, entries []models.ListEntry) {
	for i, e := range entries {
		agg.AddWatchlist(models.WatchlistEntry{
			UserID:  userID,
			AnimeID: e.AnimeID,
			Rank:    int64(i + 1),
		})

		res.ResolveAnime(models.Anime{
			ID:          e.AnimeID,
			Title:       e.Title,
			OverallRank: e.Rank,
			MeanScore:   e.MeanScore,
		})

		for _, name := range e.Genres {
			if id, ok := table.Lookup(name); ok {
				agg.AddGenreLink(models.GenreLink{AnimeID: e.AnimeID, GenreID: id})
			}
		}
	}
}
