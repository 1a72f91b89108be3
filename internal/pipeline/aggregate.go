package pipeline

import (
	"sync"

	"animehub/pkg/models"
)

// RecordSet is the finalized output of one run: the four flat record
// collections the loader consumes.
type RecordSet struct {
	Users      []models.User
	Animes     []models.Anime
	GenreLinks []models.GenreLink
	Watchlists []models.WatchlistEntry
}

// Aggregate accumulates records produced by the mapper. Append-only:
// there is no update or delete path. Guarded by a mutex because the
// fetch fan-out runs user mappings in parallel within a batch.
type Aggregate struct {
	mu  sync.Mutex
	set RecordSet
}

func NewAggregate() *Aggregate {
	return &Aggregate{}
}

func (a *Aggregate) AddUser(u models.User) {
	a.mu.Lock()
	a.set.Users = append(a.set.Users, u)
	a.mu.Unlock()
}

func (a *Aggregate) AddAnime(an models.Anime) {
	a.mu.Lock()
	a.set.Animes = append(a.set.Animes, an)
	a.mu.Unlock()
}

func (a *Aggregate) AddGenreLink(l models.GenreLink) {
	a.mu.Lock()
	a.set.GenreLinks = append(a.set.GenreLinks, l)
	a.mu.Unlock()
}

func (a *Aggregate) AddWatchlist(w models.WatchlistEntry) {
	a.mu.Lock()
	a.set.Watchlists = append(a.set.Watchlists, w)
	a.mu.Unlock()
}

// Drain returns the accumulated collections. Called once, after all
// batches have settled.
func (a *Aggregate) Drain() RecordSet {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.set
}
