package pipeline

import (
	"sync"

	"animehub/pkg/models"
)

// Resolver assigns run-scoped identities. User ids are dense integers
// starting at 0; anime ids come from the list service and are only
// deduplicated here. Both mappings are append-only for the life of a
// run: an id is never reassigned or reused.
//
// Batches fetch in parallel, so the resolver is mutex-guarded.
type Resolver struct {
	mu        sync.Mutex
	userIDs   map[string]int64
	seenAnime map[int64]struct{}
	agg       *Aggregate
}

func NewResolver(agg *Aggregate) *Resolver {
	return &Resolver{
		userIDs:   make(map[string]int64),
		seenAnime: make(map[int64]struct{}),
		agg:       agg,
	}
}

// ResolveUser returns the run-scoped id for a username, allocating the
// next sequential id (and recording a User) on first sighting. The
// second return reports whether this call allocated the id: a repeated
// username in the input list still costs a second fetch, but must not
// contribute a second set of entries.
func (r *Resolver) ResolveUser(username string) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.userIDs[username]; ok {
		return id, false
	}
	id := int64(len(r.userIDs))
	r.userIDs[username] = id
	r.agg.AddUser(models.User{ID: id, Username: username})
	return id, true
}

// ResolveAnime records the anime exactly once per external id per run
// and reports whether this call was the first sighting. Later calls
// with the same id are no-ops: first-seen-wins, the recorded fields
// are never overwritten.
func (r *Resolver) ResolveAnime(a models.Anime) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seenAnime[a.ID]; ok {
		return false
	}
	r.seenAnime[a.ID] = struct{}{}
	r.agg.AddAnime(a)
	return true
}
