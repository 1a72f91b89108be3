package pipeline

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"animehub/pkg/genres"
	"animehub/pkg/models"
)

// ListService is implemented by the list-service API client. One call
// fetches one user's full ranked watchlist.
type ListService interface {
	Watchlist(ctx context.Context, username string) ([]models.ListEntry, error)
}

// Options controls fetch pacing: how many usernames are in flight at
// once and how long the scheduler pauses between batches.
type Options struct {
	BatchSize       int
	InterBatchDelay time.Duration
}

// Failure records one absorbed per-user fetch failure. There is no
// retry; the user is simply absent from the output.
type Failure struct {
	Username string
	Err      error
}

// Result is the outcome of one ingestion run.
type Result struct {
	RunID    string
	Fetched  int // users that contributed entries
	Failures []Failure
	Records  RecordSet
}

// Run fetches every username's watchlist in consecutive batches and
// returns the normalized record collections.
//
// Usernames are taken by raw list position: a duplicate name costs a
// second fetch, but the resolver hands back the same user id. Within a
// batch all fetches run concurrently; batch N+1 never starts before
// every fetch of batch N has settled. A single user's failure (or an
// empty list) is logged and absorbed as zero entries for that user.
// Only context cancellation aborts the run.
func Run(ctx context.Context, opts Options, usernames []string, svc ListService, table genres.Table) (*Result, error) {
	if opts.BatchSize < 1 {
		opts.BatchSize = 1
	}

	agg := NewAggregate()
	res := NewResolver(agg)
	result := &Result{RunID: uuid.NewString()}
	var mu sync.Mutex

	log.Printf("[pipeline] run %s: %d usernames, batch size %d, inter-batch delay %s",
		result.RunID, len(usernames), opts.BatchSize, opts.InterBatchDelay)

	for start := 0; start < len(usernames); start += opts.BatchSize {
		end := min(start+opts.BatchSize, len(usernames))

		var g errgroup.Group
		for _, username := range usernames[start:end] {
			username := username
			g.Go(func() error {
				entries, err := svc.Watchlist(ctx, username)
				if err != nil {
					log.Printf("[pipeline] user %s: %v (treated as zero entries)", username, err)
					mu.Lock()
					result.Failures = append(result.Failures, Failure{Username: username, Err: err})
					mu.Unlock()
					return nil
				}
				if len(entries) == 0 {
					log.Printf("[pipeline] user %s: no entries", username)
					return nil
				}

				userID, first := res.ResolveUser(username)
				if !first {
					log.Printf("[pipeline] user %s already ingested this run (duplicate in source list)", username)
					return nil
				}
				mapList(res, agg, table, userID, entries)

				mu.Lock()
				result.Fetched++
				mu.Unlock()
				return nil
			})
		}
		// fetch errors are absorbed above, Wait only joins the batch
		_ = g.Wait()

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if end < len(usernames) {
			select {
			case <-time.After(opts.InterBatchDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	result.Records = agg.Drain()
	log.Printf("[pipeline] run %s done: %d users, %d animes, %d genre links, %d watchlist rows, %d failures",
		result.RunID, len(result.Records.Users), len(result.Records.Animes),
		len(result.Records.GenreLinks), len(result.Records.Watchlists), len(result.Failures))
	return result, nil
}
