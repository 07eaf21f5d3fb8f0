package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/duet/internal/models"
	"golang.org/x/time/rate"
)

// PrefetchOpts contains configuration for discovery prefetches.
type PrefetchOpts struct {
	NumWorkers int     // Concurrent workers (default: 3)
	RateLimit  float64 // Requests per second for detail fetches (default: 5)
	Details    bool    // Also fetch each candidate's full user record
}

// ProfileDetailResult records the outcome of one candidate detail fetch.
type ProfileDetailResult struct {
	ProfileID string
	Name      string
	User      *models.User
	Error     error
}

// PrefetchResult summarizes a discovery prefetch.
type PrefetchResult struct {
	TotalProfiles int
	DetailsOK     int
	DetailsFailed int
	Details       []ProfileDetailResult
}

// Prefetch warms the discovery feed and the offline cache in one pass.
//
// The candidate list goes through the regular "discover" cache key (and is
// snapshotted locally when a Snapshotter is configured). With opts.Details
// set, a small worker pool fetches each candidate's full user record,
// rate-limited so a long feed doesn't hammer the backend. Partial failures
// are collected, not fatal.
func (e *Engine) Prefetch(ctx context.Context, progress chan<- ProgressUpdate, opts PrefetchOpts) (*PrefetchResult, error) {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	e.sendProgress(progress, ProgressUpdate{
		Phase:   FetchDiscover,
		Step:    1,
		Total:   1,
		Message: "Fetching discovery feed...",
	})

	profiles, err := e.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch discovery feed: %w", err)
	}

	result := &PrefetchResult{TotalProfiles: len(profiles)}
	if !opts.Details || len(profiles) == 0 {
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan models.UserProfile, len(profiles))
	results := make(chan ProfileDetailResult, len(profiles))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.detailWorker(ctx, &wg, limiter, jobs, results)
	}

	for _, profile := range profiles {
		jobs <- profile
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Details = append(result.Details, res)

		if res.Error != nil {
			result.DetailsFailed++
		} else {
			result.DetailsOK++
		}

		e.sendProgress(progress, ProgressUpdate{
			Phase:   FetchDetails,
			Step:    completed,
			Total:   len(profiles),
			Message: fmt.Sprintf("[%d/%d] Fetched %s", completed, len(profiles), res.Name),
		})
	}

	return result, nil
}

// detailWorker fetches full user records for candidates from the jobs channel.
func (e *Engine) detailWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan models.UserProfile,
	results chan<- ProfileDetailResult,
) {
	defer wg.Done()

	for profile := range jobs {
		res := ProfileDetailResult{ProfileID: profile.ID, Name: profile.Name}

		if err := limiter.Wait(ctx); err != nil {
			res.Error = err
			results <- res
			continue
		}

		user, err := e.api.User(ctx, profile.ID)
		if err != nil {
			res.Error = fmt.Errorf("failed to fetch user %s: %w", profile.ID, err)
		} else {
			res.User = user
		}
		results <- res
	}
}
