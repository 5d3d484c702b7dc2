package github

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/forgemycode/forgemycode/internal/model"
)

// SeedSearchResult carries the outcome of a fan-out search. FailedSources
// names the "owner/name" repositories whose branch failed, so callers (and
// tests) can observe partial failure instead of it vanishing into logs.
type SeedSearchResult struct {
	Tasks         []model.Task
	FailedSources []string
}

// SearchSeeds fans one filter out over the top seed repositories in
// parallel and gathers whatever succeeded.
//
// Aggregation policy is best-effort, not all-or-nothing: a branch that
// fails is logged, recorded in FailedSources, and dropped — partial results
// from the other repositories still surface. The method itself never
// returns an error from a branch; only a cancelled context aborts it.
func (c *Client) SearchSeeds(ctx context.Context, filter Filter, perRepo int) (*SeedSearchResult, error) {
	seeds := seedRepos
	if len(seeds) > maxFanout {
		seeds = seeds[:maxFanout]
	}

	var (
		mu     sync.Mutex
		result SeedSearchResult
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, seed := range seeds {
		g.Go(func() error {
			repoFilter := filter
			repoFilter.Repo = seed.FullName()
			repoFilter.NoAssignee = true

			resp, err := c.Search(ctx, BuildQuery(repoFilter), 1, perRepo)
			if err != nil {
				c.logger.Warn("seed repository search failed",
					slog.String("repo", seed.FullName()),
					slog.String("error", err.Error()),
				)
				mu.Lock()
				result.FailedSources = append(result.FailedSources, seed.FullName())
				mu.Unlock()
				return nil // swallow: best-effort aggregation
			}

			tasks := NormalizeAll(resp.Items, NormalizeOptions{
				DifficultyFilter: DifficultyOverride(filter.Difficulty),
				Language:         seed.Language,
			})

			mu.Lock()
			result.Tasks = append(result.Tasks, tasks...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if n := len(result.FailedSources); n > 0 {
		c.logger.Info("seed fan-out finished with failures",
			slog.Int("failed", n),
			slog.Int("tasks", len(result.Tasks)),
		)
	}

	return &result, nil
}
