package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/gamewatchr/internal/domain/league"
	"github.com/riskibarqy/gamewatchr/internal/domain/team"
	"github.com/riskibarqy/gamewatchr/internal/platform/logging"
)

const defaultWarmWorkers = 4

// TeamFeedRefresher re-fetches a league from upstream and replaces its cached roster.
type TeamFeedRefresher interface {
	Refresh(ctx context.Context, leagueID string, locator league.FeedLocator) ([]team.Team, error)
}

type WarmReport struct {
	LeagueCount  int
	SuccessCount int
	FailedCount  int
	Failures     map[string]string
	Duration     time.Duration
}

// CatalogWarmer keeps the feed cache hot for every registry league.
type CatalogWarmer struct {
	registry  league.Registry
	refresher TeamFeedRefresher
	workers   int
	timeout   time.Duration
	logger    *logging.Logger
}

func NewCatalogWarmer(
	registry league.Registry,
	refresher TeamFeedRefresher,
	workers int,
	timeout time.Duration,
	logger *logging.Logger,
) *CatalogWarmer {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = defaultWarmWorkers
	}
	if timeout <= 0 {
		timeout = defaultFeedTimeout
	}

	return &CatalogWarmer{
		registry:  registry,
		refresher: refresher,
		workers:   workers,
		timeout:   timeout,
		logger:    logger,
	}
}

// WarmOnce refreshes every league on a bounded worker pool.
func (w *CatalogWarmer) WarmOnce(ctx context.Context) (WarmReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogWarmer.WarmOnce")
	defer span.End()

	started := time.Now()
	leagues := w.registry.List()
	report := WarmReport{
		LeagueCount: len(leagues),
		Failures:    make(map[string]string),
	}
	if len(leagues) == 0 {
		return report, nil
	}

	pool, err := ants.NewPool(min(w.workers, len(leagues)))
	if err != nil {
		return WarmReport{}, fmt.Errorf("create warm worker pool: %w", err)
	}
	defer pool.Release()

	var (
		successCount atomic.Int32
		failuresMu   sync.Mutex
		workers      sync.WaitGroup
	)
	for _, item := range leagues {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, w.timeout)
			defer cancel()

			if _, err := w.refresher.Refresh(fetchCtx, item.ID, item.Feed); err != nil {
				failuresMu.Lock()
				report.Failures[item.ID] = err.Error()
				failuresMu.Unlock()
				return
			}
			successCount.Add(1)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return WarmReport{}, fmt.Errorf("submit warm task league=%s: %w", item.ID, err)
		}
	}
	workers.Wait()

	report.SuccessCount = int(successCount.Load())
	report.FailedCount = len(report.Failures)
	report.Duration = time.Since(started)
	return report, nil
}

// Run warms immediately and then on every interval until ctx is done.
func (w *CatalogWarmer) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		report, err := w.WarmOnce(ctx)
		if err != nil {
			w.logger.ErrorContext(ctx, "catalog warm failed", "error", err)
		} else {
			w.logger.InfoContext(ctx, "catalog warmed",
				"leagues", report.LeagueCount,
				"succeeded", report.SuccessCount,
				"failed", report.FailedCount,
				"duration_ms", report.Duration.Milliseconds(),
			)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
