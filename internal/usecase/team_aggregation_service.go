package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/gamewatchr/internal/domain/league"
	"github.com/riskibarqy/gamewatchr/internal/domain/team"
	"github.com/riskibarqy/gamewatchr/internal/platform/logging"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

const defaultFeedTimeout = 8 * time.Second

// Outcome tags how a league's team list was produced.
type Outcome string

const (
	OutcomeOK                 Outcome = "ok"
	OutcomeFailedWithFallback Outcome = "failed-with-fallback"
	OutcomeFailedEmpty        Outcome = "failed-empty"
)

// LeagueFetchResult is the per-league result of one aggregation call.
type LeagueFetchResult struct {
	LeagueID string
	Teams    []team.Team
	Outcome  Outcome
	Err      string
}

// LeagueBatch holds the results of a multi-league fetch. Every requested id
// appears in Errors, Results, or both.
type LeagueBatch struct {
	Order     []string
	Results   map[string][]team.Team
	Errors    map[string]string
	Outcomes  map[string]Outcome
	FetchedAt time.Time
}

// SuccessCount returns the number of leagues served from a live feed.
func (b LeagueBatch) SuccessCount() int {
	total := 0
	for _, outcome := range b.Outcomes {
		if outcome == OutcomeOK {
			total++
		}
	}
	return total
}

// Flatten concatenates the results in request order.
func (b LeagueBatch) Flatten() []team.Team {
	out := make([]team.Team, 0)
	for _, leagueID := range b.Order {
		out = append(out, b.Results[leagueID]...)
	}
	return out
}

type TeamAggregationService struct {
	registry     league.Registry
	feed         team.Feed
	offline      team.OfflineSource
	fetchTimeout time.Duration
	logger       *logging.Logger
	now          func() time.Time
}

func NewTeamAggregationService(
	registry league.Registry,
	feed team.Feed,
	offline team.OfflineSource,
	fetchTimeout time.Duration,
	logger *logging.Logger,
) *TeamAggregationService {
	if logger == nil {
		logger = logging.Default()
	}
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFeedTimeout
	}

	return &TeamAggregationService{
		registry:     registry,
		feed:         feed,
		offline:      offline,
		fetchTimeout: fetchTimeout,
		logger:       logger,
		now:          time.Now,
	}
}

// FetchLeague fetches a single league with the same fallback rules as FetchLeagues.
func (s *TeamAggregationService) FetchLeague(ctx context.Context, leagueID string) LeagueFetchResult {
	batch := s.FetchLeagues(ctx, []string{leagueID})
	id := league.NormalizeID(leagueID)

	return LeagueFetchResult{
		LeagueID: id,
		Teams:    batch.Results[id],
		Outcome:  batch.Outcomes[id],
		Err:      batch.Errors[id],
	}
}

// FetchLeagues fetches every known league concurrently. A failing league
// never affects its siblings and the call itself never fails.
func (s *TeamAggregationService) FetchLeagues(ctx context.Context, leagueIDs []string) LeagueBatch {
	order := normalizeLeagueIDs(leagueIDs)
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamAggregationService.FetchLeagues", leagueCountAttr(len(order)))
	defer span.End()

	batch := LeagueBatch{
		Order:    order,
		Results:  make(map[string][]team.Team, len(order)),
		Errors:   make(map[string]string),
		Outcomes: make(map[string]Outcome, len(order)),
	}

	type task struct {
		leagueID string
		locator  league.FeedLocator
	}
	tasks := make([]task, 0, len(order))
	for _, leagueID := range order {
		locator, ok := s.registry.ResolveFeed(leagueID)
		if !ok {
			batch.Errors[leagueID] = ErrLeagueNotFound
			continue
		}
		tasks = append(tasks, task{leagueID: leagueID, locator: locator})
	}

	slots := make([]LeagueFetchResult, len(tasks))
	var wg conc.WaitGroup
	for i, t := range tasks {
		wg.Go(func() {
			slots[i] = s.fetchOne(ctx, t.leagueID, t.locator)
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	collected := slots
	select {
	case <-done:
	case <-ctx.Done():
		// Late tasks keep writing into slots; nothing reads them after this point.
		s.logger.WarnContext(ctx, "league fetch abandoned by caller", "leagues", len(tasks), "error", ctx.Err())
		collected = make([]LeagueFetchResult, len(tasks))
		for i, t := range tasks {
			collected[i] = s.fallback(t.leagueID, ctx.Err().Error())
		}
	}

	for _, slot := range collected {
		batch.Results[slot.LeagueID] = slot.Teams
		batch.Outcomes[slot.LeagueID] = slot.Outcome
		if slot.Err != "" {
			batch.Errors[slot.LeagueID] = slot.Err
		}
	}
	batch.FetchedAt = s.now().UTC()

	return batch
}

func (s *TeamAggregationService) fetchOne(ctx context.Context, leagueID string, locator league.FeedLocator) LeagueFetchResult {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	var (
		teams []team.Team
		err   error
	)
	var catcher panics.Catcher
	catcher.Try(func() {
		teams, err = s.feed.FetchTeams(fetchCtx, leagueID, locator)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		err = fmt.Errorf("feed panicked: %v", recovered.Value)
	}

	if err != nil {
		s.logger.WarnContext(ctx, "league fetch failed, serving offline roster",
			"league_id", leagueID,
			"feed_path", locator.Path(),
			"error", err,
		)
		return s.fallback(leagueID, err.Error())
	}
	if teams == nil {
		teams = []team.Team{}
	}

	return LeagueFetchResult{
		LeagueID: leagueID,
		Teams:    teams,
		Outcome:  OutcomeOK,
	}
}

func (s *TeamAggregationService) fallback(leagueID, message string) LeagueFetchResult {
	var teams []team.Team
	if s.offline != nil {
		teams = s.offline.Teams(leagueID)
	}
	if len(teams) == 0 {
		return LeagueFetchResult{
			LeagueID: leagueID,
			Teams:    []team.Team{},
			Outcome:  OutcomeFailedEmpty,
			Err:      message,
		}
	}

	return LeagueFetchResult{
		LeagueID: leagueID,
		Teams:    teams,
		Outcome:  OutcomeFailedWithFallback,
		Err:      message,
	}
}

func normalizeLeagueIDs(leagueIDs []string) []string {
	out := make([]string, 0, len(leagueIDs))
	seen := make(map[string]struct{}, len(leagueIDs))
	for _, raw := range leagueIDs {
		id := league.NormalizeID(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
