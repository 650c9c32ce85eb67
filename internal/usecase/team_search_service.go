package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/gamewatchr/internal/domain/league"
	"github.com/riskibarqy/gamewatchr/internal/domain/team"
)

type TeamSearchResult struct {
	Query  string
	Teams  []team.Team
	Errors map[string]string
}

// TeamSearchService searches the teams of a fresh aggregation.
type TeamSearchService struct {
	registry   league.Registry
	aggregator *TeamAggregationService
}

func NewTeamSearchService(registry league.Registry, aggregator *TeamAggregationService) *TeamSearchService {
	return &TeamSearchService{
		registry:   registry,
		aggregator: aggregator,
	}
}

// Search matches query against the given leagues, or every registry league
// when none are given. A blank query returns no teams and fetches nothing.
func (s *TeamSearchService) Search(ctx context.Context, query string, leagueIDs []string) TeamSearchResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamSearchService.Search")
	defer span.End()

	result := TeamSearchResult{
		Query:  query,
		Teams:  []team.Team{},
		Errors: map[string]string{},
	}
	if strings.TrimSpace(query) == "" {
		return result
	}

	if len(leagueIDs) == 0 {
		for _, item := range s.registry.List() {
			leagueIDs = append(leagueIDs, item.ID)
		}
	}

	batch := s.aggregator.FetchLeagues(ctx, leagueIDs)
	result.Teams = team.Search(result.Query, batch.Flatten())
	result.Errors = batch.Errors
	return result
}
