package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/gamewatchr/internal/domain/league"
	"github.com/riskibarqy/gamewatchr/internal/domain/team"
	"go.opentelemetry.io/otel/attribute"
)

// CategoryTeams is the roster of every league in one sport category.
type CategoryTeams struct {
	Category league.SportCategory
	Batch    LeagueBatch
}

// CatalogService exposes the static league and sport catalog.
type CatalogService struct {
	registry   league.Registry
	aggregator *TeamAggregationService
}

func NewCatalogService(registry league.Registry, aggregator *TeamAggregationService) *CatalogService {
	return &CatalogService{
		registry:   registry,
		aggregator: aggregator,
	}
}

func (s *CatalogService) ListCategories(_ context.Context) []league.SportCategory {
	return s.registry.Categories()
}

func (s *CatalogService) ListLeagues(_ context.Context) []league.League {
	return s.registry.List()
}

func (s *CatalogService) LeagueName(leagueID string) string {
	return s.registry.LeagueName(leagueID)
}

func (s *CatalogService) LookupLeague(leagueID string) (league.League, bool) {
	return s.registry.Get(leagueID)
}

// TeamsByCategory aggregates every league of a category.
func (s *CatalogService) TeamsByCategory(ctx context.Context, categoryID string) (CategoryTeams, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.TeamsByCategory",
		attribute.String("gamewatchr.category_id", categoryID))
	defer span.End()

	category, ok := s.registry.Category(categoryID)
	if !ok {
		return CategoryTeams{}, fmt.Errorf("%w: sport category=%s", ErrNotFound, categoryID)
	}

	return CategoryTeams{
		Category: category,
		Batch:    s.aggregator.FetchLeagues(ctx, category.LeagueIDs),
	}, nil
}

// GroupByLeague returns the teams of a category keyed by league, skipping empty leagues.
func (c CategoryTeams) GroupByLeague() map[string][]team.Team {
	out := make(map[string][]team.Team, len(c.Category.LeagueIDs))
	for _, leagueID := range c.Category.LeagueIDs {
		if items := c.Batch.Results[leagueID]; len(items) > 0 {
			out[leagueID] = items
		}
	}
	return out
}
