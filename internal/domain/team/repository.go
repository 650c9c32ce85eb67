package team

import (
	"context"

	"github.com/riskibarqy/gamewatchr/internal/domain/league"
)

// Feed fetches and normalizes the live roster of one league.
type Feed interface {
	FetchTeams(ctx context.Context, leagueID string, locator league.FeedLocator) ([]Team, error)
}

// OfflineSource serves the fixed fallback roster of a league.
// Leagues without a fallback return an empty slice.
type OfflineSource interface {
	Teams(leagueID string) []Team
}
