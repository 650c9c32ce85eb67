package memory

import (
	"github.com/riskibarqy/gamewatchr/internal/domain/league"
	"github.com/riskibarqy/gamewatchr/internal/domain/team"
)

// OfflineTeamRepository serves the fixed fallback rosters.
type OfflineTeamRepository struct {
	byLeague map[string][]team.Team
}

func NewOfflineTeamRepository(rosters map[string][]team.Team) *OfflineTeamRepository {
	byLeague := make(map[string][]team.Team, len(rosters))
	for leagueID, items := range rosters {
		byLeague[league.NormalizeID(leagueID)] = team.CloneList(items)
	}
	return &OfflineTeamRepository{byLeague: byLeague}
}

// Teams returns a copy of the league's fallback roster, empty when there is none.
func (r *OfflineTeamRepository) Teams(leagueID string) []team.Team {
	items, ok := r.byLeague[league.NormalizeID(leagueID)]
	if !ok {
		return []team.Team{}
	}
	return team.CloneList(items)
}
