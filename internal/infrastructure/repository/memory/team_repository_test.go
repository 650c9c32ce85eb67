package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineTeamRepository_Teams(t *testing.T) {
	repo := NewOfflineTeamRepository(SeedOfflineTeams())

	nba := repo.Teams("NBA")
	require.Len(t, nba, 3)
	assert.Equal(t, "Golden State Warriors", nba[1].DisplayName)
	assert.Equal(t, "nba", nba[1].LeagueID)

	nba[0].Name = "mutated"
	assert.Equal(t, "Lakers", repo.Teams("nba")[0].Name)

	unknown := repo.Teams("wnba")
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
}
