package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeagueRegistry_ResolveFeedIsCaseInsensitive(t *testing.T) {
	registry := NewDefaultLeagueRegistry()

	locator, ok := registry.ResolveFeed("  Premier-League ")
	require.True(t, ok)
	assert.Equal(t, "soccer", locator.Sport)
	assert.Equal(t, "eng.1", locator.League)

	_, ok = registry.ResolveFeed("xfl")
	assert.False(t, ok)
}

func TestLeagueRegistry_EveryLeagueBelongsToOneCategory(t *testing.T) {
	registry := NewDefaultLeagueRegistry()

	leagues := registry.List()
	require.Len(t, leagues, 14)
	for _, l := range leagues {
		require.NoError(t, l.Validate())
		category, ok := registry.CategoryOf(l.ID)
		if !ok {
			t.Fatalf("league %s has no category", l.ID)
		}
		assert.True(t, category.Contains(l.ID))
	}
	assert.Len(t, registry.Categories(), 5)
}

func TestLeagueRegistry_LeagueNameFallsBackToID(t *testing.T) {
	registry := NewDefaultLeagueRegistry()

	assert.Equal(t, "Men's College Basketball", registry.LeagueName("mens-college-basketball"))
	assert.Equal(t, "unknown-league", registry.LeagueName("unknown-league"))
}

func TestLeagueRegistry_CategoryReturnsCopy(t *testing.T) {
	registry := NewDefaultLeagueRegistry()

	category, ok := registry.Category("Basketball")
	require.True(t, ok)
	require.Equal(t, []string{"nba", "wnba", "mens-college-basketball", "womens-college-basketball"}, category.LeagueIDs)

	category.LeagueIDs[0] = "mutated"
	again, _ := registry.Category("basketball")
	assert.Equal(t, "nba", again.LeagueIDs[0])
}
