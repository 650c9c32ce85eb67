package preference

import (
	"testing"
	"time"

	"github.com/riskibarqy/gamewatchr/internal/domain/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_EmptyPayloadIsNil(t *testing.T) {
	for _, raw := range []string{"", "  ", "null"} {
		got, err := Decode("user-1", []byte(raw))
		require.NoError(t, err)
		assert.Nil(t, got, "payload %q", raw)
	}
}

func TestDecode_RejectsWrongShape(t *testing.T) {
	_, err := Decode("user-1", []byte(`{"sports":"football","teams":[]}`))
	require.Error(t, err)
}

func TestEncodeDecode_KeepsSelection(t *testing.T) {
	updatedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	in := Preference{
		UserID: "user-1",
		Sports: []string{"football"},
		Teams: map[string][]team.Team{
			"nfl": {{ID: "12", LeagueID: "nfl", Name: "Chiefs", Abbreviation: "KC", PrimaryColor: "#E31837"}},
		},
		UpdatedAt: updatedAt,
	}

	raw, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode("user-1", raw)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in.Sports, out.Sports)
	assert.Equal(t, in.Teams, out.Teams)
	assert.True(t, out.UpdatedAt.Equal(updatedAt))
}

func TestDecode_FillsTeamLeagueFromKey(t *testing.T) {
	out, err := Decode("user-1", []byte(`{"sports":[],"teams":{"nba":[{"id":"5","name":"Warriors"}]},"updatedAt":"2026-03-01T10:00:00Z"}`))
	require.NoError(t, err)
	require.Len(t, out.Teams["nba"], 1)
	assert.Equal(t, "nba", out.Teams["nba"][0].LeagueID)
}
