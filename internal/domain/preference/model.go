package preference

import (
	"time"

	"github.com/riskibarqy/gamewatchr/internal/domain/team"
)

// Preference is the followed sports and teams of one user.
// Sports holds sport category ids or league ids; Teams is keyed by league id.
type Preference struct {
	UserID    string
	Sports    []string
	Teams     map[string][]team.Team
	UpdatedAt time.Time
}

// Clone deep-copies the selection so stored state never aliases caller data.
func (p Preference) Clone() Preference {
	out := Preference{
		UserID:    p.UserID,
		Sports:    append([]string(nil), p.Sports...),
		Teams:     make(map[string][]team.Team, len(p.Teams)),
		UpdatedAt: p.UpdatedAt,
	}
	if p.Sports == nil {
		out.Sports = []string{}
	}
	for leagueID, items := range p.Teams {
		out.Teams[leagueID] = team.CloneList(items)
	}
	return out
}

// TeamCount returns the number of selected teams across leagues.
func (p Preference) TeamCount() int {
	total := 0
	for _, items := range p.Teams {
		total += len(items)
	}
	return total
}
