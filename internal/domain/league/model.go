package league

import (
	"fmt"
	"strings"
)

// League is one competition served by an external roster feed.
type League struct {
	ID   string
	Name string
	Feed FeedLocator
}

// FeedLocator addresses a league on the feed provider as sport/league path segments.
type FeedLocator struct {
	Sport  string
	League string
}

func (f FeedLocator) Path() string {
	return f.Sport + "/" + f.League
}

func (f FeedLocator) IsZero() bool {
	return f.Sport == "" || f.League == ""
}

// SportCategory groups related leagues, e.g. basketball groups every basketball league.
type SportCategory struct {
	ID        string
	Name      string
	LeagueIDs []string
}

func (c SportCategory) Contains(leagueID string) bool {
	for _, id := range c.LeagueIDs {
		if id == leagueID {
			return true
		}
	}
	return false
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Feed.IsZero() {
		return fmt.Errorf("league %s feed locator is required", l.ID)
	}

	return nil
}

// NormalizeID is the canonical form used for registry lookups.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
