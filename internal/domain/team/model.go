package team

import "fmt"

// Team is one club or franchise as published by a league feed.
// The ID is only unique inside its league.
type Team struct {
	ID             string
	LeagueID       string
	Name           string
	DisplayName    string
	ShortName      string
	Abbreviation   string
	Location       string
	LogoURL        string
	PrimaryColor   string
	SecondaryColor string
}

const (
	DefaultPrimaryColor   = "#000000"
	DefaultSecondaryColor = "#FFFFFF"
)

// Key identifies a team across leagues.
func (t Team) Key() string {
	return t.LeagueID + ":" + t.ID
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}

	return nil
}

// CloneList returns a copy that callers may modify freely.
func CloneList(items []Team) []Team {
	out := make([]Team, len(items))
	copy(out, items)
	return out
}
