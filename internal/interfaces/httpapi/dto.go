package httpapi

import (
	"time"

	"github.com/riskibarqy/gamewatchr/internal/domain/league"
	"github.com/riskibarqy/gamewatchr/internal/domain/preference"
	"github.com/riskibarqy/gamewatchr/internal/domain/team"
	"github.com/riskibarqy/gamewatchr/internal/usecase"
)

type teamDTO struct {
	ID             string `json:"id"`
	League         string `json:"league"`
	Name           string `json:"name"`
	DisplayName    string `json:"displayName"`
	ShortName      string `json:"shortDisplayName"`
	Abbreviation   string `json:"abbreviation"`
	Location       string `json:"location"`
	LogoURL        string `json:"logo"`
	PrimaryColor   string `json:"color"`
	SecondaryColor string `json:"alternateColor"`
}

type leagueDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Sport    string `json:"sport"`
	FeedPath string `json:"feedPath"`
}

type sportCategoryDTO struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Leagues []leagueDTO `json:"leagues"`
}

type teamBatchDTO struct {
	Results          map[string][]teamDTO `json:"results"`
	Errors           map[string]string    `json:"errors"`
	TotalSports      int                  `json:"totalSports"`
	SuccessfulSports int                  `json:"successfulSports"`
	LastUpdated      string               `json:"lastUpdated"`
}

type categoryTeamsDTO struct {
	Category sportCategoryDTO     `json:"category"`
	Teams    map[string][]teamDTO `json:"teams"`
	Errors   map[string]string    `json:"errors"`
}

type teamSearchDTO struct {
	Query   string            `json:"query"`
	Results []teamDTO         `json:"results"`
	Errors  map[string]string `json:"errors"`
}

type preferenceDTO struct {
	Sports    []string             `json:"sports"`
	Teams     map[string][]teamDTO `json:"teams"`
	UpdatedAt string               `json:"updatedAt"`
}

type preferenceViewDTO struct {
	HasPreference bool           `json:"hasPreference"`
	Preference    *preferenceDTO `json:"preference"`
}

type teamBatchRequest struct {
	Leagues []string `json:"leagues" validate:"required,min=1,dive,required"`
}

type savePreferenceRequest struct {
	Sports []string             `json:"sports" validate:"required,dive,required"`
	Teams  map[string][]teamDTO `json:"teams" validate:"required"`
}

// updatePreferenceRequest is a partial document; absent fields keep their stored value.
type updatePreferenceRequest struct {
	Sports    *[]string             `json:"sports" validate:"omitempty,dive,required"`
	Teams     *map[string][]teamDTO `json:"teams"`
	UpdatedAt *string               `json:"updatedAt"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:             v.ID,
		League:         v.LeagueID,
		Name:           v.Name,
		DisplayName:    v.DisplayName,
		ShortName:      v.ShortName,
		Abbreviation:   v.Abbreviation,
		Location:       v.Location,
		LogoURL:        v.LogoURL,
		PrimaryColor:   v.PrimaryColor,
		SecondaryColor: v.SecondaryColor,
	}
}

func teamFromDTO(v teamDTO) team.Team {
	return team.Team{
		ID:             v.ID,
		LeagueID:       v.League,
		Name:           v.Name,
		DisplayName:    v.DisplayName,
		ShortName:      v.ShortName,
		Abbreviation:   v.Abbreviation,
		Location:       v.Location,
		LogoURL:        v.LogoURL,
		PrimaryColor:   v.PrimaryColor,
		SecondaryColor: v.SecondaryColor,
	}
}

func teamsToDTO(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	return out
}

func teamMapToDTO(items map[string][]team.Team) map[string][]teamDTO {
	out := make(map[string][]teamDTO, len(items))
	for leagueID, teams := range items {
		out[leagueID] = teamsToDTO(teams)
	}
	return out
}

func teamMapFromDTO(items map[string][]teamDTO) map[string][]team.Team {
	out := make(map[string][]team.Team, len(items))
	for leagueID, teams := range items {
		converted := make([]team.Team, 0, len(teams))
		for _, item := range teams {
			converted = append(converted, teamFromDTO(item))
		}
		out[leagueID] = converted
	}
	return out
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:       v.ID,
		Name:     v.Name,
		Sport:    v.Feed.Sport,
		FeedPath: v.Feed.Path(),
	}
}

func categoryToDTO(c league.SportCategory, lookup func(string) (league.League, bool)) sportCategoryDTO {
	leagues := make([]leagueDTO, 0, len(c.LeagueIDs))
	for _, leagueID := range c.LeagueIDs {
		if item, ok := lookup(leagueID); ok {
			leagues = append(leagues, leagueToDTO(item))
		}
	}
	return sportCategoryDTO{
		ID:      c.ID,
		Name:    c.Name,
		Leagues: leagues,
	}
}

func batchToDTO(batch usecase.LeagueBatch) teamBatchDTO {
	return teamBatchDTO{
		Results:          teamMapToDTO(batch.Results),
		Errors:           batch.Errors,
		TotalSports:      len(batch.Order),
		SuccessfulSports: batch.SuccessCount(),
		LastUpdated:      formatTime(batch.FetchedAt),
	}
}

func preferenceToDTO(p preference.Preference) preferenceDTO {
	sports := p.Sports
	if sports == nil {
		sports = []string{}
	}
	return preferenceDTO{
		Sports:    sports,
		Teams:     teamMapToDTO(p.Teams),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339Nano)
}
