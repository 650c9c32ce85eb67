package memory

import (
	"github.com/riskibarqy/gamewatchr/internal/domain/league"
	"github.com/riskibarqy/gamewatchr/internal/domain/team"
)

const (
	CategoryFootball   = "football"
	CategoryBasketball = "basketball"
	CategoryBaseball   = "baseball"
	CategoryHockey     = "hockey"
	CategorySoccer     = "soccer"

	LeagueIDNFL = "nfl"
	LeagueIDNBA = "nba"
	LeagueIDMLB = "mlb"
	LeagueIDNHL = "nhl"
)

// SeedLeagues lists every league served by the feed, in catalog order.
func SeedLeagues() []league.League {
	return []league.League{
		{ID: LeagueIDNFL, Name: "NFL", Feed: league.FeedLocator{Sport: "football", League: "nfl"}},
		{ID: "college-football", Name: "College Football", Feed: league.FeedLocator{Sport: "football", League: "college-football"}},
		{ID: LeagueIDNBA, Name: "NBA", Feed: league.FeedLocator{Sport: "basketball", League: "nba"}},
		{ID: "wnba", Name: "WNBA", Feed: league.FeedLocator{Sport: "basketball", League: "wnba"}},
		{ID: "mens-college-basketball", Name: "Men's College Basketball", Feed: league.FeedLocator{Sport: "basketball", League: "mens-college-basketball"}},
		{ID: "womens-college-basketball", Name: "Women's College Basketball", Feed: league.FeedLocator{Sport: "basketball", League: "womens-college-basketball"}},
		{ID: LeagueIDMLB, Name: "MLB", Feed: league.FeedLocator{Sport: "baseball", League: "mlb"}},
		{ID: LeagueIDNHL, Name: "NHL", Feed: league.FeedLocator{Sport: "hockey", League: "nhl"}},
		{ID: "mls", Name: "MLS", Feed: league.FeedLocator{Sport: "soccer", League: "usa.1"}},
		{ID: "premier-league", Name: "Premier League", Feed: league.FeedLocator{Sport: "soccer", League: "eng.1"}},
		{ID: "la-liga", Name: "La Liga", Feed: league.FeedLocator{Sport: "soccer", League: "esp.1"}},
		{ID: "bundesliga", Name: "Bundesliga", Feed: league.FeedLocator{Sport: "soccer", League: "ger.1"}},
		{ID: "serie-a", Name: "Serie A", Feed: league.FeedLocator{Sport: "soccer", League: "ita.1"}},
		{ID: "ligue-1", Name: "Ligue 1", Feed: league.FeedLocator{Sport: "soccer", League: "fra.1"}},
	}
}

func SeedSportCategories() []league.SportCategory {
	return []league.SportCategory{
		{ID: CategoryFootball, Name: "Football", LeagueIDs: []string{LeagueIDNFL, "college-football"}},
		{ID: CategoryBasketball, Name: "Basketball", LeagueIDs: []string{LeagueIDNBA, "wnba", "mens-college-basketball", "womens-college-basketball"}},
		{ID: CategoryBaseball, Name: "Baseball", LeagueIDs: []string{LeagueIDMLB}},
		{ID: CategoryHockey, Name: "Hockey", LeagueIDs: []string{LeagueIDNHL}},
		{ID: CategorySoccer, Name: "Soccer", LeagueIDs: []string{"mls", "premier-league", "la-liga", "bundesliga", "serie-a", "ligue-1"}},
	}
}

// SeedOfflineTeams is the fallback roster served when a feed is unreachable.
func SeedOfflineTeams() map[string][]team.Team {
	return map[string][]team.Team{
		LeagueIDNFL: {
			offlineTeam(LeagueIDNFL, "1", "Chiefs", "Kansas City Chiefs", "Chiefs", "KC", "Kansas City", "#E31837", "#FFB81C"),
			offlineTeam(LeagueIDNFL, "2", "Bills", "Buffalo Bills", "Bills", "BUF", "Buffalo", "#00338D", "#C60C30"),
			offlineTeam(LeagueIDNFL, "3", "Cowboys", "Dallas Cowboys", "Cowboys", "DAL", "Dallas", "#041E42", "#869397"),
		},
		LeagueIDNBA: {
			offlineTeam(LeagueIDNBA, "4", "Lakers", "Los Angeles Lakers", "Lakers", "LAL", "Los Angeles", "#552583", "#FDB927"),
			offlineTeam(LeagueIDNBA, "5", "Warriors", "Golden State Warriors", "Warriors", "GSW", "Golden State", "#1D428A", "#FFC72C"),
			offlineTeam(LeagueIDNBA, "6", "Celtics", "Boston Celtics", "Celtics", "BOS", "Boston", "#007A33", "#BA9653"),
		},
		LeagueIDMLB: {
			offlineTeam(LeagueIDMLB, "7", "Yankees", "New York Yankees", "Yankees", "NYY", "New York", "#132448", "#C4CED4"),
			offlineTeam(LeagueIDMLB, "8", "Dodgers", "Los Angeles Dodgers", "Dodgers", "LAD", "Los Angeles", "#005A9C", "#FFFFFF"),
		},
	}
}

func offlineTeam(leagueID, id, name, displayName, shortName, abbreviation, location, primary, secondary string) team.Team {
	return team.Team{
		ID:             id,
		LeagueID:       leagueID,
		Name:           name,
		DisplayName:    displayName,
		ShortName:      shortName,
		Abbreviation:   abbreviation,
		Location:       location,
		PrimaryColor:   primary,
		SecondaryColor: secondary,
	}
}
