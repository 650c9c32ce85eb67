package memory

import (
	"github.com/riskibarqy/gamewatchr/internal/domain/league"
)

// LeagueRegistry is an immutable league and sport category catalog built once at start.
type LeagueRegistry struct {
	items      map[string]league.League
	orders     []string
	categories []league.SportCategory
	byCategory map[string]int
	byLeague   map[string]int
}

func NewLeagueRegistry(leagues []league.League, categories []league.SportCategory) *LeagueRegistry {
	items := make(map[string]league.League, len(leagues))
	orders := make([]string, 0, len(leagues))
	for _, l := range leagues {
		l.ID = league.NormalizeID(l.ID)
		if _, dup := items[l.ID]; dup {
			continue
		}
		items[l.ID] = l
		orders = append(orders, l.ID)
	}

	cats := make([]league.SportCategory, 0, len(categories))
	byCategory := make(map[string]int, len(categories))
	byLeague := make(map[string]int, len(leagues))
	for _, c := range categories {
		c.ID = league.NormalizeID(c.ID)
		leagueIDs := make([]string, 0, len(c.LeagueIDs))
		for _, id := range c.LeagueIDs {
			id = league.NormalizeID(id)
			if _, known := items[id]; !known {
				continue
			}
			leagueIDs = append(leagueIDs, id)
			if _, taken := byLeague[id]; !taken {
				byLeague[id] = len(cats)
			}
		}
		c.LeagueIDs = leagueIDs
		byCategory[c.ID] = len(cats)
		cats = append(cats, c)
	}

	return &LeagueRegistry{
		items:      items,
		orders:     orders,
		categories: cats,
		byCategory: byCategory,
		byLeague:   byLeague,
	}
}

// NewDefaultLeagueRegistry loads the built-in catalog.
func NewDefaultLeagueRegistry() *LeagueRegistry {
	return NewLeagueRegistry(SeedLeagues(), SeedSportCategories())
}

func (r *LeagueRegistry) ResolveFeed(leagueID string) (league.FeedLocator, bool) {
	l, ok := r.items[league.NormalizeID(leagueID)]
	if !ok {
		return league.FeedLocator{}, false
	}
	return l.Feed, true
}

func (r *LeagueRegistry) Get(leagueID string) (league.League, bool) {
	l, ok := r.items[league.NormalizeID(leagueID)]
	return l, ok
}

func (r *LeagueRegistry) List() []league.League {
	out := make([]league.League, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}
	return out
}

func (r *LeagueRegistry) Categories() []league.SportCategory {
	out := make([]league.SportCategory, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, cloneCategory(c))
	}
	return out
}

func (r *LeagueRegistry) Category(categoryID string) (league.SportCategory, bool) {
	idx, ok := r.byCategory[league.NormalizeID(categoryID)]
	if !ok {
		return league.SportCategory{}, false
	}
	return cloneCategory(r.categories[idx]), true
}

func (r *LeagueRegistry) CategoryOf(leagueID string) (league.SportCategory, bool) {
	idx, ok := r.byLeague[league.NormalizeID(leagueID)]
	if !ok {
		return league.SportCategory{}, false
	}
	return cloneCategory(r.categories[idx]), true
}

// LeagueName returns the display name, or the id itself for unknown leagues.
func (r *LeagueRegistry) LeagueName(leagueID string) string {
	if l, ok := r.items[league.NormalizeID(leagueID)]; ok {
		return l.Name
	}
	return leagueID
}

func cloneCategory(c league.SportCategory) league.SportCategory {
	c.LeagueIDs = append([]string(nil), c.LeagueIDs...)
	return c
}
