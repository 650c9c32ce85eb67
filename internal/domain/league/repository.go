package league

// Registry is the read-only catalog of supported leagues and sport categories.
type Registry interface {
	ResolveFeed(leagueID string) (FeedLocator, bool)
	Get(leagueID string) (League, bool)
	List() []League
	Categories() []SportCategory
	Category(categoryID string) (SportCategory, bool)
	CategoryOf(leagueID string) (SportCategory, bool)
	LeagueName(leagueID string) string
}
