package team

import "strings"

// Search returns the teams whose name, display name, location or
// abbreviation contains query, ignoring case. A blank query matches nothing.
// Surrounding whitespace only decides blankness; it is part of the match.
func Search(query string, corpus []Team) []Team {
	out := make([]Team, 0)
	if strings.TrimSpace(query) == "" {
		return out
	}
	needle := strings.ToLower(query)

	for _, item := range corpus {
		if matches(item, needle) {
			out = append(out, item)
		}
	}

	return out
}

func matches(item Team, needle string) bool {
	for _, field := range [...]string{item.Name, item.DisplayName, item.Location, item.Abbreviation} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
