package espn

import (
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/gamewatchr/internal/domain/league"
	"github.com/riskibarqy/gamewatchr/internal/domain/team"
)

// NormalizeTeams maps a raw league teams payload onto []team.Team.
// Unexpected shapes, including invalid JSON, produce an empty slice.
func NormalizeTeams(leagueID string, raw []byte) []team.Team {
	out := make([]team.Team, 0)
	leagueID = league.NormalizeID(leagueID)

	var payload map[string]any
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return out
	}

	leagueNode := firstMap(getSlice(firstMap(getSlice(payload, "sports")), "leagues"))
	for _, entry := range getSlice(leagueNode, "teams") {
		wrapper, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		node := getMap(wrapper, "team")
		if node == nil {
			node = wrapper
		}

		item, ok := normalizeTeam(leagueID, node)
		if !ok {
			continue
		}
		out = append(out, item)
	}

	return out
}

func normalizeTeam(leagueID string, node map[string]any) (team.Team, bool) {
	id := getString(node, "id")
	if id == "" {
		return team.Team{}, false
	}

	return team.Team{
		ID:             id,
		LeagueID:       leagueID,
		Name:           firstNonEmpty(getString(node, "name"), getString(node, "nickname"), getString(node, "displayName")),
		DisplayName:    getString(node, "displayName"),
		ShortName:      getString(node, "shortDisplayName"),
		Abbreviation:   getString(node, "abbreviation"),
		Location:       getString(node, "location"),
		LogoURL:        widestLogo(getSlice(node, "logos")),
		PrimaryColor:   hexColor(getString(node, "color"), team.DefaultPrimaryColor),
		SecondaryColor: hexColor(getString(node, "alternateColor"), team.DefaultSecondaryColor),
	}, true
}

func widestLogo(logos []any) string {
	best := ""
	bestWidth := -1.0
	for _, entry := range logos {
		logo, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		href := getString(logo, "href")
		if href == "" {
			continue
		}
		width := getFloat(logo, "width")
		if width > bestWidth {
			best = href
			bestWidth = width
		}
	}
	return best
}

func hexColor(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if strings.HasPrefix(value, "#") {
		return value
	}
	return "#" + value
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return ""
	}
	switch typed := raw.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return ""
	}
}

func getFloat(src map[string]any, key string) float64 {
	raw, ok := src[key]
	if !ok || raw == nil {
		return 0
	}
	switch typed := raw.(type) {
	case float64:
		return typed
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		v, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}

func getMap(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	value, _ := src[key].(map[string]any)
	return value
}

func getSlice(src map[string]any, key string) []any {
	if src == nil {
		return nil
	}
	value, _ := src[key].([]any)
	return value
}

func firstMap(items []any) map[string]any {
	if len(items) == 0 {
		return nil
	}
	value, _ := items[0].(map[string]any)
	return value
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if item != "" {
			return item
		}
	}
	return ""
}
