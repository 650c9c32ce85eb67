package cache

import (
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/gamewatchr/internal/domain/team"
	"github.com/valyala/bytebufferpool"
)

type cachedTeam struct {
	ID             string `json:"id"`
	LeagueID       string `json:"league"`
	Name           string `json:"name"`
	DisplayName    string `json:"displayName"`
	ShortName      string `json:"shortName"`
	Abbreviation   string `json:"abbreviation"`
	Location       string `json:"location"`
	LogoURL        string `json:"logo"`
	PrimaryColor   string `json:"color"`
	SecondaryColor string `json:"alternateColor"`
}

func encodeTeams(items []team.Team) ([]byte, error) {
	rows := make([]cachedTeam, 0, len(items))
	for _, item := range items {
		rows = append(rows, cachedTeam(item))
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(rows); err != nil {
		return nil, fmt.Errorf("encode cached teams: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

func decodeTeams(raw []byte) ([]team.Team, error) {
	var rows []cachedTeam
	if err := sonic.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode cached teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team(row))
	}
	return out, nil
}
