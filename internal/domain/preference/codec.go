package preference

import (
	"bytes"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/gamewatchr/internal/domain/team"
)

type document struct {
	Sports    []string                  `json:"sports"`
	Teams     map[string][]teamDocument `json:"teams"`
	UpdatedAt time.Time                 `json:"updatedAt"`
}

type teamDocument struct {
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

// Encode serializes the stored payload. The user id lives on the row, not in the document.
func Encode(p Preference) ([]byte, error) {
	doc := document{
		Sports:    p.Sports,
		Teams:     make(map[string][]teamDocument, len(p.Teams)),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
	if doc.Sports == nil {
		doc.Sports = []string{}
	}
	for leagueID, items := range p.Teams {
		docs := make([]teamDocument, 0, len(items))
		for _, item := range items {
			docs = append(docs, teamDocument{
				ID:             item.ID,
				League:         item.LeagueID,
				Name:           item.Name,
				DisplayName:    item.DisplayName,
				ShortName:      item.ShortName,
				Abbreviation:   item.Abbreviation,
				Location:       item.Location,
				LogoURL:        item.LogoURL,
				PrimaryColor:   item.PrimaryColor,
				SecondaryColor: item.SecondaryColor,
			})
		}
		doc.Teams[leagueID] = docs
	}

	raw, err := sonic.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode preference: %w", err)
	}
	return raw, nil
}

// Decode parses a stored payload. An empty or null payload decodes to nil.
func Decode(userID string, raw []byte) (*Preference, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var doc document
	if err := sonic.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode preference user_id=%s: %w", userID, err)
	}

	out := &Preference{
		UserID:    userID,
		Sports:    doc.Sports,
		Teams:     make(map[string][]team.Team, len(doc.Teams)),
		UpdatedAt: doc.UpdatedAt.UTC(),
	}
	if out.Sports == nil {
		out.Sports = []string{}
	}
	for leagueID, docs := range doc.Teams {
		items := make([]team.Team, 0, len(docs))
		for _, d := range docs {
			leagueRef := d.League
			if leagueRef == "" {
				leagueRef = leagueID
			}
			items = append(items, team.Team{
				ID:             d.ID,
				LeagueID:       leagueRef,
				Name:           d.Name,
				DisplayName:    d.DisplayName,
				ShortName:      d.ShortName,
				Abbreviation:   d.Abbreviation,
				Location:       d.Location,
				LogoURL:        d.LogoURL,
				PrimaryColor:   d.PrimaryColor,
				SecondaryColor: d.SecondaryColor,
			})
		}
		out.Teams[leagueID] = items
	}

	return out, nil
}
