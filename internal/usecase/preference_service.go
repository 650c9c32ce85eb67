package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/gamewatchr/internal/domain/league"
	"github.com/riskibarqy/gamewatchr/internal/domain/preference"
	"github.com/riskibarqy/gamewatchr/internal/domain/team"
	"github.com/riskibarqy/gamewatchr/internal/platform/logging"
)

type ReplacePreferenceInput struct {
	UserID string
	Sports []string
	Teams  map[string][]team.Team
}

// MergePreferenceInput carries a partial update. Nil fields are left untouched.
type MergePreferenceInput struct {
	UserID string
	Sports *[]string
	Teams  *map[string][]team.Team
}

type PreferenceView struct {
	HasPreference bool
	Preference    *preference.Preference
}

// PreferenceService reconciles user selections with the stored preference.
type PreferenceService struct {
	registry league.Registry
	repo     preference.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewPreferenceService(registry league.Registry, repo preference.Repository, logger *logging.Logger) *PreferenceService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PreferenceService{
		registry: registry,
		repo:     repo,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *PreferenceService) Get(ctx context.Context, userID string) (PreferenceView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return PreferenceView{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	current, err := s.repo.Get(ctx, userID)
	if err != nil {
		return PreferenceView{}, s.mapStoreError(ctx, "get", userID, err)
	}

	return PreferenceView{
		HasPreference: current != nil,
		Preference:    current,
	}, nil
}

// Replace overwrites the stored selection.
func (s *PreferenceService) Replace(ctx context.Context, input ReplacePreferenceInput) (preference.Preference, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.Replace")
	defer span.End()

	return s.replace(ctx, input, false)
}

// Finish overwrites the stored selection and drops team selections for
// leagues that the selected sports no longer cover.
func (s *PreferenceService) Finish(ctx context.Context, input ReplacePreferenceInput) (preference.Preference, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.Finish")
	defer span.End()

	return s.replace(ctx, input, true)
}

func (s *PreferenceService) replace(ctx context.Context, input ReplacePreferenceInput, prune bool) (preference.Preference, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return preference.Preference{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	sports, err := s.normalizeSports(input.Sports)
	if err != nil {
		return preference.Preference{}, err
	}
	teams, err := s.normalizeTeams(input.Teams)
	if err != nil {
		return preference.Preference{}, err
	}
	if prune {
		teams = s.pruneUncovered(sports, teams)
	}

	stored, err := s.repo.Update(ctx, userID, func(current *preference.Preference) (*preference.Preference, error) {
		return &preference.Preference{
			UserID:    userID,
			Sports:    sports,
			Teams:     teams,
			UpdatedAt: s.nextUpdatedAt(current),
		}, nil
	})
	if err != nil {
		return preference.Preference{}, s.mapStoreError(ctx, "replace", userID, err)
	}

	s.logger.InfoContext(ctx, "preference saved",
		"user_id", userID,
		"sports", len(stored.Sports),
		"teams", stored.TeamCount(),
		"pruned", prune,
	)
	return *stored, nil
}

// MergeFields overwrites only the provided top-level fields. It does not
// merge inside teams: a provided teams map replaces the stored one.
func (s *PreferenceService) MergeFields(ctx context.Context, input MergePreferenceInput) (preference.Preference, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.MergeFields")
	defer span.End()

	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return preference.Preference{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	var (
		sports []string
		teams  map[string][]team.Team
		err    error
	)
	if input.Sports != nil {
		if sports, err = s.normalizeSports(*input.Sports); err != nil {
			return preference.Preference{}, err
		}
	}
	if input.Teams != nil {
		if teams, err = s.normalizeTeams(*input.Teams); err != nil {
			return preference.Preference{}, err
		}
	}

	stored, err := s.repo.Update(ctx, userID, func(current *preference.Preference) (*preference.Preference, error) {
		next := preference.Preference{
			UserID: userID,
			Sports: []string{},
			Teams:  map[string][]team.Team{},
		}
		if current != nil {
			next = current.Clone()
			next.UserID = userID
		}
		if input.Sports != nil {
			next.Sports = sports
		}
		if input.Teams != nil {
			next.Teams = teams
		}
		next.UpdatedAt = s.nextUpdatedAt(current)
		return &next, nil
	})
	if err != nil {
		return preference.Preference{}, s.mapStoreError(ctx, "merge", userID, err)
	}

	return *stored, nil
}

// Clear empties the stored preference and keeps the account. Clearing an
// empty preference succeeds.
func (s *PreferenceService) Clear(ctx context.Context, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.Clear")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	if _, err := s.repo.Update(ctx, userID, func(*preference.Preference) (*preference.Preference, error) {
		return nil, nil
	}); err != nil {
		return s.mapStoreError(ctx, "clear", userID, err)
	}

	return nil
}

func (s *PreferenceService) normalizeSports(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		id := league.NormalizeID(item)
		if id == "" {
			return nil, fmt.Errorf("%w: sport entry cannot be empty", ErrInvalidInput)
		}
		if !s.isKnownSport(id) {
			return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, item)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

func (s *PreferenceService) isKnownSport(id string) bool {
	if _, ok := s.registry.Category(id); ok {
		return true
	}
	_, ok := s.registry.Get(id)
	return ok
}

func (s *PreferenceService) normalizeTeams(raw map[string][]team.Team) (map[string][]team.Team, error) {
	out := make(map[string][]team.Team, len(raw))
	for rawLeagueID, items := range raw {
		leagueID := league.NormalizeID(rawLeagueID)
		if _, ok := s.registry.CategoryOf(leagueID); !ok {
			return nil, fmt.Errorf("%w: league %q does not belong to any sport category", ErrInvalidInput, rawLeagueID)
		}
		if _, dup := out[leagueID]; dup {
			return nil, fmt.Errorf("%w: league %q appears more than once", ErrInvalidInput, rawLeagueID)
		}

		selected := make([]team.Team, 0, len(items))
		seen := make(map[string]struct{}, len(items))
		for _, item := range items {
			item.ID = strings.TrimSpace(item.ID)
			if item.ID == "" {
				return nil, fmt.Errorf("%w: team id is required in league %q", ErrInvalidInput, leagueID)
			}
			switch teamLeague := league.NormalizeID(item.LeagueID); teamLeague {
			case "":
				item.LeagueID = leagueID
			case leagueID:
				item.LeagueID = leagueID
			default:
				return nil, fmt.Errorf("%w: team %s belongs to league %q, not %q", ErrInvalidInput, item.ID, item.LeagueID, leagueID)
			}
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			selected = append(selected, item)
		}
		out[leagueID] = selected
	}
	return out, nil
}

// pruneUncovered keeps team selections whose league is selected directly or
// through one of the selected sport categories.
func (s *PreferenceService) pruneUncovered(sports []string, teams map[string][]team.Team) map[string][]team.Team {
	covered := make(map[string]struct{})
	for _, id := range sports {
		if category, ok := s.registry.Category(id); ok {
			for _, leagueID := range category.LeagueIDs {
				covered[leagueID] = struct{}{}
			}
			continue
		}
		covered[id] = struct{}{}
	}

	out := make(map[string][]team.Team, len(teams))
	for leagueID, items := range teams {
		if _, ok := covered[leagueID]; ok {
			out[leagueID] = items
		}
	}
	return out
}

// nextUpdatedAt never moves backwards and always advances past the stored stamp.
func (s *PreferenceService) nextUpdatedAt(current *preference.Preference) time.Time {
	stamp := s.now().UTC().Truncate(time.Millisecond)
	if current != nil && !stamp.After(current.UpdatedAt) {
		stamp = current.UpdatedAt.UTC().Add(time.Millisecond)
	}
	return stamp
}

func (s *PreferenceService) mapStoreError(ctx context.Context, op, userID string, err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return err
	case errors.Is(err, preference.ErrAccountNotFound):
		return fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	case errors.Is(err, preference.ErrStorage):
		s.logger.WarnContext(ctx, "preference storage failed", "op", op, "user_id", userID, "error", err)
		return fmt.Errorf("%w: %s preference: %v", ErrStorageUnavailable, op, err)
	default:
		return fmt.Errorf("%s preference user=%s: %w", op, userID, err)
	}
}
