package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/gamewatchr/internal/domain/preference"
)

type preferenceRecord struct {
	mu    sync.Mutex
	value *preference.Preference
}

// PreferenceRepository keeps preferences per known account. Each account has
// its own lock, so updates for different users never contend.
type PreferenceRepository struct {
	mu      sync.RWMutex
	records map[string]*preferenceRecord
}

func NewPreferenceRepository(userIDs ...string) *PreferenceRepository {
	r := &PreferenceRepository{records: make(map[string]*preferenceRecord, len(userIDs))}
	for _, id := range userIDs {
		r.AddAccount(id)
	}
	return r
}

// AddAccount registers an account with an empty preference. Existing accounts are untouched.
func (r *PreferenceRepository) AddAccount(userID string) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[userID]; !ok {
		r.records[userID] = &preferenceRecord{}
	}
}

func (r *PreferenceRepository) Get(_ context.Context, userID string) (*preference.Preference, error) {
	rec, err := r.record(userID)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return clonePreference(rec.value), nil
}

func (r *PreferenceRepository) Update(_ context.Context, userID string, mutate preference.Mutator) (*preference.Preference, error) {
	rec, err := r.record(userID)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	next, err := mutate(clonePreference(rec.value))
	if err != nil {
		return nil, err
	}
	if next != nil {
		next.UserID = userID
	}
	rec.value = clonePreference(next)
	return clonePreference(rec.value), nil
}

func (r *PreferenceRepository) record(userID string) (*preferenceRecord, error) {
	r.mu.RLock()
	rec, ok := r.records[strings.TrimSpace(userID)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: user_id=%s", preference.ErrAccountNotFound, userID)
	}
	return rec, nil
}

func clonePreference(p *preference.Preference) *preference.Preference {
	if p == nil {
		return nil
	}
	copied := p.Clone()
	return &copied
}
