package preference

import (
	"context"
	"errors"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrStorage         = errors.New("preference storage failure")
)

// Mutator receives the stored preference (nil when never saved or cleared)
// and returns the value to store. Returning nil clears the payload.
type Mutator func(current *Preference) (*Preference, error)

// Repository persists preferences on the owning account record.
// Update must apply mutate atomically per user.
type Repository interface {
	Get(ctx context.Context, userID string) (*Preference, error)
	Update(ctx context.Context, userID string, mutate Mutator) (*Preference, error)
}
