package postgres

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gamewatchr/internal/domain/preference"
	qb "github.com/riskibarqy/gamewatchr/internal/platform/querybuilder"
)

// PreferenceRepository stores preferences in the users.preferences JSONB column.
type PreferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

func (r *PreferenceRepository) Get(ctx context.Context, userID string) (*preference.Preference, error) {
	query, args, err := qb.Select("id", "preferences").
		From("users").
		Where(
			qb.Eq("id", strings.TrimSpace(userID)),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get preference query: %w", err)
	}

	var row userPreferenceRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: user_id=%s", preference.ErrAccountNotFound, userID)
		}
		return nil, storageError(err, "get preference user_id=%s", userID)
	}

	return decodeRow(row)
}

// Update locks the user row for the duration of the read-modify-write.
func (r *PreferenceRepository) Update(ctx context.Context, userID string, mutate preference.Mutator) (*preference.Preference, error) {
	userID = strings.TrimSpace(userID)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageError(err, "begin tx update preference user_id=%s", userID)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		_ = tx.Rollback()
	}()

	selectQuery, selectArgs, err := qb.Select("id", "preferences").
		From("users").
		Where(
			qb.Eq("id", userID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ForUpdate().
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build lock preference query: %w", err)
	}

	var row userPreferenceRow
	if err := tx.GetContext(ctx, &row, selectQuery, selectArgs...); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: user_id=%s", preference.ErrAccountNotFound, userID)
		}
		return nil, storageError(err, "lock preference user_id=%s", userID)
	}

	current, err := decodeRow(row)
	if err != nil {
		return nil, err
	}

	next, err := mutate(current)
	if err != nil {
		return nil, err
	}

	payload, err := encodePayload(userID, next)
	if err != nil {
		return nil, err
	}

	updateQuery, updateArgs, err := qb.Update("users").
		SetExpr("preferences", "?::jsonb", payload).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build update preference query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		return nil, storageError(err, "update preference user_id=%s", userID)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageError(err, "commit update preference user_id=%s", userID)
	}
	committed = true

	if next == nil {
		return nil, nil
	}
	stored := next.Clone()
	stored.UserID = userID
	return &stored, nil
}

func decodeRow(row userPreferenceRow) (*preference.Preference, error) {
	if !row.Preferences.Valid {
		return nil, nil
	}
	decoded, err := preference.Decode(row.ID, []byte(row.Preferences.String))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", preference.ErrStorage, err)
	}
	return decoded, nil
}

func encodePayload(userID string, p *preference.Preference) (*string, error) {
	if p == nil {
		return nil, nil
	}
	raw, err := preference.Encode(*p)
	if err != nil {
		return nil, fmt.Errorf("%w: user_id=%s: %w", preference.ErrStorage, userID, err)
	}
	payload := string(raw)
	return &payload, nil
}

func storageError(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %w", preference.ErrStorage, crerr.Wrapf(err, format, args...))
}
