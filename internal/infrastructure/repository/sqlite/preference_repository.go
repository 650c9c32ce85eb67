package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gamewatchr/internal/domain/preference"
)

type userPreferenceRow struct {
	ID          string         `db:"id"`
	Preferences sql.NullString `db:"preferences"`
}

// PreferenceRepository keeps preferences in a local SQLite file for single-node deployments.
type PreferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// EnsureAccounts inserts missing user rows.
func (r *PreferenceRepository) EnsureAccounts(ctx context.Context, userIDs ...string) error {
	for _, userID := range userIDs {
		userID = strings.TrimSpace(userID)
		if userID == "" {
			continue
		}
		if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO users (id) VALUES (?)`, userID); err != nil {
			return storageError(err, "ensure account user_id=%s", userID)
		}
	}
	return nil
}

func (r *PreferenceRepository) Get(ctx context.Context, userID string) (*preference.Preference, error) {
	userID = strings.TrimSpace(userID)

	var row userPreferenceRow
	err := r.db.GetContext(ctx, &row, `SELECT id, preferences FROM users WHERE id = ? LIMIT 1`, userID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user_id=%s", preference.ErrAccountNotFound, userID)
	}
	if err != nil {
		return nil, storageError(err, "get preference user_id=%s", userID)
	}

	return decodeRow(row)
}

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

	var row userPreferenceRow
	err = tx.GetContext(ctx, &row, `SELECT id, preferences FROM users WHERE id = ? LIMIT 1`, userID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user_id=%s", preference.ErrAccountNotFound, userID)
	}
	if err != nil {
		return nil, storageError(err, "read preference user_id=%s", userID)
	}

	current, err := decodeRow(row)
	if err != nil {
		return nil, err
	}

	next, err := mutate(current)
	if err != nil {
		return nil, err
	}

	var payload sql.NullString
	if next != nil {
		raw, encodeErr := preference.Encode(*next)
		if encodeErr != nil {
			return nil, fmt.Errorf("%w: user_id=%s: %w", preference.ErrStorage, userID, encodeErr)
		}
		payload = sql.NullString{String: string(raw), Valid: true}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET preferences = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		payload, userID,
	); err != nil {
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

func storageError(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %w", preference.ErrStorage, crerr.Wrapf(err, format, args...))
}
