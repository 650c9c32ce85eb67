package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/gamewatchr/internal/platform/querybuilder"
)

// AccountRepository provisions the user rows that own preferences.
type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// EnsureAccounts inserts missing user rows and leaves existing ones untouched.
func (r *AccountRepository) EnsureAccounts(ctx context.Context, userIDs ...string) error {
	for _, userID := range userIDs {
		userID = strings.TrimSpace(userID)
		if userID == "" {
			continue
		}

		query, args, err := qb.InsertModel("users", userInsertModel{ID: userID}, `ON CONFLICT (id) DO NOTHING`)
		if err != nil {
			return fmt.Errorf("build ensure account query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return storageError(err, "ensure account user_id=%s", userID)
		}
	}

	return nil
}
