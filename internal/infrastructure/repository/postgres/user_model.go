package postgres

import (
	"database/sql"
)

type userPreferenceRow struct {
	ID          string         `db:"id"`
	Preferences sql.NullString `db:"preferences"`
}

type userInsertModel struct {
	ID string `db:"id"`
}
