package migrations

import (
	"database/sql"
	"fmt"
)

// Migration0006InformationSchema makes the information_schema schema a
// literal row so it can store functions.
func Migration0006InformationSchema(_ string, tx *sql.Tx, _ Stash) error {
	_, err := tx.Exec(`
		INSERT INTO schemas (database_id, name) VALUES
			(NULL, 'information_schema');
	`)
	if err != nil {
		return fmt.Errorf("migration 6 (information_schema): %w", err)
	}
	return nil
}
