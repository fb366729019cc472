package migrations

import (
	"database/sql"
	"fmt"
)

// Migration0004MzInternalSchema makes the mz_internal schema a literal row
// so it can store functions.
func Migration0004MzInternalSchema(_ string, tx *sql.Tx, _ Stash) error {
	_, err := tx.Exec(`
		INSERT INTO schemas (database_id, name) VALUES
			(NULL, 'mz_internal');
	`)
	if err != nil {
		return fmt.Errorf("migration 4 (mz_internal_schema): %w", err)
	}
	return nil
}
