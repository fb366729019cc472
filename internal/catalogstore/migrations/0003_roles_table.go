package migrations

import (
	"database/sql"
	"fmt"
)

// Migration0003RolesTable creates the roles table and seeds the default
// "materialize" role.
func Migration0003RolesTable(_ string, tx *sql.Tx, _ Stash) error {
	_, err := tx.Exec(`
		CREATE TABLE roles (
			id   integer PRIMARY KEY,
			name text NOT NULL UNIQUE
		);
		INSERT INTO roles VALUES (1, 'materialize');
	`)
	if err != nil {
		return fmt.Errorf("migration 3 (roles_table): %w", err)
	}
	return nil
}
