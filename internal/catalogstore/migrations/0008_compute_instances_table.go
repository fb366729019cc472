package migrations

import (
	"database/sql"
	"fmt"
)

// Migration0008ComputeInstancesTable adds the table tracking users'
// compute instances and seeds the default instance.
func Migration0008ComputeInstancesTable(_ string, tx *sql.Tx, _ Stash) error {
	_, err := tx.Exec(`
		CREATE TABLE compute_instances (
			id   integer PRIMARY KEY,
			name text NOT NULL UNIQUE
		);
		INSERT INTO compute_instances VALUES (1, 'default');
	`)
	if err != nil {
		return fmt.Errorf("migration 8 (compute_instances_table): %w", err)
	}
	return nil
}
