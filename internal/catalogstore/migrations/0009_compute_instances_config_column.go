package migrations

import (
	"database/sql"
	"fmt"
)

// Migration0009ComputeInstancesConfigColumn adds the optional JSON
// configuration column to compute_instances. A NULL value means the
// "local" default configuration.
func Migration0009ComputeInstancesConfigColumn(_ string, tx *sql.Tx, _ Stash) error {
	_, err := tx.Exec(`ALTER TABLE compute_instances ADD COLUMN config text`)
	if err != nil {
		return fmt.Errorf("migration 9 (compute_instances_config_column): %w", err)
	}
	return nil
}
