package migrations

import (
	"database/sql"
	"fmt"
)

// Migration0002SettingsTable introduces the settings table backing
// persistent node settings (experimental_mode, cluster_id, and later
// catalog_content_version).
func Migration0002SettingsTable(_ string, tx *sql.Tx, _ Stash) error {
	_, err := tx.Exec(`
		CREATE TABLE settings (
			name TEXT PRIMARY KEY,
			value TEXT
		);
	`)
	if err != nil {
		return fmt.Errorf("migration 2 (settings_table): %w", err)
	}
	return nil
}
