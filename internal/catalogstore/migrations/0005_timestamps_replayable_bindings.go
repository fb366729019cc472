package migrations

import (
	"database/sql"
	"fmt"
)

// Migration0005TimestampsReplayableBindings adjusts the timestamps table
// to support replayable source timestamp bindings.
//
// ATTENTION: this migration blows away data and must not be used as a
// model for future migrations, for the same reason as migration 1.
func Migration0005TimestampsReplayableBindings(_ string, tx *sql.Tx, _ Stash) error {
	_, err := tx.Exec(`
		DROP TABLE timestamps;
		CREATE TABLE timestamps (
			sid blob NOT NULL,
			pid blob NOT NULL,
			timestamp integer NOT NULL,
			offset blob NOT NULL,
			PRIMARY KEY (sid, pid, timestamp, offset)
		);
	`)
	if err != nil {
		return fmt.Errorf("migration 5 (timestamps_replayable_bindings): %w", err)
	}
	return nil
}
