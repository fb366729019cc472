package migrations

import (
	"database/sql"
	"fmt"
)

// Migration0007TimestampsSidTimestampIndex adds an index to the
// timestamps table so timestamp compaction scans more efficiently.
func Migration0007TimestampsSidTimestampIndex(_ string, tx *sql.Tx, _ Stash) error {
	_, err := tx.Exec(`CREATE INDEX timestamps_sid_timestamp ON timestamps (sid, timestamp)`)
	if err != nil {
		return fmt.Errorf("migration 7 (timestamps_sid_timestamp_index): %w", err)
	}
	return nil
}
