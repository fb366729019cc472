package migrations

import (
	"database/sql"
	"fmt"
)

// Migration0001TimestampsMultiPartition adjusts the timestamps table to
// support multi-partition Kafka topics.
//
// ATTENTION: this migration blows away data and must not be used as a
// model for future migrations. It is only acceptable at this index
// because no consistency promise had yet been made to users when it
// shipped.
func Migration0001TimestampsMultiPartition(_ string, tx *sql.Tx, _ Stash) error {
	_, err := tx.Exec(`
		DROP TABLE timestamps;
		CREATE TABLE timestamps (
			sid blob NOT NULL,
			vid blob NOT NULL,
			pcount blob NOT NULL,
			pid blob NOT NULL,
			timestamp integer NOT NULL,
			offset blob NOT NULL,
			PRIMARY KEY (sid, vid, pid, timestamp)
		);
	`)
	if err != nil {
		return fmt.Errorf("migration 1 (timestamps_multi_partition): %w", err)
	}
	return nil
}
