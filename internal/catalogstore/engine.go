package catalogstore

import (
	"database/sql"
	"fmt"

	"github.com/coralstream/catalogstore/internal/catalogstore/migrations"
)

// applicationID is the store-identity magic written to the SQLite
// application_id header on first open, and checked on every subsequent
// open to guard against pointing the store at an unrelated file.
const applicationID = 0x185447dc

// openAndMigrate validates the store-identity header, installing it if the
// store is fresh, then runs every migration with an index strictly greater
// than the store's recorded schema version.
//
// The zeroth migration is special: a freshly created store has user_version
// 0 by SQLite's own default, and that default is reused as the signal that
// migration 0 (the baseline schema) has already been applied, so it is run
// once here rather than in the main loop.
func openAndMigrate(db *sql.DB, dataDir string, stash TimestampStash) error {
	var ms migrations.Stash
	if stash != nil {
		ms = migrationStash{stash}
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	var appID int64
	if err := tx.QueryRow(`PRAGMA application_id`).Scan(&appID); err != nil {
		tx.Rollback()
		return fmt.Errorf("reading application_id: %w", err)
	}

	switch {
	case appID == 0:
		if _, err := tx.Exec(fmt.Sprintf(`PRAGMA application_id = %d`, applicationID)); err != nil {
			tx.Rollback()
			return fmt.Errorf("setting application_id: %w", err)
		}
		if err := migrations.All[0].Run(dataDir, tx, ms); err != nil {
			tx.Rollback()
			return fmt.Errorf("running migration 0 (%s): %w", migrations.All[0].Name, err)
		}
	case appID != applicationID:
		tx.Rollback()
		return ErrCorruption
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing application_id check: %w", err)
	}

	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading user_version: %w", err)
	}

	if version+1 > len(migrations.All) {
		return nil
	}
	for _, step := range migrations.All[version+1:] {
		if err := runOneMigration(db, dataDir, ms, step); err != nil {
			return fmt.Errorf("running migration %d (%s): %w", step.Index, step.Name, err)
		}
	}
	return nil
}

func runOneMigration(db *sql.DB, dataDir string, stash migrations.Stash, step migrations.Step) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := step.Run(dataDir, tx, stash); err != nil {
		return err
	}
	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, step.Index)); err != nil {
		return err
	}
	return tx.Commit()
}
