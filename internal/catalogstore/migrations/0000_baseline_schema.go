package migrations

import (
	"database/sql"
	"fmt"
)

// Migration0000BaselineSchema creates the initial schema: the user id
// allocator, databases, schemas, items, and the (long since superseded)
// timestamps table, and seeds the "materialize" database and the three
// original well-known schemas.
func Migration0000BaselineSchema(_ string, tx *sql.Tx, _ Stash) error {
	_, err := tx.Exec(`
		CREATE TABLE gid_alloc (
			next_gid integer NOT NULL
		);

		CREATE TABLE databases (
			id   integer PRIMARY KEY,
			name text NOT NULL UNIQUE
		);

		CREATE TABLE schemas (
			id          integer PRIMARY KEY,
			database_id integer REFERENCES databases,
			name        text NOT NULL,
			UNIQUE (database_id, name)
		);

		CREATE TABLE items (
			gid        blob PRIMARY KEY,
			schema_id  integer REFERENCES schemas,
			name       text NOT NULL,
			definition blob NOT NULL,
			UNIQUE (schema_id, name)
		);

		CREATE TABLE timestamps (
			sid blob NOT NULL,
			vid blob NOT NULL,
			timestamp integer NOT NULL,
			offset blob NOT NULL,
			PRIMARY KEY (sid, vid, timestamp)
		);

		INSERT INTO gid_alloc VALUES (1);
		INSERT INTO databases VALUES (1, 'materialize');
		INSERT INTO schemas VALUES
			(1, NULL, 'mz_catalog'),
			(2, NULL, 'pg_catalog'),
			(3, 1, 'public');
	`)
	if err != nil {
		return fmt.Errorf("migration 0 (baseline_schema): %w", err)
	}
	return nil
}
