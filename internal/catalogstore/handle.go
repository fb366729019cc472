// Package catalogstore implements the persistent metadata store backing a
// coordinator: databases, schemas, roles, compute instances, items, the
// global-id allocator, and the small settings store that tracks cluster
// identity. The store lives in a single embedded SQLite file and is
// reachable only through a Handle returned by Open.
package catalogstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	// Pure-Go SQLite driver and its bundled WASM runtime.
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Handle is the sole entry point into an open catalog store. It owns the
// underlying database connection and the advisory lock that keeps other
// processes from opening the same store concurrently.
type Handle struct {
	db   *sql.DB
	lock *flock.Flock

	experimentalMode bool
	clusterID        string
}

// Open opens or creates the catalog store rooted at dataDir, running any
// unapplied migrations and resolving the store's experimental-mode and
// cluster-id settings.
//
// experimentalHint controls the one-way experimental_mode latch described
// on resolveExperimentalMode; pass nil when opening read-only or
// outside the context of starting a server. stash is the collaborator
// historical migration 10 replays timestamp bindings into; it may be nil
// for stores that have already passed schema version 10.
func Open(dataDir string, experimentalHint *bool, stash TimestampStash) (*Handle, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	lock := flock.New(filepath.Join(dataDir, "catalog.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring catalog lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("catalog at %s is already open by another process", dataDir)
	}

	db, err := openDB(dataDir)
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	h := &Handle{db: db, lock: lock}
	if err := h.init(dataDir, stash, experimentalHint); err != nil {
		db.Close()
		lock.Unlock()
		return nil, err
	}
	return h, nil
}

func openDB(dataDir string) (*sql.DB, error) {
	path := filepath.Join(dataDir, "catalog")
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s", path))
	if err != nil {
		return nil, fmt.Errorf("opening catalog store: %w", err)
	}
	// The migration engine and repository layer issue write transactions
	// from a single connection at a time; SQLite handles one writer fine,
	// but database/sql's own pool will otherwise try to hand out
	// concurrent connections and serialize them with BUSY errors.
	db.SetMaxOpenConns(1)
	return db, nil
}

func (h *Handle) init(dataDir string, stash TimestampStash, experimentalHint *bool) error {
	if err := openAndMigrate(h.db, dataDir, stash); err != nil {
		return err
	}

	experimental, err := resolveExperimentalMode(h.db, experimentalHint)
	if err != nil {
		return err
	}
	h.experimentalMode = experimental

	clusterID, err := resolveClusterID(h.db)
	if err != nil {
		return err
	}
	h.clusterID = clusterID

	return nil
}

// ExperimentalMode reports the experimental-mode flag resolved at open time.
func (h *Handle) ExperimentalMode() bool { return h.experimentalMode }

// ClusterID reports the store's immutable cluster identity.
func (h *Handle) ClusterID() string { return h.clusterID }

// SchemaVersion reports the index of the last migration applied to the
// store, read from the reserved schema-version header.
func (h *Handle) SchemaVersion() (int, error) {
	var version int
	if err := h.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("reading user_version: %w", err)
	}
	return version, nil
}

// Close releases the store's advisory lock and closes the database
// connection. It does not wait for in-flight transactions.
func (h *Handle) Close() error {
	dbErr := h.db.Close()
	lockErr := h.lock.Unlock()
	if dbErr != nil {
		return dbErr
	}
	return lockErr
}

// Begin starts a Transaction Facade scoped to a single *sql.Tx. Commit
// persists every change made through it and Rollback discards them.
// Nothing is persisted without Commit, but a Transaction is not rolled
// back automatically when its caller stops using it: until Commit or
// Rollback is called it keeps holding the store's single connection.
func (h *Handle) Begin() (*Transaction, error) {
	tx, err := h.db.BeginTx(context.Background(), nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &Transaction{tx: tx}, nil
}
