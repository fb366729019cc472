package catalogstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

const (
	settingExperimentalMode      = "experimental_mode"
	settingClusterID             = "cluster_id"
	settingCatalogContentVersion = "catalog_content_version"
)

// getSetting reads a raw setting value, returning ("", false, nil) if the
// name has never been set.
func getSetting(tx *sql.Tx, name string) (string, bool, error) {
	var value string
	err := tx.QueryRow(`SELECT value FROM settings WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// resolveExperimentalMode implements the one-way experimental_mode latch.
// hint is nil when the catalog is being opened outside the context of
// starting a server (e.g. by an offline inspection tool); otherwise it
// carries the value of the --experimental startup flag.
func resolveExperimentalMode(db *sql.DB, hint *bool) (bool, error) {
	tx, err := db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	stored, ok, err := getSetting(tx, settingExperimentalMode)
	if err != nil {
		return false, err
	}

	var result bool
	switch {
	case !ok && hint != nil:
		// First init: record the flag's value, true or false, so later
		// opens can enforce the latch in both directions.
		stored := "0"
		if *hint {
			stored = "1"
		}
		if _, err := tx.Exec(`INSERT INTO settings VALUES (?, ?)`, settingExperimentalMode, stored); err != nil {
			return false, err
		}
		result = *hint

	case !ok:
		// Read-only probe of a store that was never initialized with the
		// flag one way or the other. Nothing is persisted.
		result = false

	case ok && stored != "0":
		// Stored true.
		if hint != nil && !*hint {
			return false, ErrExperimentalModeRequired
		}
		result = true

	default:
		// Stored false.
		if hint != nil && *hint {
			return false, ErrExperimentalModeUnavailable
		}
		result = false
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return result, nil
}

// resolveClusterID generates and persists a random UUIDv4 on first open, or
// returns the previously generated one on every subsequent open.
func resolveClusterID(db *sql.DB) (string, error) {
	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	stored, ok, err := getSetting(tx, settingClusterID)
	if err != nil {
		return "", err
	}
	if ok {
		if err := tx.Commit(); err != nil {
			return "", err
		}
		return stored, nil
	}

	id := uuid.New().String()
	if _, err := tx.Exec(`INSERT INTO settings VALUES (?, ?)`, settingClusterID, id); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// CatalogContentVersion reports the store's content-version setting. A
// legacy numeric representation (used before v0.8.4) is translated to the
// sentinel "pre-v0.8.4"; an absent value reports "new".
func (t *Transaction) CatalogContentVersion() (string, error) {
	stored, ok, err := getSetting(t.tx, settingCatalogContentVersion)
	if err != nil {
		return "", err
	}
	if !ok {
		return "new", nil
	}
	if _, err := strconv.ParseUint(stored, 10, 32); err == nil {
		return "pre-v0.8.4", nil
	}
	return stored, nil
}

// SetCatalogContentVersion upserts the store's content-version setting.
func (t *Transaction) SetCatalogContentVersion(version string) error {
	_, err := t.tx.Exec(`
		INSERT INTO settings (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value
	`, settingCatalogContentVersion, version)
	return err
}

// ErrProtectedSetting is returned by SetSetting when asked to write a
// setting with its own one-way policy API (experimental_mode, cluster_id)
// directly; those must go through resolveExperimentalMode (at Open) and
// resolveClusterID (at Open) respectively so their latches cannot be
// bypassed.
var ErrProtectedSetting = errors.New("refusing to set a protected setting directly")

func isProtectedSetting(name string) bool {
	return name == settingExperimentalMode || name == settingClusterID
}

// GetSetting reads any named setting's raw string value. ok is false when
// the name has never been set.
func (t *Transaction) GetSetting(name string) (value string, ok bool, err error) {
	return getSetting(t.tx, name)
}

// SetSetting upserts any named setting's raw string value, except the two
// settings with their own one-way policy (see ErrProtectedSetting).
func (t *Transaction) SetSetting(name, value string) error {
	if isProtectedSetting(name) {
		return fmt.Errorf("%w: %q", ErrProtectedSetting, name)
	}
	_, err := t.tx.Exec(`
		INSERT INTO settings (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value
	`, name, value)
	return err
}

// GetSetting opens an implicit short transaction to read any named
// setting's raw string value.
func (h *Handle) GetSetting(name string) (string, bool, error) {
	var value string
	var ok bool
	err := h.withTx(func(t *Transaction) error {
		var err error
		value, ok, err = t.GetSetting(name)
		return err
	})
	return value, ok, err
}

// SetSetting opens an implicit short transaction to upsert any named
// setting's raw string value, except the two one-way-policy settings.
func (h *Handle) SetSetting(name, value string) error {
	return h.withTx(func(t *Transaction) error {
		return t.SetSetting(name, value)
	})
}
