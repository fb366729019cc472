package catalogstore

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openFresh(t *testing.T, hint *bool) (*Handle, *MemoryStash) {
	t.Helper()
	dir := t.TempDir()
	stash := NewMemoryStash()
	h, err := Open(dir, hint, stash)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h, stash
}

func boolPtr(b bool) *bool { return &b }

func TestOpenFreshInit(t *testing.T) {
	h, _ := openFresh(t, nil)

	if h.ExperimentalMode() {
		t.Fatalf("expected experimental mode false on fresh init without hint")
	}
	id, err := uuid.Parse(h.ClusterID())
	if err != nil {
		t.Fatalf("cluster id %q is not a UUID: %v", h.ClusterID(), err)
	}
	if id.Version() != 4 {
		t.Fatalf("expected a version-4 cluster id, got version %d", id.Version())
	}

	version, err := h.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != 11 {
		t.Fatalf("expected schema version 11 after fresh init, got %d", version)
	}

	dbs, err := h.LoadDatabases()
	if err != nil {
		t.Fatalf("LoadDatabases: %v", err)
	}
	if len(dbs) != 1 || dbs[0].Name != "materialize" || dbs[0].ID != 1 {
		t.Fatalf("expected exactly one database materialize(1), got %+v", dbs)
	}

	schemas, err := h.LoadSchemas()
	if err != nil {
		t.Fatalf("LoadSchemas: %v", err)
	}
	wantSchemas := map[string]bool{
		"mz_catalog": true, "pg_catalog": true, "mz_internal": true,
		"information_schema": true, "public": true,
	}
	if len(schemas) != len(wantSchemas) {
		t.Fatalf("expected %d schemas, got %d: %+v", len(wantSchemas), len(schemas), schemas)
	}
	for _, s := range schemas {
		if !wantSchemas[s.Name] {
			t.Fatalf("unexpected schema %q", s.Name)
		}
	}

	roles, err := h.LoadRoles()
	if err != nil {
		t.Fatalf("LoadRoles: %v", err)
	}
	if len(roles) != 1 || roles[0].Name != "materialize" {
		t.Fatalf("expected exactly one role materialize, got %+v", roles)
	}

	instances, err := h.LoadComputeInstances()
	if err != nil {
		t.Fatalf("LoadComputeInstances: %v", err)
	}
	if len(instances) != 1 || instances[0].Name != "default" || instances[0].Config != nil {
		t.Fatalf("expected exactly one default compute instance with local config, got %+v", instances)
	}

	mappings, err := h.LoadSystemObjectMappings()
	if err != nil {
		t.Fatalf("LoadSystemObjectMappings: %v", err)
	}
	if len(mappings) != 149 {
		t.Fatalf("expected the 149 seeded system object mappings, got %d", len(mappings))
	}
	for _, m := range mappings {
		if !m.ID.IsSystem() || m.Fingerprint != 0 {
			t.Fatalf("seeded mapping %s.%s has unexpected id/fingerprint: %+v", m.SchemaName, m.ObjectName, m)
		}
	}
}

func TestOpenCorruptIdentity(t *testing.T) {
	dir := t.TempDir()
	stash := NewMemoryStash()

	h, err := Open(dir, nil, stash)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening the same store must succeed with the identity already set.
	h2, err := Open(dir, nil, stash)
	if err != nil {
		t.Fatalf("reopening valid store: %v", err)
	}
	h2.Close()

	// Now corrupt the store-identity header out from under the next open.
	raw, err := sql.Open("sqlite3", fmt.Sprintf("file:%s", filepath.Join(dir, "catalog")))
	if err != nil {
		t.Fatalf("opening raw db: %v", err)
	}
	if _, err := raw.Exec(`PRAGMA application_id = 123456`); err != nil {
		t.Fatalf("setting bogus application_id: %v", err)
	}
	if err := raw.Close(); err != nil {
		t.Fatalf("closing raw db: %v", err)
	}

	_, err = Open(dir, nil, stash)
	if !errors.Is(err, ErrCorruption) {
		t.Fatalf("expected ErrCorruption, got %v", err)
	}
}

func TestExperimentalLatch(t *testing.T) {
	dir := t.TempDir()
	stash := NewMemoryStash()

	h, err := Open(dir, boolPtr(true), stash)
	if err != nil {
		t.Fatalf("Open with hint=true: %v", err)
	}
	if !h.ExperimentalMode() {
		t.Fatalf("expected experimental mode true")
	}
	h.Close()

	_, err = Open(dir, boolPtr(false), stash)
	if !errors.Is(err, ErrExperimentalModeRequired) {
		t.Fatalf("expected ErrExperimentalModeRequired, got %v", err)
	}
}

func TestExperimentalLatchUnavailable(t *testing.T) {
	dir := t.TempDir()
	stash := NewMemoryStash()

	h, err := Open(dir, boolPtr(false), stash)
	if err != nil {
		t.Fatalf("Open with hint=false: %v", err)
	}
	if h.ExperimentalMode() {
		t.Fatalf("expected experimental mode false")
	}
	h.Close()

	_, err = Open(dir, boolPtr(true), stash)
	if !errors.Is(err, ErrExperimentalModeUnavailable) {
		t.Fatalf("expected ErrExperimentalModeUnavailable, got %v", err)
	}
}

func TestClusterIDStable(t *testing.T) {
	dir := t.TempDir()
	stash := NewMemoryStash()

	h, err := Open(dir, nil, stash)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	id1 := h.ClusterID()
	h.Close()

	h2, err := Open(dir, nil, stash)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer h2.Close()
	if h2.ClusterID() != id1 {
		t.Fatalf("cluster id changed across reopen: %q != %q", h2.ClusterID(), id1)
	}
}

func TestDuplicateDatabase(t *testing.T) {
	h, _ := openFresh(t, nil)

	id, err := h.InsertDatabase("x")
	if err != nil {
		t.Fatalf("InsertDatabase: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected a nonzero id")
	}

	_, err = h.InsertDatabase("x")
	var already *AlreadyExistsError
	if !errors.As(err, &already) || already.Kind != KindDatabase {
		t.Fatalf("expected AlreadyExistsError{Database}, got %v", err)
	}

	dbs, err := h.LoadDatabases()
	if err != nil {
		t.Fatalf("LoadDatabases: %v", err)
	}
	count := 0
	for _, d := range dbs {
		if d.Name == "x" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one database named x, got %d", count)
	}
}

func TestRemoveUnknownDatabase(t *testing.T) {
	h, _ := openFresh(t, nil)

	err := h.RemoveDatabase(999)
	var unknown *UnknownError
	if !errors.As(err, &unknown) || unknown.Kind != KindDatabase {
		t.Fatalf("expected UnknownError{Database}, got %v", err)
	}
}

func TestItemRoundTrip(t *testing.T) {
	dir := t.TempDir()
	stash := NewMemoryStash()
	h, err := Open(dir, nil, stash)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	gid := UserID(7)
	def := []byte{0x01, 0x02}
	if err := h.InsertItem(gid, 3, "v", def); err != nil {
		t.Fatalf("InsertItem: %v", err)
	}
	h.Close()

	h, err = Open(dir, nil, stash)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer h.Close()

	items, err := h.LoadItems()
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected exactly one item, got %d", len(items))
	}
	got := items[0]
	if got.GID != gid || got.SchemaID != 3 || got.Name != "v" || string(got.Definition) != string(def) {
		t.Fatalf("item round-trip mismatch: got %+v", got)
	}
}

func TestItemsOrderedByUserSuffix(t *testing.T) {
	h, _ := openFresh(t, nil)

	for _, n := range []uint64{5, 1, 3} {
		if err := h.InsertItem(UserID(n), 3, fakeName(n), nil); err != nil {
			t.Fatalf("InsertItem(%d): %v", n, err)
		}
	}

	items, err := h.LoadItems()
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []uint64{1, 3, 5} {
		if items[i].GID.UserValue() != want {
			t.Fatalf("item %d: expected user id %d, got %d", i, want, items[i].GID.UserValue())
		}
	}
}

func fakeName(n uint64) string {
	names := map[uint64]string{1: "a", 3: "b", 5: "c"}
	return names[n]
}

func TestTransactionAtomicity(t *testing.T) {
	h, _ := openFresh(t, nil)

	tx, err := h.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	schemaID, err := tx.InsertSchema(nil, "scratch")
	if err != nil {
		t.Fatalf("InsertSchema: %v", err)
	}
	if err := tx.InsertItem(UserID(1), schemaID, "v", nil); err != nil {
		t.Fatalf("InsertItem: %v", err)
	}
	// Deliberately end the transaction without committing.
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	schemas, err := h.LoadSchemas()
	if err != nil {
		t.Fatalf("LoadSchemas: %v", err)
	}
	for _, s := range schemas {
		if s.Name == "scratch" {
			t.Fatalf("rolled-back schema leaked: %+v", s)
		}
	}
	items, err := h.LoadItems()
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("rolled-back item leaked: %+v", items)
	}
}

func TestTransactionCommits(t *testing.T) {
	h, _ := openFresh(t, nil)

	tx, err := h.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	schemaID, err := tx.InsertSchema(nil, "scratch")
	if err != nil {
		t.Fatalf("InsertSchema: %v", err)
	}
	if err := tx.InsertItem(UserID(1), schemaID, "v", nil); err != nil {
		t.Fatalf("InsertItem: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	items, err := h.LoadItems()
	if err != nil {
		t.Fatalf("LoadItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected committed item to be visible, got %d", len(items))
	}
}

func TestSetSettingRefusesProtected(t *testing.T) {
	h, _ := openFresh(t, nil)

	for _, name := range []string{"experimental_mode", "cluster_id"} {
		if err := h.SetSetting(name, "x"); !errors.Is(err, ErrProtectedSetting) {
			t.Fatalf("expected ErrProtectedSetting for %q, got %v", name, err)
		}
	}

	if err := h.SetSetting("some_other_setting", "x"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	value, ok, err := h.GetSetting("some_other_setting")
	if err != nil || !ok || value != "x" {
		t.Fatalf("expected stored value x, got %q (ok=%v, err=%v)", value, ok, err)
	}
}

func TestCatalogContentVersion(t *testing.T) {
	h, _ := openFresh(t, nil)

	v, err := h.CatalogContentVersion()
	if err != nil {
		t.Fatalf("CatalogContentVersion: %v", err)
	}
	if v != "new" {
		t.Fatalf("expected 'new' for an absent version, got %q", v)
	}

	if err := h.SetCatalogContentVersion("42"); err != nil {
		t.Fatalf("SetCatalogContentVersion: %v", err)
	}
	v, err = h.CatalogContentVersion()
	if err != nil {
		t.Fatalf("CatalogContentVersion: %v", err)
	}
	if v != "pre-v0.8.4" {
		t.Fatalf("expected legacy numeric version to report pre-v0.8.4, got %q", v)
	}

	if err := h.SetCatalogContentVersion("v0.90.0"); err != nil {
		t.Fatalf("SetCatalogContentVersion: %v", err)
	}
	v, err = h.CatalogContentVersion()
	if err != nil {
		t.Fatalf("CatalogContentVersion: %v", err)
	}
	if v != "v0.90.0" {
		t.Fatalf("expected opaque version string to round-trip, got %q", v)
	}
}
