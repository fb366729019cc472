package catalogstore

import (
	"database/sql"
	"fmt"
)

// Database is a row of the databases table.
type Database struct {
	ID   int64
	Name string
}

// Schema is a row of the schemas table. DatabaseID is nil for the four
// well-known schemas that have no owning database (mz_catalog,
// pg_catalog, mz_internal, information_schema).
type Schema struct {
	ID         int64
	DatabaseID *int64
	Name       string
}

// Role is a row of the roles table.
type Role struct {
	ID   int64
	Name string
}

// ComputeInstance is a row of the compute_instances table. Config is nil
// when the instance uses the "local" default configuration; otherwise it
// holds the instance's JSON-encoded configuration verbatim.
type ComputeInstance struct {
	ID     int64
	Name   string
	Config *string
}

// IntrospectionSourceIndexSeed names one introspection-log index to seed
// alongside a new compute instance, with its system id already allocated
// by the caller (see Handle.AllocateSystemIDs).
type IntrospectionSourceIndexSeed struct {
	Name    string
	IndexID GlobalId
}

// IntrospectionSourceIndex is a row of the
// compute_introspection_source_indexes table.
type IntrospectionSourceIndex struct {
	ComputeID int64
	Name      string
	IndexID   GlobalId
}

// Item is a row of the items table: any user-visible catalog object
// (view, source, sink, table, index, ...) named within a schema.
type Item struct {
	GID        GlobalId
	SchemaID   int64
	Name       string
	Definition []byte
}

// SystemObjectMapping is a row of the system_gid_mapping table: the
// stable system id (and drift-detection fingerprint) pinned to one
// built-in object.
type SystemObjectMapping struct {
	SchemaName  string
	ObjectName  string
	ID          GlobalId
	Fingerprint uint64
}

// assertAtMostOne enforces the "at most one row affected" hard invariant
// that update/remove operations carry: a result claiming more than one
// row changed means a unique-scope invariant has already been violated
// elsewhere, which is a programmer/data-corruption bug, not a recoverable
// condition.
func assertAtMostOne(res sql.Result, op string) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 1 {
		panic(fmt.Sprintf("catalogstore: %s affected %d rows, expected at most 1", op, n))
	}
	return n, nil
}

// --- Databases ---------------------------------------------------------

// InsertDatabase creates a new database and returns its assigned id.
func (t *Transaction) InsertDatabase(name string) (int64, error) {
	res, err := t.tx.Exec(`INSERT INTO databases (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueConstraintError(err) {
			return 0, &AlreadyExistsError{Kind: KindDatabase, Name: name}
		}
		return 0, wrapDBErrorf(err, "inserting database %q", name)
	}
	return res.LastInsertId()
}

// LoadDatabases returns every database, ordered by id.
func (t *Transaction) LoadDatabases() ([]Database, error) {
	rows, err := t.tx.Query(`SELECT id, name FROM databases ORDER BY id`)
	if err != nil {
		return nil, wrapDBErrorf(err, "loading databases")
	}
	defer rows.Close()

	var out []Database
	for rows.Next() {
		var d Database
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, wrapDBErrorf(err, "scanning database row")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// RemoveDatabase deletes the database with the given id.
func (t *Transaction) RemoveDatabase(id int64) error {
	res, err := t.tx.Exec(`DELETE FROM databases WHERE id = ?`, id)
	if err != nil {
		return wrapDBErrorf(err, "removing database %d", id)
	}
	n, err := assertAtMostOne(res, "RemoveDatabase")
	if err != nil {
		return err
	}
	if n == 0 {
		return &UnknownError{Kind: KindDatabase, Name: fmt.Sprintf("%d", id)}
	}
	return nil
}

// --- Schemas -------------------------------------------------------------

// InsertSchema creates a new schema and returns its assigned id. A nil
// databaseID seeds one of the well-known database-less schemas.
func (t *Transaction) InsertSchema(databaseID *int64, name string) (int64, error) {
	res, err := t.tx.Exec(`INSERT INTO schemas (database_id, name) VALUES (?, ?)`, databaseID, name)
	if err != nil {
		if isUniqueConstraintError(err) {
			return 0, &AlreadyExistsError{Kind: KindSchema, Name: name}
		}
		return 0, wrapDBErrorf(err, "inserting schema %q", name)
	}
	return res.LastInsertId()
}

// LoadSchemas returns every schema, ordered by id.
func (t *Transaction) LoadSchemas() ([]Schema, error) {
	rows, err := t.tx.Query(`SELECT id, database_id, name FROM schemas ORDER BY id`)
	if err != nil {
		return nil, wrapDBErrorf(err, "loading schemas")
	}
	defer rows.Close()

	var out []Schema
	for rows.Next() {
		var s Schema
		if err := rows.Scan(&s.ID, &s.DatabaseID, &s.Name); err != nil {
			return nil, wrapDBErrorf(err, "scanning schema row")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// RemoveSchema deletes the schema with the given id.
func (t *Transaction) RemoveSchema(id int64) error {
	res, err := t.tx.Exec(`DELETE FROM schemas WHERE id = ?`, id)
	if err != nil {
		return wrapDBErrorf(err, "removing schema %d", id)
	}
	n, err := assertAtMostOne(res, "RemoveSchema")
	if err != nil {
		return err
	}
	if n == 0 {
		return &UnknownError{Kind: KindSchema, Name: fmt.Sprintf("%d", id)}
	}
	return nil
}

// --- Roles -----------------------------------------------------------------

// InsertRole creates a new role and returns its assigned id.
func (t *Transaction) InsertRole(name string) (int64, error) {
	res, err := t.tx.Exec(`INSERT INTO roles (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueConstraintError(err) {
			return 0, &AlreadyExistsError{Kind: KindRole, Name: name}
		}
		return 0, wrapDBErrorf(err, "inserting role %q", name)
	}
	return res.LastInsertId()
}

// LoadRoles returns every role, ordered by id.
func (t *Transaction) LoadRoles() ([]Role, error) {
	rows, err := t.tx.Query(`SELECT id, name FROM roles ORDER BY id`)
	if err != nil {
		return nil, wrapDBErrorf(err, "loading roles")
	}
	defer rows.Close()

	var out []Role
	for rows.Next() {
		var r Role
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, wrapDBErrorf(err, "scanning role row")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RemoveRole deletes the role with the given id.
func (t *Transaction) RemoveRole(id int64) error {
	res, err := t.tx.Exec(`DELETE FROM roles WHERE id = ?`, id)
	if err != nil {
		return wrapDBErrorf(err, "removing role %d", id)
	}
	n, err := assertAtMostOne(res, "RemoveRole")
	if err != nil {
		return err
	}
	if n == 0 {
		return &UnknownError{Kind: KindRole, Name: fmt.Sprintf("%d", id)}
	}
	return nil
}

// --- Compute instances -------------------------------------------------

// InsertComputeInstance creates a new compute instance, along with any
// introspection-source-log indexes it is seeded with, in the same
// transaction as the parent row. Config nil means the "local" default.
func (t *Transaction) InsertComputeInstance(name string, config *string, indexes []IntrospectionSourceIndexSeed) (int64, error) {
	res, err := t.tx.Exec(`INSERT INTO compute_instances (name, config) VALUES (?, ?)`, name, config)
	if err != nil {
		if isUniqueConstraintError(err) {
			return 0, &AlreadyExistsError{Kind: KindComputeInstance, Name: name}
		}
		return 0, wrapDBErrorf(err, "inserting compute instance %q", name)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, idx := range indexes {
		if !idx.IndexID.IsSystem() {
			panic(fmt.Sprintf("catalogstore: non-system id provided for introspection source index %q", idx.Name))
		}
		if _, err := t.tx.Exec(
			`INSERT INTO compute_introspection_source_indexes (compute_id, name, index_id) VALUES (?, ?, ?)`,
			id, idx.Name, idx.IndexID.SystemValue(),
		); err != nil {
			return 0, wrapDBErrorf(err, "seeding introspection source index %q for compute instance %q", idx.Name, name)
		}
	}

	return id, nil
}

// LoadComputeInstances returns every compute instance, ordered by id.
func (t *Transaction) LoadComputeInstances() ([]ComputeInstance, error) {
	rows, err := t.tx.Query(`SELECT id, name, config FROM compute_instances ORDER BY id`)
	if err != nil {
		return nil, wrapDBErrorf(err, "loading compute instances")
	}
	defer rows.Close()

	var out []ComputeInstance
	for rows.Next() {
		var c ComputeInstance
		if err := rows.Scan(&c.ID, &c.Name, &c.Config); err != nil {
			return nil, wrapDBErrorf(err, "scanning compute instance row")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateComputeInstanceConfig replaces the configuration of the compute
// instance with the given id.
func (t *Transaction) UpdateComputeInstanceConfig(id int64, config *string) error {
	res, err := t.tx.Exec(`UPDATE compute_instances SET config = ? WHERE id = ?`, config, id)
	if err != nil {
		return wrapDBErrorf(err, "updating compute instance %d config", id)
	}
	n, err := assertAtMostOne(res, "UpdateComputeInstanceConfig")
	if err != nil {
		return err
	}
	if n == 0 {
		return &UnknownError{Kind: KindComputeInstance, Name: fmt.Sprintf("%d", id)}
	}
	return nil
}

// RemoveComputeInstance deletes the compute instance with the given id,
// along with its introspection source indexes.
func (t *Transaction) RemoveComputeInstance(id int64) error {
	if _, err := t.tx.Exec(`DELETE FROM compute_introspection_source_indexes WHERE compute_id = ?`, id); err != nil {
		return wrapDBErrorf(err, "removing introspection source indexes for compute instance %d", id)
	}
	res, err := t.tx.Exec(`DELETE FROM compute_instances WHERE id = ?`, id)
	if err != nil {
		return wrapDBErrorf(err, "removing compute instance %d", id)
	}
	n, err := assertAtMostOne(res, "RemoveComputeInstance")
	if err != nil {
		return err
	}
	if n == 0 {
		return &UnknownError{Kind: KindComputeInstance, Name: fmt.Sprintf("%d", id)}
	}
	return nil
}

// LoadIntrospectionSourceIndexes returns every introspection source index,
// ordered by compute instance id then name.
func (t *Transaction) LoadIntrospectionSourceIndexes() ([]IntrospectionSourceIndex, error) {
	rows, err := t.tx.Query(`
		SELECT compute_id, name, index_id FROM compute_introspection_source_indexes
		ORDER BY compute_id, name
	`)
	if err != nil {
		return nil, wrapDBErrorf(err, "loading introspection source indexes")
	}
	defer rows.Close()

	var out []IntrospectionSourceIndex
	for rows.Next() {
		var i IntrospectionSourceIndex
		var rawID uint64
		if err := rows.Scan(&i.ComputeID, &i.Name, &rawID); err != nil {
			return nil, wrapDBErrorf(err, "scanning introspection source index row")
		}
		i.IndexID = SystemID(rawID)
		out = append(out, i)
	}
	return out, rows.Err()
}

// SetIntrospectionSourceIndexGIDs upserts introspection source index ids
// for an existing compute instance, without deleting existing rows for
// names not mentioned. Every id must be a System id or this is a
// programmer error.
func (t *Transaction) SetIntrospectionSourceIndexGIDs(computeID int64, mapping map[string]GlobalId) error {
	for name, id := range mapping {
		if !id.IsSystem() {
			panic(fmt.Sprintf("catalogstore: non-system id provided for introspection source index %q", name))
		}
		_, err := t.tx.Exec(`
			INSERT INTO compute_introspection_source_indexes (compute_id, name, index_id)
			VALUES (?, ?, ?)
			ON CONFLICT (compute_id, name) DO UPDATE SET index_id = excluded.index_id
		`, computeID, name, id.SystemValue())
		if err != nil {
			return wrapDBErrorf(err, "upserting introspection source index %q for compute instance %d", name, computeID)
		}
	}
	return nil
}

// --- Items ---------------------------------------------------------------

// InsertItem creates a new item.
func (t *Transaction) InsertItem(gid GlobalId, schemaID int64, name string, definition []byte) error {
	_, err := t.tx.Exec(
		`INSERT INTO items (gid, schema_id, name, definition) VALUES (?, ?, ?, ?)`,
		sqlGlobalId{gid}, schemaID, name, definition,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return &AlreadyExistsError{Kind: KindItem, Name: name}
		}
		return wrapDBErrorf(err, "inserting item %q", name)
	}
	return nil
}

// LoadItems returns every item, ordered so user items appear in ascending
// order of the numeric suffix of their User-tagged gid, giving callers a
// deterministic replay order. The gid column is a self-describing tagged
// blob, so the ordering is expressed as a stored-expression sort over
// json_extract(gid, '$.User') rather than a plain column sort.
func (t *Transaction) LoadItems() ([]Item, error) {
	rows, err := t.tx.Query(`
		SELECT i.gid, i.schema_id, i.name, i.definition
		FROM items i
		JOIN schemas s ON s.id = i.schema_id
		LEFT JOIN databases d ON d.id = s.database_id
		ORDER BY CAST(json_extract(CAST(i.gid AS TEXT), '$.User') AS INTEGER), i.schema_id, i.name
	`)
	if err != nil {
		return nil, wrapDBErrorf(err, "loading items")
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		var gid sqlGlobalId
		if err := rows.Scan(&gid, &it.SchemaID, &it.Name, &it.Definition); err != nil {
			return nil, wrapDBErrorf(err, "scanning item row")
		}
		it.GID = gid.GlobalId
		out = append(out, it)
	}
	return out, rows.Err()
}

// RenameItem updates the name of the item with the given gid.
func (t *Transaction) RenameItem(gid GlobalId, newName string) error {
	res, err := t.tx.Exec(`UPDATE items SET name = ? WHERE gid = ?`, newName, sqlGlobalId{gid})
	if err != nil {
		return wrapDBErrorf(err, "renaming item %s", gid)
	}
	n, err := assertAtMostOne(res, "RenameItem")
	if err != nil {
		return err
	}
	if n == 0 {
		return &UnknownError{Kind: KindItem, Name: gid.String()}
	}
	return nil
}

// RedefineItem replaces the definition payload of the item with the given
// gid.
func (t *Transaction) RedefineItem(gid GlobalId, definition []byte) error {
	res, err := t.tx.Exec(`UPDATE items SET definition = ? WHERE gid = ?`, definition, sqlGlobalId{gid})
	if err != nil {
		return wrapDBErrorf(err, "redefining item %s", gid)
	}
	n, err := assertAtMostOne(res, "RedefineItem")
	if err != nil {
		return err
	}
	if n == 0 {
		return &UnknownError{Kind: KindItem, Name: gid.String()}
	}
	return nil
}

// RemoveItem deletes the item with the given gid.
func (t *Transaction) RemoveItem(gid GlobalId) error {
	res, err := t.tx.Exec(`DELETE FROM items WHERE gid = ?`, sqlGlobalId{gid})
	if err != nil {
		return wrapDBErrorf(err, "removing item %s", gid)
	}
	n, err := assertAtMostOne(res, "RemoveItem")
	if err != nil {
		return err
	}
	if n == 0 {
		return &UnknownError{Kind: KindItem, Name: gid.String()}
	}
	return nil
}

// --- System object mapping ----------------------------------------------

// UpsertSystemObjectMapping inserts or replaces the mapping for
// (schemaName, objectName), letting upgrades re-pin built-in ids without
// deleting rows. id must be a System id; passing anything else is a
// programmer error and panics.
func (t *Transaction) UpsertSystemObjectMapping(schemaName, objectName string, id GlobalId, fingerprint uint64) error {
	if !id.IsSystem() {
		panic(fmt.Sprintf("catalogstore: non-system id provided for system object mapping %s.%s", schemaName, objectName))
	}
	_, err := t.tx.Exec(`
		INSERT INTO system_gid_mapping (schema_name, object_name, id, fingerprint)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (schema_name, object_name) DO UPDATE SET id = excluded.id, fingerprint = excluded.fingerprint
	`, schemaName, objectName, id.SystemValue(), fingerprint)
	if err != nil {
		return wrapDBErrorf(err, "upserting system object mapping %s.%s", schemaName, objectName)
	}
	return nil
}

// LoadSystemObjectMappings returns every built-in system object mapping,
// ordered by (schema_name, object_name).
func (t *Transaction) LoadSystemObjectMappings() ([]SystemObjectMapping, error) {
	rows, err := t.tx.Query(`
		SELECT schema_name, object_name, id, fingerprint FROM system_gid_mapping
		ORDER BY schema_name, object_name
	`)
	if err != nil {
		return nil, wrapDBErrorf(err, "loading system object mappings")
	}
	defer rows.Close()

	var out []SystemObjectMapping
	for rows.Next() {
		var m SystemObjectMapping
		var rawID uint64
		if err := rows.Scan(&m.SchemaName, &m.ObjectName, &rawID, &m.Fingerprint); err != nil {
			return nil, wrapDBErrorf(err, "scanning system object mapping row")
		}
		m.ID = SystemID(rawID)
		out = append(out, m)
	}
	return out, rows.Err()
}

// RemoveSystemObjectMapping deletes the mapping for (schemaName,
// objectName).
func (t *Transaction) RemoveSystemObjectMapping(schemaName, objectName string) error {
	res, err := t.tx.Exec(
		`DELETE FROM system_gid_mapping WHERE schema_name = ? AND object_name = ?`,
		schemaName, objectName,
	)
	if err != nil {
		return wrapDBErrorf(err, "removing system object mapping %s.%s", schemaName, objectName)
	}
	n, err := assertAtMostOne(res, "RemoveSystemObjectMapping")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("unknown system object mapping %s.%s", schemaName, objectName)
	}
	return nil
}
