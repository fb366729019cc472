package catalogstore

// This file mirrors the Transaction repository methods with
// short-transaction convenience wrappers on Handle, for callers that need
// to perform exactly one repository operation and do not need the
// multi-statement atomicity of an explicit Transaction scope.
// SetIntrospectionSourceIndexGIDs and RemoveSystemObjectMapping have no
// Handle wrapper and are reachable only through a Transaction.

// InsertDatabase opens an implicit short transaction to create a database.
func (h *Handle) InsertDatabase(name string) (int64, error) {
	var id int64
	err := h.withTx(func(t *Transaction) error {
		var err error
		id, err = t.InsertDatabase(name)
		return err
	})
	return id, err
}

// LoadDatabases opens an implicit short transaction to load every database.
func (h *Handle) LoadDatabases() ([]Database, error) {
	var out []Database
	err := h.withTx(func(t *Transaction) error {
		var err error
		out, err = t.LoadDatabases()
		return err
	})
	return out, err
}

// RemoveDatabase opens an implicit short transaction to remove a database.
func (h *Handle) RemoveDatabase(id int64) error {
	return h.withTx(func(t *Transaction) error {
		return t.RemoveDatabase(id)
	})
}

// InsertSchema opens an implicit short transaction to create a schema.
func (h *Handle) InsertSchema(databaseID *int64, name string) (int64, error) {
	var id int64
	err := h.withTx(func(t *Transaction) error {
		var err error
		id, err = t.InsertSchema(databaseID, name)
		return err
	})
	return id, err
}

// LoadSchemas opens an implicit short transaction to load every schema.
func (h *Handle) LoadSchemas() ([]Schema, error) {
	var out []Schema
	err := h.withTx(func(t *Transaction) error {
		var err error
		out, err = t.LoadSchemas()
		return err
	})
	return out, err
}

// RemoveSchema opens an implicit short transaction to remove a schema.
func (h *Handle) RemoveSchema(id int64) error {
	return h.withTx(func(t *Transaction) error {
		return t.RemoveSchema(id)
	})
}

// InsertRole opens an implicit short transaction to create a role.
func (h *Handle) InsertRole(name string) (int64, error) {
	var id int64
	err := h.withTx(func(t *Transaction) error {
		var err error
		id, err = t.InsertRole(name)
		return err
	})
	return id, err
}

// LoadRoles opens an implicit short transaction to load every role.
func (h *Handle) LoadRoles() ([]Role, error) {
	var out []Role
	err := h.withTx(func(t *Transaction) error {
		var err error
		out, err = t.LoadRoles()
		return err
	})
	return out, err
}

// RemoveRole opens an implicit short transaction to remove a role.
func (h *Handle) RemoveRole(id int64) error {
	return h.withTx(func(t *Transaction) error {
		return t.RemoveRole(id)
	})
}

// InsertComputeInstance opens an implicit short transaction to create a
// compute instance and its seeded introspection source indexes.
func (h *Handle) InsertComputeInstance(name string, config *string, indexes []IntrospectionSourceIndexSeed) (int64, error) {
	var id int64
	err := h.withTx(func(t *Transaction) error {
		var err error
		id, err = t.InsertComputeInstance(name, config, indexes)
		return err
	})
	return id, err
}

// LoadComputeInstances opens an implicit short transaction to load every
// compute instance.
func (h *Handle) LoadComputeInstances() ([]ComputeInstance, error) {
	var out []ComputeInstance
	err := h.withTx(func(t *Transaction) error {
		var err error
		out, err = t.LoadComputeInstances()
		return err
	})
	return out, err
}

// UpdateComputeInstanceConfig opens an implicit short transaction to
// replace a compute instance's configuration.
func (h *Handle) UpdateComputeInstanceConfig(id int64, config *string) error {
	return h.withTx(func(t *Transaction) error {
		return t.UpdateComputeInstanceConfig(id, config)
	})
}

// RemoveComputeInstance opens an implicit short transaction to remove a
// compute instance.
func (h *Handle) RemoveComputeInstance(id int64) error {
	return h.withTx(func(t *Transaction) error {
		return t.RemoveComputeInstance(id)
	})
}

// LoadIntrospectionSourceIndexes opens an implicit short transaction to
// load every introspection source index.
func (h *Handle) LoadIntrospectionSourceIndexes() ([]IntrospectionSourceIndex, error) {
	var out []IntrospectionSourceIndex
	err := h.withTx(func(t *Transaction) error {
		var err error
		out, err = t.LoadIntrospectionSourceIndexes()
		return err
	})
	return out, err
}

// InsertItem opens an implicit short transaction to create an item.
func (h *Handle) InsertItem(gid GlobalId, schemaID int64, name string, definition []byte) error {
	return h.withTx(func(t *Transaction) error {
		return t.InsertItem(gid, schemaID, name, definition)
	})
}

// LoadItems opens an implicit short transaction to load every item.
func (h *Handle) LoadItems() ([]Item, error) {
	var out []Item
	err := h.withTx(func(t *Transaction) error {
		var err error
		out, err = t.LoadItems()
		return err
	})
	return out, err
}

// RenameItem opens an implicit short transaction to rename an item.
func (h *Handle) RenameItem(gid GlobalId, newName string) error {
	return h.withTx(func(t *Transaction) error {
		return t.RenameItem(gid, newName)
	})
}

// RedefineItem opens an implicit short transaction to replace an item's
// definition.
func (h *Handle) RedefineItem(gid GlobalId, definition []byte) error {
	return h.withTx(func(t *Transaction) error {
		return t.RedefineItem(gid, definition)
	})
}

// RemoveItem opens an implicit short transaction to remove an item.
func (h *Handle) RemoveItem(gid GlobalId) error {
	return h.withTx(func(t *Transaction) error {
		return t.RemoveItem(gid)
	})
}

// UpsertSystemObjectMapping opens an implicit short transaction to
// insert-or-replace a built-in object's pinned system id and fingerprint.
func (h *Handle) UpsertSystemObjectMapping(schemaName, objectName string, id GlobalId, fingerprint uint64) error {
	return h.withTx(func(t *Transaction) error {
		return t.UpsertSystemObjectMapping(schemaName, objectName, id, fingerprint)
	})
}

// LoadSystemObjectMappings opens an implicit short transaction to load
// every built-in system object mapping.
func (h *Handle) LoadSystemObjectMappings() ([]SystemObjectMapping, error) {
	var out []SystemObjectMapping
	err := h.withTx(func(t *Transaction) error {
		var err error
		out, err = t.LoadSystemObjectMappings()
		return err
	})
	return out, err
}

// CatalogContentVersion opens an implicit short transaction to read the
// catalog_content_version setting.
func (h *Handle) CatalogContentVersion() (string, error) {
	var v string
	err := h.withTx(func(t *Transaction) error {
		var err error
		v, err = t.CatalogContentVersion()
		return err
	})
	return v, err
}

// SetCatalogContentVersion opens an implicit short transaction to upsert
// the catalog_content_version setting.
func (h *Handle) SetCatalogContentVersion(version string) error {
	return h.withTx(func(t *Transaction) error {
		return t.SetCatalogContentVersion(version)
	})
}
