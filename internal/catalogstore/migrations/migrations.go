// Package migrations holds the append-only, ordered list of catalog schema
// migrations. Each migration is a function frozen at the index it shipped
// at; once released a migration's effects must never change, so this
// package deliberately has no dependency on the rest of catalogstore -
// only on database/sql and the stdlib. See Stash for why the timestamp
// stash collaborator is re-declared here instead of imported.
package migrations

import "database/sql"

// Stash is the narrow interface migration 10 needs from the external
// timestamp-bindings collaborator. It speaks wire-level partition strings
// so this package stays frozen even if the parent package's richer
// TimestampStash types evolve; the parent adapts its collaborator to this
// interface before handing it to a migration.
type Stash interface {
	WriteBindings(collection string, updates []Binding) error
	Seal(collection string, timestamp int64) error
}

// Binding is one timestamp-binding update at the wire level.
type Binding struct {
	Partition   string // decimal Kafka partition number, or the literal "none"
	Timestamp   int64
	OffsetDelta int64
}

// Func is one migration step: a batch of declarative statements, or a
// data-transforming procedure with access to the data directory and an
// open transaction.
type Func func(dataDir string, tx *sql.Tx, stash Stash) error

// Step names and pins one migration to its shipped index.
type Step struct {
	Index int
	Name  string
	Run   Func
}

// All is the append-only, ordered list of every migration ever shipped.
// Entries must never be reordered or removed; new migrations are only
// ever appended.
var All = []Step{
	{0, "baseline_schema", Migration0000BaselineSchema},
	{1, "timestamps_multi_partition", Migration0001TimestampsMultiPartition},
	{2, "settings_table", Migration0002SettingsTable},
	{3, "roles_table", Migration0003RolesTable},
	{4, "mz_internal_schema", Migration0004MzInternalSchema},
	{5, "timestamps_replayable_bindings", Migration0005TimestampsReplayableBindings},
	{6, "information_schema", Migration0006InformationSchema},
	{7, "timestamps_sid_timestamp_index", Migration0007TimestampsSidTimestampIndex},
	{8, "compute_instances_table", Migration0008ComputeInstancesTable},
	{9, "compute_instances_config_column", Migration0009ComputeInstancesConfigColumn},
	{10, "replay_timestamp_bindings_to_stash", Migration0010ReplayTimestampBindingsToStash},
	{11, "system_gid_mapping", Migration0011SystemGidMapping},
}
