package catalogstore

import (
	"testing"

	"github.com/coralstream/catalogstore/internal/catalogstore/migrations"
)

// TestTimestampBindingReplay runs a store up to the last version that still
// has the timestamps table, writes bindings the way a pre-migration release
// would have, and checks that reopening with the full migration list
// difference-encodes them into the stash, seals at the maximum observed
// timestamp, and drops the table.
func TestTimestampBindingReplay(t *testing.T) {
	full := migrations.All
	dir := t.TempDir()
	stash := NewMemoryStash()

	migrations.All = full[:10]
	h, err := Open(dir, nil, stash)
	migrations.All = full
	if err != nil {
		t.Fatalf("Open at version 9: %v", err)
	}

	sidBlob, err := encodeGlobalId(UserID(1))
	if err != nil {
		t.Fatalf("encodeGlobalId: %v", err)
	}
	if err := h.withTx(func(tx *Transaction) error {
		rows := []struct {
			pid    string
			ts     int64
			offset int64
		}{
			{"0", 1, 5},
			{"0", 2, 9},
			{"1", 1, 3},
		}
		for _, r := range rows {
			if _, err := tx.tx.Exec(
				`INSERT INTO timestamps (sid, pid, timestamp, offset) VALUES (?, ?, ?, ?)`,
				sidBlob, r.pid, r.ts, r.offset,
			); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		t.Fatalf("seeding timestamps: %v", err)
	}
	h.Close()

	h2, err := Open(dir, nil, stash)
	if err != nil {
		t.Fatalf("reopening with full migration list: %v", err)
	}
	defer h2.Close()

	got := stash.Bindings("timestamp-bindings-u1")
	want := []TimestampBinding{
		{Partition: KafkaPartition(0), Timestamp: 1, OffsetDelta: 5},
		{Partition: KafkaPartition(0), Timestamp: 2, OffsetDelta: 4},
		{Partition: KafkaPartition(1), Timestamp: 1, OffsetDelta: 3},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d bindings, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("binding %d: want %+v, got %+v", i, want[i], got[i])
		}
	}

	sealTS, sealed := stash.SealedAt("timestamp-bindings-u1")
	if !sealed || sealTS != 2 {
		t.Fatalf("expected collection sealed at 2, got %d (sealed=%v)", sealTS, sealed)
	}

	// The timestamps table itself must be gone.
	err = h2.withTx(func(tx *Transaction) error {
		var n int
		return tx.tx.QueryRow(`SELECT count(*) FROM timestamps`).Scan(&n)
	})
	if err == nil {
		t.Fatalf("expected timestamps table to be dropped")
	}
}
