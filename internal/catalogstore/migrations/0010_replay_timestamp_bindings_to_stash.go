package migrations

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// sidDisplay mirrors catalogstore's GlobalId JSON wire encoding well enough
// to produce the same stash collection names the parent package would
// produce, without importing the parent package.
type sidDisplay struct {
	System *uint64 `json:"System,omitempty"`
	User   *uint64 `json:"User,omitempty"`
}

func (s sidDisplay) String() string {
	switch {
	case s.System != nil:
		return fmt.Sprintf("s%d", *s.System)
	case s.User != nil:
		return fmt.Sprintf("u%d", *s.User)
	default:
		return "?"
	}
}

func decodeSid(blob []byte) (sidDisplay, error) {
	var s sidDisplay
	if err := json.Unmarshal(blob, &s); err != nil {
		return sidDisplay{}, err
	}
	return s, nil
}

// Migration0010ReplayTimestampBindingsToStash migrates timestamp bindings
// out of the coordinator's catalog and into the storage layer's own
// internal state, which is represented here by the injected Stash. Once
// every source's bindings have been replayed and sealed, the timestamps
// table is dropped for good.
//
// Introduced in v0.26.0.
func Migration0010ReplayTimestampBindingsToStash(_ string, tx *sql.Tx, stash Stash) error {
	sidRows, err := tx.Query(`SELECT DISTINCT sid FROM timestamps`)
	if err != nil {
		return fmt.Errorf("migration 10 (replay_timestamp_bindings_to_stash): %w", err)
	}
	var sidBlobs [][]byte
	for sidRows.Next() {
		var blob []byte
		if err := sidRows.Scan(&blob); err != nil {
			sidRows.Close()
			return fmt.Errorf("migration 10 (replay_timestamp_bindings_to_stash): %w", err)
		}
		sidBlobs = append(sidBlobs, blob)
	}
	if err := sidRows.Err(); err != nil {
		sidRows.Close()
		return fmt.Errorf("migration 10 (replay_timestamp_bindings_to_stash): %w", err)
	}
	sidRows.Close()

	if len(sidBlobs) > 0 && stash == nil {
		return fmt.Errorf("migration 10 (replay_timestamp_bindings_to_stash): no stash available to receive bindings for %d sources", len(sidBlobs))
	}

	for _, blob := range sidBlobs {
		sid, err := decodeSid(blob)
		if err != nil {
			return fmt.Errorf("migration 10 (replay_timestamp_bindings_to_stash): decoding sid: %w", err)
		}

		rows, err := tx.Query(
			`SELECT pid, timestamp, offset FROM timestamps WHERE sid = ? ORDER BY pid, timestamp`,
			blob,
		)
		if err != nil {
			return fmt.Errorf("migration 10 (replay_timestamp_bindings_to_stash): %w", err)
		}

		type rawBinding struct {
			partition string
			timestamp int64
			offset    int64
		}
		var raws []rawBinding
		for rows.Next() {
			var r rawBinding
			if err := rows.Scan(&r.partition, &r.timestamp, &r.offset); err != nil {
				rows.Close()
				return fmt.Errorf("migration 10 (replay_timestamp_bindings_to_stash): %w", err)
			}
			raws = append(raws, r)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("migration 10 (replay_timestamp_bindings_to_stash): %w", err)
		}
		rows.Close()

		lastOffset := make(map[string]int64)
		var sealTS int64
		haveSeal := false
		updates := make([]Binding, 0, len(raws))
		for _, r := range raws {
			prev := lastOffset[r.partition]
			updates = append(updates, Binding{
				Partition:   r.partition,
				Timestamp:   r.timestamp,
				OffsetDelta: r.offset - prev,
			})
			lastOffset[r.partition] = r.offset
			if !haveSeal || r.timestamp > sealTS {
				sealTS = r.timestamp
				haveSeal = true
			}
		}

		collection := fmt.Sprintf("timestamp-bindings-%s", sid.String())
		if err := stash.WriteBindings(collection, updates); err != nil {
			return fmt.Errorf("migration 10 (replay_timestamp_bindings_to_stash): writing bindings for %s: %w", collection, err)
		}
		if haveSeal {
			if err := stash.Seal(collection, sealTS); err != nil {
				return fmt.Errorf("migration 10 (replay_timestamp_bindings_to_stash): sealing %s: %w", collection, err)
			}
		}
	}

	if _, err := tx.Exec(`DROP TABLE timestamps`); err != nil {
		return fmt.Errorf("migration 10 (replay_timestamp_bindings_to_stash): %w", err)
	}
	return nil
}
