package catalogstore

import (
	"fmt"

	"github.com/coralstream/catalogstore/internal/catalogstore/migrations"
)

// TimestampBinding is one (partition, timestamp, offset-delta) update in a
// replayed timestamp-bindings collection, as written by migration 10.
type TimestampBinding struct {
	Partition   PartitionId
	Timestamp   int64
	OffsetDelta int64
}

// TimestampStash is the external write-ahead collaborator that migration
// 10 replays timestamp bindings into. Only the narrow interface the
// migration calls is defined here. Implementations inject their own
// collaborator through Open; tests use the in-memory stand-in below.
// The migrations package declares its own Stash interface over wire-level
// partition strings, so that frozen historical migrations never need to
// change if this type does; migrationStash bridges the two.
type TimestampStash interface {
	// WriteBindings appends the given updates to the named collection
	// (conventionally "timestamp-bindings-<source-id>").
	WriteBindings(collection string, updates []TimestampBinding) error

	// Seal marks a collection as closed as of the given timestamp. Sealing
	// a collection a second time at a lower timestamp is an error.
	Seal(collection string, timestamp int64) error
}

// migrationStash adapts a TimestampStash to the migrations package's
// Stash interface, turning the wire-level partition strings back into
// PartitionIds on the way through.
type migrationStash struct {
	stash TimestampStash
}

func (m migrationStash) WriteBindings(collection string, updates []migrations.Binding) error {
	converted := make([]TimestampBinding, len(updates))
	for i, u := range updates {
		p, err := ParsePartitionId(u.Partition)
		if err != nil {
			return fmt.Errorf("stash: %w", err)
		}
		converted[i] = TimestampBinding{Partition: p, Timestamp: u.Timestamp, OffsetDelta: u.OffsetDelta}
	}
	return m.stash.WriteBindings(collection, converted)
}

func (m migrationStash) Seal(collection string, timestamp int64) error {
	return m.stash.Seal(collection, timestamp)
}

// MemoryStash is an in-memory TimestampStash, suitable for tests and for
// any deployment that does not need migration 10's data to survive past
// the migration itself.
type MemoryStash struct {
	collections map[string][]TimestampBinding
	sealedAt    map[string]int64
}

// NewMemoryStash constructs an empty MemoryStash.
func NewMemoryStash() *MemoryStash {
	return &MemoryStash{
		collections: make(map[string][]TimestampBinding),
		sealedAt:    make(map[string]int64),
	}
}

func (s *MemoryStash) WriteBindings(collection string, updates []TimestampBinding) error {
	if _, sealed := s.sealedAt[collection]; sealed {
		return fmt.Errorf("stash: collection %q is sealed", collection)
	}
	s.collections[collection] = append(s.collections[collection], updates...)
	return nil
}

func (s *MemoryStash) Seal(collection string, timestamp int64) error {
	if prev, ok := s.sealedAt[collection]; ok && timestamp < prev {
		return fmt.Errorf("stash: collection %q already sealed at a later timestamp", collection)
	}
	s.sealedAt[collection] = timestamp
	return nil
}

// Bindings returns the bindings recorded for collection, for test
// assertions.
func (s *MemoryStash) Bindings(collection string) []TimestampBinding {
	return s.collections[collection]
}

// SealedAt reports the timestamp a collection was sealed at, and whether
// it has been sealed.
func (s *MemoryStash) SealedAt(collection string) (int64, bool) {
	ts, ok := s.sealedAt[collection]
	return ts, ok
}
