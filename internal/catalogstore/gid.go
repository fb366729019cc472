package catalogstore

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// GlobalId is the opaque identifier assigned to every catalog object.
// Only the System and User variants ever cross the persistence boundary;
// Transient and Explain exist solely for in-memory bookkeeping by callers
// (the running query planner, EXPLAIN output) and are never stored.
type GlobalId struct {
	kind  gidKind
	value uint64
}

type gidKind int

const (
	gidSystem gidKind = iota
	gidUser
	gidTransient
	gidExplain
)

// SystemID constructs a GlobalId in the system namespace.
func SystemID(id uint64) GlobalId { return GlobalId{kind: gidSystem, value: id} }

// UserID constructs a GlobalId in the user namespace.
func UserID(id uint64) GlobalId { return GlobalId{kind: gidUser, value: id} }

// TransientID constructs a GlobalId in the transient namespace. Transient
// ids are never persisted.
func TransientID(id uint64) GlobalId { return GlobalId{kind: gidTransient, value: id} }

// ExplainID is the dummy id used for the query currently being explained.
var ExplainID = GlobalId{kind: gidExplain}

// IsSystem reports whether id is in the system namespace.
func (id GlobalId) IsSystem() bool { return id.kind == gidSystem }

// IsUser reports whether id is in the user namespace.
func (id GlobalId) IsUser() bool { return id.kind == gidUser }

// IsTransient reports whether id is in the transient namespace.
func (id GlobalId) IsTransient() bool { return id.kind == gidTransient }

// SystemValue returns the numeric value of a System id. Panics if id is not
// a System id; callers must pre-validate.
func (id GlobalId) SystemValue() uint64 {
	if id.kind != gidSystem {
		panic(fmt.Sprintf("catalogstore: non-system id provided: %s", id))
	}
	return id.value
}

// UserValue returns the numeric value of a User id. Panics if id is not a
// User id.
func (id GlobalId) UserValue() uint64 {
	if id.kind != gidUser {
		panic(fmt.Sprintf("catalogstore: non-user id provided: %s", id))
	}
	return id.value
}

// String renders id using the single-letter prefix convention: s<n>, u<n>,
// t<n>, or "Explained Query" for ExplainID.
func (id GlobalId) String() string {
	switch id.kind {
	case gidSystem:
		return fmt.Sprintf("s%d", id.value)
	case gidUser:
		return fmt.Sprintf("u%d", id.value)
	case gidTransient:
		return fmt.Sprintf("t%d", id.value)
	default:
		return "Explained Query"
	}
}

// ParseGlobalId parses the single-letter-prefixed text form produced by
// String. Returns an error for malformed input.
func ParseGlobalId(s string) (GlobalId, error) {
	if len(s) < 2 {
		return GlobalId{}, fmt.Errorf("couldn't parse id %q", s)
	}
	val, err := strconv.ParseUint(s[1:], 10, 64)
	if err != nil {
		return GlobalId{}, fmt.Errorf("couldn't parse id %q: %w", s, err)
	}
	switch s[0] {
	case 's':
		return SystemID(val), nil
	case 'u':
		return UserID(val), nil
	case 't':
		return TransientID(val), nil
	default:
		return GlobalId{}, fmt.Errorf("couldn't parse id %q", s)
	}
}

// gidWire is the self-describing, tag-named JSON form used for storage. It
// mirrors the original Rust enum's serde-tagged representation so that a
// stored-expression ordering (json_extract(gid, '$.User')) remains exact.
type gidWire struct {
	System *uint64 `json:"System,omitempty"`
	User   *uint64 `json:"User,omitempty"`
}

// encodeGlobalId produces the opaque blob stored in the `items.gid`
// column (system_gid_mapping.id holds a plain integer). Only System and User ids may be
// encoded; Transient and Explain are programmer errors here.
func encodeGlobalId(id GlobalId) ([]byte, error) {
	var wire gidWire
	switch id.kind {
	case gidSystem:
		v := id.value
		wire.System = &v
	case gidUser:
		v := id.value
		wire.User = &v
	default:
		return nil, &CodecError{Err: fmt.Errorf("cannot persist non-system/user id %s", id)}
	}
	b, err := json.Marshal(wire)
	if err != nil {
		return nil, &CodecError{Err: fmt.Errorf("encoding global id: %w", err)}
	}
	return b, nil
}

// decodeGlobalId is the inverse of encodeGlobalId.
func decodeGlobalId(b []byte) (GlobalId, error) {
	var wire gidWire
	if err := json.Unmarshal(b, &wire); err != nil {
		return GlobalId{}, &CodecError{Err: fmt.Errorf("decoding global id: %w", err)}
	}
	switch {
	case wire.System != nil:
		return SystemID(*wire.System), nil
	case wire.User != nil:
		return UserID(*wire.User), nil
	default:
		return GlobalId{}, &CodecError{Err: fmt.Errorf("no recognized variant in global id %q", b)}
	}
}

// sqlGlobalId adapts GlobalId to database/sql's Valuer/Scanner so it can be
// passed directly as a query argument and scanned directly out of a row.
type sqlGlobalId struct {
	GlobalId
}

func (v sqlGlobalId) Value() (driver.Value, error) {
	b, err := encodeGlobalId(v.GlobalId)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (v *sqlGlobalId) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("catalogstore: cannot scan %T into GlobalId", src)
	}
	id, err := decodeGlobalId(b)
	if err != nil {
		return err
	}
	v.GlobalId = id
	return nil
}

// PartitionId identifies a part of a partitioned source. Used only by the
// historical migration that replays timestamp bindings into the stash.
type PartitionId struct {
	isKafka bool
	kafka   int32
}

// KafkaPartition constructs a Kafka partition identifier.
func KafkaPartition(id int32) PartitionId { return PartitionId{isKafka: true, kafka: id} }

// NoPartition is the identifier used by sources with no partitioning.
var NoPartition = PartitionId{}

func (p PartitionId) String() string {
	if p.isKafka {
		return strconv.FormatInt(int64(p.kafka), 10)
	}
	return "none"
}

// ParsePartitionId parses the text form produced by String.
func ParsePartitionId(s string) (PartitionId, error) {
	if s == "none" {
		return NoPartition, nil
	}
	val, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return PartitionId{}, fmt.Errorf("couldn't parse partition id %q: %w", s, err)
	}
	return KafkaPartition(int32(val)), nil
}
