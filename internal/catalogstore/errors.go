package catalogstore

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCorruption is returned by Open when the store-identity header is
// present but does not match the application magic.
var ErrCorruption = errors.New("catalog file has incorrect application_id")

// ErrIdExhaustion is returned by the ID allocator when a namespace's
// counter has reached the maximum signed 64-bit value.
var ErrIdExhaustion = errors.New("id allocator exhausted")

// ErrExperimentalModeRequired is returned when a store that previously
// recorded experimental_mode=true is reopened with an experimental hint of
// false. Reopening with a nil hint does not return it.
var ErrExperimentalModeRequired = errors.New("catalog requires --experimental to unlock previously enabled features")

// ErrExperimentalModeUnavailable is returned when a store that previously
// recorded experimental_mode=false is reopened with an experimental hint of
// true. A store with no recorded value records the hint instead.
var ErrExperimentalModeUnavailable = errors.New("experimental mode is not available once a catalog has initialized without it")

// ObjectKind names the entity family for AlreadyExists/Unknown errors.
type ObjectKind int

const (
	KindDatabase ObjectKind = iota
	KindSchema
	KindRole
	KindComputeInstance
	KindItem
)

func (k ObjectKind) String() string {
	switch k {
	case KindDatabase:
		return "database"
	case KindSchema:
		return "schema"
	case KindRole:
		return "role"
	case KindComputeInstance:
		return "compute instance"
	case KindItem:
		return "item"
	default:
		return "object"
	}
}

// AlreadyExistsError is returned by insert operations when the target name
// already exists within its scope.
type AlreadyExistsError struct {
	Kind ObjectKind
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Name)
}

// UnknownError is returned by update/remove operations that targeted a row
// that does not exist.
type UnknownError struct {
	Kind ObjectKind
	Name string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}

// CodecError wraps a failure to encode or decode a stored column value.
type CodecError struct {
	Err error
}

func (e *CodecError) Error() string { return fmt.Sprintf("codec error: %v", e.Err) }
func (e *CodecError) Unwrap() error { return e.Err }

// isUniqueConstraintError recognizes the underlying store's constraint
// violation so it can be translated into the matching AlreadyExists
// variant. ncruces/go-sqlite3 surfaces SQLite's error text verbatim, so a
// substring match is the stable cross-version way to detect it.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
}

func wrapDBErrorf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
