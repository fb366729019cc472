package catalogstore

import (
	"testing"

	"github.com/coralstream/catalogstore/internal/catalogstore/migrations"
)

// TestMigrationStagingMatchesDirect checks that applying migrations 0..j
// directly yields the same schema rows and the same number of compute
// instances as applying 0..i, closing and reopening, then applying i+1..j.
func TestMigrationStagingMatchesDirect(t *testing.T) {
	full := migrations.All
	const i, j = 4, 9 // stop partway through, then resume to a later index

	// Direct: apply 0..j in one open.
	directDir := t.TempDir()
	directStash := NewMemoryStash()
	migrations.All = full[:j+1]
	hDirect, err := Open(directDir, nil, directStash)
	migrations.All = full
	if err != nil {
		t.Fatalf("direct Open: %v", err)
	}
	directSchemas, err := hDirect.LoadSchemas()
	if err != nil {
		t.Fatalf("direct LoadSchemas: %v", err)
	}
	directInstances, err := hDirect.LoadComputeInstances()
	if err != nil {
		t.Fatalf("direct LoadComputeInstances: %v", err)
	}
	hDirect.Close()

	// Staged: apply 0..i, close, reopen and apply i+1..j.
	stagedDir := t.TempDir()
	stagedStash := NewMemoryStash()

	migrations.All = full[:i+1]
	hStaged1, err := Open(stagedDir, nil, stagedStash)
	if err != nil {
		migrations.All = full
		t.Fatalf("staged Open (0..%d): %v", i, err)
	}
	hStaged1.Close()

	migrations.All = full[:j+1]
	hStaged2, err := Open(stagedDir, nil, stagedStash)
	migrations.All = full
	if err != nil {
		t.Fatalf("staged Open (resume to %d): %v", j, err)
	}
	defer hStaged2.Close()

	stagedSchemas, err := hStaged2.LoadSchemas()
	if err != nil {
		t.Fatalf("staged LoadSchemas: %v", err)
	}
	stagedInstances, err := hStaged2.LoadComputeInstances()
	if err != nil {
		t.Fatalf("staged LoadComputeInstances: %v", err)
	}

	if len(directSchemas) != len(stagedSchemas) {
		t.Fatalf("schema count mismatch: direct=%d staged=%d", len(directSchemas), len(stagedSchemas))
	}
	for k := range directSchemas {
		a, b := directSchemas[k], stagedSchemas[k]
		sameDB := (a.DatabaseID == nil && b.DatabaseID == nil) ||
			(a.DatabaseID != nil && b.DatabaseID != nil && *a.DatabaseID == *b.DatabaseID)
		if a.ID != b.ID || a.Name != b.Name || !sameDB {
			t.Fatalf("schema %d mismatch: direct=%+v staged=%+v", k, a, b)
		}
	}
	if len(directInstances) != len(stagedInstances) {
		t.Fatalf("compute instance count mismatch: direct=%d staged=%d", len(directInstances), len(stagedInstances))
	}
}
