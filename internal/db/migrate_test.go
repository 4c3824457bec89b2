package db

import "testing"

func TestMigrationVersionsAreOrdered(t *testing.T) {
	versions, err := migrationVersions()
	if err != nil {
		t.Fatalf("migrationVersions failed: %v", err)
	}
	if len(versions) == 0 {
		t.Fatalf("expected embedded migrations, got %v", versions)
	}
	if versions[0] != "001_ledger_snapshots.sql" {
		t.Errorf("expected 001_ledger_snapshots.sql first, got %s", versions[0])
	}
	for i := 1; i < len(versions); i++ {
		if versions[i-1] >= versions[i] {
			t.Errorf("migrations out of order: %s before %s", versions[i-1], versions[i])
		}
	}
}
