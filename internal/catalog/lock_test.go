package catalog_test

import (
	"path/filepath"
	"testing"

	"clipgrid/internal/catalog"
)

func TestAcquireImportLockExcludesSecondHolder(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	lock, err := catalog.AcquireImportLock(dbPath)
	if err != nil {
		t.Fatalf("AcquireImportLock failed: %v", err)
	}
	defer func() { _ = lock.Release() }()

	if _, err := catalog.AcquireImportLock(dbPath); err == nil {
		t.Fatal("expected second lock acquisition to fail")
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	again, err := catalog.AcquireImportLock(dbPath)
	if err != nil {
		t.Fatalf("expected lock reacquisition after release, got %v", err)
	}
	_ = again.Release()
}

func TestImportLockNilSafe(t *testing.T) {
	var lock *catalog.ImportLock
	if err := lock.Release(); err != nil {
		t.Fatalf("nil Release failed: %v", err)
	}
	if lock.Path() != "" {
		t.Fatalf("expected empty path on nil lock, got %q", lock.Path())
	}
}
