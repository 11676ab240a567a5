package catalog

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ImportLock serializes catalog imports so concurrent CLI invocations cannot
// interleave writes into the same database.
type ImportLock struct {
	lock *flock.Flock
	path string
}

// AcquireImportLock takes the import lock next to the database file. It
// fails immediately when another import holds it.
func AcquireImportLock(dbPath string) (*ImportLock, error) {
	lockPath := dbPath + ".lock"
	lock := flock.New(lockPath)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire import lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another catalog import is already running")
	}
	return &ImportLock{lock: lock, path: lockPath}, nil
}

// Release gives the lock back. Safe to call on a nil lock.
func (l *ImportLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release import lock: %w", err)
	}
	return nil
}

// Path returns the lock file location.
func (l *ImportLock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}
