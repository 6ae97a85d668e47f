package manifeststore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrLockHeld indicates another invocation holds the project lock.
var ErrLockHeld = errors.New("project root is locked by another invocation")

// Lock is an advisory per-project-root lock. Concurrent invocations
// against the same root are unsupported; the lock only turns the
// undefined behavior into a fast, explicit failure.
type Lock struct {
	path string
	file *os.File
}

// NewLock returns the lock for a project root. It does not acquire.
func NewLock(root string) *Lock {
	return &Lock{path: filepath.Join(root, StoreDir, LockFile)}
}

// Acquire takes the lock, failing with ErrLockHeld if another process
// holds it.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("creating lock directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("opening lock file: %w", err)
	}

	if err := platformLock(f); err != nil {
		f.Close()
		return err
	}

	l.file = f
	return nil
}

// Release drops the lock and removes the lock file. Safe to call on an
// unacquired lock.
func (l *Lock) Release() error {
	if l.file == nil {
		return nil
	}

	platformUnlock(l.file)
	err := l.file.Close()
	l.file = nil
	os.Remove(l.path)
	return err
}
