//go:build unix

package manifeststore

import (
	"fmt"
	"os"
	"syscall"
)

// platformLock acquires an exclusive non-blocking flock on the file.
func platformLock(f *os.File) error {
	err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err != nil {
		if err == syscall.EWOULDBLOCK {
			return ErrLockHeld
		}
		return fmt.Errorf("acquiring lock: %w", err)
	}
	return nil
}

// platformUnlock releases the flock.
func platformUnlock(f *os.File) {
	syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}
