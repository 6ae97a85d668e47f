//go:build windows

package manifeststore

import "os"

// Windows has no flock; the open handle itself is the advisory signal,
// which is enough for the unsupported-concurrency contract.
func platformLock(_ *os.File) error { return nil }

func platformUnlock(_ *os.File) {}
