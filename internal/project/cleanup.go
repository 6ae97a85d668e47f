package project

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob patterns for the temporary artifacts cleanup removes.
var (
	cleanupDirPatterns = []string{
		"**/__pycache__",
		"**/.pytest_cache",
		"**/.mypy_cache",
	}
	cleanupFilePatterns = []string{
		"**/*.pyc",
		"**/*.pyo",
	}
)

// Cleanup removes common temporary directories and files below root.
// It keeps going past per-entry failures and reports them joined, so a
// single permission problem does not abort the sweep.
func Cleanup(root string) (removedDirs, removedFiles []string, err error) {
	fsys := os.DirFS(root)
	var errs []error

	for _, pattern := range cleanupDirPatterns {
		matches, globErr := doublestar.Glob(fsys, pattern)
		if globErr != nil {
			errs = append(errs, globErr)
			continue
		}
		for _, match := range matches {
			full := filepath.Join(root, filepath.FromSlash(match))
			if rmErr := os.RemoveAll(full); rmErr != nil {
				errs = append(errs, rmErr)
				continue
			}
			removedDirs = append(removedDirs, full)
		}
	}

	for _, pattern := range cleanupFilePatterns {
		matches, globErr := doublestar.Glob(fsys, pattern)
		if globErr != nil {
			errs = append(errs, globErr)
			continue
		}
		for _, match := range matches {
			full := filepath.Join(root, filepath.FromSlash(match))
			if rmErr := os.Remove(full); rmErr != nil {
				// Files inside directories removed above are already gone.
				if os.IsNotExist(rmErr) {
					continue
				}
				errs = append(errs, rmErr)
				continue
			}
			removedFiles = append(removedFiles, full)
		}
	}

	sort.Strings(removedDirs)
	sort.Strings(removedFiles)
	return removedDirs, removedFiles, errors.Join(errs...)
}
