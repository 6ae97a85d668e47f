package reconcile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devautomator-labs/devautomator/internal/manifeststore"
	"github.com/devautomator-labs/devautomator/internal/render"
)

// Decision classifies one planned file against the manifest and the
// on-disk state. Decisions are transient; they are recomputed on every
// invocation and never persisted.
type Decision int

const (
	// Create: no manifest entry, no existing file.
	Create Decision = iota
	// Unchanged: tracked, on disk as generated, and the new render is identical.
	Unchanged
	// UserModified: tracked, but the on-disk content no longer matches
	// what was last generated. Never overwritten automatically.
	UserModified
	// StaleRegenerate: tracked, untouched on disk, but the new render
	// differs. Safe to overwrite.
	StaleRegenerate
	// Conflict: an untracked file already occupies the target path.
	Conflict
)

func (d Decision) String() string {
	switch d {
	case Create:
		return "create"
	case Unchanged:
		return "unchanged"
	case UserModified:
		return "user-modified"
	case StaleRegenerate:
		return "stale-regenerate"
	case Conflict:
		return "conflict"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// PlannedFile pairs a rendered file with its decision.
type PlannedFile struct {
	File     render.RenderedFile
	Decision Decision
}

// Plan classifies every rendered file against the manifest store and
// the filesystem under root. It performs no writes.
//
// The ordering of the rules encodes the core safety invariant: a file
// is only ever overwritten automatically if its on-disk content still
// matches what was last machine-generated for that exact path.
func Plan(rendered []render.RenderedFile, store *manifeststore.Store, root string) ([]PlannedFile, error) {
	plan := make([]PlannedFile, 0, len(rendered))

	for _, f := range rendered {
		onDisk, exists, err := diskFingerprint(filepath.Join(root, filepath.FromSlash(f.Path)))
		if err != nil {
			return nil, fmt.Errorf("inspecting %s: %w", f.Path, err)
		}

		entry, tracked := store.Get(f.Path)

		var d Decision
		switch {
		case !tracked && !exists:
			d = Create
		case !tracked && exists:
			d = Conflict
		case exists && onDisk == entry.Fingerprint && f.Fingerprint == entry.Fingerprint:
			d = Unchanged
		case exists && onDisk == entry.Fingerprint:
			d = StaleRegenerate
		default:
			// Tracked but the on-disk content diverged, including the
			// case where the user deleted the generated file outright.
			d = UserModified
		}

		plan = append(plan, PlannedFile{File: f, Decision: d})
	}

	return plan, nil
}

// diskFingerprint returns the content fingerprint of the file at path,
// and whether the file exists at all.
func diskFingerprint(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return render.Fingerprint(data), true, nil
}
