package manifeststore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// Store file names under the project root.
const (
	StoreDir     = ".devautomator"
	ManifestFile = "manifest.yaml"
	LockFile     = "lock"
)

// currentVersion is the manifest format version written by this build.
const currentVersion = 1

// Entry records what was last machine-generated for one target path.
type Entry struct {
	Fingerprint     string    `yaml:"fingerprint"`
	TemplateName    string    `yaml:"template"`
	TemplateVersion string    `yaml:"template_version"`
	GeneratedAt     time.Time `yaml:"generated_at"`
}

// CorruptError reports an unreadable or unparseable manifest file. It
// is surfaced instead of discarding the store so drift history is never
// silently lost.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("manifest %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// manifestDoc is the on-disk YAML shape. Keeping paths as map keys
// makes the file diffable by hand.
type manifestDoc struct {
	Version int              `yaml:"version"`
	Files   map[string]Entry `yaml:"files"`
}

// Store holds the manifest for one project root, read fully into
// memory at command start and flushed after the reconciler finishes.
type Store struct {
	path    string
	entries map[string]Entry
}

// Path returns the manifest file path for a project root.
func Path(root string) string {
	return filepath.Join(root, StoreDir, ManifestFile)
}

// Load reads the manifest for root. A missing file yields an empty
// store; anything unreadable or unparseable yields *CorruptError.
func Load(root string) (*Store, error) {
	path := Path(root)
	s := &Store{
		path:    path,
		entries: make(map[string]Entry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, &CorruptError{Path: path, Err: err}
	}

	var doc manifestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}
	if doc.Version > currentVersion {
		return nil, &CorruptError{Path: path, Err: fmt.Errorf("unsupported manifest version %d", doc.Version)}
	}
	for p, e := range doc.Files {
		if e.Fingerprint == "" {
			return nil, &CorruptError{Path: path, Err: fmt.Errorf("entry %s has no fingerprint", p)}
		}
		s.entries[p] = e
	}

	return s, nil
}

// Get returns the entry for a target path.
func (s *Store) Get(path string) (Entry, bool) {
	e, ok := s.entries[path]
	return e, ok
}

// Put records an entry for a target path. Most recent write wins.
func (s *Store) Put(path string, e Entry) {
	s.entries[path] = e
}

// All returns a copy of every entry keyed by target path.
func (s *Store) All() map[string]Entry {
	out := make(map[string]Entry, len(s.entries))
	for p, e := range s.entries {
		out[p] = e
	}
	return out
}

// Len returns the number of tracked paths.
func (s *Store) Len() int { return len(s.entries) }

// Flush writes the manifest back to disk. The write goes through a
// temp file and rename so a crash mid-flush cannot truncate the
// previous manifest.
func (s *Store) Flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}

	doc := manifestDoc{
		Version: currentVersion,
		Files:   s.entries,
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing manifest: %w", err)
	}
	return nil
}
