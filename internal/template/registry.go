package template

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

//go:embed templates/*.yaml
var builtinFS embed.FS

// NotFoundError reports that no template with the requested name exists.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template %q not found", e.Name)
}

// VersionNotFoundError reports that the template exists but not at the
// requested version.
type VersionNotFoundError struct {
	Name    string
	Version string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("template %q has no version %q", e.Name, e.Version)
}

// Registry holds the built-in templates, keyed by name with versions
// ordered descending. Read-only after construction.
type Registry struct {
	byName map[string][]*Template
}

// NewRegistry builds the registry from the embedded built-in bundles.
func NewRegistry() (*Registry, error) {
	return newRegistryFromFS(builtinFS, "templates")
}

// newRegistryFromFS builds a registry from *.yaml bundles under dir in
// fsys. Split out from NewRegistry for tests.
func newRegistryFromFS(fsys fs.FS, dir string) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading template directory %s: %w", dir, err)
	}

	r := &Registry{byName: make(map[string][]*Template)}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		path := dir + "/" + entry.Name()
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading template bundle %s: %w", path, err)
		}

		tpl, err := parseBundle(data, path)
		if err != nil {
			return nil, err
		}

		for _, existing := range r.byName[tpl.Name] {
			if existing.Version == tpl.Version {
				return nil, fmt.Errorf("template bundle %s: duplicate %s@%s", path, tpl.Name, tpl.Version)
			}
		}
		r.byName[tpl.Name] = append(r.byName[tpl.Name], tpl)
	}

	// Order versions descending so index 0 is always the latest.
	for name, versions := range r.byName {
		sort.Slice(versions, func(i, j int) bool {
			vi := semver.MustParse(versions[i].Version)
			vj := semver.MustParse(versions[j].Version)
			return vi.GreaterThan(vj)
		})
		r.byName[name] = versions
	}

	return r, nil
}

// parseBundle validates and unmarshals one bundle, then enforces the
// definition invariants that the schema alone cannot express.
func parseBundle(data []byte, path string) (*Template, error) {
	result, err := ValidateBundle(data)
	if err != nil {
		return nil, fmt.Errorf("validating template bundle %s: %w", path, err)
	}
	if !result.Valid {
		issue := result.Issues[0]
		return nil, fmt.Errorf("template bundle %s is invalid: %s: %s", path, issue.Path, issue.Message)
	}

	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("parsing template bundle %s: %w", path, err)
	}

	if _, err := semver.NewVersion(tpl.Version); err != nil {
		return nil, fmt.Errorf("template bundle %s: invalid version %q: %w", path, tpl.Version, err)
	}

	if err := checkDefinition(&tpl); err != nil {
		return nil, fmt.Errorf("template bundle %s: %w", path, err)
	}

	return &tpl, nil
}

// checkDefinition enforces the bundle invariants: unique local file
// paths, valid modes, and full placeholder coverage so that
// missing-parameter detection at render time is exhaustive.
func checkDefinition(tpl *Template) error {
	seen := make(map[string]bool)
	for _, f := range tpl.Files {
		pathTokens := Tokens(f.Path)
		// Token-bearing paths are escape-checked at render time once
		// parameters are substituted; static paths are checked here.
		if len(pathTokens) == 0 && !filepath.IsLocal(f.Path) {
			return fmt.Errorf("file path %q escapes the target root", f.Path)
		}
		clean := filepath.Clean(filepath.FromSlash(f.Path))
		if seen[clean] {
			return fmt.Errorf("duplicate file path %q", f.Path)
		}
		seen[clean] = true

		if _, err := f.FileMode(); err != nil {
			return err
		}

		for _, name := range append(pathTokens, Tokens(f.Content)...) {
			if _, ok := tpl.Placeholder(name); !ok {
				return fmt.Errorf("file %s references undeclared placeholder %q", f.Path, name)
			}
		}
	}

	declared := make(map[string]bool)
	for _, p := range tpl.Placeholders {
		if declared[p.Name] {
			return fmt.Errorf("duplicate placeholder %q", p.Name)
		}
		declared[p.Name] = true
		if p.Required && p.Default != "" {
			return fmt.Errorf("placeholder %q is required but declares a default", p.Name)
		}
	}

	return nil
}

// Resolve returns the template with the given name and version. An
// empty version resolves to the highest semver. Fails with
// *NotFoundError or *VersionNotFoundError.
func (r *Registry) Resolve(name, version string) (*Template, error) {
	versions, ok := r.byName[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	if version == "" {
		return versions[0], nil
	}

	want, err := semver.NewVersion(version)
	if err != nil {
		return nil, &VersionNotFoundError{Name: name, Version: version}
	}
	for _, tpl := range versions {
		if semver.MustParse(tpl.Version).Equal(want) {
			return tpl, nil
		}
	}
	return nil, &VersionNotFoundError{Name: name, Version: version}
}

// List returns every (name, version) pair, lexicographic by name and
// descending by version within a name.
func (r *Registry) List() []Info {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	var infos []Info
	for _, name := range names {
		for _, tpl := range r.byName[name] {
			infos = append(infos, Info{
				Name:        tpl.Name,
				Version:     tpl.Version,
				Description: tpl.Description,
			})
		}
	}
	return infos
}
