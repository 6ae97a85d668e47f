package template

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// FileEntry is one parameterized file within a template bundle.
type FileEntry struct {
	Path    string `yaml:"path" json:"path"`
	Mode    string `yaml:"mode,omitempty" json:"mode,omitempty"`
	Content string `yaml:"content" json:"content"`
}

// Placeholder declares a substitution token that a template's file
// contents may reference. A placeholder is either required (the caller
// must supply it) or carries a default value.
type Placeholder struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
}

// Template is a named, versioned definition of a parameterized file
// tree. Instances are built once from the embedded bundles and are
// immutable afterwards.
type Template struct {
	Name         string        `yaml:"name" json:"name"`
	Version      string        `yaml:"version" json:"version"`
	Description  string        `yaml:"description,omitempty" json:"description,omitempty"`
	Placeholders []Placeholder `yaml:"placeholders,omitempty" json:"placeholders,omitempty"`
	Files        []FileEntry   `yaml:"files" json:"files"`
}

// Info identifies one registry entry for listings.
type Info struct {
	Name        string
	Version     string
	Description string
}

// DefaultFileMode is applied when a file entry declares no mode.
const DefaultFileMode os.FileMode = 0644

// FileMode parses the entry's octal mode string (e.g. "0755"). An
// empty mode yields DefaultFileMode.
func (e FileEntry) FileMode() (os.FileMode, error) {
	if e.Mode == "" {
		return DefaultFileMode, nil
	}
	n, err := strconv.ParseUint(e.Mode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing file mode %q for %s: %w", e.Mode, e.Path, err)
	}
	return os.FileMode(n), nil
}

// Placeholder returns the declared placeholder with the given name.
func (t *Template) Placeholder(name string) (Placeholder, bool) {
	for _, p := range t.Placeholders {
		if p.Name == name {
			return p, true
		}
	}
	return Placeholder{}, false
}

// tokenPattern matches ${name} substitution tokens. The delimited form
// keeps tokens distinct from ordinary file content such as shell or
// Terraform syntax.
var tokenPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Tokens returns the placeholder names referenced by content, in order
// of first appearance.
func Tokens(content string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range tokenPattern.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// ExpandTokens replaces every ${name} token in content using resolve.
// resolve reports whether a value exists for the name; the first
// unresolved name aborts the expansion.
func ExpandTokens(content string, resolve func(name string) (string, bool)) (string, error) {
	var missing string
	out := tokenPattern.ReplaceAllStringFunc(content, func(tok string) string {
		if missing != "" {
			return tok
		}
		name := tokenPattern.FindStringSubmatch(tok)[1]
		v, ok := resolve(name)
		if !ok {
			missing = name
			return tok
		}
		return v
	})
	if missing != "" {
		return "", fmt.Errorf("unresolved placeholder %q", missing)
	}
	return out, nil
}
