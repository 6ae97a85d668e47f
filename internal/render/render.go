package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devautomator-labs/devautomator/internal/template"
)

// RenderedFile is one concrete file a template produces after
// parameter substitution. Paths are slash-separated and relative to
// the target root.
type RenderedFile struct {
	Path            string
	Content         []byte
	Mode            os.FileMode
	TemplateName    string
	TemplateVersion string
	Fingerprint     string
}

// MissingParameterError reports a required placeholder with no supplied
// value. Detected before any file is rendered.
type MissingParameterError struct {
	Template string
	Name     string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("template %s requires parameter %q", e.Template, e.Name)
}

// PathEscapeError reports a resolved target path that would land
// outside the target root.
type PathEscapeError struct {
	Path string
}

func (e *PathEscapeError) Error() string {
	return fmt.Sprintf("rendered path %q escapes the target root", e.Path)
}

// Render expands tpl against params into the ordered file plan for
// targetRoot. It is a pure function: no filesystem or manifest access.
// All parameter and path checks run before any file is materialized,
// so a failing render produces no partial plan.
func Render(tpl *template.Template, params map[string]string, targetRoot string) ([]RenderedFile, error) {
	// Effective values: declared defaults first, then caller-supplied
	// values. Supplied keys with no matching placeholder are ignored so
	// that user-level default params can be applied across templates.
	values := make(map[string]string, len(tpl.Placeholders))
	for _, p := range tpl.Placeholders {
		if !p.Required {
			values[p.Name] = p.Default
		}
	}
	for name, v := range params {
		if _, ok := tpl.Placeholder(name); ok {
			values[name] = v
		}
	}

	// Every required placeholder must be supplied before anything is
	// rendered. Placeholders are declared exhaustively (the registry
	// rejects undeclared tokens), so this check is total.
	for _, p := range tpl.Placeholders {
		if _, ok := values[p.Name]; !ok {
			return nil, &MissingParameterError{Template: tpl.Name, Name: p.Name}
		}
	}

	resolve := func(name string) (string, bool) {
		v, ok := values[name]
		return v, ok
	}

	files := make([]RenderedFile, 0, len(tpl.Files))
	for _, entry := range tpl.Files {
		path, err := template.ExpandTokens(entry.Path, resolve)
		if err != nil {
			return nil, fmt.Errorf("rendering path for %s: %w", entry.Path, err)
		}
		path = filepath.ToSlash(filepath.Clean(filepath.FromSlash(path)))
		// Guards against parameter-injected ".." segments and absolute
		// paths; the joined path must stay inside targetRoot.
		if !filepath.IsLocal(filepath.FromSlash(path)) {
			return nil, &PathEscapeError{Path: path}
		}
		root := filepath.Clean(targetRoot)
		joined := filepath.Join(root, filepath.FromSlash(path))
		rel, err := filepath.Rel(root, joined)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, &PathEscapeError{Path: path}
		}

		content, err := template.ExpandTokens(entry.Content, resolve)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", entry.Path, err)
		}

		mode, err := entry.FileMode()
		if err != nil {
			return nil, err
		}

		files = append(files, RenderedFile{
			Path:            path,
			Content:         []byte(content),
			Mode:            mode,
			TemplateName:    tpl.Name,
			TemplateVersion: tpl.Version,
			Fingerprint:     Fingerprint([]byte(content)),
		})
	}

	// The per-template uniqueness invariant can break once parameters
	// flow into paths; two entries must never resolve to the same file.
	seen := make(map[string]bool)
	for i, f := range files {
		if seen[f.Path] {
			return nil, fmt.Errorf("entry %q resolves to the already-rendered path %s", tpl.Files[i].Path, f.Path)
		}
		seen[f.Path] = true
	}

	return files, nil
}
