package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TreeDocFile is the file name WriteTreeDoc generates.
const TreeDocFile = "README_generated.md"

// WriteTreeDoc scans the directory tree at root and writes a Markdown
// summary of its structure to README_generated.md in root. Hidden
// directories (.git and friends) are skipped. Returns the path of the
// generated file.
func WriteTreeDoc(root string) (string, error) {
	lines := []string{"# Project Documentation", "", "## Directory Structure", ""}

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if hasHiddenElement(rel) {
			return filepath.SkipDir
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}

		var dirs, files []string
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".") {
				continue
			}
			if e.IsDir() {
				dirs = append(dirs, e.Name())
			} else {
				files = append(files, e.Name())
			}
		}
		sort.Strings(dirs)
		sort.Strings(files)

		lines = append(lines, fmt.Sprintf("### %s", filepath.ToSlash(rel)))
		for _, d := range dirs {
			lines = append(lines, fmt.Sprintf("- **Directory:** %s", d))
		}
		for _, f := range files {
			lines = append(lines, fmt.Sprintf("- File: %s", f))
		}
		lines = append(lines, "")
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("scanning project tree: %w", err)
	}

	out := filepath.Join(root, TreeDocFile)
	if err := os.WriteFile(out, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", TreeDocFile, err)
	}
	return out, nil
}

// hasHiddenElement reports whether any element of the relative path
// starts with a dot.
func hasHiddenElement(rel string) bool {
	if rel == "." {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
