package project

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/devautomator-labs/devautomator/internal/toolrunner"
)

// Metrics holds the dashboard's project health snapshot. Every field is
// best effort: an absent tool or repository leaves its section unset.
type Metrics struct {
	TestsCollected int
	TestsKnown     bool

	InGitRepo  bool
	GitBranch  string
	GitChanges int

	DocStatus string
}

// CollectMetrics gathers test, git, and documentation metrics for the
// project at path.
func CollectMetrics(ctx context.Context, runner *toolrunner.Runner, path string) *Metrics {
	m := &Metrics{
		DocStatus: docStatus(path),
	}

	if out, err := runner.Capture(ctx, "pytest", "--collect-only", path); err == nil {
		if n, ok := parseCollected(out.Stdout); ok {
			m.TestsCollected = n
			m.TestsKnown = true
		}
	}

	if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
		m.InGitRepo = true
		if out, err := runner.Capture(ctx, "git", "rev-parse", "--abbrev-ref", "HEAD"); err == nil && out.ExitCode == 0 {
			m.GitBranch = strings.TrimSpace(out.Stdout)
		}
		if out, err := runner.Capture(ctx, "git", "status", "--porcelain"); err == nil && out.ExitCode == 0 {
			m.GitChanges = countLines(out.Stdout)
		}
	}

	return m
}

// parseCollected extracts the collected-test count from pytest
// --collect-only output, e.g. "collected 12 items".
func parseCollected(output string) (int, bool) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "collected") {
			continue
		}
		parts := strings.Fields(line)
		for i, part := range parts {
			if part == "collected" && i+1 < len(parts) {
				if n, err := strconv.Atoi(parts[i+1]); err == nil {
					return n, true
				}
			}
		}
	}
	return 0, false
}

func countLines(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return len(strings.Split(s, "\n"))
}

// docStatus reports whether Sphinx documentation is set up under path.
func docStatus(path string) string {
	docsDir := filepath.Join(path, "docs")
	if _, err := os.Stat(docsDir); err != nil {
		return "Documentation not set up."
	}
	if _, err := os.Stat(filepath.Join(docsDir, "conf.py")); err != nil {
		return "Docs folder exists but 'conf.py' is missing."
	}
	return "Documentation is set up."
}
