package project

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devautomator-labs/devautomator/internal/toolrunner"
)

// Requirement is one pinned entry from a requirements.txt.
type Requirement struct {
	Name string
	Spec string // version constraint as written, may be empty
}

// InstalledPackage matches pip's `list --format=json` row shape.
type InstalledPackage struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Latest  string `json:"latest_version,omitempty"`
}

// DepReport summarizes the state of a project's declared dependencies.
type DepReport struct {
	Requirements []Requirement
	Missing      []string           // declared but not installed
	Outdated     []InstalledPackage // declared, installed, newer available
}

// versionOps are the comparison operators a requirement line may carry.
var versionOps = []string{"==", ">=", "<=", "~=", "!=", ">", "<"}

// ReadRequirements parses a requirements.txt file. Comment and blank
// lines are skipped; editable/URL installs are ignored.
func ReadRequirements(path string) ([]Requirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var reqs []Requirement
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}

		name, spec := line, ""
		for _, op := range versionOps {
			if idx := strings.Index(line, op); idx >= 0 {
				name = strings.TrimSpace(line[:idx])
				spec = strings.TrimSpace(line[idx:])
				break
			}
		}
		// Strip extras like requests[socks].
		if idx := strings.Index(name, "["); idx >= 0 {
			name = name[:idx]
		}
		if name == "" {
			continue
		}
		reqs = append(reqs, Requirement{Name: name, Spec: spec})
	}
	return reqs, nil
}

// CheckDependencies reads dir/requirements.txt and delegates to pip to
// report which declared dependencies are missing or outdated.
func CheckDependencies(ctx context.Context, runner *toolrunner.Runner, dir string) (*DepReport, error) {
	reqs, err := ReadRequirements(filepath.Join(dir, "requirements.txt"))
	if err != nil {
		return nil, err
	}

	installed, err := pipList(ctx, runner)
	if err != nil {
		return nil, err
	}
	outdated, err := pipList(ctx, runner, "--outdated")
	if err != nil {
		return nil, err
	}

	installedByName := indexPackages(installed)
	outdatedByName := indexPackages(outdated)

	report := &DepReport{Requirements: reqs}
	for _, req := range reqs {
		key := normalizePackageName(req.Name)
		if _, ok := installedByName[key]; !ok {
			report.Missing = append(report.Missing, req.Name)
			continue
		}
		if pkg, ok := outdatedByName[key]; ok {
			report.Outdated = append(report.Outdated, pkg)
		}
	}
	return report, nil
}

// pipList runs `pip list --format=json` with extra args and parses the
// result.
func pipList(ctx context.Context, runner *toolrunner.Runner, extra ...string) ([]InstalledPackage, error) {
	args := append([]string{"list", "--format=json"}, extra...)
	out, err := runner.Capture(ctx, "pip", args...)
	if err != nil {
		return nil, err
	}
	if out.ExitCode != 0 {
		return nil, toolrunner.FailureDiagnostic("pip", out)
	}

	var pkgs []InstalledPackage
	if err := json.Unmarshal([]byte(out.Stdout), &pkgs); err != nil {
		return nil, fmt.Errorf("parsing pip output: %w", err)
	}
	return pkgs, nil
}

func indexPackages(pkgs []InstalledPackage) map[string]InstalledPackage {
	idx := make(map[string]InstalledPackage, len(pkgs))
	for _, p := range pkgs {
		idx[normalizePackageName(p.Name)] = p
	}
	return idx
}

// normalizePackageName applies PEP 503 normalization: lowercase with
// runs of -, _, . collapsed to a single dash.
func normalizePackageName(name string) string {
	name = strings.ToLower(name)
	var b strings.Builder
	prevDash := false
	for _, r := range name {
		if r == '-' || r == '_' || r == '.' {
			if !prevDash {
				b.WriteByte('-')
			}
			prevDash = true
			continue
		}
		prevDash = false
		b.WriteRune(r)
	}
	return b.String()
}
