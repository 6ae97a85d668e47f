//go:build integration

package integration_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/devautomator-labs/devautomator/internal/manifeststore"
	"github.com/devautomator-labs/devautomator/internal/reconcile"
	"github.com/devautomator-labs/devautomator/internal/render"
	"github.com/devautomator-labs/devautomator/internal/template"
)

// scaffold drives one full registry -> render -> plan -> apply -> flush
// cycle against root, the same pipeline the scaffold command runs.
func scaffold(t *testing.T, root, name, version string, params map[string]string, policy reconcile.Policy) *reconcile.Report {
	t.Helper()

	registry, err := template.NewRegistry()
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	tpl, err := registry.Resolve(name, version)
	if err != nil {
		t.Fatalf("resolving %s: %v", name, err)
	}
	rendered, err := render.Render(tpl, params, root)
	if err != nil {
		t.Fatalf("rendering: %v", err)
	}

	store, err := manifeststore.Load(root)
	if err != nil {
		t.Fatalf("loading manifest: %v", err)
	}
	plan, err := reconcile.Plan(rendered, store, root)
	if err != nil {
		t.Fatalf("planning: %v", err)
	}
	report, err := reconcile.Apply(plan, store, root, policy)
	if err != nil {
		t.Fatalf("applying: %v", err)
	}
	if !policy.DryRun {
		if err := store.Flush(); err != nil {
			t.Fatalf("flushing manifest: %v", err)
		}
	}
	return report
}

func TestScaffoldLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	root := env.ProjectDir
	params := map[string]string{"project": "acme"}

	// Fresh scaffold writes the full file set and the manifest.
	report := scaffold(t, root, "python-cli", "", params, reconcile.Policy{})
	if report.Written() == 0 {
		t.Fatal("fresh scaffold wrote nothing")
	}
	assertFileContains(t, filepath.Join(root, "README.md"), "# acme")
	assertFileContains(t, filepath.Join(root, "setup.py"), "name='acme'")
	assertFileExists(t, manifeststore.Path(root))

	// Second run is a no-op.
	report = scaffold(t, root, "python-cli", "", params, reconcile.Policy{})
	if report.Written() != 0 {
		t.Errorf("repeat scaffold wrote %d paths", report.Written())
	}

	// A hand edit survives a plain re-run and is reported.
	edited := "# acme\n\nhand edited\n"
	writeFile(t, filepath.Join(root, "README.md"), edited)
	report = scaffold(t, root, "python-cli", "", params, reconcile.Policy{})
	if len(report.Attention()) != 1 {
		t.Fatalf("attention = %v, want the edited README", report.Attention())
	}
	assertFileEquals(t, filepath.Join(root, "README.md"), edited)

	// Force regenerates it and the manifest catches up, so the next
	// plain run is clean again.
	report = scaffold(t, root, "python-cli", "", params, reconcile.Policy{Force: true})
	if len(report.Attention()) != 0 {
		t.Errorf("forced run reported attention: %v", report.Attention())
	}
	assertFileContains(t, filepath.Join(root, "README.md"), "scaffolded with DevAutomator")

	report = scaffold(t, root, "python-cli", "", params, reconcile.Policy{})
	if report.Written() != 0 || len(report.Attention()) != 0 {
		t.Errorf("post-force run not clean: wrote %d, attention %v", report.Written(), report.Attention())
	}
}

func TestScaffoldUpgradeAcrossVersions(t *testing.T) {
	env := setupTestEnv(t)
	root := env.ProjectDir
	params := map[string]string{"project": "acme"}

	scaffold(t, root, "python-cli", "1.0.0", params, reconcile.Policy{})
	assertFileNotExists(t, filepath.Join(root, ".gitignore"))

	// Moving to 1.1.0 adds .gitignore; untouched files regenerate only
	// if their content changed, which for this pair it did not.
	report := scaffold(t, root, "python-cli", "1.1.0", params, reconcile.Policy{})
	assertFileExists(t, filepath.Join(root, ".gitignore"))
	for _, res := range report.Results {
		if res.Path == ".gitignore" {
			if res.Decision != reconcile.Create {
				t.Errorf(".gitignore decision = %s, want create", res.Decision)
			}
			continue
		}
		if res.Decision != reconcile.Unchanged {
			t.Errorf("%s: decision = %s, want unchanged", res.Path, res.Decision)
		}
	}

	// The manifest now records the new version for the added file.
	store, err := manifeststore.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	entry, ok := store.Get(".gitignore")
	if !ok {
		t.Fatal(".gitignore not tracked after upgrade")
	}
	if entry.TemplateVersion != "1.1.0" {
		t.Errorf("tracked version = %s, want 1.1.0", entry.TemplateVersion)
	}
}

func TestScaffoldDryRunLeavesNoTrace(t *testing.T) {
	env := setupTestEnv(t)
	root := env.ProjectDir

	scaffold(t, root, "docker", "", map[string]string{"project": "acme"}, reconcile.Policy{DryRun: true})

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run created entries: %v", entries)
	}
	assertFileNotExists(t, manifeststore.Path(root))
}

func TestScaffoldCorruptManifestRefusesToRun(t *testing.T) {
	env := setupTestEnv(t)
	root := env.ProjectDir

	writeFile(t, manifeststore.Path(root), "{{{{ not yaml")

	_, err := manifeststore.Load(root)
	var corrupt *manifeststore.CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("Load error = %v, want *CorruptError", err)
	}
}

func TestScaffoldLockExcludesConcurrentRun(t *testing.T) {
	env := setupTestEnv(t)
	root := env.ProjectDir

	first := manifeststore.NewLock(root)
	if err := first.Acquire(); err != nil {
		t.Fatalf("first Acquire error: %v", err)
	}
	defer first.Release()

	second := manifeststore.NewLock(root)
	err := second.Acquire()
	if err == nil {
		second.Release()
		t.Skip("platform lock is advisory only on this OS")
	}
	if !errors.Is(err, manifeststore.ErrLockHeld) {
		t.Errorf("second Acquire error = %v, want ErrLockHeld", err)
	}
}
