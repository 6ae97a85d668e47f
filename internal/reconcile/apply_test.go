package reconcile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devautomator-labs/devautomator/internal/render"
)

func applyOne(t *testing.T, root string, f render.RenderedFile, d Decision, policy Policy) (*Report, *Result) {
	t.Helper()
	store := trackedStore(t, root, nil)
	report, err := Apply([]PlannedFile{{File: f, Decision: d}}, store, root, policy)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if len(report.Results) != 1 {
		t.Fatalf("report has %d results, want 1", len(report.Results))
	}
	return report, &report.Results[0]
}

func TestApply_Create(t *testing.T) {
	root := t.TempDir()
	f := rendered("src/app.py", "print('hi')\n")
	f.Mode = 0o755

	store := trackedStore(t, root, nil)
	report, err := Apply([]PlannedFile{{File: f, Decision: Create}}, store, root, Policy{})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if report.Results[0].Action != ActionWritten {
		t.Errorf("action = %s, want written", report.Results[0].Action)
	}
	if report.RunID == "" {
		t.Error("report has no run ID")
	}

	target := filepath.Join(root, "src", "app.py")
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != "print('hi')\n" {
		t.Errorf("written content = %q", data)
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("mode = %o, want 755", info.Mode().Perm())
	}

	entry, ok := store.Get("src/app.py")
	if !ok {
		t.Fatal("written file not recorded in store")
	}
	if entry.Fingerprint != f.Fingerprint {
		t.Error("recorded fingerprint does not match rendered content")
	}
}

func TestApply_SkipsModifiedWithoutForce(t *testing.T) {
	root := t.TempDir()
	writeOnDisk(t, root, "a.txt", "hand edited")

	_, res := applyOne(t, root, rendered("a.txt", "new render"), UserModified, Policy{})
	if res.Action != ActionSkipped {
		t.Errorf("action = %s, want skipped", res.Action)
	}
	data, err := os.ReadFile(filepath.Join(root, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hand edited" {
		t.Errorf("user content was overwritten: %q", data)
	}
}

func TestApply_ForceOverwrites(t *testing.T) {
	root := t.TempDir()
	writeOnDisk(t, root, "a.txt", "preexisting")

	_, res := applyOne(t, root, rendered("a.txt", "new render"), Conflict, Policy{Force: true})
	if res.Action != ActionForced {
		t.Errorf("action = %s, want forced-write", res.Action)
	}
	data, err := os.ReadFile(filepath.Join(root, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new render" {
		t.Errorf("content = %q, want forced render", data)
	}
}

func TestApply_DryRunWritesNothing(t *testing.T) {
	root := t.TempDir()

	store := trackedStore(t, root, nil)
	report, err := Apply([]PlannedFile{
		{File: rendered("a.txt", "new"), Decision: Create},
		{File: rendered("b.txt", "new"), Decision: StaleRegenerate},
	}, store, root, Policy{DryRun: true})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	if !report.DryRun {
		t.Error("report does not carry the dry-run flag")
	}
	for _, res := range report.Results {
		if res.Action != ActionWouldWrite {
			t.Errorf("action for %s = %s, want would-write", res.Path, res.Action)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "a.txt")); !os.IsNotExist(err) {
		t.Error("dry run created a file")
	}
	if store.Len() != 0 {
		t.Errorf("dry run recorded %d manifest entries", store.Len())
	}
}

func TestApply_Unchanged(t *testing.T) {
	root := t.TempDir()
	writeOnDisk(t, root, "a.txt", "same")

	_, res := applyOne(t, root, rendered("a.txt", "same"), Unchanged, Policy{})
	if res.Action != ActionNone {
		t.Errorf("action = %s, want up-to-date", res.Action)
	}
}

func TestReport_AttentionAndWritten(t *testing.T) {
	report := &Report{Results: []Result{
		{Path: "a", Action: ActionWritten},
		{Path: "b", Action: ActionSkipped},
		{Path: "c", Action: ActionNone},
		{Path: "d", Action: ActionWouldForce},
	}}

	attention := report.Attention()
	if len(attention) != 1 || attention[0].Path != "b" {
		t.Errorf("Attention() = %v, want only path b", attention)
	}
	if got := report.Written(); got != 2 {
		t.Errorf("Written() = %d, want 2", got)
	}
}
