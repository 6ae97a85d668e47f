package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devautomator-labs/devautomator/internal/logger"
	"github.com/devautomator-labs/devautomator/internal/manifeststore"
)

// Policy governs how a plan is applied.
type Policy struct {
	// Force also writes UserModified and Conflict paths. Such writes
	// are reported distinctly so callers can warn the user.
	Force bool
	// DryRun suppresses every write and manifest update. The report is
	// identical in decisions to a real run.
	DryRun bool
}

// Action is what apply did (or would do) for one path.
type Action string

const (
	ActionWritten    Action = "written"
	ActionForced     Action = "forced-write"
	ActionWouldWrite Action = "would-write"
	ActionWouldForce Action = "would-force-write"
	ActionSkipped    Action = "skipped"
	ActionNone       Action = "up-to-date"
)

// Result is the per-path outcome row of a report.
type Result struct {
	Path     string
	Decision Decision
	Action   Action
}

// Report is the sole channel for surfacing what an apply did. No
// partial success is silent.
type Report struct {
	RunID   string
	DryRun  bool
	Results []Result
}

// Attention returns the paths that were skipped and require manual
// resolution (UserModified or Conflict without force).
func (r *Report) Attention() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Action == ActionSkipped {
			out = append(out, res)
		}
	}
	return out
}

// Written returns how many paths were (or would be) written.
func (r *Report) Written() int {
	n := 0
	for _, res := range r.Results {
		switch res.Action {
		case ActionWritten, ActionForced, ActionWouldWrite, ActionWouldForce:
			n++
		}
	}
	return n
}

// Apply executes a plan under policy. Files are written with their
// rendered mode; the manifest entry for a path is updated only after
// its write succeeds. The caller flushes the store afterwards (and
// must not when DryRun is set).
func Apply(plan []PlannedFile, store *manifeststore.Store, root string, policy Policy) (*Report, error) {
	report := &Report{
		RunID:  uuid.NewString(),
		DryRun: policy.DryRun,
	}

	log := logger.L().With(zap.String("run_id", report.RunID), zap.String("root", root))
	now := time.Now().UTC()

	for _, p := range plan {
		res := Result{Path: p.File.Path, Decision: p.Decision}

		switch p.Decision {
		case Unchanged:
			res.Action = ActionNone

		case Create, StaleRegenerate:
			res.Action = ActionWouldWrite
			if !policy.DryRun {
				if err := writeFile(root, p, store, now); err != nil {
					report.Results = append(report.Results, res)
					return report, err
				}
				res.Action = ActionWritten
			}

		case UserModified, Conflict:
			if !policy.Force {
				res.Action = ActionSkipped
				break
			}
			res.Action = ActionWouldForce
			if !policy.DryRun {
				if err := writeFile(root, p, store, now); err != nil {
					report.Results = append(report.Results, res)
					return report, err
				}
				res.Action = ActionForced
			}
		}

		log.Debug("reconciled path",
			zap.String("path", p.File.Path),
			zap.String("decision", p.Decision.String()),
			zap.String("action", string(res.Action)))
		report.Results = append(report.Results, res)
	}

	return report, nil
}

// writeFile materializes one planned file and records its manifest
// entry. The entry is recorded only after a successful write.
func writeFile(root string, p PlannedFile, store *manifeststore.Store, now time.Time) error {
	target := filepath.Join(root, filepath.FromSlash(p.File.Path))

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", p.File.Path, err)
	}
	if err := os.WriteFile(target, p.File.Content, p.File.Mode); err != nil {
		return fmt.Errorf("writing %s: %w", p.File.Path, err)
	}

	store.Put(p.File.Path, manifeststore.Entry{
		Fingerprint:     p.File.Fingerprint,
		TemplateName:    p.File.TemplateName,
		TemplateVersion: p.File.TemplateVersion,
		GeneratedAt:     now,
	})
	return nil
}
