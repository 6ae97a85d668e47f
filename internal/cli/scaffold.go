package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devautomator-labs/devautomator/internal/config"
	"github.com/devautomator-labs/devautomator/internal/manifeststore"
	"github.com/devautomator-labs/devautomator/internal/reconcile"
	"github.com/devautomator-labs/devautomator/internal/render"
	"github.com/devautomator-labs/devautomator/internal/template"
)

var (
	scaffoldParams    []string
	scaffoldVersion   string
	scaffoldOutputDir string
	scaffoldForce     bool
	scaffoldDryRun    bool
)

func init() {
	scaffoldCmd.Flags().StringArrayVar(&scaffoldParams, "param", nil, "Template parameter as k=v (repeatable)")
	scaffoldCmd.Flags().StringVar(&scaffoldVersion, "template-version", "", "Template version (default: latest)")
	scaffoldCmd.Flags().StringVar(&scaffoldOutputDir, "output-dir", "", "Target directory (default: ./<project> or .)")
	scaffoldCmd.Flags().BoolVar(&scaffoldForce, "force", false, "Overwrite user-modified and conflicting files")
	scaffoldCmd.Flags().BoolVar(&scaffoldDryRun, "dry-run", false, "Plan only; write nothing")
	rootCmd.AddCommand(scaffoldCmd)
}

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold <template>",
	Short: "Generate a project from a built-in template",
	Long: `Generate or re-generate a project from a built-in template.

Every generated file is tracked in the project manifest
(.devautomator/manifest.yaml). On re-runs, files you have edited are
never overwritten unless --force is given, and untracked files at a
target path are reported as conflicts instead of being clobbered.

Examples:
  devautomator scaffold python-cli --param project=foo
  devautomator scaffold terraform --param project=infra --param region=eu-west-1
  devautomator scaffold docker --param project=api --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := parseParams(scaffoldParams)
		if err != nil {
			return err
		}

		outDir := scaffoldOutputDir
		if outDir == "" {
			if project, ok := params["project"]; ok && project != "" {
				outDir = filepath.Join(".", project)
			} else {
				outDir = "."
			}
		}

		report, err := runScaffold(args[0], scaffoldVersion, params, outDir, reconcile.Policy{
			Force:  scaffoldForce,
			DryRun: scaffoldDryRun,
		})
		if err != nil {
			return err
		}

		printReport(report)
		if attention := report.Attention(); len(attention) > 0 {
			return &attentionError{count: len(attention)}
		}
		return nil
	},
}

// runScaffold drives one render→reconcile→apply cycle. It is shared by
// the scaffold, tf, docker, and doc commands.
func runScaffold(templateName, version string, params map[string]string, outDir string, policy reconcile.Policy) (*reconcile.Report, error) {
	registry, err := template.NewRegistry()
	if err != nil {
		return nil, err
	}

	tpl, err := registry.Resolve(templateName, version)
	if err != nil {
		return nil, err
	}

	// User-level defaults from config fill in anything not passed
	// explicitly; render ignores keys the template does not declare.
	merged := config.ParamDefaults()
	if merged == nil {
		merged = make(map[string]string)
	}
	for k, v := range params {
		merged[k] = v
	}

	rendered, err := render.Render(tpl, merged, outDir)
	if err != nil {
		return nil, err
	}

	if !policy.DryRun {
		lock := manifeststore.NewLock(outDir)
		if err := lock.Acquire(); err != nil {
			return nil, err
		}
		defer lock.Release()
	}

	store, err := manifeststore.Load(outDir)
	if err != nil {
		return nil, err
	}

	plan, err := reconcile.Plan(rendered, store, outDir)
	if err != nil {
		return nil, err
	}

	report, applyErr := reconcile.Apply(plan, store, outDir, policy)

	// Flush even when apply failed partway: entries for files already
	// written must survive so the next run sees them as tracked rather
	// than as conflicts.
	if !policy.DryRun {
		if err := store.Flush(); err != nil {
			if applyErr != nil {
				return report, applyErr
			}
			return report, err
		}
	}
	return report, applyErr
}

// parseParams turns repeated k=v flags into a parameter set.
func parseParams(raw []string) (map[string]string, error) {
	params := make(map[string]string, len(raw))
	for _, kv := range raw {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --param %q: expected k=v", kv)
		}
		params[k] = v
	}
	return params, nil
}

// printReport writes the per-path apply outcome to stdout.
func printReport(report *reconcile.Report) {
	if report.DryRun {
		fmt.Println("Dry run; no files or manifest entries were written.")
	}
	for _, res := range report.Results {
		fmt.Printf("  %-18s %-18s %s\n", res.Decision, res.Action, res.Path)
	}

	attention := report.Attention()
	if len(attention) > 0 {
		fmt.Println("\nNeeds attention:")
		for _, res := range attention {
			fmt.Printf("  %s (%s): kept your version, re-run with --force to overwrite\n", res.Path, res.Decision)
		}
	}

	fmt.Printf("\n%d path(s) written, %d skipped, %d up to date\n",
		report.Written(), len(attention), len(report.Results)-report.Written()-len(attention))
}
