package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devautomator-labs/devautomator/internal/reconcile"
	"github.com/devautomator-labs/devautomator/internal/toolrunner"
)

var (
	tfRegion  string
	tfNoInit  bool
	tfTimeout time.Duration
)

func init() {
	tfCmd.Flags().StringVar(&tfRegion, "region", "", "AWS region for the provider block")
	tfCmd.Flags().BoolVar(&tfNoInit, "no-init", false, "Skip running 'terraform init'")
	tfCmd.Flags().DurationVar(&tfTimeout, "timeout", 5*time.Minute, "Timeout for 'terraform init'")
	rootCmd.AddCommand(tfCmd)
}

var tfCmd = &cobra.Command{
	Use:   "tf <project>",
	Short: "Initialize a Terraform project",
	Long: `Scaffold the standard Terraform files (main.tf, variables.tf,
outputs.tf, locals.tf) into <project> and run 'terraform init' there.

Example:
  devautomator tf my_project`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project := args[0]

		params := map[string]string{"project": project}
		if tfRegion != "" {
			params["region"] = tfRegion
		}

		report, err := runScaffold("terraform", "", params, project, reconcile.Policy{})
		if err != nil {
			return err
		}
		printReport(report)

		if attention := report.Attention(); len(attention) > 0 {
			return &attentionError{count: len(attention)}
		}

		if tfNoInit {
			return nil
		}

		runner := &toolrunner.Runner{Dir: project, Timeout: tfTimeout}
		out, err := runner.Run(cmd.Context(), "terraform", "init")
		if err != nil {
			return err
		}
		if out.ExitCode != 0 {
			return toolrunner.FailureDiagnostic("terraform init", out)
		}
		fmt.Println("Terraform project initialized.")
		return nil
	},
}
