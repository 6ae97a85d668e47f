package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devautomator-labs/devautomator/internal/reconcile"
)

func init() {
	rootCmd.AddCommand(docCmd)
}

var docCmd = &cobra.Command{
	Use:   "doc <project>",
	Short: "Set up Sphinx documentation for a project",
	Long: `Create a docs/ directory with a Sphinx configuration file in
<project>.

Example:
  devautomator doc my_project`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project := args[0]

		report, err := runScaffold("sphinx-docs", "", map[string]string{"project": project}, project, reconcile.Policy{})
		if err != nil {
			return err
		}
		printReport(report)

		if attention := report.Attention(); len(attention) > 0 {
			return &attentionError{count: len(attention)}
		}
		fmt.Println("You can now build your docs using 'sphinx-build'.")
		return nil
	},
}
