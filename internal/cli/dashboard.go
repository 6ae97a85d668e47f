package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devautomator-labs/devautomator/internal/project"
	"github.com/devautomator-labs/devautomator/internal/toolrunner"
)

var dashboardTimeout time.Duration

func init() {
	dashboardCmd.Flags().DurationVar(&dashboardTimeout, "timeout", time.Minute, "Timeout per metrics query")
	rootCmd.AddCommand(dashboardCmd)
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [path]",
	Short: "Display project metrics",
	Long: `Show a snapshot of project health: tests collected by pytest,
git branch and uncommitted changes, and documentation status.

Example:
  devautomator dashboard .`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}

		runner := &toolrunner.Runner{Dir: path, Timeout: dashboardTimeout}
		m := project.CollectMetrics(cmd.Context(), runner, path)

		fmt.Println("Developer Dashboard:")
		if m.TestsKnown {
			fmt.Printf("- Total Tests Collected: %d\n", m.TestsCollected)
		} else {
			fmt.Println("- Total Tests Collected: Unknown")
		}
		if m.InGitRepo {
			fmt.Printf("- Git Branch: %s\n", m.GitBranch)
			fmt.Printf("- Uncommitted Changes: %d\n", m.GitChanges)
		} else {
			fmt.Println("- Git Repository: Not detected")
		}
		fmt.Printf("- Documentation: %s\n", m.DocStatus)
		return nil
	},
}
