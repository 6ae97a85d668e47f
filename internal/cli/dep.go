package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devautomator-labs/devautomator/internal/project"
	"github.com/devautomator-labs/devautomator/internal/toolrunner"
)

var depTimeout time.Duration

func init() {
	depCmd.Flags().DurationVar(&depTimeout, "timeout", 2*time.Minute, "Timeout for the pip queries")
	rootCmd.AddCommand(depCmd)
}

var depCmd = &cobra.Command{
	Use:   "dep [path]",
	Short: "Report missing and outdated Python dependencies",
	Long: `Read requirements.txt in the given directory (default: current
directory) and report declared dependencies that are missing or have a
newer version available, as seen by pip.

Example:
  devautomator dep my_project`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		fmt.Printf("Checking dependencies in %q...\n", dir)
		runner := &toolrunner.Runner{Dir: dir, Timeout: depTimeout}
		report, err := project.CheckDependencies(cmd.Context(), runner, dir)
		if err != nil {
			return err
		}

		if len(report.Requirements) == 0 {
			fmt.Println("No requirements declared.")
			return nil
		}

		if len(report.Missing) > 0 {
			fmt.Println("Missing:")
			for _, name := range report.Missing {
				fmt.Printf("  - %s\n", name)
			}
		}
		if len(report.Outdated) > 0 {
			fmt.Println("Outdated:")
			for _, pkg := range report.Outdated {
				fmt.Printf("  - %s %s (latest %s)\n", pkg.Name, pkg.Version, pkg.Latest)
			}
		}
		if len(report.Missing) == 0 && len(report.Outdated) == 0 {
			fmt.Printf("All %d declared dependencies are installed and current.\n", len(report.Requirements))
		}
		return nil
	},
}
