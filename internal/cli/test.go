package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devautomator-labs/devautomator/internal/toolrunner"
)

var testTimeout time.Duration

func init() {
	testCmd.Flags().DurationVar(&testTimeout, "timeout", 10*time.Minute, "Timeout for the test run")
	rootCmd.AddCommand(testCmd)
}

var testCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Run tests using pytest",
	Long: `Run pytest on the given path (default: current directory).

Example:
  devautomator test path/to/tests`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}

		fmt.Printf("Running tests in %q...\n", path)
		runner := &toolrunner.Runner{Timeout: testTimeout}
		out, err := runner.Run(cmd.Context(), "pytest", path)
		if err != nil {
			return err
		}
		if out.ExitCode != 0 {
			return fmt.Errorf("pytest exited with code %d", out.ExitCode)
		}
		return nil
	},
}
