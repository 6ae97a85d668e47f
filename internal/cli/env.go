package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devautomator-labs/devautomator/internal/toolrunner"
)

var envTimeout time.Duration

func init() {
	envCmd.Flags().DurationVar(&envTimeout, "timeout", 2*time.Minute, "Timeout for environment creation")
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:   "env <name>",
	Short: "Create a Python virtual environment",
	Long: `Create a new Python virtual environment with 'python -m venv'.

Example:
  devautomator env myenv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := &toolrunner.Runner{Timeout: envTimeout}
		out, err := runner.Run(cmd.Context(), "python", "-m", "venv", args[0])
		if err != nil {
			return err
		}
		if out.ExitCode != 0 {
			return toolrunner.FailureDiagnostic("python -m venv", out)
		}
		fmt.Printf("Created virtual environment %q.\n", args[0])
		return nil
	},
}
