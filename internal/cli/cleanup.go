package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devautomator-labs/devautomator/internal/project"
)

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup [path]",
	Short: "Remove temporary files and directories",
	Long: `Recursively remove common temporary artifacts (__pycache__,
.pytest_cache, .mypy_cache, *.pyc, *.pyo) from the project directory.

Example:
  devautomator cleanup`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		fmt.Printf("Cleaning up temporary files in %q...\n", root)
		removedDirs, removedFiles, err := project.Cleanup(root)

		if len(removedDirs) > 0 {
			fmt.Println("Removed directories:")
			for _, d := range removedDirs {
				fmt.Printf("  - %s\n", d)
			}
		} else {
			fmt.Println("No temporary directories found to remove.")
		}
		if len(removedFiles) > 0 {
			fmt.Println("Removed files:")
			for _, f := range removedFiles {
				fmt.Printf("  - %s\n", f)
			}
		} else {
			fmt.Println("No temporary files found to remove.")
		}

		if err != nil {
			return fmt.Errorf("cleanup finished with errors: %w", err)
		}
		fmt.Println("Cleanup complete.")
		return nil
	},
}
