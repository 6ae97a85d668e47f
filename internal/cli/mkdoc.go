package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devautomator-labs/devautomator/internal/project"
)

func init() {
	rootCmd.AddCommand(mkdocCmd)
}

var mkdocCmd = &cobra.Command{
	Use:   "mkdoc [path]",
	Short: "Generate Markdown documentation of the project structure",
	Long: `Scan the project tree and write a Markdown summary of its
directories and files to README_generated.md.

Example:
  devautomator mkdoc`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		out, err := project.WriteTreeDoc(root)
		if err != nil {
			return err
		}
		fmt.Printf("Documentation generated and saved to %s.\n", out)
		return nil
	},
}
