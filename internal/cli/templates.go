package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/devautomator-labs/devautomator/internal/template"
)

func init() {
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the built-in templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := template.NewRegistry()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tDESCRIPTION")
		for _, info := range registry.List() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Version, info.Description)
		}
		return w.Flush()
	},
}
