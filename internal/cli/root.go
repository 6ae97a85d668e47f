package cli

import (
	"github.com/spf13/cobra"

	"github.com/devautomator-labs/devautomator/internal/branding"
	"github.com/devautomator-labs/devautomator/internal/config"
	"github.com/devautomator-labs/devautomator/internal/logger"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds and maintains developer project artifacts:
infrastructure-as-code stubs, container configs, virtual environments,
test runs, documentation, and dependency reports. Generated files are
tracked in a per-project manifest so re-running a scaffold never
destroys your edits.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(verbose)
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	defer logger.Sync()
	return rootCmd.Execute()
}
