package cli

import (
	"github.com/spf13/cobra"

	"github.com/devautomator-labs/devautomator/internal/reconcile"
)

var (
	dockerPythonVersion string
	dockerPort          string
)

func init() {
	dockerCmd.Flags().StringVar(&dockerPythonVersion, "python-version", "", "Base image tag for python")
	dockerCmd.Flags().StringVar(&dockerPort, "port", "", "Published service port")
	rootCmd.AddCommand(dockerCmd)
}

var dockerCmd = &cobra.Command{
	Use:   "docker <project>",
	Short: "Scaffold a Docker configuration",
	Long: `Create a Dockerfile and docker-compose.yml in <project>.

Example:
  devautomator docker my_docker_project`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project := args[0]

		params := map[string]string{"project": project}
		if dockerPythonVersion != "" {
			params["python_version"] = dockerPythonVersion
		}
		if dockerPort != "" {
			params["port"] = dockerPort
		}

		report, err := runScaffold("docker", "", params, project, reconcile.Policy{})
		if err != nil {
			return err
		}
		printReport(report)

		if attention := report.Attention(); len(attention) > 0 {
			return &attentionError{count: len(attention)}
		}
		return nil
	},
}
