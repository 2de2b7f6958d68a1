package cli

import (
	"github.com/gantry-io/gantry/internal/logging"
	"github.com/gantry-io/gantry/internal/stack"
	"github.com/spf13/cobra"
)

var (
	flagRegion   string
	flagPrefix   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "gantry",
	Short: "Provision an AWS CI/CD deployment target",
	Long: `Gantry provisions and tears down a minimal ECS/Fargate deployment target
for a CI/CD pipeline: an ECR repository, a cluster, a service with its task
definition, networking, logging, and a scoped IAM deploy user.

Runs are idempotent: existing resources are detected and reused, so a failed
provision can simply be rerun.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(flagLogLevel)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRegion, "region", "", "AWS region (default: stack default)")
	rootCmd.PersistentFlags().StringVar(&flagPrefix, "prefix", "", "Name prefix for all stack resources")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

func stackConfig() stack.Config {
	return stack.Default().WithPrefix(flagPrefix).WithRegion(flagRegion)
}
