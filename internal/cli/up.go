package cli

import (
	"fmt"
	"os"

	"github.com/gantry-io/gantry/internal/cloud"
	"github.com/gantry-io/gantry/internal/logging"
	"github.com/gantry-io/gantry/internal/reconcile"
	"github.com/spf13/cobra"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Provision the deployment target",
	Long: `Provisions every stack resource that does not already exist, in dependency
order, and prints the CI credentials once. Fails fast on the first
unrecoverable error; rerunning is safe.`,
	RunE: runUp,
}

func runUp(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := stackConfig()

	clients, err := cloud.New(ctx, cfg.Region)
	if err != nil {
		return err
	}

	r := reconcile.New(clients, cfg, logging.Logger())
	provisioned, err := r.Up(ctx)
	if err != nil {
		return fmt.Errorf("provision failed: %w", err)
	}

	reconcile.WriteReport(os.Stdout, cfg, provisioned)
	return nil
}
