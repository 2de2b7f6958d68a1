package cli

import (
	"fmt"

	"github.com/gantry-io/gantry/internal/cloud"
	"github.com/gantry-io/gantry/internal/logging"
	"github.com/gantry-io/gantry/internal/reconcile"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe the current state of every stack resource",
	Long:  `Read-only: queries each resource and prints its state without changing anything.`,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := stackConfig()

	clients, err := cloud.New(ctx, cfg.Region)
	if err != nil {
		return err
	}

	r := reconcile.New(clients, cfg, logging.Logger())
	states, err := r.Status(ctx)
	if err != nil {
		return err
	}

	for _, s := range states {
		fmt.Printf("%-50s %s\n", s.Resource, s.Status)
	}
	return nil
}
