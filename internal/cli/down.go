package cli

import (
	"fmt"

	"github.com/gantry-io/gantry/internal/cloud"
	"github.com/gantry-io/gantry/internal/logging"
	"github.com/gantry-io/gantry/internal/reconcile"
	"github.com/spf13/cobra"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Tear the deployment target down",
	Long: `Deletes every stack resource in reverse dependency order. Best-effort:
individual failures are logged and the teardown continues, since partial
cleanup beats none. Review the warnings and rerun or clean up manually.`,
	RunE: runDown,
}

func runDown(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := stackConfig()

	clients, err := cloud.New(ctx, cfg.Region)
	if err != nil {
		return err
	}

	r := reconcile.New(clients, cfg, logging.Logger())
	results := r.Down(ctx)

	failed := reconcile.FailedSteps(results)
	if len(failed) == 0 {
		fmt.Printf("Teardown complete: all %d steps succeeded.\n", len(results))
		return nil
	}

	fmt.Printf("Teardown finished: %d of %d steps failed.\n", len(failed), len(results))
	for _, f := range failed {
		fmt.Printf("  %s: %v\n", f.Step, f.Err)
	}
	if len(failed) == len(results) {
		return fmt.Errorf("every teardown step failed; check credentials and region")
	}
	return nil
}
