package cli

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/fluidstake/liquid-staking-pool/internal/db"
)

func DumpStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump-state",
		Short: "Dump the raw persisted pool state and recent ledger events",
		Args:  cobra.ExactArgs(0),
		RunE:  dumpState,
	}

	cmd.Flags().Uint64("from", 1, "First ledger event sequence to dump")
	cmd.Flags().Int64("events", 0, "Number of ledger events to dump")

	return cmd
}

func dumpState(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	from, err := cmd.Flags().GetUint64("from")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt64("events")
	if err != nil {
		return err
	}

	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		return err
	}
	defer dbClient.Close(ctx) //nolint:errcheck

	state, err := dbClient.GetPoolState(ctx, cfg.Pool.PoolID)
	if err != nil {
		return err
	}
	spew.Dump(state)

	if limit <= 0 {
		return nil
	}
	events, err := dbClient.GetLedgerEvents(ctx, cfg.Pool.PoolID, from, limit)
	if err != nil {
		return err
	}
	fmt.Printf("%d ledger events from sequence %d\n", len(events), from)
	spew.Dump(events)
	return nil
}
