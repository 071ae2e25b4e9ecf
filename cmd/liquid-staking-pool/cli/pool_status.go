package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fluidstake/liquid-staking-pool/internal/db"
	"github.com/fluidstake/liquid-staking-pool/internal/fixedpoint"
	"github.com/fluidstake/liquid-staking-pool/internal/pool"
	"github.com/fluidstake/liquid-staking-pool/internal/types"
)

func PoolStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool-status",
		Short: "Print the persisted pool state and validators",
		Args:  cobra.ExactArgs(0),
		RunE:  poolStatus,
	}

	return cmd
}

func poolStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
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
		if db.IsNotFoundError(err) {
			fmt.Printf("Pool %q has not been initialized\n", cfg.Pool.PoolID)
			return nil
		}
		return err
	}

	if err := renderPool(state); err != nil {
		return err
	}
	if err := renderValidators(state); err != nil {
		return err
	}

	stats, err := dbClient.GetPoolStats(ctx, cfg.Pool.PoolID)
	switch {
	case db.IsNotFoundError(err):
		fmt.Println("No stats snapshot yet")
	case err != nil:
		return err
	default:
		fmt.Printf("Stats at sequence %d, updated %s, reserve ratio %d%%\n",
			stats.Sequence, time.Unix(stats.LastUpdated, 0).UTC().Format(time.RFC3339), stats.ReserveRatio)
	}
	return nil
}

func renderPool(state *pool.State) error {
	p := state.Pool
	u := func(v uint64) string { return strconv.FormatUint(v, 10) }

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Field", "Value")
	rows := [][]string{
		{"Pool ID", p.ID},
		{"Authority", p.Authority},
		{"Sequence", u(state.Sequence)},
		{"Exchange rate", fixedpoint.FormatRate(p.ExchangeRate)},
		{"Total deposited", u(p.TotalDeposited)},
		{"Receipt supply", u(p.TotalReceiptMinted)},
		{"Liquid reserve", u(p.LiquidReserve)},
		{"Staked balance", u(p.StakedBalance)},
		{"Protocol fees", u(p.ProtocolFeesEarned)},
		{"Target reserve ratio", fmt.Sprintf("%d%%", p.TargetReserveRatio)},
		{"Protocol fee", fmt.Sprintf("%d bps", p.ProtocolFeeBps)},
		{"Validators", strconv.FormatUint(uint64(p.ValidatorCount), 10)},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func renderValidators(state *pool.State) error {
	if len(state.Validators) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Index", "Identity", "Allocation", "Delegated", "Positions", "Epoch", "Status")
	for _, v := range state.Validators {
		err := table.Append([]string{
			strconv.FormatUint(uint64(v.Index), 10),
			v.Identity,
			fmt.Sprintf("%d%%", v.AllocationPercentage),
			strconv.FormatUint(v.TotalDelegated, 10),
			strconv.Itoa(len(v.Delegations)),
			strconv.FormatUint(v.LastUpdateEpoch, 10),
			types.ValidatorStatusFromActive(v.IsActive).String(),
		})
		if err != nil {
			return err
		}
	}
	return table.Render()
}
