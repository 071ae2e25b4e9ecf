package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fluidstake/liquid-staking-pool/internal/db"
	dbmodel "github.com/fluidstake/liquid-staking-pool/internal/db/model"
	"github.com/fluidstake/liquid-staking-pool/internal/queue"
)

// InitPoolCmd initializes the pool offline, before the server first starts.
// Usage: ./liquid-staking-pool init-pool --config config.yml [--authority <addr>]
func InitPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-pool",
		Short: "Initialize the pool in the database (server must not be running)",
		Args:  cobra.ExactArgs(0),
		RunE:  initPool,
	}

	cmd.Flags().String("authority", "", "Pool authority (defaults to pool.authority from config)")

	return cmd
}

func initPool(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	authority, err := cmd.Flags().GetString("authority")
	if err != nil {
		return err
	}
	if authority == "" {
		authority = cfg.Pool.Authority
	}
	if authority == "" {
		return errors.New("authority must be set by flag or config")
	}

	if err := dbmodel.Setup(ctx, &cfg.Db); err != nil {
		return err
	}
	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		return err
	}
	defer dbClient.Close(ctx) //nolint:errcheck

	// events written offline are not published
	service, _, err := newService(ctx, cfg, dbClient, queue.NoopPublisher{})
	if err != nil {
		return err
	}
	if err := service.InitializePool(ctx, authority); err != nil {
		return err
	}

	fmt.Printf("Pool %q initialized with authority %s\n", cfg.Pool.PoolID, authority)
	return nil
}
