package reconcile

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	consumptionUsecases "github.com/orris-inc/memberhub/internal/application/consumption/usecases"
	"github.com/orris-inc/memberhub/internal/infrastructure/cache"
	"github.com/orris-inc/memberhub/internal/infrastructure/database"
	"github.com/orris-inc/memberhub/internal/infrastructure/pubsub"
	"github.com/orris-inc/memberhub/internal/infrastructure/repository"
	"github.com/orris-inc/memberhub/internal/interfaces/cli/bootstrap"
)

var (
	flags     bootstrap.Flags
	batchSize int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute usedTimes and remainingTimes for every recharge",
		Long:  `Walk all non-deleted recharges and rebuild their times counters from the consumption log.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&flags.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Recharges loaded per page (default: accounting.reconcile_batch_size)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(&flags, true)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := context.Background()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		if redisClient, err = cache.NewRedisClient(ctx, &cfg.Redis); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
	}

	publisher, closer, err := pubsub.NewEventPublisher(&cfg.Events, redisClient, log)
	if err != nil {
		return fmt.Errorf("failed to init event publisher: %w", err)
	}
	defer closer.Close()

	db := database.Get()
	rechargeRepo := repository.NewRechargeRepository(db, log)
	counters := consumptionUsecases.NewRechargeCounters(rechargeRepo, repository.NewConsumptionRepository(db, log), log)

	uc := consumptionUsecases.NewResetRechargeTimesUseCase(rechargeRepo, counters, publisher, log)
	size := batchSize
	if size <= 0 {
		size = cfg.Accounting.ReconcileBatchSize
	}
	if size > 0 {
		uc.SetBatchSize(size)
	}

	result, err := uc.ResetAll(ctx)
	if err != nil {
		return fmt.Errorf("reconcile failed: %w", err)
	}

	fmt.Println(result.Message)
	if !result.Success {
		return fmt.Errorf("%d recharges failed to reconcile: %v", len(result.FailedIDs), result.FailedIDs)
	}
	return nil
}
