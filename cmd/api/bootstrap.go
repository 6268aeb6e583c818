package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/Chinmay1145/velocity-speed-emporium/api/controllers"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/config"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/db"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/logger"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/migrate"
	pkgredis "github.com/Chinmay1145/velocity-speed-emporium/pkg/redis"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/storage/kv"
)

// dependencies are the external resources the api process owns.
type dependencies struct {
	Store       kv.Store
	Idempotency pkgredis.IdempotencyStore
	Checks      map[string]controllers.Pinger

	closers []io.Closer
}

// Close releases resources in reverse order of acquisition.
func (d *dependencies) Close() error {
	var err error
	for i := len(d.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, d.closers[i].Close())
	}
	return err
}

// bootstrap opens the cart store for the configured driver. Redis, when configured,
// also backs checkout idempotency regardless of the store driver.
func bootstrap(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*dependencies, error) {
	deps := &dependencies{Checks: map[string]controllers.Pinger{}}

	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled() {
		client, err := pkgredis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		redisClient = client
		deps.closers = append(deps.closers, client)
		deps.Idempotency = client
		deps.Checks["redis"] = client
	}

	store, err := openStore(ctx, cfg, logg, redisClient, deps)
	if err != nil {
		return nil, multierr.Append(err, deps.Close())
	}
	deps.Store = store
	deps.closers = append(deps.closers, store)
	deps.Checks["store"] = store

	ctx = logg.WithField(ctx, "store_driver", cfg.Store.Normalized())
	logg.Info(ctx, "cart store ready")
	return deps, nil
}

func openStore(ctx context.Context, cfg *config.Config, logg *logger.Logger, redisClient *pkgredis.Client, deps *dependencies) (kv.Store, error) {
	switch cfg.Store.Normalized() {
	case config.StoreDriverMemory:
		return kv.NewMemory(), nil
	case config.StoreDriverRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis store selected but redis is not configured")
		}
		return kv.NewRedis(redisClient, cfg.Store.SlotTTL)
	case config.StoreDriverSQL:
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap database: %w", err)
		}
		deps.closers = append(deps.closers, dbClient)
		if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		return kv.NewSQL(dbClient.DB())
	case config.StoreDriverBadger:
		return kv.OpenBadger(cfg.Store.BadgerPath)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
