package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anita-maxwynn/Django-Practice/db/migrations"
	"github.com/anita-maxwynn/Django-Practice/pkg/auth"
	"github.com/anita-maxwynn/Django-Practice/pkg/config"
	"github.com/anita-maxwynn/Django-Practice/pkg/httpserver"
	"github.com/anita-maxwynn/Django-Practice/pkg/logger"
	"github.com/anita-maxwynn/Django-Practice/pkg/pg"
)

// userStorage opens the configured user store. The returned cleanup must be
// called after every user of the store is done.
func userStorage(ctx context.Context, log *slog.Logger, driver string, checks map[string]httpserver.CheckFunc) (auth.Storage, func(), error) {
	switch driver {
	case driverMemory:
		log.Warn("using in-memory user storage, data is lost on restart", logger.Component("storage"))
		return auth.NewMemoryStorage(), func() {}, nil

	case driverPostgres:
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if cfg.AutoMigrate {
			if err := pg.Migrate(ctx, pool, cfg, log, migrations.FS); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		checks["postgres"] = pg.Healthcheck(pool)
		return auth.NewPgStorage(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func migrate(ctx context.Context, log *slog.Logger) error {
	var cfg pg.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return pg.Migrate(ctx, pool, cfg, log, migrations.FS)
}
