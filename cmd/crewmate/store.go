package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/yakoovad/crewmate-creator/internal/config"
	"github.com/yakoovad/crewmate-creator/internal/db"
	"github.com/yakoovad/crewmate-creator/internal/repository"
	"go.uber.org/zap"
)

type store struct {
	crewmates repository.CrewmateRepository
	ping      func(ctx context.Context) error
	close     func()
}

// openStore connects the configured backend and, when migrate is set,
// creates the crewmates table if it does not exist yet.
func openStore(ctx context.Context, cfg *config.Config, migrate bool) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "connect to postgres")
		}

		if err = pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, errors.Wrap(err, "ping postgres")
		}

		log.Info("database connection established", zap.String("driver", cfg.StoreDriver))

		if migrate {
			if err = db.MigratePostgres(ctx, pool, cfg.StrictSchema); err != nil {
				pool.Close()
				return nil, err
			}
			log.Info("schema ready", zap.Bool("strict", cfg.StrictSchema))
		}

		return &store{
			crewmates: repository.NewPgxCrewmateRepository(pool),
			ping:      pool.Ping,
			close:     pool.Close,
		}, nil

	case config.DriverSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}

		log.Info("database opened", zap.String("driver", cfg.StoreDriver), zap.String("path", cfg.SQLitePath))

		if migrate {
			if err = db.MigrateSQLite(ctx, conn, cfg.StrictSchema); err != nil {
				_ = conn.Close()
				return nil, err
			}
			log.Info("schema ready", zap.Bool("strict", cfg.StrictSchema))
		}

		return &store{
			crewmates: repository.NewSQLiteCrewmateRepository(conn),
			ping:      conn.PingContext,
			close:     func() { _ = conn.Close() },
		}, nil

	default:
		return nil, errors.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
