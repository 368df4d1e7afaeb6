package db

import (
	"context"
	"fmt"
	"time"

	"homerelief/pkg/types"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// SchemaName holds every relief table. It is the default search_path.
const SchemaName = "relief"

const applicationName = "homerelief"

func poolConfig(config *types.Config) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	params := cfg.ConnConfig.RuntimeParams
	if _, ok := params["search_path"]; !ok {
		params["search_path"] = SchemaName
	}
	if _, ok := params["application_name"]; !ok {
		params["application_name"] = applicationName
	}

	if config.DBMaxConns > 0 {
		cfg.MaxConns = config.DBMaxConns
	}
	cfg.MaxConnIdleTime = 15 * time.Minute
	cfg.MaxConnLifetime = 45 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	return cfg, nil
}

// Connect opens the pool and waits for the database to answer, retrying
// with a doubling delay up to config.DBConnectTries attempts.
func Connect(ctx context.Context, logger *logrus.Logger, config *types.Config) (*pgxpool.Pool, error) {
	cfg, err := poolConfig(config)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	tries := max(config.DBConnectTries, 1)
	delay := 500 * time.Millisecond
	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = pool.Ping(pingCtx)
		cancel()
		if err == nil {
			return pool, nil
		}
		if attempt >= tries {
			break
		}

		logger.WithError(err).WithFields(logrus.Fields{
			"attempt": attempt,
			"retry":   delay.String(),
		}).Warn("database not ready")

		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	pool.Close()
	return nil, fmt.Errorf("ping database after %d attempts: %w", tries, err)
}
