package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/yigit/courseplanner/internal/config"
)

// connectTimeout bounds pool creation and the first ping.
const connectTimeout = 10 * time.Second

// PoolConfig translates the database section of cfg into pgxpool settings.
func PoolConfig(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	if n := cfg.Database.MaxOpenConns; n > 0 {
		pc.MaxConns = int32(n)
	}
	if n := cfg.Database.MaxIdleConns; n > 0 && int32(n) <= pc.MaxConns {
		pc.MinConns = int32(n)
	}
	pc.MaxConnLifetime = cfg.ConnLifetime()

	pc.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			lgr.Warn().Err(err).Msg("Dropping unhealthy pooled connection")
			return false
		}
		return true
	}
	return pc, nil
}

// Open connects to Postgres and verifies the connection. Callers own the
// returned pool and must Close it.
func Open(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	pc, err := PoolConfig(cfg, lgr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres at %s:%s: %w", cfg.Database.Host, cfg.Database.Port, err)
	}

	lgr.Info().
		Str("host", cfg.Database.Host).
		Str("db", cfg.Database.DBName).
		Int32("max_conns", pc.MaxConns).
		Msg("Connected to PostgreSQL")
	return pool, nil
}
