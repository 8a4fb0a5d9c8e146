// Package postgres owns the connection to the postgres database and
// the schema the repositories rely on.
package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/service-catalog/internal/config"
)

//go:embed schema.sql
var schema string

type Store struct {
	logger zerolog.Logger
	cfg    config.PostgresConfig

	mu   sync.Mutex
	pool *pgxpool.Pool
}

func New(logger zerolog.Logger, cfg config.PostgresConfig) *Store {
	return &Store{
		logger: logger,
		cfg:    cfg,
	}
}

// ConnString returns POSTGRES_URL when set and otherwise builds
// a connection URL from the individual settings.
func ConnString(cfg config.PostgresConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Database,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

// EnsureConnected opens the pool, checks it answers and applies the
// schema. Once it has succeeded it returns the same pool on every call.
func (s *Store) EnsureConnected(ctx context.Context) (*pgxpool.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool != nil {
		return s.pool, nil
	}

	poolCfg, err := pgxpool.ParseConfig(ConnString(s.cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	poolCfg.ConnConfig.ConnectTimeout = s.cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, s.cfg.PingTimeout)
	defer cancel()

	err = pool.Ping(pingCtx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	_, err = pool.Exec(ctx, schema)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	s.logger.Debug().Msg("applied postgres schema")

	s.pool = pool
	s.logger.Info().
		Str("host", poolCfg.ConnConfig.Host).
		Uint16("port", poolCfg.ConnConfig.Port).
		Msg("connected to postgres")
	return pool, nil
}

// Ping reports whether the store currently answers. It never connects.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	pool := s.pool
	s.mu.Unlock()

	if pool == nil {
		return fmt.Errorf("postgres is not connected")
	}
	return pool.Ping(ctx)
}

func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool == nil {
		return
	}
	s.pool.Close()
	s.pool = nil
	s.logger.Info().Msg("disconnected from postgres")
}
