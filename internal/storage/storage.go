// Package storage picks and connects the persistence backend named in the
// configuration.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/hackgods/appointment-agenda/internal/appointment"
	"github.com/hackgods/appointment-agenda/internal/config"
	"github.com/hackgods/appointment-agenda/internal/db"
	redisclient "github.com/hackgods/appointment-agenda/internal/redis"
)

var ErrNoSchema = errors.New("backend has no schema to migrate")

type repository interface {
	appointment.Repository
	appointment.ReferenceWriter
}

// Backend is an opened persistence backend. Close releases its connections.
type Backend struct {
	repository
	Name string

	ensureSchema func(ctx context.Context) error
	close        func()
}

func (b *Backend) EnsureSchema(ctx context.Context) error {
	if b.ensureSchema == nil {
		return ErrNoSchema
	}
	return b.ensureSchema(ctx)
}

func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

func Open(ctx context.Context, cfg config.Config, log zerolog.Logger) (*Backend, error) {
	names := appointment.CollectionNames{
		Medics:       cfg.Collections.Medics,
		Patients:     cfg.Collections.Patients,
		Appointments: cfg.Collections.Appointments,
	}

	connCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	switch cfg.Backend {
	case config.BackendFile:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		log.Info().Str("dir", cfg.DataDir).Msg("using file storage")
		return &Backend{
			repository: appointment.NewFileRepository(cfg.DataDir, names),
			Name:       config.BackendFile,
		}, nil

	case config.BackendPostgres:
		pool, err := db.ConnectPostgres(connCtx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("postgres connection: %w", err)
		}
		log.Info().Msg("connected to Postgres")
		repo := appointment.NewPgRepository(pool, names)
		return &Backend{
			repository:   repo,
			Name:         config.BackendPostgres,
			ensureSchema: repo.EnsureSchema,
			close:        pool.Close,
		}, nil

	case config.BackendRedis:
		rdb, err := redisclient.NewRedisClient(connCtx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("redis connection: %w", err)
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("connected to Redis")
		return &Backend{
			repository: redisclient.NewRepository(rdb, cfg.RedisKeyPrefix, names),
			Name:       config.BackendRedis,
			close: func() {
				if err := rdb.Close(); err != nil {
					log.Error().Err(err).Msg("error closing redis")
				}
			},
		}, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
