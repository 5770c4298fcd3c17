// Package db selects and opens the storage backend named in the configuration.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/crudkit/items-api/internal/core/ports"
	"github.com/crudkit/items-api/internal/infrastructure/db/memory"
	"github.com/crudkit/items-api/internal/infrastructure/db/mongo"
	"github.com/crudkit/items-api/internal/infrastructure/db/postgres"
	"github.com/crudkit/items-api/internal/pkg/config"
)

// Storage bundles the repositories of one backend with its lifecycle hooks.
type Storage struct {
	Driver  string
	Users   ports.UserRepository
	Items   ports.ItemRepository
	Checker ports.HealthChecker

	reset func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Reset drops all data and recreates the schema.
func (s *Storage) Reset(ctx context.Context) error {
	return s.reset(ctx)
}

// Close releases the backend's connections.
func (s *Storage) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the configured backend. With migrate set, the Postgres
// schema is brought up to date and Mongo indexes are ensured.
func Open(ctx context.Context, cfg config.StorageConfig, mcfg config.MongoConfig, migrate bool, log zerolog.Logger) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, migrate, log)
	case config.DriverMongo:
		return openMongo(ctx, mcfg, migrate, log)
	case config.DriverMemory:
		store := memory.NewStore()
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		return &Storage{
			Driver:  config.DriverMemory,
			Users:   store.Users(),
			Items:   store.Items(),
			Checker: memory.Checker{},
			reset: func(context.Context) error {
				store.Reset()
				return nil
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.StorageConfig, migrate bool, log zerolog.Logger) (*Storage, error) {
	sqlDB, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.DatabaseURL})
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := postgres.Migrate(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		log.Info().Msg("postgres migrations applied")
	}

	return &Storage{
		Driver:  config.DriverPostgres,
		Users:   postgres.NewUserRepository(sqlDB),
		Items:   postgres.NewItemRepository(sqlDB),
		Checker: postgres.NewChecker(sqlDB),
		reset: func(ctx context.Context) error {
			return postgres.Reset(ctx, sqlDB)
		},
		close: closeSQL(sqlDB),
	}, nil
}

func openMongo(ctx context.Context, cfg config.MongoConfig, migrate bool, log zerolog.Logger) (*Storage, error) {
	client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.URI, Database: cfg.Database})
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := mongo.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Msg("mongo indexes ensured")
	}

	return &Storage{
		Driver:  config.DriverMongo,
		Users:   mongo.NewUserRepository(database),
		Items:   mongo.NewItemRepository(database),
		Checker: mongo.NewChecker(client),
		reset: func(ctx context.Context) error {
			return mongo.Reset(ctx, database)
		},
		close: disconnectMongo(client),
	}, nil
}

func closeSQL(db *sql.DB) func(context.Context) error {
	return func(context.Context) error { return db.Close() }
}

func disconnectMongo(client *mongodriver.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Disconnect(ctx); err != nil && !errors.Is(err, mongodriver.ErrClientDisconnected) {
			return err
		}
		return nil
	}
}
