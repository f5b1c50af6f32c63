// Package main is the entry point for the book API server.
// It wires together configuration, the book store, the optional cache, and
// the HTTP router.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"

	"github.com/aoideee/bookapi/internal/data"

	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.
)

// appVersion is the current version of the API, shown in logs.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config  serverConfig      // Server configuration loaded from .env, environment and flags
	logger  *slog.Logger      // Structured logger
	books   *data.BookService // Domain service every book route goes through
	metrics *metrics          // Prometheus collectors

	// closeStores releases the store and cache clients; serve calls it once
	// the server has drained.
	closeStores func()
}

func main() {
	settings, err := loadConfig(".env", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(settings)
	logger.Info("booting", "version", appVersion)

	models, cleanup, err := openModels(settings, logger)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	appInstance := &applicationDependencies{
		config:      settings,
		logger:      logger,
		books:       data.NewBookService(models.Books),
		metrics:     newMetrics(),
		closeStores: cleanup,
	}

	err = appInstance.serve(context.Background())
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// openModels builds the configured book store, wrapping it in the Redis cache
// when an address is set. The returned cleanup closes every opened client.
func openModels(settings serverConfig, logger *slog.Logger) (data.Models, func(), error) {
	var (
		models  data.Models
		closers []func() error
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("close failed", "error", err)
			}
		}
		closers = nil
	}

	switch settings.Store {
	case "memory":
		models = data.NewMemoryModels()
		logger.Info("using in-memory book store")
	default:
		db, err := openDB(settings)
		if err != nil {
			return data.Models{}, nil, err
		}
		closers = append(closers, db.Close)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		models, err = data.NewModels(ctx, db, settings.DB.Table)
		if err != nil {
			cleanup()
			return data.Models{}, nil, err
		}
		logger.Info("database connection pool established")
	}

	if settings.Redis.Addr != "" {
		rdb, err := openRedis(settings)
		if err != nil {
			cleanup()
			return data.Models{}, nil, err
		}
		closers = append(closers, rdb.Close)
		models = models.WithCache(rdb, settings.Redis.TTL, data.WithCacheLogger(logger))
		logger.Info("book cache enabled", "addr", settings.Redis.Addr, "ttl", settings.Redis.TTL)
	}

	return models, cleanup, nil
}

// openDB opens a PostgreSQL connection pool using the DSN stored in settings,
// then pings the database with a 5-second timeout to confirm it is reachable.
func openDB(settings serverConfig) (*sqlx.DB, error) {
	// sqlx.Open only validates the DSN format; it does not actually connect yet.
	db, err := sqlx.Open("postgres", settings.DB.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(settings.DB.MaxOpenConns)
	db.SetMaxIdleConns(settings.DB.MaxIdleConns)
	db.SetConnMaxIdleTime(settings.DB.MaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// openRedis connects to the cache and pings it with a 5-second timeout.
func openRedis(settings serverConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     settings.Redis.Addr,
		Password: settings.Redis.Password,
		DB:       settings.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
