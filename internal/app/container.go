package app

import (
	"context"
	"fmt"

	"github.com/bandseeking/bandseeking-go/internal/config"
	"github.com/bandseeking/bandseeking-go/internal/geocoding"
	"github.com/bandseeking/bandseeking-go/internal/location"
	"github.com/bandseeking/bandseeking-go/internal/profile"
	"github.com/bandseeking/bandseeking-go/internal/server"
	"github.com/bandseeking/bandseeking-go/internal/service/cache"
	"github.com/bandseeking/bandseeking-go/internal/service/database"
	"go.uber.org/zap"
)

// Container bundles the assembled services behind the HTTP server.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Server   *server.Server
	Resolver *location.Resolver
	Profiles *profile.Service

	closers []func()
}

// Close releases resources in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// NewGeocoder builds the geocoding client from config. Shared with bandctl.
func NewGeocoder(cfg config.GeocodingConfig, logger *zap.Logger) *geocoding.Client {
	return geocoding.NewClient(nil, geocoding.Config{
		BaseURL:           cfg.BaseURL,
		UserAgent:         cfg.UserAgent,
		CountryCode:       cfg.CountryCode,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		FailureThreshold:  cfg.FailureThreshold,
		ResetTimeout:      cfg.ResetTimeout,
	}, logger)
}

// NewResolver wires the location resolver, with the Redis tier when enabled.
// The cache service is nil when Redis is disabled. The returned closer must
// be called on shutdown.
func NewResolver(ctx context.Context, cfg *config.Config, geocoder location.Geocoder, logger *zap.Logger) (*location.Resolver, *cache.CacheService, func(), error) {
	var (
		shared   location.SharedCache
		cacheSvc *cache.CacheService
		closer   = func() {}
	)
	if cfg.Redis.Enabled {
		svc, err := cache.NewCacheService(ctx, cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create cache service: %w", err)
		}
		cacheSvc = svc
		shared = svc
		closer = func() { _ = svc.Close() }
	}

	resolver := location.NewResolver(geocoder, shared, logger, location.Config{
		LookupTimeout: cfg.Location.LookupTimeout,
	})
	return resolver, cacheSvc, func() {
		resolver.Close()
		closer()
	}, nil
}

// Build assembles all infrastructure services. On error everything opened
// so far is closed again.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	postgresSvc, err := database.NewPostgresService(ctx, database.PostgresConfig{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Database: cfg.Postgres.Database,
		SSLMode:  cfg.Postgres.SSLMode,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres service: %w", err)
	}
	closers = append(closers, func() {
		_ = postgresSvc.Close()
	})

	geocoder := NewGeocoder(cfg.Geocoding, logger)
	resolver, cacheSvc, closeResolver, err := NewResolver(ctx, cfg, geocoder, logger)
	if err != nil {
		return nil, err
	}
	closers = append(closers, closeResolver)

	encourager := profile.NewEncourager(nil)
	profiles := profile.NewService(profile.NewPostgresRepository(postgresSvc, logger), resolver, encourager, logger)

	deps := server.Dependencies{
		Locations:      resolver,
		Profiles:       profiles,
		Encourager:     encourager,
		Geocoder:       geocoder,
		Database:       postgresSvc,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Mode:           cfg.Server.Mode,
		Logger:         logger,
	}
	if cacheSvc != nil {
		deps.Cache = cacheSvc
	}
	srv := server.New(cfg.Server.Addr, deps)

	logger.Info("Services assembled",
		zap.Bool("redis_location_cache", cfg.Redis.Enabled),
		zap.String("geocoder", cfg.Geocoding.BaseURL),
	)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Server:   srv,
		Resolver: resolver,
		Profiles: profiles,
		closers:  closers,
	}, nil
}
