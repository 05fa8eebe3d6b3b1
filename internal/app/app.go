// Package app builds the object graph shared by the server and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"backoffice/internal/audit"
	authhandler "backoffice/internal/auth/handler"
	authservice "backoffice/internal/auth/service"
	"backoffice/internal/auth/token"
	clienthandler "backoffice/internal/clients/handler"
	clientmetrics "backoffice/internal/clients/metrics"
	clientservice "backoffice/internal/clients/service"
	clientstore "backoffice/internal/clients/store"
	"backoffice/internal/duplicates"
	duphandler "backoffice/internal/duplicates/handler"
	"backoffice/internal/integrations"
	"backoffice/internal/integrations/accounting"
	"backoffice/internal/integrations/esign"
	integrationhandler "backoffice/internal/integrations/handler"
	"backoffice/internal/integrations/subscriber"
	"backoffice/internal/platform/config"
	"backoffice/internal/platform/metrics"
	"backoffice/internal/platform/postgres"
	redisclient "backoffice/internal/platform/redis"
	httptransport "backoffice/internal/transport/http"
	userhandler "backoffice/internal/users/handler"
	userservice "backoffice/internal/users/service"
	userstore "backoffice/internal/users/store"
)

// App is the assembled back office.
type App struct {
	Router http.Handler
	Auth   *authservice.Service

	logger  *slog.Logger
	closers []func(context.Context) error
}

// UserStore serves both staff administration and login.
type UserStore interface {
	userservice.Store
	authservice.UserStore
}

// Stores are the persistence backends picked from config. Pool is nil for
// the in-memory backends.
type Stores struct {
	Clients clientservice.Store
	Users   UserStore
	Pool    *pgxpool.Pool
}

// OpenStores connects to Postgres and applies the schema when a database URL
// is configured, and falls back to in-memory stores otherwise.
func OpenStores(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Stores, error) {
	pool, err := postgres.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if pool == nil {
		logger.WarnContext(ctx, "DATABASE_URL not set; using in-memory stores")
		return &Stores{Clients: clientstore.NewInMemory(), Users: userstore.NewInMemory()}, nil
	}
	if err := postgres.Migrate(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Stores{
		Clients: clientstore.NewPostgres(pool),
		Users:   userstore.NewPostgres(pool),
		Pool:    pool,
	}, nil
}

// Build wires every component from cfg.
func Build(ctx context.Context, cfg config.Server, logger *slog.Logger) (*App, error) {
	a := &App{logger: logger}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.New(reg, reg)

	stores, err := OpenStores(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if stores.Pool != nil {
		a.closers = append(a.closers, func(context.Context) error { stores.Pool.Close(); return nil })
	}

	cache, err := a.duplicateCache(ctx, cfg.Redis)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	publisher, err := a.auditPublisher(ctx, cfg.Kafka)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	adapterOpts := []integrations.Option{
		integrations.WithTimeout(cfg.IntegrationTimeout),
		integrations.WithMetrics(integrations.NewMetrics(reg)),
	}
	acc := accounting.New(cfg.Accounting, adapterOpts...)
	es := esign.New(cfg.ESign, adapterOpts...)
	sub := subscriber.New(cfg.Subscriber, adapterOpts...)
	for system, configured := range map[integrations.System]bool{
		integrations.SystemAccounting: acc.Configured(),
		integrations.SystemESign:      es.Configured(),
		integrations.SystemSubscriber: sub.Configured(),
	} {
		logger.InfoContext(ctx, "integration", "system", string(system), "configured", configured)
	}

	dupService := duplicates.New(acc, es,
		duplicates.WithLogger(logger),
		duplicates.WithCache(cache, cfg.DuplicateCacheTTL),
		duplicates.WithMetrics(duplicates.NewMetrics(reg)),
	)
	clients := clientservice.New(stores.Clients, dupService,
		clientservice.Integrations{Accounting: acc, ESign: es, Subscriber: sub},
		clientservice.WithLogger(logger),
		clientservice.WithMetrics(clientmetrics.New(reg)),
		clientservice.WithAuditPublisher(publisher),
		clientservice.WithFallbackOperatorEmail(cfg.FallbackOperatorEmail),
	)
	users := userservice.New(stores.Users,
		userservice.WithLogger(logger),
		userservice.WithAuditPublisher(publisher),
	)
	tokens := token.NewJWTService(cfg.Auth.JWTSigningKey)
	a.Auth = authservice.New(stores.Users, tokens, cfg.Auth,
		authservice.WithLogger(logger),
		authservice.WithAuditPublisher(publisher),
	)

	a.Router = httptransport.NewRouter(httptransport.Config{
		Logger:         logger,
		Metrics:        httpMetrics,
		AllowedOrigins: cfg.AllowedOrigins,
		Validator:      tokens,
		Public: []httptransport.Registrar{
			authhandler.New(a.Auth, logger, cfg.Auth.SecureCookie),
		},
		Protected: []httptransport.Registrar{
			duphandler.New(dupService, logger),
			clienthandler.New(clients, logger),
			integrationhandler.New(map[integrations.System]integrationhandler.HealthChecker{
				integrations.SystemAccounting: acc,
				integrations.SystemESign:      es,
				integrations.SystemSubscriber: sub,
			}, acc, logger),
			userhandler.New(users, logger),
		},
	})
	return a, nil
}

func (a *App) duplicateCache(ctx context.Context, cfg config.RedisConfig) (duplicates.Cache, error) {
	rc, err := redisclient.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if rc == nil {
		a.logger.InfoContext(ctx, "REDIS_URL not set; duplicate-check cache is in-process")
		return duplicates.NewMemoryCache(), nil
	}
	a.closers = append(a.closers, func(context.Context) error { return rc.Close() })
	return duplicates.NewRedisCache(rc), nil
}

func (a *App) auditPublisher(ctx context.Context, cfg config.KafkaConfig) (*audit.Publisher, error) {
	if len(cfg.Brokers) == 0 {
		a.logger.InfoContext(ctx, "KAFKA_BROKERS not set; audit events go to the log")
		return audit.NewPublisher(audit.NewLogSink(a.logger)), nil
	}
	sink, err := audit.NewKafkaSink(cfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("create audit producer: %w", err)
	}
	a.closers = append(a.closers, sink.Close)
	return audit.NewPublisher(sink), nil
}

// Close releases connections in reverse order of creation.
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.WarnContext(ctx, "failed to close resource", "error", err)
		}
	}
}
