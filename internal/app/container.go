package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"paquexpress-service/internal/config"
	"paquexpress-service/internal/http/handlers"
	"paquexpress-service/internal/http/pprofserver"
	"paquexpress-service/internal/http/router"
	"paquexpress-service/internal/logx"
	"paquexpress-service/internal/repository"
	"paquexpress-service/internal/security/password"
	"paquexpress-service/internal/security/token"
	"paquexpress-service/internal/service/assignments"
	"paquexpress-service/internal/service/auth"
	"paquexpress-service/internal/service/delivery"
	"paquexpress-service/internal/service/packages"
	"paquexpress-service/internal/storage/photos"
	"paquexpress-service/internal/transport/kafka"
)

type dbConnectFunc func(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect  dbConnectFunc
	loadConfig func() (*config.Config, error)
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect:  connectDbWithRetry,
		loadConfig: config.Load,
		logFatalf:  log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithConfig replaces config loading with a fixed config.
func (b *ContainerBuilder) WithConfig(cfg *config.Config) *ContainerBuilder {
	if cfg != nil {
		b.loadConfig = func() (*config.Config, error) { return cfg, nil }
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the HTTP service container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the assignment worker container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container, err := b.base(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container, err := b.base(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) base(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	// Config errors surface at build time, not on first resolve.
	if err := container.Invoke(func(*config.Config) {}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the HTTP service container with default settings.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the worker container with default settings.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, loadConfig func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		loadConfig,
		NewLogger,
		func(cfg *config.Config) time.Duration { return cfg.Service.OperationTimeout },
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
		if err != nil {
			return nil, err
		}
		if err := migrate(ctx, logger, pool, cfg.DB.AutoMigrate); err != nil {
			pool.Close()
			return nil, err
		}
		return pool, nil
	}
	return provideAll(container, providerDB)
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container,
		prometheus.NewRegistry,
		func(reg *prometheus.Registry) prometheus.Registerer { return reg },
		provideMetrics,
	)
}

type authIn struct {
	dig.In

	Users    *repository.UserRepo
	Hasher   *password.Hasher
	Issuer   *token.Issuer
	Timeout  time.Duration
	Logger   logx.Logger
	Attempts *prometheus.CounterVec `name:"login_attempts_total"`
}

type deliveryIn struct {
	dig.In

	Repo       *repository.DeliveryRepo
	Store      *photos.LocalStore
	Names      delivery.NameFactory
	Timeout    time.Duration
	Logger     logx.Logger
	Registered prometheus.Counter `name:"deliveries_registered_total"`
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewUserRepo,
		repository.NewPackageRepo,
		repository.NewDeliveryRepo,
		func(cfg *config.Config) *password.Hasher { return password.NewHasher(cfg.Auth.BcryptCost) },
		func(cfg *config.Config) *token.Issuer { return token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL) },
		func(cfg *config.Config) (*photos.LocalStore, error) {
			return photos.NewLocalStore(cfg.Storage.UploadDir)
		},
		delivery.NewNameFactory,
		func(in authIn) *auth.Service {
			return auth.NewService(in.Users, in.Hasher, in.Issuer, in.Timeout, in.Logger, in.Attempts)
		},
		func(repo *repository.PackageRepo, timeout time.Duration, logger logx.Logger) *packages.Service {
			return packages.NewService(repo, timeout, logger)
		},
		func(in deliveryIn) *delivery.Service {
			return delivery.NewDeliveryService(in.Repo, in.Store, in.Names, in.Timeout, in.Logger, in.Registered)
		},
	)
}

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	pprofProvider := func(cfg *config.Config) pprofOut {
		return pprofOut{Server: pprofserver.NewServer(cfg.Pprof)}
	}
	if err := container.Provide(
		func(cfg *config.Config) bool { return cfg.Debug.Endpoints },
		dig.Name("debug_endpoints"),
	); err != nil {
		return fmt.Errorf("provide debug_endpoints: %w", err)
	}
	return provideAll(container,
		handlers.New,
		handlers.NewAuthUsecase,
		handlers.NewAuthHandler,
		handlers.NewPackageUsecase,
		handlers.NewPackageHandler,
		func(logger logx.Logger, cfg *config.Config, svc *delivery.Service) *handlers.DeliveryHandler {
			return handlers.NewDeliveryHandler(logger, handlers.NewDeliveryUsecase(svc), cfg.Storage.MaxUploadBytes)
		},
		func(svc *auth.Service) router.Authorizer { return svc },
		router.New,
		serverProvider,
		pprofProvider,
	)
}

type workerIn struct {
	dig.In

	Repo    *repository.DeliveryRepo
	Timeout time.Duration
	Logger  logx.Logger
	Events  *prometheus.CounterVec `name:"assignment_events_total"`
	Retries prometheus.Counter     `name:"assignment_retries_total"`
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		repository.NewDeliveryRepo,
		func(in workerIn) *assignments.Processor {
			return assignments.NewProcessor(in.Repo, in.Timeout, in.Logger, in.Events)
		},
		func(in workerIn, p *assignments.Processor) *assignments.Retrying {
			return assignments.NewRetrying(p, in.Logger, in.Retries, assignments.DefaultRetryConfig())
		},
		func(cfg *config.Config, logger logx.Logger, r *assignments.Retrying) (*kafka.Consumer, error) {
			k := cfg.Kafka
			return kafka.NewConsumer(logger, k.Brokers, k.GroupID, k.AssignmentsTopic, makeAssignmentsKafka(r))
		},
	)
}
