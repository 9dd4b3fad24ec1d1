package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/secrets"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/mysql"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

// Dependencies содержит все зависимости приложения. Собирается один раз на
// старте процесса; хранилище и пул соединений переживают все вызовы.
type Dependencies struct {
	Catalog domain.CatalogLookup
	Orders  domain.OrderStore
	Logger  *log.Entry
	Metrics *metrics.IntakeMetrics
	Health  *healthcheck.Handler

	closers []func() error
}

// NewDependencies создаёт и инициализирует все зависимости приложения:
// разрешает секрет (один раз), открывает хранилище, готовит метрики и
// health-проверки.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Logger:  logger,
		Metrics: metrics.NewIntakeMetrics(),
		Health:  healthcheck.NewHandler(version.String()),
	}

	switch cfg.StorageDriver {
	case StorageDriverMemory:
		deps.Catalog = memory.NewCatalogStore()
		deps.Orders = memory.NewOrderStore()
		logger.Info("using in-memory storage")

	case StorageDriverPostgres:
		creds, err := resolveCredentials(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store, err := postgres.Open(ctx, postgres.BuildDSN(creds))
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := store.MigrateUp(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
		}
		deps.Catalog = postgres.NewCatalogLookup(store)
		deps.Orders = postgres.NewOrderStore(store)
		deps.closers = append(deps.closers, store.Close)
		deps.Health.RegisterChecker("storage", healthcheck.NewSimpleChecker("storage", func() error {
			return store.Ping(context.Background())
		}))
		logger.WithField("host", creds.Host).Info("postgres storage initialized")

	case StorageDriverMySQL:
		creds, err := resolveCredentials(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store, err := mysql.Open(ctx, mysql.BuildDSN(creds))
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("ensure schema: %w", err)
			}
		}
		deps.Catalog = mysql.NewCatalogLookup(store)
		deps.Orders = mysql.NewOrderStore(store)
		deps.closers = append(deps.closers, store.Close)
		deps.Health.RegisterChecker("storage", healthcheck.NewSimpleChecker("storage", func() error {
			return store.Ping(context.Background())
		}))
		logger.WithField("host", creds.Host).Info("mysql storage initialized")
	}

	return deps, nil
}

// resolveCredentials строит источник секрета и разрешает его ровно один
// раз; отсутствие обязательных полей — фатальная ошибка старта.
func resolveCredentials(ctx context.Context, cfg Config) (secrets.DBCredentials, error) {
	var source secrets.Source
	switch cfg.SecretSource {
	case SecretSourceEnv:
		source = secrets.NewEnvSource(cfg.SecretEnvPrefix, cfg.defaultPort())
	case SecretSourceJSON:
		source = secrets.NewJSONSource([]byte(cfg.SecretJSON), cfg.defaultPort())
	case SecretSourceManager:
		managed, err := secrets.NewManagerSource(ctx, cfg.SecretID, cfg.defaultPort())
		if err != nil {
			return secrets.DBCredentials{}, err
		}
		source = managed
	}

	creds, err := secrets.NewCached(source).Resolve(ctx)
	if err != nil {
		return secrets.DBCredentials{}, fmt.Errorf("resolve db credentials: %w", err)
	}
	return creds, nil
}

// Close освобождает ресурсы зависимостей (пул соединений с БД).
func (d *Dependencies) Close() error {
	var firstErr error
	for _, closeFn := range d.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
