package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/service/intake"
	"github.com/vladislavdragonenkov/storefront/internal/transport/lambdafn"
)

const (
	envStorageDriver   = "STOREFRONT_STORAGE_DRIVER"
	envSecretSource    = "STOREFRONT_SECRET_SOURCE"
	envSecretID        = "STOREFRONT_SECRET_ID"
	envSecretJSON      = "STOREFRONT_SECRET_JSON"
	envSecretEnvPrefix = "STOREFRONT_SECRET_ENV_PREFIX"
)

// envLookup абстрагирует os.LookupEnv для тестов.
type envLookup func(key string) (string, bool)

// setupLogger настраивает JSON-лог: в Lambda строки уходят в CloudWatch, и
// структурированный формат там удобнее текстового.
func setupLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

// readConfigFromEnv формирует конфигурацию функции. Адреса серверов здесь не
// нужны: транспортом управляет рантайм Lambda.
func readConfigFromEnv(lookup envLookup) app.Config {
	cfg := app.DefaultConfig()
	cfg.StorageDriver = app.StorageDriverMySQL
	cfg.SecretSource = app.SecretSourceManager

	if v, ok := lookup(envStorageDriver); ok && strings.TrimSpace(v) != "" {
		cfg.StorageDriver = app.StorageDriver(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := lookup(envSecretSource); ok && strings.TrimSpace(v) != "" {
		cfg.SecretSource = app.SecretSourceKind(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := lookup(envSecretID); ok && strings.TrimSpace(v) != "" {
		cfg.SecretID = strings.TrimSpace(v)
	}
	if v, ok := lookup(envSecretJSON); ok && strings.TrimSpace(v) != "" {
		cfg.SecretJSON = strings.TrimSpace(v)
	}
	if v, ok := lookup(envSecretEnvPrefix); ok && strings.TrimSpace(v) != "" {
		cfg.SecretEnvPrefix = strings.TrimSpace(v)
	}

	return cfg
}

// buildAdapter собирает зависимости один раз на холодный старт: пул
// соединений и разрешённый секрет переиспользуются всеми вызовами функции.
func buildAdapter(ctx context.Context, cfg app.Config, logger *log.Entry) (*lambdafn.Adapter, *app.Dependencies, error) {
	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build dependencies: %w", err)
	}

	processor := intake.NewProcessor(deps.Catalog, deps.Orders,
		logger.WithField("layer", "intake"), deps.Metrics)
	adapter := lambdafn.NewAdapter(processor, logger.WithField("layer", "lambda"))

	return adapter, deps, nil
}

func main() {
	setupLogger()
	logger := log.WithField("component", "lambda")

	cfg := readConfigFromEnv(os.LookupEnv)
	adapter, deps, err := buildAdapter(context.Background(), cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("не удалось инициализировать функцию")
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.WithError(err).Warn("failed to close dependencies")
		}
	}()

	lambda.Start(adapter.Handle)
}
