package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

const (
	envAPIAddr         = "STOREFRONT_API_ADDR"
	envOpsAddr         = "STOREFRONT_OPS_ADDR"
	envStorageDriver   = "STOREFRONT_STORAGE_DRIVER"
	envSecretSource    = "STOREFRONT_SECRET_SOURCE"
	envSecretID        = "STOREFRONT_SECRET_ID"
	envSecretJSON      = "STOREFRONT_SECRET_JSON"
	envSecretEnvPrefix = "STOREFRONT_SECRET_ENV_PREFIX"
	envAutoMigrate     = "STOREFRONT_AUTO_MIGRATE"
)

// envLookup абстрагирует os.LookupEnv для тестов.
type envLookup func(key string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// readConfigFromEnv формирует конфигурацию приложения, позволяя
// переопределить значения через переменные окружения. Невалидные значения
// не ломают запуск: остаётся значение по умолчанию, а ошибка попадает в
// warnings.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	if v, ok := lookup(envAPIAddr); ok && strings.TrimSpace(v) != "" {
		cfg.APIAddr = strings.TrimSpace(v)
	}
	if v, ok := lookup(envOpsAddr); ok && strings.TrimSpace(v) != "" {
		cfg.OpsAddr = strings.TrimSpace(v)
	}
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
	if v, ok := lookup(envAutoMigrate); ok && strings.TrimSpace(v) != "" {
		parsed, err := parseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envAutoMigrate, err))
		} else {
			cfg.AutoMigrate = parsed
		}
	}

	return cfg, warnings
}

// parseBool принимает человеческие варианты булевых значений.
func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "t", "true", "yes", "on":
		return true, nil
	case "0", "f", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value: %q", value)
	}
}

func main() {
	setupLogger()

	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, warning := range warnings {
		log.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"api_addr":       cfg.APIAddr,
		"ops_addr":       cfg.OpsAddr,
		"storage_driver": cfg.StorageDriver,
		"version":        version.String(),
	}).Info("запускаем storefront")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("storefront остановлен")
}
