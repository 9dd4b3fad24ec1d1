package app

import (
	"fmt"

	"github.com/vladislavdragonenkov/storefront/internal/secrets"
)

// StorageDriver выбирает реализацию каталога и хранилища заказов.
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverPostgres StorageDriver = "postgres"
	StorageDriverMySQL    StorageDriver = "mysql"
)

// SecretSourceKind выбирает, откуда берутся реквизиты базы.
type SecretSourceKind string

const (
	SecretSourceEnv     SecretSourceKind = "env"
	SecretSourceJSON    SecretSourceKind = "json"
	SecretSourceManager SecretSourceKind = "aws-secrets-manager"
)

// Config описывает настройки запуска приложения. Заполняется один раз на
// старте процесса и дальше только читается.
type Config struct {
	// APIAddr — адрес публичного API (health, products, orders).
	APIAddr string
	// OpsAddr — адрес операционного сервера (metrics, healthz, livez).
	OpsAddr string

	StorageDriver StorageDriver

	SecretSource SecretSourceKind
	// SecretID — идентификатор секрета в AWS Secrets Manager.
	SecretID string
	// SecretJSON — inline JSON-документ секрета (для локального запуска).
	SecretJSON string
	// SecretEnvPrefix — префикс переменных окружения env-источника.
	SecretEnvPrefix string

	// AutoMigrate включает накат схемы при старте SQL-хранилища.
	AutoMigrate bool
}

// DefaultConfig возвращает настройки для локального запуска без внешних
// зависимостей.
func DefaultConfig() Config {
	return Config{
		APIAddr:         ":8080",
		OpsAddr:         ":9090",
		StorageDriver:   StorageDriverMemory,
		SecretSource:    SecretSourceEnv,
		SecretEnvPrefix: "STOREFRONT_DB",
		AutoMigrate:     true,
	}
}

// Validate проверяет согласованность конфигурации до запуска.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory, StorageDriverPostgres, StorageDriverMySQL:
	default:
		return fmt.Errorf("unsupported storage driver: %q", c.StorageDriver)
	}

	if c.StorageDriver == StorageDriverMemory {
		return nil
	}

	switch c.SecretSource {
	case SecretSourceEnv:
		if c.SecretEnvPrefix == "" {
			return fmt.Errorf("secret env prefix is required for env secret source")
		}
	case SecretSourceJSON:
		if c.SecretJSON == "" {
			return fmt.Errorf("secret json document is required for json secret source")
		}
	case SecretSourceManager:
		if c.SecretID == "" {
			return fmt.Errorf("secret id is required for aws-secrets-manager secret source")
		}
	default:
		return fmt.Errorf("unsupported secret source: %q", c.SecretSource)
	}

	return nil
}

// defaultPort возвращает порт базы по умолчанию для выбранного драйвера.
func (c Config) defaultPort() int {
	if c.StorageDriver == StorageDriverMySQL {
		return secrets.DefaultMySQLPort
	}
	return secrets.DefaultPostgresPort
}
