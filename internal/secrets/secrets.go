package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
)

const (
	// DefaultDatabase — имя базы по умолчанию, если секрет его не задаёт.
	DefaultDatabase = "storefront"
	// DefaultMySQLPort — порт по умолчанию для mysql-хранилища.
	DefaultMySQLPort = 3306
	// DefaultPostgresPort — порт по умолчанию для postgres-хранилища.
	DefaultPostgresPort = 5432
)

// DBCredentials — реквизиты подключения к базе, полученные из секрета.
// Разрешаются один раз на процесс и дальше только читаются.
type DBCredentials struct {
	Host     string
	User     string
	Password string
	Database string
	Port     int
}

// Source описывает источник секрета с реквизитами базы.
type Source interface {
	// Resolve возвращает реквизиты. Отсутствие обязательных полей —
	// фатальная ошибка старта, а не повод для дефолтов.
	Resolve(ctx context.Context) (DBCredentials, error)
}

// secretDocument — JSON-схема секрета. Исторический контракт допускает
// алиасы user/username и database/dbname; порт может прийти числом или
// строкой.
type secretDocument struct {
	Host     string      `json:"host"`
	User     string      `json:"user"`
	Username string      `json:"username"`
	Password string      `json:"password"`
	Database string      `json:"database"`
	DBName   string      `json:"dbname"`
	Port     json.Number `json:"port"`
}

// ParseDocument разбирает JSON-документ секрета и применяет дефолты.
func ParseDocument(raw []byte, defaultPort int) (DBCredentials, error) {
	var doc secretDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return DBCredentials{}, fmt.Errorf("parse secret document: %w", err)
	}

	creds := DBCredentials{
		Host:     doc.Host,
		User:     doc.User,
		Password: doc.Password,
		Database: doc.Database,
		Port:     defaultPort,
	}
	if creds.User == "" {
		creds.User = doc.Username
	}
	if creds.Database == "" {
		creds.Database = doc.DBName
	}
	if creds.Database == "" {
		creds.Database = DefaultDatabase
	}
	if doc.Port != "" {
		port, err := strconv.Atoi(doc.Port.String())
		if err != nil {
			return DBCredentials{}, fmt.Errorf("invalid port in secret: %q", doc.Port)
		}
		creds.Port = port
	}

	return creds, creds.validate()
}

func (c DBCredentials) validate() error {
	if c.Host == "" {
		return fmt.Errorf("secret is missing required field %q", "host")
	}
	if c.User == "" {
		return fmt.Errorf("secret is missing required field %q", "user")
	}
	if c.Password == "" {
		return fmt.Errorf("secret is missing required field %q", "password")
	}
	return nil
}

// JSONSource отдаёт реквизиты из заранее известного JSON-документа
// (inline-конфигурация или файл, прочитанный на старте).
type JSONSource struct {
	raw         []byte
	defaultPort int
}

// NewJSONSource конструирует источник из сырого документа.
func NewJSONSource(raw []byte, defaultPort int) *JSONSource {
	return &JSONSource{raw: raw, defaultPort: defaultPort}
}

func (s *JSONSource) Resolve(context.Context) (DBCredentials, error) {
	return ParseDocument(s.raw, s.defaultPort)
}

// EnvSource отдаёт реквизиты из переменных окружения с заданным префиксом:
// <PREFIX>_HOST, <PREFIX>_USER, <PREFIX>_PASSWORD, <PREFIX>_DATABASE,
// <PREFIX>_PORT.
type EnvSource struct {
	prefix      string
	defaultPort int
}

// NewEnvSource конструирует источник с префиксом переменных окружения.
func NewEnvSource(prefix string, defaultPort int) *EnvSource {
	return &EnvSource{prefix: prefix, defaultPort: defaultPort}
}

func (s *EnvSource) Resolve(context.Context) (DBCredentials, error) {
	creds := DBCredentials{
		Host:     os.Getenv(s.prefix + "_HOST"),
		User:     os.Getenv(s.prefix + "_USER"),
		Password: os.Getenv(s.prefix + "_PASSWORD"),
		Database: os.Getenv(s.prefix + "_DATABASE"),
		Port:     s.defaultPort,
	}
	if creds.Database == "" {
		creds.Database = DefaultDatabase
	}
	if raw := os.Getenv(s.prefix + "_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return DBCredentials{}, fmt.Errorf("invalid %s_PORT: %q", s.prefix, raw)
		}
		creds.Port = port
	}
	return creds, creds.validate()
}

// Cached оборачивает источник и гарантирует ровно одно обращение к нему за
// время жизни процесса; результат (включая ошибку) кешируется.
type Cached struct {
	source Source

	once  sync.Once
	creds DBCredentials
	err   error
}

// NewCached оборачивает источник кешем на время жизни процесса.
func NewCached(source Source) *Cached {
	return &Cached{source: source}
}

func (c *Cached) Resolve(ctx context.Context) (DBCredentials, error) {
	c.once.Do(func() {
		c.creds, c.err = c.source.Resolve(ctx)
	})
	return c.creds, c.err
}
