package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/vladislavdragonenkov/storefront/internal/secrets"
)

const (
	defaultConnTimeout = 5 * time.Second
	// Та же фиксированная ёмкость пула, что и у postgres-хранилища.
	defaultMaxOpenConns    = 5
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 5 * time.Minute
)

// Store оборачивает SQL-подключение к MySQL.
type Store struct {
	db *sql.DB
}

// BuildDSN собирает mysql-DSN из реквизитов секрета. parseTime нужен для
// сканирования created_at в time.Time.
func BuildDSN(creds secrets.DBCredentials) string {
	cfg := mysqldriver.NewConfig()
	cfg.User = creds.User
	cfg.Passwd = creds.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", creds.Host, creds.Port)
	cfg.DBName = creds.Database
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// Open открывает подключение к MySQL и проверяет доступность базы.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}
	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	return &Store{db: db}, nil
}

// DB возвращает raw SQL DB, когда нужен низкоуровневый доступ.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping проверяет доступность подключения.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("mysql store is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	return s.db.PingContext(pingCtx)
}

// EnsureSchema создаёт таблицы, если их ещё нет. Отдельного мигратора для
// mysql-профиля нет: схема из двух таблиц накатывается идемпотентно.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("mysql store is not initialized")
	}

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(64) PRIMARY KEY,
			price DECIMAL(12, 2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id CHAR(36) PRIMARY KEY,
			total_amount DECIMAL(12, 2) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range ddl {
		execCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
		_, err := s.db.ExecContext(execCtx, stmt)
		cancel()
		if err != nil {
			return fmt.Errorf("ensure mysql schema: %w", err)
		}
	}
	return nil
}

// Close закрывает подключение к БД.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
