package postgres

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"pet-marketplace/internal/platform/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewMigrator arma un migrate.Migrate con las migraciones embebidas.
// El DSN debe ser URL (postgres:// o postgresql://); se reescribe al
// esquema pgx5:// que registra el driver.
func NewMigrator(dsn string, log logger.Logger) (*migrate.Migrate, error) {
	url, err := migrateURL(dsn)
	if err != nil {
		return nil, err
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrations source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return nil, fmt.Errorf("migration init: %w", err)
	}
	if log != nil {
		m.Log = &migrateLogger{log: log}
	}
	return m, nil
}

// MigrateUp aplica todas las migraciones pendientes.
func MigrateUp(dsn string, log logger.Logger) error {
	m, err := NewMigrator(dsn, log)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

func migrateURL(dsn string) (string, error) {
	for _, prefix := range []string{"postgres://", "postgresql://", "pgx5://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix), nil
		}
	}
	return "", errors.New("migrate: DB_DSN must be a postgres:// URL")
}

type migrateLogger struct {
	log logger.Logger
}

func (l *migrateLogger) Printf(format string, v ...any) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), logger.Fields{"component": "migrate"})
}

func (l *migrateLogger) Verbose() bool { return false }
