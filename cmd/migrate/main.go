package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	pg "pet-marketplace/internal/adapters/storage/postgres"
	"pet-marketplace/internal/platform/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		usage(stderr)
		return errors.New("command required")
	}

	// solo hace falta el DSN; no se exige JWT_SECRET como en la API
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		return errors.New("DB_DSN environment variable is required")
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: logger.ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    "migrate",
		Out:    stderr,
	})

	m, err := pg.NewMigrator(dsn, log)
	if err != nil {
		return err
	}
	defer m.Close()

	switch rest[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("up failed: %w", err)
		}
		log.Info("migrations: up completed", nil)

	case "down":
		steps := 1
		if len(rest) > 1 {
			n, err := strconv.Atoi(rest[1])
			if err != nil || n < 1 {
				return fmt.Errorf("down: invalid steps argument %q", rest[1])
			}
			steps = n
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("down failed: %w", err)
		}
		log.Info("migrations: down completed", logger.Fields{"steps": steps})

	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("version failed: %w", err)
		}
		fmt.Fprintf(stdout, "version: %d  dirty: %v\n", v, dirty)

	case "force":
		if len(rest) < 2 {
			return errors.New("force: version argument required")
		}
		v, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("force: invalid version %q", rest[1])
		}
		if err := m.Force(v); err != nil {
			return fmt.Errorf("force failed: %w", err)
		}
		log.Info("migrations: forced", logger.Fields{"version": v})

	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", rest[0])
	}
	return nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `Usage: migrate <command> [args]

Commands:
  up           Apply all pending migrations
  down [N]     Rollback N migrations (default: 1)
  version      Print current migration version
  force <V>    Force set migration version (bypass dirty state)

Environment:
  DB_DSN       Required. postgres:// URL.`)
}
