package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type StoreKind string

const (
	StoreMemory   StoreKind = "memory"
	StoreJSON     StoreKind = "json"
	StorePostgres StoreKind = "postgres"
)

var ErrMissingSecret = errors.New("JWT_SECRET is required outside dev mode")

// Config de la API. Todo sale de variables de entorno (y .env si existe).
type Config struct {
	Env  string
	Port string

	Store   StoreKind
	DataDir string
	DBDSN   string

	JWTSecret      []byte
	TokenTTL       time.Duration
	BcryptCost     int
	SecretWasDrawn bool // true si JWT_SECRET no vino y se generó uno (solo dev)

	LogLevel    string
	LogFormat   string
	AppName     string
	CORSOrigins []string
}

func (c Config) Addr() string { return ":" + c.Port }

func (c Config) IsDev() bool { return c.Env == "dev" }

// Load lee .env (si existe) y luego el entorno.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup arma la config a partir de una función tipo os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		Env:       strings.ToLower(get("APP_ENV", "production")),
		Port:      get("PORT", "8080"),
		DataDir:   get("DATA_DIR", ""),
		DBDSN:     get("DB_DSN", ""),
		LogLevel:  get("LOG_LEVEL", "info"),
		LogFormat: get("LOG_FORMAT", "text"),
		AppName:   get("APP_NAME", "pet-marketplace"),
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric: %q", cfg.Port)
	}

	store, err := parseStore(get("STORE", ""), cfg.DataDir, cfg.DBDSN)
	if err != nil {
		return Config{}, err
	}
	cfg.Store = store
	if cfg.Store == StoreJSON && cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.Store == StorePostgres && cfg.DBDSN == "" {
		return Config{}, errors.New("STORE=postgres requires DB_DSN")
	}

	ttl, err := time.ParseDuration(get("TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be a positive duration: %q", get("TOKEN_TTL", ""))
	}
	cfg.TokenTTL = ttl

	cost, err := strconv.Atoi(get("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	cfg.BcryptCost = cost

	if secret := get("JWT_SECRET", ""); secret != "" {
		cfg.JWTSecret = []byte(secret)
	} else {
		if !cfg.IsDev() {
			return Config{}, ErrMissingSecret
		}
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return Config{}, fmt.Errorf("generate dev secret: %w", err)
		}
		cfg.JWTSecret = []byte(hex.EncodeToString(b))
		cfg.SecretWasDrawn = true
	}

	for _, o := range strings.Split(get("CORS_ORIGINS", ""), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg, nil
}

func parseStore(raw, dataDir, dsn string) (StoreKind, error) {
	switch StoreKind(strings.ToLower(raw)) {
	case StoreMemory:
		return StoreMemory, nil
	case StoreJSON:
		return StoreJSON, nil
	case StorePostgres:
		return StorePostgres, nil
	case "":
		// sin STORE explícito se infiere por lo que venga configurado
		switch {
		case dsn != "":
			return StorePostgres, nil
		case dataDir != "":
			return StoreJSON, nil
		default:
			return StoreMemory, nil
		}
	default:
		return "", fmt.Errorf("STORE must be memory, json or postgres: %q", raw)
	}
}
