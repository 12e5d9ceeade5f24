package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

type Config struct {
	HTTPAddr      string
	LogLevel      string
	PostgresDSN   string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	SecretKey     string
	BoardStore    string
	NameCacheSize int
	NameCacheTTL  time.Duration
}

// Load reads the optional dotenv files into the environment and builds
// the config from it. Variables already set in the environment win.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: failed reading %s: %w", f, err)
		}
	}

	cfg := &Config{
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		LogLevel:    env("LOG_LEVEL", "info"),
		PostgresDSN: env("POSTGRES_DSN", "postgresql://localhost/forum?sslmode=disable"),
		MongoURI:    env("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:     env("MONGODB_DB", "forum"),
		RedisAddr:   env("REDIS_ADDR", "redis://localhost:6379/0"),
		SecretKey:   os.Getenv("SECRET_KEY"),
		BoardStore:  env("BOARD_STORE", StoreMongo),
	}

	var err error
	if cfg.NameCacheSize, err = strconv.Atoi(env("NAME_CACHE_SIZE", "1024")); err != nil || cfg.NameCacheSize <= 0 {
		return nil, errors.New("config: NAME_CACHE_SIZE must be a positive number")
	}
	if cfg.NameCacheTTL, err = time.ParseDuration(env("NAME_CACHE_TTL", "5m")); err != nil {
		return nil, fmt.Errorf("config: bad NAME_CACHE_TTL: %w", err)
	}

	if cfg.SecretKey == "" {
		return nil, errors.New("config: SECRET_KEY is required")
	}
	switch cfg.BoardStore {
	case StoreMongo, StorePostgres:
	default:
		return nil, fmt.Errorf("config: unknown BOARD_STORE %q, want %s or %s", cfg.BoardStore, StoreMongo, StorePostgres)
	}

	return cfg, nil
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
