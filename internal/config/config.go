package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rledge21/shardmart/internal/core/domain"
)

type SyncMode string

const (
	// SyncModeDirect applies sync events synchronously and inline.
	SyncModeDirect SyncMode = "direct"
	// SyncModeQueue publishes sync events to Redis for a separate worker
	// process.
	SyncModeQueue SyncMode = "queue"
)

type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string

	RegionDatabases map[domain.Region]string
	CentralDatabase string

	MongoURI      string
	MongoDatabase string

	RedisAddr   string
	SyncMode    SyncMode
	WorkerCount int
}

// Load reads configuration from the environment, with a best-effort .env
// file layered underneath.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "password"),
		CentralDatabase:  getEnv("CENTRAL_DB", "central"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017/"),
		MongoDatabase:    getEnv("MONGO_DB", "distributed_db"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		SyncMode:         SyncMode(getEnv("SYNC_MODE", string(SyncModeDirect))),
		WorkerCount:      getEnvInt("SYNC_WORKERS", 4),
	}

	cfg.RegionDatabases = make(map[domain.Region]string, len(domain.Regions()))
	for _, region := range domain.Regions() {
		key := "REGION_DB_" + strings.ToUpper(string(region))
		cfg.RegionDatabases[region] = getEnv(key, string(region))
	}

	if cfg.SyncMode != SyncModeDirect && cfg.SyncMode != SyncModeQueue {
		return nil, fmt.Errorf("invalid SYNC_MODE %q (want %q or %q)", cfg.SyncMode, SyncModeDirect, SyncModeQueue)
	}

	return cfg, nil
}

// RegionalDSN returns the connection string for one region's database.
func (c *Config) RegionalDSN(region domain.Region) string {
	return c.dsn(c.RegionDatabases[region])
}

// CentralDSN returns the connection string for the central database.
func (c *Config) CentralDSN() string {
	return c.dsn(c.CentralDatabase)
}

func (c *Config) dsn(dbname string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, dbname)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
