package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	ListenAddr  string
	DatabaseURL string
	NatsURL     string
	RedisAddr   string
	ScanWorkers int
	// Per-connection issue sample size returned with dashboard snapshots.
	IssueSampleSize int
}

// Load reads configuration from the environment, with an optional .env file
// for local runs. A missing DATABASE_URL is returned as an error value so
// callers can decide whether it is fatal.
func Load() (Config, error) {
	for _, path := range []string{".env", "../.env"} {
		if err := godotenv.Load(path); err == nil {
			log.Printf("loaded config from %s", path)
			break
		}
	}

	cfg := Config{
		Env:             getenv("APP_ENV", "development"),
		ListenAddr:      getenv("LISTEN_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		NatsURL:         getenv("NATS_URL", ""),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		ScanWorkers:     getenvInt("SCAN_WORKERS", 0),
		IssueSampleSize: getenvInt("ISSUE_SAMPLE_SIZE", 20),
	}
	if cfg.IssueSampleSize < 1 {
		cfg.IssueSampleSize = 1
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL not set")
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.Atoi(v); err == nil {
			return out
		}
	}
	return def
}
