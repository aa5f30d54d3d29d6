// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting the application consumes.
type Config struct {
	Addr          string
	DBPath        string
	MediaRoot     string
	ViewsPath     string
	PostsPerPage  int
	IndexCacheTTL time.Duration
	SessionSecret string
	// RedisAddr selects the shared Redis page cache; empty means the
	// in-process cache.
	RedisAddr string
}

// Load reads the configuration from the environment. A missing .env file
// is fine; explicit environment variables always win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:          envString("SCRAWL_ADDR", ":8080"),
		DBPath:        envString("SCRAWL_DB_PATH", "data/badger"),
		MediaRoot:     envString("SCRAWL_MEDIA_ROOT", "data/media"),
		ViewsPath:     envString("SCRAWL_VIEWS_PATH", ""),
		PostsPerPage:  envInt("SCRAWL_POSTS_PER_PAGE", 10),
		IndexCacheTTL: envDuration("SCRAWL_INDEX_CACHE_TTL", 20*time.Second),
		SessionSecret: envString("SCRAWL_SESSION_SECRET", "dev-secret-change-me"),
		RedisAddr:     envString("SCRAWL_REDIS_ADDR", ""),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		log.Printf("ignoring invalid %s=%q", key, v)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("ignoring invalid %s=%q", key, v)
		return fallback
	}
	return d
}
