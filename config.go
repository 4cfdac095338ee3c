package main

import (
	"log"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/showcase/internal/presence"
)

// Config is read from the environment (and .env) with defaults for local use.
type Config struct {
	Port             string
	DBPath           string
	SupabaseURL      string
	SupabaseKey      string
	PresenceURL      string
	PresenceInterval time.Duration
	FetchTimeout     time.Duration
}

func loadConfig() Config {
	return Config{
		Port:             envOr("PORT", "8080"),
		DBPath:           envOr("DB_PATH", "data/showcase.db"),
		SupabaseURL:      os.Getenv("SUPABASE_URL"),
		SupabaseKey:      os.Getenv("SUPABASE_ANON_KEY"),
		PresenceURL:      envOr("PRESENCE_URL", presence.DefaultURL),
		PresenceInterval: envDuration("PRESENCE_INTERVAL", presence.DefaultInterval),
		FetchTimeout:     envDuration("FETCH_TIMEOUT", 10*time.Second),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
