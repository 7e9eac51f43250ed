package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// NewsAPIKey enables the NewsAPI source when non-empty.
	NewsAPIKey string
	RedisAddr  string

	LookbackDays    int
	RefreshInterval time.Duration
	// RefreshCronSpec is how often the scheduler checks whether a refresh
	// is due, not the refresh period itself.
	RefreshCronSpec string
}

func Load() *Config {
	// Optional .env for local development; missing files are fine.
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:         getEnv("APP_PORT", "8080"),
		NewsAPIKey:      getEnv("NEWSAPI_KEY", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		LookbackDays:    getEnvInt("LOOKBACK_DAYS", 7),
		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 24*time.Hour),
		RefreshCronSpec: getEnv("REFRESH_CRON", "0 * * * *"),
	}

	log.Printf("config loaded: port=%s lookback=%dd interval=%s newsapi=%t",
		cfg.AppPort, cfg.LookbackDays, cfg.RefreshInterval, cfg.NewsAPIKey != "")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("warn: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("warn: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
