package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultHotelsCSV is used when HOTELS_CSV is unset.
const DefaultHotelsCSV = "data/hotels_weather_final_ter.csv"

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	// HotelsCSV is a dataset locator: a file path, an http(s) URL or mysql://<dsn>.
	HotelsCSV        string
	ClusterThreshold int
	FetchRPS         int
	FetchTimeout     time.Duration

	RedisAddr string // empty disables the view cache
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	// loader CLI
	MySQLDSN    string
	LoadWorkers int
	LoadBatch   int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Int("default", def).Msg("invalid integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:           env("APP_ENV", "prod"),
		LogLevel:         env("LOG_LEVEL", "info"),
		HTTPAddr:         env("HTTP_ADDR", "127.0.0.1:8501"),
		MetricsAddr:      env("METRICS_ADDR", ""),
		HotelsCSV:        env("HOTELS_CSV", DefaultHotelsCSV),
		ClusterThreshold: atoi("CLUSTER_THRESHOLD", 10),
		FetchRPS:         atoi("FETCH_RPS", 5),
		FetchTimeout:     time.Duration(atoi("FETCH_TIMEOUT_SECONDS", 60)) * time.Second,
		RedisAddr:        env("REDIS_ADDR", ""),
		RedisPass:        env("REDIS_PASSWORD", ""),
		RedisDB:          atoi("REDIS_DB", 0),
		CacheTTL:         time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		MySQLDSN:         env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotels?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		LoadWorkers:      atoi("LOAD_WORKERS", 4),
		LoadBatch:        atoi("LOAD_BATCH", 500),
	}
	if c.ClusterThreshold <= 0 {
		log.Warn().Int("value", c.ClusterThreshold).Msg("CLUSTER_THRESHOLD must be positive, using 10")
		c.ClusterThreshold = 10
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
