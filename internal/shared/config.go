package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	LogLevel       string
	HTTPAddr       string
	MetricsAddr    string
	RequestTimeout time.Duration

	DirectoryBase   string
	DirectorySource string // http | mysql
	DirectoryRPS    int

	MySQLDSN  string
	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	Workers int

	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:            env("APP_ENV", "prod"),
		LogLevel:          env("LOG_LEVEL", "info"),
		HTTPAddr:          env("HTTP_ADDR", ":5000"),
		MetricsAddr:       os.Getenv("METRICS_ADDR"),
		RequestTimeout:    dur("REQUEST_TIMEOUT", 15*time.Second),
		DirectoryBase:     strings.TrimRight(env("DIRECTORY_BASE_URL", "https://jsonplaceholder.typicode.com"), "/"),
		DirectorySource:   strings.ToLower(env("DIRECTORY_SOURCE", "http")),
		DirectoryRPS:      atoi("DIRECTORY_RPS", 5),
		MySQLDSN:          env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotel_match?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPass:         env("REDIS_PASSWORD", ""),
		RedisDB:           atoi("REDIS_DB", 0),
		CacheTTL:          time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		Workers:           atoi("INGEST_WORKERS", 4),
		CORSOrigins:       list("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		RateLimitRequests: atoi("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   dur("RATE_LIMIT_WINDOW", time.Minute),
	}
	if c.DirectorySource != "http" && c.DirectorySource != "mysql" {
		log.Warn().Str("source", c.DirectorySource).Msg("unknown DIRECTORY_SOURCE, using http")
		c.DirectorySource = "http"
	}
	if c.Workers < 1 {
		log.Warn().Int("workers", c.Workers).Msg("INGEST_WORKERS must be at least 1, using 1")
		c.Workers = 1
	}
	if c.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR is empty, directory cache disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func dur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// list splits a comma separated variable, dropping blanks.
func list(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
