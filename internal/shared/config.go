package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	NominatimBase   string
	NominatimRPS    float64
	SerperBase      string
	SerperKey       string
	GeminiBase      string
	GeminiKey       string
	ProviderTimeout time.Duration
	CORSOrigins     []string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ":9100"),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisDB:         atoi("REDIS_DB", 0),
		RedisPass:       env("REDIS_PASSWORD", ""),
		NominatimBase:   env("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimRPS:    1,
		SerperBase:      env("SERPER_BASE_URL", "https://google.serper.dev"),
		SerperKey:       env("SERPER_API_KEY", ""),
		GeminiBase:      env("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiKey:       env("GEMINI_API_KEY", ""),
		ProviderTimeout: time.Duration(atoi("PROVIDER_TIMEOUT_SECONDS", 20)) * time.Second,
		CORSOrigins:     strings.Split(env("CORS_ORIGINS", "*"), ","),
	}
	if v := os.Getenv("NOMINATIM_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.NominatimRPS = f
		}
	}
	if c.SerperKey == "" {
		log.Warn().Msg("SERPER_API_KEY is empty; enrichment and extended address search are disabled")
	}
	if c.GeminiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is empty; model extraction falls back to regex parsing")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
