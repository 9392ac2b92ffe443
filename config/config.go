package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost port=5432 user=postgres dbname=levelup password=postgres sslmode=disable"

// Config holds everything the server reads from the environment.
type Config struct {
	Port        string
	GinMode     string
	DatabaseURL string

	LogLevel string
	LogFile  string

	RedisURL      string
	RedisPassword string

	JWTSecret string
	TokenTTL  time.Duration

	UseHTTPS    bool
	TLSCertFile string
	TLSKeyFile  string

	CORSOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	SeedGameTypes bool
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	return Config{
		Port:              getEnv("PORT", "8080"),
		GinMode:           os.Getenv("GIN_MODE"),
		DatabaseURL:       getEnv("DATABASE_URL", defaultDSN),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           os.Getenv("LOG_FILE"),
		RedisURL:          os.Getenv("REDIS_URL"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         getEnv("JWT_SECRET", "levelup-dev-secret"),
		TokenTTL:          getDuration("TOKEN_TTL", 72*time.Hour),
		UseHTTPS:          os.Getenv("USE_HTTPS") == "true",
		TLSCertFile:       os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:        os.Getenv("TLS_KEY_FILE"),
		CORSOrigins:       getList("CORS_ORIGINS", []string{"http://localhost:3000", "https://localhost:3000"}),
		RateLimitRequests: getInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getDuration("RATE_LIMIT_WINDOW", time.Minute),
		SeedGameTypes:     getEnv("SEED_GAME_TYPES", "true") == "true",
	}
}

// IsRelease reports whether gin runs in release mode.
func (c Config) IsRelease() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
