package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env             string
	ServerPort      string
	DBDriver        string
	DatabaseDSN     string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	JWTSecret       string
	JWTTTL          time.Duration
	Timezone        string
	FrontendOrigins []string
	AuthRateLimit   int
	LogLevel        string
	ResetDB         bool
	SwaggerHost     string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first when present; real env vars win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:             getEnv("APP_ENV", "development"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DatabaseDSN:     getEnv("DATABASE_DSN", "user:password@tcp(localhost:3306)/metrics?charset=utf8mb4&parseTime=True&loc=UTC"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       getEnv("JWT_SECRET", "change-me"),
		JWTTTL:          getEnvDuration("JWT_TTL", 7*24*time.Hour),
		Timezone:        os.Getenv("TIMEZONE"),
		FrontendOrigins: getEnvList("FRONTEND_ORIGINS", []string{"http://localhost:5173"}),
		AuthRateLimit:   getEnvInt("AUTH_RATE_LIMIT", 10),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ResetDB:         getEnvBool("RESET_DB", false),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
	}
}

// IsProduction reports whether APP_ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Location resolves TIMEZONE. Empty means the server's local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
