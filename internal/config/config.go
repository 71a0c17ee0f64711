package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends selectable with STORE.
const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	Store       string
	MySQLDSN    string
	ResetDB     bool
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	SwaggerHost string

	LogLevel  string
	LogFormat string

	// OllamaURL empty disables the suggestion endpoints.
	OllamaURL     string
	OllamaModel   string
	OllamaTimeout time.Duration
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		Store:         strings.ToLower(getEnv("STORE", StoreMySQL)),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/gigboard?charset=utf8mb4&parseTime=True&loc=UTC"),
		ResetDB:       getEnvBool("RESET_DB", false),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:     strings.ToLower(getEnv("LOG_FORMAT", "json")),
		OllamaURL:     os.Getenv("OLLAMA_URL"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3.2"),
		OllamaTimeout: getEnvDuration("OLLAMA_TIMEOUT", 30*time.Second),
	}
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
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
