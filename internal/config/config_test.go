package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "STORE", "REDIS_ADDR", "REDIS_DB", "RESET_DB", "LOG_LEVEL", "OLLAMA_URL", "OLLAMA_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, StoreMySQL, cfg.Store)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.ResetDB)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.OllamaURL)
	assert.Equal(t, 30*time.Second, cfg.OllamaTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE", "Memory")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RESET_DB", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("OLLAMA_URL", "http://localhost:11434")
	t.Setenv("OLLAMA_TIMEOUT", "5s")

	cfg := Load()
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.ResetDB)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://localhost:11434", cfg.OllamaURL)
	assert.Equal(t, 5*time.Second, cfg.OllamaTimeout)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "three")
	t.Setenv("OLLAMA_TIMEOUT", "soon")
	t.Setenv("RESET_DB", "maybe")

	cfg := Load()
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.OllamaTimeout)
	assert.False(t, cfg.ResetDB)
}
