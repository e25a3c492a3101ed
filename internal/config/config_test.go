package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgeniy-krivenko/syncnote/internal/config"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, ":8081", cfg.HTTP.Addr)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "note:", cfg.Redis.KeyPrefix)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "note_db", cfg.Mongo.Database)
	assert.Equal(t, "notes", cfg.Mongo.Collection)
	assert.Equal(t, 5*time.Second, cfg.Mongo.Timeout)
	assert.Equal(t, "/ws", cfg.WS.Path)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("REDIS_KEY_PREFIX", "scribble:")
	t.Setenv("MONGO_TIMEOUT", "750ms")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, "scribble:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 750*time.Millisecond, cfg.Mongo.Timeout)
}
