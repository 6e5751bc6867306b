package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"character-chat/backend/internal/testdb"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_PATH", "RATE_LIMIT", "OPENAI_MODEL", "DEFAULT_CONTEXT_MESSAGES"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "chat_demo.db", cfg.Database.Path)
	assert.Equal(t, float64(0), cfg.Security.RateLimit)
	assert.Equal(t, "gpt-4o-mini", cfg.Completion.Model)
	assert.Equal(t, 10, cfg.Chat.DefaultContextMessages)
	assert.Equal(t, 20, cfg.Chat.SessionListLimit)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("RATE_LIMIT", "2.5")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("COMPLETION_TIMEOUT", "15s")
	t.Setenv("OPENAI_TEMPERATURE", "0.2")
	t.Setenv("DEFAULT_CONTEXT_MESSAGES", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 2.5, cfg.Security.RateLimit)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, 15*time.Second, cfg.Completion.Timeout)
	assert.InDelta(t, 0.2, cfg.Completion.Temperature, 0.0001)
	assert.Equal(t, 10, cfg.Chat.DefaultContextMessages)
}

func TestDialector(t *testing.T) {
	cfg := Load()

	cfg.Database.Driver = DriverSQLite
	d, err := Dialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	cfg.Database.Driver = DriverPostgres
	d, err = Dialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	cfg.Database.Driver = "oracle"
	_, err = Dialector(cfg)
	assert.Error(t, err)
}

func TestTestConnection(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	require.NoError(t, TestConnection(ctx, db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	assert.Error(t, TestConnection(ctx, db))
}
