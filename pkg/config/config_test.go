package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodflux/prodflux-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "prodflux-api", cfg.App.Name)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Shopbridge.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Shopbridge.RefreshInterval)
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SHOPBRIDGE_ENABLED", "true")
	t.Setenv("SHOPBRIDGE_REFRESH_INTERVAL", "5m")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Shopbridge.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Shopbridge.RefreshInterval)
}

func TestDBConfig_DSNEscapaLaContrasena(t *testing.T) {
	db := config.DBConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "prodflux",
		Password: "p@ss:w/ord",
		DBName:   "prodflux",
		SSLMode:  "require",
	}

	dsn := db.DSN()
	assert.Contains(t, dsn, "p%40ss%3Aw%2Ford")
	assert.Contains(t, dsn, "db.internal:5432/prodflux")
}

func TestDBConfig_DatabaseURLTienePrioridad(t *testing.T) {
	db := config.DBConfig{
		DatabaseURL: "postgresql://u:p@remote:5432/otra",
		Host:        "localhost",
	}
	assert.Equal(t, "postgresql://u:p@remote:5432/otra", db.ConnectionString())
}
