package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setPostgresEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PG_HOST", "db.local")
	t.Setenv("PG_USER", "trivia")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_DATABASE", "trivia_test")
}

func TestLoadDefaults(t *testing.T) {
	setPostgresEnv(t)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "trivia-api", cfg.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr)
	assert.Equal(t, 20*time.Second, cfg.GracefulShutdownTimeout)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 10*time.Minute, cfg.Trivia.CategoryCacheTTL)
	assert.Equal(t, []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, []string{"Content-Type", "Authorization"}, cfg.CORS.AllowedHeaders)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.CORS.AllowCredentials)
}

func TestLoadOverrides(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://trivia.example.com")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, []string{"https://trivia.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadRequiresPostgres(t *testing.T) {
	t.Setenv("PG_HOST", "")

	_, err := Load(context.Background())
	assert.Error(t, err)
}

func TestPostgresConnString(t *testing.T) {
	setPostgresEnv(t)

	pg, err := LoadPostgres()
	require.NoError(t, err)
	assert.Equal(t,
		"host=db.local port=5432 user=trivia password=secret dbname=trivia_test sslmode=disable pool_max_conns=10",
		pg.ConnString())
	assert.Equal(t,
		"host=db.local port=5432 user=trivia password=secret dbname=trivia_test sslmode=disable",
		pg.DSN())
}
