package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "quiz-bank", cfg.Name)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "questions.db", cfg.Store.Path)
	assert.Equal(t, 25, cfg.Round.DefaultCount)
	assert.Equal(t, 2*time.Hour, cfg.Round.SessionTTL)
	assert.False(t, cfg.Grading.CaseSensitive)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, cfg.CORS.AllowedMethods)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("PG_HOST", "db.internal")
	t.Setenv("PG_USER", "quiz")
	t.Setenv("GRADING_CASE_SENSITIVE", "true")
	t.Setenv("ROUND_DEFAULT_COUNT", "10")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.True(t, cfg.Grading.CaseSensitive)
	assert.Equal(t, 10, cfg.Round.DefaultCount)
	assert.Contains(t, cfg.Store.Postgres.DSN(), "host=db.internal")
	assert.Contains(t, cfg.Store.Postgres.DSN(), "user=quiz")
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mysql")
	_, err := Load(context.Background())
	assert.Error(t, err)
}

func TestLoadRejectsBadCount(t *testing.T) {
	t.Setenv("ROUND_DEFAULT_COUNT", "0")
	_, err := Load(context.Background())
	assert.Error(t, err)
}
