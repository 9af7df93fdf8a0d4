package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://user:pw@localhost:5432/brands")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://user:pw@localhost:5432/brands")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "localhost:9000", cfg.MinioEndpoint)
	assert.Equal(t, "brand-logos", cfg.MinioBucket)
	assert.False(t, cfg.MinioUseSSL)
	assert.Equal(t, 50, cfg.DefaultPageSize)
	assert.Equal(t, 200, cfg.MaxPageSize)
	assert.Nil(t, cfg.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("TOKEN_TTL_MINUTES", "30")
	t.Setenv("MINIO_ENDPOINT", "minio.internal:9000")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "HS512", cfg.JWTAlgorithm)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "minio.internal:9000", cfg.MinioEndpoint)
	assert.True(t, cfg.MinioUseSSL)
}

func TestLoad_RejectsBadTokenTTL(t *testing.T) {
	for _, value := range []string{"0", "-5", "soon"} {
		t.Run(value, func(t *testing.T) {
			setRequired(t)
			t.Setenv("TOKEN_TTL_MINUTES", value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_RejectsBcryptCostOutOfRange(t *testing.T) {
	for _, value := range []string{"3", "32", "cheap"} {
		t.Run(value, func(t *testing.T) {
			setRequired(t)
			t.Setenv("BCRYPT_COST", value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSplitOrigins(t *testing.T) {
	assert.Nil(t, splitOrigins(""))
	assert.Nil(t, splitOrigins("  "))
	assert.Equal(t,
		[]string{"http://localhost:3000", "https://app.example.com"},
		splitOrigins(" http://localhost:3000, https://app.example.com ,"))
}
