// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/articlehub")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/articlehub", cfg.Database.URL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenExpire)
	assert.Equal(t, "admin@example.com", cfg.Seed.AdminEmail)
	assert.Equal(t, "Admin User", cfg.Seed.AdminName)
	assert.Equal(t, "admin123", cfg.Seed.AdminPassword)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  read_timeout: 5s
database:
  url: postgres://from-file/articlehub
seed:
  admin_email: owner@example.com
`), 0o600))

	t.Setenv("DATABASE_URL", "postgres://from-env/articlehub")
	t.Setenv("SEED_ADMIN_NAME", "Site Owner")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "postgres://from-env/articlehub", cfg.Database.URL)
	assert.Equal(t, "owner@example.com", cfg.Seed.AdminEmail)
	assert.Equal(t, "Site Owner", cfg.Seed.AdminName)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Address())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "database url required",
			env:  map[string]string{"DATABASE_URL": ""},
		},
		{
			name: "default seed password in production",
			env: map[string]string{
				"DATABASE_URL": "postgres://localhost/articlehub",
				"ENVIRONMENT":  "production",
			},
		},
		{
			name: "non-positive token lifetime",
			env: map[string]string{
				"DATABASE_URL":            "postgres://localhost/articlehub",
				"JWT_ACCESS_TOKEN_EXPIRE": "0s",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadProductionWithRealPassword(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/articlehub")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SEED_ADMIN_PASSWORD", "a-much-better-secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoadListOverrideReplacesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cors:
  allowed_methods: [GET]
`), 0o600))
	t.Setenv("DATABASE_URL", "postgres://localhost/articlehub")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"GET"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.App.Environment = "production"
	cfg.JWT.AccessTokenExpire = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
	assert.Contains(t, err.Error(), "jwt.access_token_expire")
	assert.Contains(t, err.Error(), "SEED_ADMIN_PASSWORD")
}
