package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, k := range []string{"DB_URL", "PORT", "ENV", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "SNAPSHOT_BUCKET", "SNAPSHOT_REGION"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "sqlite:robofriends.db", cfg.DB_URL)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "auto", cfg.Snapshot.Region)
	assert.False(t, cfg.EnvFileLoaded)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=7000\nDB_URL=postgres://file\nSNAPSHOT_BUCKET=robots\n"), 0o600))
	t.Setenv("ENV_FILE", envFile)
	t.Setenv("DB_URL", "sqlite:override.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://robofriends.example")
	t.Setenv("ENV", "production")
	// godotenv never overwrites, so make sure the file values are the only source for these
	os.Unsetenv("PORT")
	os.Unsetenv("SNAPSHOT_BUCKET")
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("SNAPSHOT_BUCKET")
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.EnvFileLoaded)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "sqlite:override.db", cfg.DB_URL)
	assert.Equal(t, "robots", cfg.Snapshot.Bucket)
	assert.Equal(t, []string{"http://localhost:3000", "https://robofriends.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestLoadClient_Default(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("ROBOFRIENDS_API_URL", "")
	os.Unsetenv("ROBOFRIENDS_API_URL")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
}

func TestCorsConfig(t *testing.T) {
	opts := CorsConfig([]string{"http://localhost:3000"})
	assert.Equal(t, []string{"http://localhost:3000"}, opts.AllowedOrigins)
	assert.Contains(t, opts.AllowedMethods, "POST")
	assert.False(t, opts.AllowCredentials)
}
