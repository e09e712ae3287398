package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"APP_PORT", "APP_ENV", "LOG_LEVEL", "STORE_DRIVER", "DATA_DIR", "STORE_FAIL_SOFT",
	"DATABASE_URL", "CORS_ALLOWED_ORIGINS", "LOW_STOCK_THRESHOLD", "STATIC_DIR",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.False(t, cfg.Server.IsProduction())
	assert.Empty(t, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DriverJSON, cfg.Store.Driver)
	assert.Equal(t, "./data", cfg.Store.DataDir)
	assert.False(t, cfg.Store.FailSoft)
	assert.Equal(t, "10", cfg.Reports.LowStockThreshold.String())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "8081")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://ledger@localhost/ledger")
	t.Setenv("STORE_FAIL_SOFT", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("LOW_STOCK_THRESHOLD", "2.5")

	cfg, err := Load(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.True(t, cfg.Store.FailSoft)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "2.5", cfg.Reports.LowStockThreshold.String())
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=9000\nDATA_DIR=/var/lib/ledger\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "/var/lib/ledger", cfg.Store.DataDir)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without url", map[string]string{"STORE_DRIVER": "postgres"}},
		{"unknown driver", map[string]string{"STORE_DRIVER": "sqlite"}},
		{"bad fail soft", map[string]string{"STORE_FAIL_SOFT": "maybe"}},
		{"bad threshold", map[string]string{"LOW_STOCK_THRESHOLD": "ten"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(missingFile(t))
			assert.Error(t, err)
		})
	}
}
