package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"philcali.me/barmanager/internal/config"
)

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "barkeeper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
table_name: BarData
api:
  base_url: http://localhost:9000/workspaces/bar
  timeout: 3s
logging:
  level: debug
`), 0o600))

	t.Setenv("BARMANAGER_LOG_FORMAT", "console")
	t.Setenv("TABLE_NAME", "")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "BarData", cfg.TableName)
	assert.Equal(t, "http://localhost:9000/workspaces/bar", cfg.API.BaseURL)
	assert.Equal(t, config.Duration(3*time.Second), cfg.API.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.NoError(t, cfg.ValidateServer())
	assert.NoError(t, cfg.ValidateClient())
}

func TestDefaultsAndValidation(t *testing.T) {
	cfg := config.Default()
	cfg.ApplyEnv(func(name string) (string, bool) {
		if name == "BARMANAGER_API_TIMEOUT" {
			return "250ms", true
		}
		return "", false
	})
	assert.Equal(t, config.Duration(250*time.Millisecond), cfg.API.Timeout)
	assert.ErrorIs(t, cfg.ValidateServer(), config.ErrMissingTable)
	assert.ErrorIs(t, cfg.ValidateClient(), config.ErrMissingBaseURL)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  timeout: soon\n"), 0o600))
	_, err := config.Load(path)
	assert.Error(t, err)
}
