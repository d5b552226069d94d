package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: whiskey-reviewer
  version: 1.2.0
dataset:
  source: file
  path: data/whiskey_data.json
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "1.2.0", cfg.App.Version)
	assert.Equal(t, "data/whiskey_data.json", cfg.Dataset.Path)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 5000, cfg.Server.ReadTimeout)
	assert.Equal(t, "drams", cfg.Dataset.Table)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.False(t, cfg.Camunda.Enabled)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_DRAM_TABLE", "whiskies")
	path := writeConfig(t, `
dataset:
  source: postgres
  table: ${TEST_DRAM_TABLE}
database:
  postgres:
    host: localhost
    database: drams
    user: reviewer
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "whiskies", cfg.Dataset.Table)
	assert.Equal(t, "host=localhost port=5432 user=reviewer password= dbname=drams sslmode=disable",
		cfg.Database.Postgres.GetDSN())
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadFromFile_ShippedConfigWithoutEnv(t *testing.T) {
	unsetEnv(t, "WHISKEY_DATA_PATH", "DATASET_PATH", "APP_ENVIRONMENT", "DB_HOST", "DB_USER", "DB_PASSWORD")

	cfg, err := LoadFromFile(filepath.Join("..", "..", "..", "configs", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "whiskey_data.json", cfg.Dataset.Path)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, DatasetSourceFile, cfg.Dataset.Source)
	assert.Empty(t, cfg.Database.Postgres.Host)
}

func TestLoadFromFile_UnsetPlaceholderFallsBackToDefault(t *testing.T) {
	unsetEnv(t, "TEST_UNSET_DRAM_PATH")
	t.Setenv("TEST_DRAM_ENV", "staging")
	path := writeConfig(t, `
app:
  environment: ${TEST_DRAM_ENV}
dataset:
  path: ${TEST_UNSET_DRAM_PATH}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, "whiskey_data.json", cfg.Dataset.Path)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{
			name: "unknown dataset source",
			body: `
dataset:
  source: s3
`,
			errMsg: "dataset.source must be",
		},
		{
			name: "postgres without host",
			body: `
dataset:
  source: postgres
`,
			errMsg: "database.postgres.host is required",
		},
		{
			name: "camunda without broker",
			body: `
camunda:
  enabled: true
`,
			errMsg: "camunda.broker_address is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGetWorkerConfig_FallsBackToCamunda(t *testing.T) {
	cfg := &Config{
		Camunda: CamundaConfig{MaxJobsActive: 7, Timeout: 1500},
		Workers: map[string]WorkerConfig{
			"other": {Enabled: false, MaxJobsActive: 1, Timeout: 10},
		},
	}

	wc := GetWorkerConfig(cfg, "get-review")
	assert.True(t, wc.Enabled)
	assert.Equal(t, 7, wc.MaxJobsActive)
	assert.Equal(t, 1500*time.Millisecond, GetDuration(wc.Timeout))

	assert.False(t, GetWorkerConfig(cfg, "other").Enabled)
}
