package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const minimalConfig = `
monarch:
  base_url: https://monarch.example.test/api
  username: importer
  password: secret
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "./archive", cfg.ArchiveDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "{type}_{timestamp}_{uuid}.txt", cfg.OutputNameFormat)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, 1, cfg.CSV.HeaderRow)
	assert.Equal(t, "UTF-8", cfg.CSV.Encoding)
	assert.Equal(t, 30, cfg.Monarch.TimeoutSeconds)
	assert.Equal(t, 30*time.Second, cfg.Monarch.Timeout())
	assert.Equal(t, "House", cfg.SalesAgents.Default)
	assert.Equal(t, "R. Delgado", cfg.SalesAgents.Table["1"])
}

func TestLoadOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
input_dir: /srv/uploads
log_format: json
csv:
  delimiter: "|"
  encoding: Windows-1252
sales_agents:
  default: Unassigned
  table:
    "9": J. Marsh
`))
	require.NoError(t, err)

	assert.Equal(t, "/srv/uploads", cfg.InputDir)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "|", cfg.CSV.Delimiter)
	assert.Equal(t, "Windows-1252", cfg.CSV.Encoding)
	assert.Equal(t, "Unassigned", cfg.SalesAgents.Default)
	assert.Equal(t, "J. Marsh", cfg.SalesAgents.Table["9"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing base url",
			`monarch: {username: u, password: p}`,
			"monarch.base_url is required",
		},
		{
			"missing credentials",
			`monarch: {base_url: https://m.test}`,
			"monarch.username and monarch.password are required",
		},
		{
			"bad encoding",
			minimalConfig + "csv: {encoding: EBCDIC}\n",
			"unsupported csv.encoding",
		},
		{
			"negative timeout",
			"monarch: {base_url: https://m.test, username: u, password: p, timeout_seconds: -1}",
			"timeout_seconds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "House", cfg.SalesAgents.Default)
	assert.NotEmpty(t, cfg.SalesAgents.Table)
}
