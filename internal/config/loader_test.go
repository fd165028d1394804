package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goran-ethernal/ChainActivity/pkg/config"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
scanner:
  rpc_url: http://localhost:8545
  workers: 4
  request_timeout: 5s
  retry:
    max_attempts: 2
db:
  driver: sqlite
  path: /tmp/activity.db
logging:
  default_level: debug
  component_levels:
    chain-reader: warn
`

const jsonConfig = `{
  "scanner": {"rpc_url": "http://localhost:8545", "workers": 4, "request_timeout": "5s", "retry": {"max_attempts": 2}},
  "db": {"driver": "sqlite", "path": "/tmp/activity.db"},
  "logging": {"default_level": "debug", "component_levels": {"chain-reader": "warn"}}
}`

const tomlConfig = `
[scanner]
rpc_url = "http://localhost:8545"
workers = 4
request_timeout = "5s"

[scanner.retry]
max_attempts = 2

[db]
driver = "sqlite"
path = "/tmp/activity.db"

[logging]
default_level = "debug"

[logging.component_levels]
chain-reader = "warn"
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "yaml", file: "config.yaml", content: yamlConfig},
		{name: "yml", file: "config.yml", content: yamlConfig},
		{name: "json", file: "config.json", content: jsonConfig},
		{name: "toml", file: "config.toml", content: tomlConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromFile(writeConfig(t, tt.file, tt.content))
			require.NoError(t, err)
			validateConfig(t, cfg)
		})
	}
}

func TestLoadFromFile_UnsupportedFormat(t *testing.T) {
	_, err := LoadFromFile("config.txt")
	require.ErrorContains(t, err, "unsupported config file format")
}

func TestLoadFromFile_Invalid(t *testing.T) {
	path := writeConfig(t, "config.yaml", "db:\n  driver: mongo\n")

	_, err := LoadFromFile(path)
	require.ErrorContains(t, err, "db.driver")
}

func TestLoadFromFile_UnknownField(t *testing.T) {
	tests := []struct {
		file    string
		content string
	}{
		{file: "config.yaml", content: "scanner:\n  rpc_urll: http://x\n"},
		{file: "config.json", content: `{"db": {"drvier": "sqlite"}}`},
		{file: "config.toml", content: "[export]\nrecent = 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.file, tt.content))
			require.ErrorContains(t, err, "failed to parse")
		})
	}
}

func TestLoadFromFile_ExpandsEnvironment(t *testing.T) {
	t.Setenv("ACTIVITY_DSN", "postgres://scanner:secret@db:5432/activity")

	path := writeConfig(t, "config.yaml", "db:\n  driver: postgres\n  dsn: ${ACTIVITY_DSN}\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "postgres://scanner:secret@db:5432/activity", cfg.DB.DSN)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorContains(t, err, "failed to read config file")
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	require.Equal(t, config.DriverMemory, cfg.DB.Driver)
	require.True(t, cfg.Export.IsEnabled())
	require.Equal(t, 8, cfg.Scanner.Workers)
}

func TestSchema(t *testing.T) {
	out, err := Schema()
	require.NoError(t, err)
	require.Contains(t, string(out), "rpc_url")
	require.Contains(t, string(out), "request_timeout")
}

func validateConfig(t *testing.T, cfg *config.Config) {
	t.Helper()

	require.Equal(t, "http://localhost:8545", cfg.Scanner.RPCURL)
	require.Equal(t, 4, cfg.Scanner.Workers)
	require.Equal(t, 5*time.Second, cfg.Scanner.RequestTimeout.Duration)
	require.Equal(t, 2, cfg.Scanner.Retry.MaxAttempts)
	require.NotZero(t, cfg.Scanner.Retry.InitialBackoff.Duration)
	require.NotZero(t, cfg.Scanner.ChunkSize)

	require.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	require.Equal(t, "WAL", cfg.DB.JournalMode)

	require.Equal(t, "debug", cfg.Logging.GetDefaultLevel())
	require.Equal(t, "warn", cfg.Logging.GetComponentLevel("chain-reader"))
	require.Equal(t, "debug", cfg.Logging.GetComponentLevel("store"))
}
