package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvConfigPath, "")
	t.Setenv("DAYBOOK_STORE_DRIVER", "memory")
}

func TestLoadDefaults(t *testing.T) {
	memoryEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 17, cfg.Journal.EveningCutoffHour)
	assert.Equal(t, 24*time.Hour, cfg.Journal.StaleAfter)
	assert.Equal(t, 7, cfg.Journal.ContextDays)
	assert.Equal(t, 10, cfg.Journal.AskLimitPerDay)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "@every 15m", cfg.Scheduler.SweepSpec)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "json", cfg.Logging.Format)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoadFileThenEnv(t *testing.T) {
	memoryEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: 9000
journal:
  evening_cutoff_hour: 20
  timezone: UTC
  stale_after: 36h
ai:
  provider: none
`), 0600))
	t.Setenv("DAYBOOK_HTTP_PORT", "9100")
	t.Setenv("DAYBOOK_JOURNAL_CONTEXT_DAYS", "3")
	t.Setenv("DAYBOOK_KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.HTTP.Port)
	assert.Equal(t, 20, cfg.Journal.EveningCutoffHour)
	assert.Equal(t, 36*time.Hour, cfg.Journal.StaleAfter)
	assert.Equal(t, 3, cfg.Journal.ContextDays)
	assert.Equal(t, "none", cfg.AI.Provider)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	memoryEnv(t)
	path := filepath.Join(t.TempDir(), "daybook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: 7000\n"), 0600))
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.HTTP.Port)
}

func TestLoadMissingFile(t *testing.T) {
	memoryEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Store.Driver = "memory"
		applyDefaults(c)
		c.Journal.EveningCutoffHour = 17
		return c
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"mysql without dsn", func(c *Config) { c.Store.Driver = "mysql" }},
		{"postgres without dsn", func(c *Config) { c.Store.Driver = "postgres" }},
		{"unknown driver", func(c *Config) { c.Store.Driver = "sqlite" }},
		{"unknown ai provider", func(c *Config) { c.AI.Provider = "magic" }},
		{"cutoff too late", func(c *Config) { c.Journal.EveningCutoffHour = 25 }},
		{"bad timezone", func(c *Config) { c.Journal.Timezone = "Mars/Olympus" }},
		{"bad port", func(c *Config) { c.HTTP.Port = 70000 }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "store.mysql_dsn", envKey("DAYBOOK_STORE_MYSQL_DSN"))
	assert.Equal(t, "journal.evening_cutoff_hour", envKey("DAYBOOK_JOURNAL_EVENING_CUTOFF_HOUR"))
	assert.Equal(t, "config", envKey("DAYBOOK_CONFIG"))
}

func TestPrintRedactsSecrets(t *testing.T) {
	c := &Config{}
	applyDefaults(c)
	c.Store.MySQLDSN = "root:hunter2@tcp(127.0.0.1:3306)/daybook"
	c.AI.Token = "sk-secret"

	var buf bytes.Buffer
	c.Print(&buf)
	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "sk-secret")
	assert.Contains(t, out, "root:****@tcp(127.0.0.1:3306)/daybook")
}
