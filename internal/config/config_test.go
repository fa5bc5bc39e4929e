package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical/question-splitter/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"QS_CONFIG", "SOURCE_PATH", "SOURCE_KIND", "IMAGE_AWARE", "PAGE_MODE",
		"DATABASE_URL", "COMMIT_MODE", "REDIS_URL", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "pdf", cfg.Source.Kind)
	assert.Equal(t, "ETAZ900-91.pdf", cfg.Source.Path)
	assert.True(t, cfg.Classify.ImageAware)
	assert.Equal(t, "proxy", cfg.Classify.PageMode)
	assert.Equal(t, "mcq_questions.txt", cfg.Output.Text.MCQPath)
	assert.False(t, cfg.Output.Database.Enabled)
	assert.Equal(t, "record", cfg.Output.Database.CommitMode)
	assert.Equal(t, "none", cfg.Cache.Driver)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	content := `
source:
  kind: text
  path: ETAZ900-91.txt
classify:
  image_aware: false
  page_mode: formfeed
output:
  text:
    enabled: true
    mcq_path: out/mcq.txt
    yes_no_path: out/yes_no.txt
  database:
    enabled: true
    driver: sqlite
    sqlite_path: out/questions.db
    commit_mode: batch
cache:
  driver: redis
  ttl: 1h
  redis:
    addr: cache.internal:6379
    tls: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Source.Kind)
	assert.Equal(t, "ETAZ900-91.txt", cfg.Source.Path)
	assert.False(t, cfg.Classify.ImageAware)
	assert.Equal(t, "formfeed", cfg.Classify.PageMode)
	assert.Equal(t, "out/mcq.txt", cfg.Output.Text.MCQPath)
	assert.Equal(t, "sqlite", cfg.Output.Database.Driver)
	assert.Equal(t, "batch", cfg.Output.Database.CommitMode)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "cache.internal:6379", cfg.Cache.Redis.Addr)
	assert.True(t, cfg.Cache.Redis.TLS)
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	clearEnv(t)

	require.NoError(t, os.WriteFile(DefaultConfigFile, []byte("source:\n  path: other.pdf\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "other.pdf", cfg.Source.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOURCE_PATH", "dump.txt")
	t.Setenv("DATABASE_URL", "sqlite:/tmp/q.db")
	t.Setenv("REDIS_URL", "redis://cache:6379")
	t.Setenv("IMAGE_AWARE", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Source.Kind)
	assert.Equal(t, "dump.txt", cfg.Source.Path)
	assert.True(t, cfg.Output.Database.Enabled)
	assert.Equal(t, "sqlite", cfg.Output.Database.Driver)
	assert.Equal(t, "/tmp/q.db", cfg.Output.Database.SQLitePath)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "cache:6379", cfg.Cache.Redis.Addr)
	assert.False(t, cfg.Classify.ImageAware)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}

func TestLoad_RedisURLCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_URL", "redis://:secret@cache.internal:6380/2")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "cache.internal:6380", cfg.Cache.Redis.Addr)
	assert.Equal(t, "secret", cfg.Cache.Redis.Password)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.False(t, cfg.Cache.Redis.TLS)
}

func TestLoad_RedisURLWithTLS(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_URL", "rediss://user:pw@cache.internal:6390/0")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "cache.internal:6390", cfg.Cache.Redis.Addr)
	assert.Equal(t, "pw", cfg.Cache.Redis.Password)
	assert.True(t, cfg.Cache.Redis.TLS)
}

func TestLoad_InvalidRedisURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_URL", "memcached://cache:11211")

	_, err := Load("")
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrorTypeConfig))
}

func TestLoad_DatabaseURL(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		driver string
	}{
		{"postgres scheme", "postgres://u:p@db:5432/onlinetest01", "postgres"},
		{"postgresql scheme", "postgresql://u:p@db:5432/onlinetest01", "postgres"},
		{"sqlite prefix", "sqlite:questions.db", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DATABASE_URL", tt.url)

			cfg, err := Load("")
			require.NoError(t, err)
			assert.True(t, cfg.Output.Database.Enabled)
			assert.Equal(t, tt.driver, cfg.Output.Database.Driver)
		})
	}
}

func TestLoad_DatabaseURLUnknownScheme(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "mysql://root@db/onlinetest01")

	_, err := Load("")
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrorTypeConfig))
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad source kind", func(c *Config) { c.Source.Kind = "docx" }},
		{"empty source path", func(c *Config) { c.Source.Path = " " }},
		{"bad page mode", func(c *Config) { c.Classify.PageMode = "layout" }},
		{"missing image path", func(c *Config) { c.Output.Text.ImagePath = "" }},
		{"bad driver", func(c *Config) {
			c.Output.Database.Enabled = true
			c.Output.Database.Driver = "mysql"
		}},
		{"bad commit mode", func(c *Config) {
			c.Output.Database.Enabled = true
			c.Output.Database.CommitMode = "never"
		}},
		{"bad cache driver", func(c *Config) { c.Cache.Driver = "memcached" }},
		{"memory cache driver", func(c *Config) { c.Cache.Driver = "memory" }},
	}

	require.NoError(t, DefaultConfig().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
