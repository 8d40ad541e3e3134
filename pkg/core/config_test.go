package core_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentline/threadpulse-go/pkg/core"
)

func TestLoadConfigFromEnvSQLite(t *testing.T) {
	t.Setenv("DATABASE_PROVIDER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/threadpulse-test.db")
	t.Setenv("SQLITE_TABLE", "threads_test")
	t.Setenv("EMBEDDING_PROVIDER", "none")

	cfg, err := core.LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Provider)
	assert.Equal(t, "/tmp/threadpulse-test.db", cfg.Store.Config["db_path"])
	assert.Equal(t, "threads_test", cfg.Store.Config["table_name"])
	assert.Equal(t, "none", cfg.Embedder.Provider)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnvPostgres(t *testing.T) {
	t.Setenv("DATABASE_PROVIDER", "postgres")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("POSTGRES_USER", "svc_threads")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DATABASE", "threads")
	t.Setenv("POSTGRES_TABLE", "agent_threads")
	t.Setenv("POSTGRES_SSLMODE", "require")
	t.Setenv("EMBEDDING_PROVIDER", "none")

	cfg, err := core.LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Provider)
	assert.Equal(t, "db.internal", cfg.Store.Config["host"])
	assert.Equal(t, 5433, cfg.Store.Config["port"])
	assert.Equal(t, "svc_threads", cfg.Store.Config["user"])
	assert.Equal(t, "secret", cfg.Store.Config["password"])
	assert.Equal(t, "threads", cfg.Store.Config["db_name"])
	assert.Equal(t, "agent_threads", cfg.Store.Config["table_name"])
	assert.Equal(t, "require", cfg.Store.Config["ssl_mode"])
}

func TestLoadConfigFromEnvQwenDefaults(t *testing.T) {
	t.Setenv("DATABASE_PROVIDER", "sqlite")
	t.Setenv("EMBEDDING_PROVIDER", "qwen")
	t.Setenv("EMBEDDING_API_KEY", "sk-test")
	t.Setenv("EMBEDDING_MODEL", "")
	t.Setenv("EMBEDDING_DIMENSIONS", "1024")
	t.Setenv("QWEN_EMBEDDING_BASE_URL", "")

	cfg, err := core.LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "qwen", cfg.Embedder.Provider)
	assert.Equal(t, "sk-test", cfg.Embedder.APIKey)
	assert.Equal(t, "text-embedding-v4", cfg.Embedder.Model)
	assert.Equal(t, "https://dashscope.aliyuncs.com/api/v1", cfg.Embedder.BaseURL)
	assert.Equal(t, 1024, cfg.Embedder.Dimensions)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "threadpulse.env")
	content := "DATABASE_PROVIDER=sqlite\nSQLITE_PATH=" + filepath.Join(dir, "envfile.db") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// godotenv never overrides variables that are already set, so clear
	// them first. t.Setenv registers the restore.
	for _, key := range []string{"DATABASE_PROVIDER", "SQLITE_PATH"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := core.LoadConfigFromEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Provider)
	assert.Equal(t, filepath.Join(dir, "envfile.db"), cfg.Store.Config["db_path"])
}

func TestLoadConfigFromJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "store": {
    "provider": "postgres",
    "config": {"host": "db.internal", "port": 5433, "user": "svc", "db_name": "threads"}
  },
  "embedder": {"provider": "openai", "api_key": "sk-test", "dimensions": 1536}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := core.LoadConfigFromJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Provider)
	assert.Equal(t, "db.internal", cfg.Store.Config["host"])
	assert.Equal(t, float64(5433), cfg.Store.Config["port"], "JSON numbers decode as float64")
	assert.Equal(t, "openai", cfg.Embedder.Provider)
	assert.Equal(t, 1536, cfg.Embedder.Dimensions)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `store:
  provider: mysql
  config:
    host: 10.0.0.5
    port: 3307
    user: root
    db_name: threads
embedder:
  provider: qwen
  api_key: sk-test
  model: text-embedding-v4
  dimensions: 1024
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := core.LoadConfigFromYAML(path)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Store.Provider)
	assert.Equal(t, "10.0.0.5", cfg.Store.Config["host"])
	assert.Equal(t, 3307, cfg.Store.Config["port"])
	assert.Equal(t, "qwen", cfg.Embedder.Provider)
	assert.Equal(t, "text-embedding-v4", cfg.Embedder.Model)
	assert.Equal(t, 1024, cfg.Embedder.Dimensions)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	dir := t.TempDir()

	_, err := core.LoadConfigFromJSON(filepath.Join(dir, "absent.json"))
	require.Error(t, err)

	_, err = core.LoadConfigFromYAML(filepath.Join(dir, "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfigMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := core.LoadConfigFromJSON(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := &core.Config{Store: core.StoreConfig{Provider: "sqlite"}}
	require.NoError(t, valid.Validate())

	badStore := &core.Config{Store: core.StoreConfig{Provider: "cassandra"}}
	err := badStore.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)

	badEmbedder := &core.Config{
		Store:    core.StoreConfig{Provider: "sqlite"},
		Embedder: core.EmbedderConfig{Provider: "bert"},
	}
	assert.ErrorIs(t, badEmbedder.Validate(), core.ErrInvalidConfig)
}
