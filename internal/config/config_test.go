package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "devsalary.json5"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "devsalary.json5")

	require.NoError(t, os.WriteFile(path, []byte(`{
		// comments are allowed
		keywords: ["go", "rust"],
		period: 7,
		headhunter: { area: "2" },
	}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "devsalary.local.json5"), []byte(`{
		period: 14,
		superjob: { town: "Санкт-Петербург" },
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "rust"}, cfg.Keywords)
	assert.Equal(t, 14, cfg.Period)
	assert.Equal(t, "2", cfg.HeadHunter.Area)
	assert.Equal(t, "Санкт-Петербург", cfg.SuperJob.Town)
	assert.Equal(t, "https://api.hh.ru/vacancies", cfg.HeadHunter.URL, "unset fields fall back to defaults")
	assert.Equal(t, 100, cfg.SuperJob.Count)
}

func TestLoadClearsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "devsalary.json5")

	require.NoError(t, os.WriteFile(path, []byte(`{
		headhunter: { area: "" },
		superjob: { town: "" },
	}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "devsalary.local.json5"), []byte(`{
		max_pages: 0,
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Empty(t, cfg.HeadHunter.Area, "empty area searches every region")
	assert.Empty(t, cfg.SuperJob.Town)
	assert.Zero(t, cfg.MaxPages)
	assert.Equal(t, "RUR", cfg.HeadHunter.Currency, "keys not mentioned keep their defaults")
	assert.Equal(t, "keyword", cfg.SuperJob.KeywordParam)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devsalary.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{period: `), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("API_KEY_SUPERJOB=v3.r.secret\n"), 0o644))
	t.Setenv(SuperJobKeyEnv, "")
	os.Unsetenv(SuperJobKeyEnv)

	cfg := Default()
	require.NoError(t, cfg.LoadEnv(envFile))
	assert.Equal(t, "v3.r.secret", cfg.SuperJobKey)

	t.Setenv(SuperJobKeyEnv, "from-env")
	require.NoError(t, cfg.LoadEnv(filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-env", cfg.SuperJobKey)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	timeout, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)

	broken := []func(c *Config){
		func(c *Config) { c.Keywords = nil },
		func(c *Config) { c.Period = 0 },
		func(c *Config) { c.Workers = 0 },
		func(c *Config) { c.Retries = -1 },
		func(c *Config) { c.Timeout = "soon" },
		func(c *Config) { c.HeadHunter.PerPage = 500 },
	}
	for i, mutate := range broken {
		c := Default()
		mutate(&c)
		assert.Error(t, c.Validate(), "case %d", i)
	}
}
