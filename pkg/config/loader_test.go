package config_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anita-maxwynn/Django-Practice/pkg/config"
)

type defaultsConfig struct {
	Name    string `env:"CFG_TEST_DEFAULT_NAME" envDefault:"accountd"`
	Workers int    `env:"CFG_TEST_DEFAULT_WORKERS" envDefault:"4"`
	Debug   bool   `env:"CFG_TEST_DEFAULT_DEBUG" envDefault:"true"`
}

type overrideConfig struct {
	Name    string `env:"CFG_TEST_OVERRIDE_NAME" envDefault:"accountd"`
	Workers int    `env:"CFG_TEST_OVERRIDE_WORKERS" envDefault:"4"`
}

type cachedConfig struct {
	Value string `env:"CFG_TEST_CACHED" envDefault:"first"`
}

type requiredConfig struct {
	Secret string `env:"CFG_TEST_REQUIRED_SECRET,required"`
}

type listConfig struct {
	Secrets []string `env:"CFG_TEST_SECRETS" envSeparator:","`
}

type fileConfig struct {
	Name  string `env:"CFG_TEST_FILE_NAME"`
	Token string `env:"CFG_TEST_FILE_TOKEN"`
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "accountd", cfg.Name)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Debug)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("CFG_TEST_OVERRIDE_NAME", "custom")
	t.Setenv("CFG_TEST_OVERRIDE_WORKERS", "8")
	config.ResetCache()

	var cfg overrideConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "custom", cfg.Name)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoad_CachesPerType(t *testing.T) {
	config.ResetCache()
	t.Setenv("CFG_TEST_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("CFG_TEST_CACHED", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	config.ResetCache()
	var third cachedConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Value)
}

func TestLoad_Concurrent(t *testing.T) {
	config.ResetCache()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var cfg defaultsConfig
			assert.NoError(t, config.Load(&cfg))
			assert.Equal(t, "accountd", cfg.Name)
		}()
	}
	wg.Wait()
}

func TestLoad_Required(t *testing.T) {
	config.ResetCache()

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() { config.MustLoad(&cfg) })

	t.Setenv("CFG_TEST_REQUIRED_SECRET", "s3cret")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "s3cret", cfg.Secret)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *defaultsConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestLoad_Slice(t *testing.T) {
	config.ResetCache()
	t.Setenv("CFG_TEST_SECRETS", "a,b,c")

	var cfg listConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Secrets)
}

func TestLoadEnv(t *testing.T) {
	base := writeEnv(t, "CFG_TEST_FILE_NAME=base\nCFG_TEST_FILE_TOKEN=\"quoted value\"\n")
	override := writeEnv(t, "CFG_TEST_FILE_NAME=override\n")

	// Registered so the variables are restored after the test.
	t.Setenv("CFG_TEST_FILE_NAME", "")
	t.Setenv("CFG_TEST_FILE_TOKEN", "")

	require.NoError(t, config.LoadEnv(base, override))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "override", cfg.Name)
	assert.Equal(t, "quoted value", cfg.Token)
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	assert.Panics(t, func() { config.MustLoadEnv(filepath.Join(t.TempDir(), "missing.env")) })
}
