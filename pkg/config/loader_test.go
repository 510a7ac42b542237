package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantguard/pkg/config"
)

type DefaultsConfig struct {
	CataloguePath string `env:"TEST_CATALOGUE_PATH" envDefault:"policies.yaml"`
	MaxAttempts   int    `env:"TEST_MAX_ATTEMPTS" envDefault:"3"`
	Strict        bool   `env:"TEST_STRICT" envDefault:"true"`
}

type EnvConfig struct {
	CataloguePath string `env:"TEST_ENV_CATALOGUE_PATH"`
	MaxAttempts   int    `env:"TEST_ENV_MAX_ATTEMPTS"`
	Strict        bool   `env:"TEST_ENV_STRICT"`
}

type SingletonConfig struct {
	Value string `env:"TEST_SINGLETON_VALUE" envDefault:"unset"`
}

type ResetConfig struct {
	Value string `env:"TEST_RESET_VALUE" envDefault:"unset"`
}

type FirstConfig struct {
	Value string `env:"TEST_FIRST_VALUE" envDefault:"first"`
}

type SecondConfig struct {
	Value string `env:"TEST_SECOND_VALUE" envDefault:"second"`
}

type RequiredConfig struct {
	Required string `env:"TEST_REQUIRED_VALUE,required"`
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("TEST_ENV_CATALOGUE_PATH", "internal/policies.yaml")
	t.Setenv("TEST_ENV_MAX_ATTEMPTS", "7")
	t.Setenv("TEST_ENV_STRICT", "false")

	var cfg EnvConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "internal/policies.yaml", cfg.CataloguePath)
	assert.Equal(t, 7, cfg.MaxAttempts)
	assert.Equal(t, false, cfg.Strict)
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("TEST_CATALOGUE_PATH")
	os.Unsetenv("TEST_MAX_ATTEMPTS")
	os.Unsetenv("TEST_STRICT")

	var cfg DefaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "policies.yaml", cfg.CataloguePath)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, true, cfg.Strict)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("TEST_REQUIRED_VALUE")

	var cfg RequiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_Singleton(t *testing.T) {
	t.Setenv("TEST_SINGLETON_VALUE", "first_value")

	var first SingletonConfig
	require.NoError(t, config.Load(&first))

	// The cached copy wins over a changed environment.
	t.Setenv("TEST_SINGLETON_VALUE", "second_value")

	var second SingletonConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first_value", second.Value)
}

func TestLoad_DifferentTypes(t *testing.T) {
	t.Setenv("TEST_FIRST_VALUE", "alpha")
	t.Setenv("TEST_SECOND_VALUE", "beta")

	var first FirstConfig
	require.NoError(t, config.Load(&first))

	var second SecondConfig
	require.NoError(t, config.Load(&second))

	assert.Equal(t, "alpha", first.Value)
	assert.Equal(t, "beta", second.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *EnvConfig
	err := config.Load(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestResetCache(t *testing.T) {
	t.Setenv("TEST_RESET_VALUE", "before")

	var before ResetConfig
	require.NoError(t, config.Load(&before))
	assert.Equal(t, "before", before.Value)

	t.Setenv("TEST_RESET_VALUE", "after")
	config.ResetCache()

	var after ResetConfig
	require.NoError(t, config.Load(&after))
	assert.Equal(t, "after", after.Value)
}
