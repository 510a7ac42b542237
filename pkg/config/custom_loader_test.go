package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantguard/pkg/config"
)

// Test configuration structs for custom env loading
type CustomEnvConfig struct {
	TestString    string   `env:"TEST_CUSTOM_STRING"`
	TestInt       int      `env:"TEST_CUSTOM_INT"`
	TestBool      bool     `env:"TEST_CUSTOM_BOOL"`
	TestArray     []string `env:"TEST_CUSTOM_ARRAY" envSeparator:","`
	TestWithQuote string   `env:"TEST_CUSTOM_WITH_QUOTES"`
	TestEmpty     string   `env:"TEST_CUSTOM_EMPTY"`
}

type LayeredConfig struct {
	Unique string `env:"TEST_OVERRIDE_UNIQUE"`
	Shared string `env:"TEST_SHARED_VALUE"`
}

type RequiredEnvConfig struct {
	Required string `env:"TEST_LATE_REQUIRED,required"`
}

func TestLoadEnv_CustomPath(t *testing.T) {
	os.Unsetenv("TEST_CUSTOM_STRING")
	os.Unsetenv("TEST_CUSTOM_INT")
	os.Unsetenv("TEST_CUSTOM_BOOL")
	os.Unsetenv("TEST_CUSTOM_ARRAY")
	os.Unsetenv("TEST_CUSTOM_WITH_QUOTES")
	os.Unsetenv("TEST_CUSTOM_EMPTY")
	config.ResetCache()

	err := config.LoadEnv("testdata/.env.custom")
	require.NoError(t, err, "LoadEnv should not return error with valid file")

	var cfg CustomEnvConfig
	err = config.Load(&cfg)
	require.NoError(t, err, "Load should successfully parse config after LoadEnv")

	assert.Equal(t, "custom_value", cfg.TestString)
	assert.Equal(t, 1234, cfg.TestInt)
	assert.Equal(t, true, cfg.TestBool)
	assert.Equal(t, []string{"item1", "item2", "item3"}, cfg.TestArray)
	assert.Equal(t, "quoted value", cfg.TestWithQuote)
	assert.Equal(t, "", cfg.TestEmpty)
}

func TestLoadEnv_MultiplePaths(t *testing.T) {
	os.Unsetenv("TEST_OVERRIDE_UNIQUE")
	os.Unsetenv("TEST_SHARED_VALUE")
	config.ResetCache()

	err := config.LoadEnv("testdata/.env.custom", "testdata/.env.override")
	require.NoError(t, err, "LoadEnv should not return error with valid files")

	var cfg LayeredConfig
	err = config.Load(&cfg)
	require.NoError(t, err)

	// Files never override values already set, so for keys present in both
	// files the first one wins; keys unique to a later file still load.
	assert.Equal(t, "from_custom", cfg.Shared)
	assert.Equal(t, "unique_to_override", cfg.Unique)
}

func TestLoadEnv_ExistingEnvWins(t *testing.T) {
	t.Setenv("TEST_SHARED_VALUE", "from_process")
	os.Unsetenv("TEST_OVERRIDE_UNIQUE")
	config.ResetCache()

	require.NoError(t, config.LoadEnv("testdata/.env.custom"))

	var cfg LayeredConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_process", cfg.Shared)
}

func TestLoadEnv_NonExistentPath(t *testing.T) {
	err := config.LoadEnv("testdata/non_existent_file.env")
	require.Error(t, err, "LoadEnv should return error with non-existent file")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestMustLoadEnv(t *testing.T) {
	assert.NotPanics(t, func() {
		config.MustLoadEnv("testdata/.env.custom")
	}, "MustLoadEnv should not panic with valid file")

	assert.Panics(t, func() {
		config.MustLoadEnv("testdata/non_existent_file.env")
	}, "MustLoadEnv should panic with non-existent file")
}

func TestLoadEnv_WithRequiredConfig(t *testing.T) {
	os.Unsetenv("TEST_LATE_REQUIRED")
	config.ResetCache()

	var cfg RequiredEnvConfig
	err := config.Load(&cfg)
	require.Error(t, err, "Load should error when required field is missing")
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	t.Setenv("TEST_LATE_REQUIRED", "required_value")
	config.ResetCache()

	var cfg2 RequiredEnvConfig
	err = config.Load(&cfg2)
	require.NoError(t, err, "Load should succeed after setting required value")
	assert.Equal(t, "required_value", cfg2.Required)
}

func TestLoadEnv_DefaultBehavior(t *testing.T) {
	// The package directory has no .env checked in, so a temporary one
	// exercises the no-argument path.
	oldEnvContent, readErr := os.ReadFile(".env")
	hasOldFile := readErr == nil
	t.Cleanup(func() {
		os.Remove(".env")
		if hasOldFile {
			_ = os.WriteFile(".env", oldEnvContent, 0o644)
		}
		os.Unsetenv("TEST_DEFAULT_ENV_VAR")
	})

	require.NoError(t, os.WriteFile(".env", []byte("TEST_DEFAULT_ENV_VAR=default_from_file\n"), 0o644))
	os.Unsetenv("TEST_DEFAULT_ENV_VAR")

	require.NoError(t, config.LoadEnv())
	assert.Equal(t, "default_from_file", os.Getenv("TEST_DEFAULT_ENV_VAR"))
}

func TestLoadEnv_MissingDefaultIgnored(t *testing.T) {
	if _, err := os.Stat(".env"); err == nil {
		t.Skip("package directory unexpectedly has a .env file")
	}
	require.NoError(t, config.LoadEnv())
}
