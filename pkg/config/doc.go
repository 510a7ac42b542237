// Package config provides a type-safe, generic and cached way to load
// application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment,
//     falling back to the default .env in the working directory.
//   - Load parses the environment into any Go struct by env tags and caches
//     the result, so a configuration type is parsed once per process no
//     matter how many components depend on it.
//   - MustLoadEnv and MustLoad panic on failure for configuration the
//     process cannot start without.
//   - ResetCache clears the cache between tests.
//
// # Usage
//
//	type Config struct {
//		CataloguePath string `env:"POLICY_CATALOGUE" envDefault:"policies.yaml"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Parsing is delegated to env.Parse, so all of its tag syntax applies:
// required fields, defaults, expansion and custom parsers.
package config
