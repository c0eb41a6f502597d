// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory, if present, is read once on first use;
// variables already set in the environment take precedence. Struct fields are
// populated with [github.com/caarlos0/env/v11] tags:
//
//	type Config struct {
//		Addr     string        `env:"HTTP_ADDR" envDefault:":8080"`
//		Database db.Config
//		LockTTL  time.Duration `env:"LOCK_TTL" envDefault:"30s"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Each configuration type is parsed once and cached; later calls with the same
// type receive a copy of the cached value.
package config
