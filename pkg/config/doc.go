// Package config loads typed configuration structs from environment
// variables, reading a local .env file first when one exists.
//
// Each package in the toolkit declares its own Config struct with `env:`
// tags and loads it at startup:
//
//	type Config struct {
//		BaseURL string        `env:"BILLING_API_URL,required"`
//		Timeout time.Duration `env:"BILLING_API_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// MustLoad panics on failure for configuration the process cannot start
// without.
package config
