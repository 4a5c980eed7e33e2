// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use and uses the caarlos0/env library
// for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/sessionattrs/core/config"
//
//	type StoreConfig struct {
//		Backend string        `env:"SESSATTR_BACKEND" envDefault:"buntdb"`
//		TTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
//	}
//
//	func main() {
//		var cfg StoreConfig
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime.
// Different types are cached independently. Call Reset to force a re-read.
package config
