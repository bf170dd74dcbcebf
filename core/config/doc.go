// Package config provides type-safe environment variable loading with
// per-type caching. Each configuration struct type is parsed from the
// environment once and the snapshot is reused for every later call, so
// independent packages asking for the same config type always agree.
//
// The package loads a .env file on first use when one is present and uses
// the caarlos0/env library for parsing environment variables into struct
// fields.
//
// Basic usage:
//
//	import "qgate/core/config"
//
//	type SessionConfig struct {
//		TTL      time.Duration `env:"SESSION_TTL" envDefault:"3h"`
//		StoreDir string        `env:"SESSION_DIR,required"`
//	}
//
//	func main() {
//		var cfg SessionConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup wiring)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per process lifetime:
//
//	var a SessionConfig
//	config.Load(&a) // parses the environment
//
//	var b SessionConfig
//	config.Load(&b) // cache hit, a == b
//
// Different struct types are cached independently.
package config
