package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilConfig is returned when Load receives a nil pointer or a
// non-pointer value.
var ErrNilConfig = errors.New("config: target must be a non-nil struct pointer")

var (
	dotenvOnce sync.Once

	mu    sync.RWMutex
	cache = make(map[reflect.Type]any)
)

// Load parses environment variables into cfg, which must be a non-nil
// pointer to a struct. The first successful parse of each struct type is
// cached; later calls for the same type copy the cached snapshot instead of
// re-reading the environment. A .env file in the working directory is
// loaded once, best effort, before the first parse.
func Load(cfg any) error {
	v := reflect.ValueOf(cfg)
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrNilConfig
	}

	dotenvOnce.Do(func() {
		// Missing .env is the normal production case.
		_ = godotenv.Load()
	})

	t := v.Elem().Type()

	mu.RLock()
	cached, ok := cache[t]
	mu.RUnlock()
	if ok {
		v.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", t, err)
	}

	mu.Lock()
	cache[t] = v.Elem().Interface()
	mu.Unlock()
	return nil
}

// MustLoad is like Load but panics on failure. Intended for process startup
// where a missing required variable should stop the boot.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
