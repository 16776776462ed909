package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]any)

	dotenvOnce sync.Once
)

// Load parses environment variables into v based on its `env` field tags.
// The first call for a given type does the parsing; later calls return the
// cached value, so configuration stays consistent across the process.
//
// A .env file in the working directory is loaded once before the first
// parse; a missing file is not an error.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	key := typeName[T]()

	cacheMu.RLock()
	cached, ok := cache[key]
	cacheMu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	// Another goroutine may have parsed while we waited for the lock.
	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	cache[key] = *v
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func typeName[T any]() string {
	t := reflect.TypeOf(*new(T))
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
