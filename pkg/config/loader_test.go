package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KovD3v/entitlements/pkg/config"
)

type testConfig struct {
	Language string `env:"TEST_ENTITLEMENT_LANG" envDefault:"en"`
	Limit    int    `env:"TEST_ENTITLEMENT_LIMIT" envDefault:"100"`
}

type requiredConfig struct {
	Value string `env:"TEST_ENTITLEMENT_REQUIRED,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults apply when unset", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "en", cfg.Language)
		assert.Equal(t, 100, cfg.Limit)
	})

	t.Run("env values override defaults", func(t *testing.T) {
		t.Setenv("TEST_ENTITLEMENT_LANG", "de")

		// Distinct type so the cache from the previous subtest doesn't apply.
		type overrideConfig struct {
			Language string `env:"TEST_ENTITLEMENT_LANG" envDefault:"en"`
		}
		var cfg overrideConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "de", cfg.Language)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)

		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer rejected", func(t *testing.T) {
		var cfg *testConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("second load returns cached value", func(t *testing.T) {
		t.Setenv("TEST_ENTITLEMENT_LIMIT", "7")

		// First load cached the defaults; the new env value must not leak in.
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 100, cfg.Limit)
	})
}
