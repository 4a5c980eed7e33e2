package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionattrs/core/config"
)

type testConfig struct {
	Name    string        `env:"CONFIG_TEST_NAME" envDefault:"default"`
	Timeout time.Duration `env:"CONFIG_TEST_TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	Secret string `env:"CONFIG_TEST_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("parses environment with defaults", func(t *testing.T) {
		config.Reset()
		t.Setenv("CONFIG_TEST_NAME", "custom")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "custom", cfg.Name)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("returns cached value on subsequent calls", func(t *testing.T) {
		config.Reset()
		t.Setenv("CONFIG_TEST_NAME", "first")

		var first testConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("CONFIG_TEST_NAME", "second")
		var second testConfig
		require.NoError(t, config.Load(&second))

		assert.Equal(t, "first", second.Name)
	})

	t.Run("fails on missing required variable", func(t *testing.T) {
		config.Reset()

		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestMustLoad(t *testing.T) {
	config.Reset()

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
