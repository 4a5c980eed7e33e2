package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionattrs/core/session"
)

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("creates manager from default config", func(t *testing.T) {
		t.Parallel()

		mgr, err := session.NewFromConfig[testData](session.NewMemoryStore[testData](), session.DefaultConfig())

		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, mgr.GetTTL())
	})

	t.Run("options override config values", func(t *testing.T) {
		t.Parallel()

		cfg := session.Config{TTL: 12 * time.Hour, TouchInterval: 10 * time.Minute}
		mgr, err := session.NewFromConfig[testData](session.NewMemoryStore[testData](), cfg,
			session.WithTTL(6*time.Hour),
		)

		require.NoError(t, err)
		assert.Equal(t, 6*time.Hour, mgr.GetTTL())
	})

	t.Run("zero TTL falls back to default", func(t *testing.T) {
		t.Parallel()

		mgr, err := session.NewFromConfig[testData](session.NewMemoryStore[testData](), session.Config{})

		require.NoError(t, err)
		assert.Equal(t, session.DefaultConfig().TTL, mgr.GetTTL())
	})

	t.Run("fails without store", func(t *testing.T) {
		t.Parallel()

		mgr, err := session.NewFromConfig[testData](nil, session.DefaultConfig())

		assert.ErrorIs(t, err, session.ErrNoStore)
		assert.Nil(t, mgr)
	})
}

func TestOptions(t *testing.T) {
	t.Parallel()

	cfg := session.DefaultConfig()
	session.WithTTL(time.Minute)(&cfg)
	session.WithTouchInterval(0)(&cfg)

	assert.Equal(t, time.Minute, cfg.TTL)
	assert.Zero(t, cfg.TouchInterval)
}
