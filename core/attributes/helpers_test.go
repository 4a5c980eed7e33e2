package attributes_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/sessionattrs/core/attributes"
)

// base is an arbitrary fixed instant used as t=0 in tests.
var base = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: base}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// mockBackend implements attributes.Backend for testing.
// Attributes is served from a real map so map semantics can be asserted directly.
type mockBackend struct {
	mock.Mock
	data attributes.Map
}

func newMockBackend() *mockBackend {
	b := &mockBackend{data: attributes.Map{}}
	b.On("EnsureStarted", mock.Anything).Return(nil).Maybe()
	return b
}

func (m *mockBackend) EnsureStarted(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockBackend) Attributes() attributes.Map {
	return m.data
}

func (m *mockBackend) ClearAttributes(ctx context.Context) error {
	args := m.Called(ctx)
	if args.Error(0) == nil {
		m.data = attributes.Map{}
	}
	return args.Error(0)
}

func (m *mockBackend) DestroySession(ctx context.Context) error {
	args := m.Called(ctx)
	if args.Error(0) == nil {
		m.data = attributes.Map{}
	}
	return args.Error(0)
}

func (m *mockBackend) RegenerateSessionID(ctx context.Context, deleteOld bool) error {
	return m.Called(ctx, deleteOld).Error(0)
}

func (m *mockBackend) Flush(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
