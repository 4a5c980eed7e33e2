package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionattrs/core/session"
)

// mockStore implements session.Store interface for testing
type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetByID(ctx context.Context, id uuid.UUID) (*session.Session[testData], error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session[testData]), args.Error(1)
}

func (m *mockStore) GetByToken(ctx context.Context, token string) (*session.Session[testData], error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session[testData]), args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, sess *session.Session[testData]) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *mockStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStore) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Helper functions

func createValidSession(t *testing.T) *session.Session[testData] {
	sess, err := session.New[testData](time.Hour)
	require.NoError(t, err)
	return &sess
}

func createExpiredSession(t *testing.T) *session.Session[testData] {
	sess, err := session.New[testData](-time.Hour) // Negative TTL creates already expired session
	require.NoError(t, err)
	return &sess
}

// Tests

func TestNewManager(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	mgr := session.NewManager[testData](store, 24*time.Hour, 5*time.Minute)

	require.NotNil(t, mgr)
	assert.Equal(t, 24*time.Hour, mgr.GetTTL())
}

func TestManager_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("returns valid unexpired session", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		valid := createValidSession(t)
		store.On("GetByID", ctx, valid.ID).Return(valid, nil)

		result, err := mgr.GetByID(ctx, valid.ID)

		require.NoError(t, err)
		assert.Equal(t, valid.ID, result.ID)
		assert.Equal(t, valid.Token, result.Token)
		store.AssertExpectations(t)
	})

	t.Run("returns ErrExpired for expired session", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		expired := createExpiredSession(t)
		store.On("GetByID", ctx, expired.ID).Return(expired, nil)

		result, err := mgr.GetByID(ctx, expired.ID)

		assert.ErrorIs(t, err, session.ErrExpired)
		assert.True(t, result.IsZero())
		store.AssertExpectations(t)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		id := uuid.New()
		storeErr := errors.New("database connection error")
		store.On("GetByID", ctx, id).Return(nil, storeErr)

		_, err := mgr.GetByID(ctx, id)

		assert.ErrorIs(t, err, storeErr)
		store.AssertExpectations(t)
	})
}

func TestManager_GetByToken(t *testing.T) {
	t.Parallel()

	t.Run("returns valid unexpired session", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		valid := createValidSession(t)
		store.On("GetByToken", ctx, valid.Token).Return(valid, nil)

		result, err := mgr.GetByToken(ctx, valid.Token)

		require.NoError(t, err)
		assert.Equal(t, valid.ID, result.ID)
		store.AssertExpectations(t)
	})

	t.Run("returns ErrNotFound when session doesn't exist", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		store.On("GetByToken", ctx, "missing").Return(nil, session.ErrNotFound)

		_, err := mgr.GetByToken(ctx, "missing")

		assert.ErrorIs(t, err, session.ErrNotFound)
		store.AssertExpectations(t)
	})
}

func TestManager_Start(t *testing.T) {
	t.Parallel()

	t.Run("creates new session for empty token", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)

		sess, err := mgr.Start(context.Background(), "")

		require.NoError(t, err)
		assert.False(t, sess.IsZero())
		assert.True(t, sess.IsModified())
		store.AssertNotCalled(t, "GetByToken", mock.Anything, mock.Anything)
	})

	t.Run("resumes existing session", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		valid := createValidSession(t)
		store.On("GetByToken", ctx, valid.Token).Return(valid, nil)

		sess, err := mgr.Start(ctx, valid.Token)

		require.NoError(t, err)
		assert.Equal(t, valid.ID, sess.ID)
		store.AssertExpectations(t)
	})

	t.Run("replaces unknown and expired sessions", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		expired := createExpiredSession(t)
		store.On("GetByToken", ctx, "unknown").Return(nil, session.ErrNotFound)
		store.On("GetByToken", ctx, expired.Token).Return(expired, nil)

		fresh, err := mgr.Start(ctx, "unknown")
		require.NoError(t, err)
		assert.NotEqual(t, "unknown", fresh.Token)

		replaced, err := mgr.Start(ctx, expired.Token)
		require.NoError(t, err)
		assert.NotEqual(t, expired.ID, replaced.ID)
		store.AssertExpectations(t)
	})

	t.Run("propagates other store errors", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		storeErr := errors.New("connection refused")
		store.On("GetByToken", ctx, "tok").Return(nil, storeErr)

		_, err := mgr.Start(ctx, "tok")

		assert.ErrorIs(t, err, storeErr)
	})
}

func TestManager_Store(t *testing.T) {
	t.Parallel()

	t.Run("deletes session marked as deleted", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		sess := createValidSession(t)
		sess.Logout()
		store.On("Delete", ctx, sess.ID).Return(nil)

		err := mgr.Store(ctx, *sess)

		assert.ErrorIs(t, err, session.ErrDestroyed)
		store.AssertExpectations(t)
	})

	t.Run("ignores ErrNotFound on delete", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		sess := createValidSession(t)
		sess.Logout()
		store.On("Delete", ctx, sess.ID).Return(session.ErrNotFound)

		err := mgr.Store(ctx, *sess)

		assert.ErrorIs(t, err, session.ErrDestroyed)
		assert.NotErrorIs(t, err, session.ErrDeleteSession)
	})

	t.Run("propagates delete errors", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		sess := createValidSession(t)
		sess.Logout()
		deleteErr := errors.New("delete failed")
		store.On("Delete", ctx, sess.ID).Return(deleteErr)

		err := mgr.Store(ctx, *sess)

		assert.ErrorIs(t, err, deleteErr)
		assert.ErrorIs(t, err, session.ErrDeleteSession)
	})

	t.Run("saves modified session", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		sess := createValidSession(t)
		sess.SetData(testData{Theme: "light"})
		store.On("Save", ctx, mock.MatchedBy(func(s *session.Session[testData]) bool {
			return s.ID == sess.ID && s.Data.Theme == "light"
		})).Return(nil)

		require.NoError(t, mgr.Store(ctx, *sess))
		store.AssertExpectations(t)
	})

	t.Run("wraps save errors", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		sess := createValidSession(t)
		saveErr := errors.New("save failed")
		store.On("Save", ctx, mock.Anything).Return(saveErr)

		err := mgr.Store(ctx, *sess)

		assert.ErrorIs(t, err, saveErr)
		assert.ErrorIs(t, err, session.ErrSaveSession)
	})
}

func TestManager_Persist(t *testing.T) {
	t.Parallel()

	t.Run("writes extended expiry back and marks clean", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		sess := createValidSession(t)
		sess.UpdatedAt = time.Now().Add(-10 * time.Minute)
		sess.ExpiresAt = time.Now().Add(time.Minute)
		sess.SetData(testData{Theme: "dark"})
		store.On("Save", ctx, mock.Anything).Return(nil).Once()

		require.NoError(t, mgr.Persist(ctx, sess))

		assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Second)
		assert.False(t, sess.IsModified())

		require.NoError(t, mgr.Persist(ctx, sess))
		store.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("skips unmodified session inside touch interval", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		sess := createValidSession(t)
		store.On("Save", ctx, mock.Anything).Return(nil).Once()
		require.NoError(t, mgr.Persist(ctx, sess))

		require.NoError(t, mgr.Persist(ctx, sess))
		store.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("keeps session modified when save fails", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		sess := createValidSession(t)
		store.On("Save", ctx, mock.Anything).Return(errors.New("down"))

		assert.ErrorIs(t, mgr.Persist(ctx, sess), session.ErrSaveSession)
		assert.True(t, sess.IsModified())
	})
}

func TestManager_Regenerate(t *testing.T) {
	t.Parallel()

	t.Run("issues new identity and deletes old record", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		old := createValidSession(t)
		old.SetData(testData{Theme: "dark"})

		store.On("Save", ctx, mock.MatchedBy(func(s *session.Session[testData]) bool {
			return s.ID != old.ID && s.Data.Theme == "dark"
		})).Return(nil)
		store.On("Delete", ctx, old.ID).Return(nil)

		fresh, err := mgr.Regenerate(ctx, *old, true)

		require.NoError(t, err)
		assert.NotEqual(t, old.ID, fresh.ID)
		assert.NotEqual(t, old.Token, fresh.Token)
		assert.Equal(t, "dark", fresh.Data.Theme)
		assert.Equal(t, old.CreatedAt, fresh.CreatedAt)
		store.AssertExpectations(t)
	})

	t.Run("keeps old record when deleteOld is false", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		old := createValidSession(t)
		store.On("Save", ctx, mock.Anything).Return(nil)

		_, err := mgr.Regenerate(ctx, *old, false)

		require.NoError(t, err)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("propagates save errors", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		saveErr := errors.New("save failed")
		store.On("Save", ctx, mock.Anything).Return(saveErr)

		_, err := mgr.Regenerate(ctx, *createValidSession(t), true)

		assert.ErrorIs(t, err, saveErr)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestManager_CleanupExpired(t *testing.T) {
	t.Parallel()

	t.Run("delegates to store.DeleteExpired", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		store.On("DeleteExpired", ctx).Return(int64(3), nil)

		n, err := mgr.CleanupExpired(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		store.AssertExpectations(t)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager[testData](store, time.Hour, 5*time.Minute)
		ctx := context.Background()

		cleanupErr := errors.New("cleanup failed")
		store.On("DeleteExpired", ctx).Return(int64(0), cleanupErr)

		_, err := mgr.CleanupExpired(ctx)

		assert.ErrorIs(t, err, cleanupErr)
	})
}
