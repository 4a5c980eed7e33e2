// Package session provides generic, storage-agnostic server-side session management.
//
// A session is a record with a stable ID, a rotatable secret token that clients
// present to resume it, an expiry, and application-defined data:
//
//	type Session[Data any] struct {
//		ID        uuid.UUID
//		Token     string
//		Data      Data
//		ExpiresAt time.Time
//		...
//	}
//
// # Core Components
//
//   - Session[Data]: value type holding the record and its modification state
//   - Manager[Data]: start, persist, regenerate and clean up sessions
//   - Store[Data]: persistence interface (Redis, BuntDB, PostgreSQL, MongoDB, memory)
//   - MemoryStore[Data]: in-process Store for tests and single-process use
//
// # Basic Usage
//
//	mgr, err := session.NewFromConfig[MyData](store, session.DefaultConfig(),
//		session.WithTTL(12*time.Hour),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err := mgr.Start(ctx, tokenFromClient) // resumes, or creates a new session
//	if err != nil {
//		return err
//	}
//	sess.SetData(MyData{Theme: "dark"})
//	if err := mgr.Store(ctx, sess); err != nil {
//		return err
//	}
//	// hand sess.Token back to the client
//
// # Lifecycle
//
// Start never persists on its own: a new session reaches the store on the first
// Store call. Store extends the expiry on activity, throttled by TouchInterval.
// A session marked with Logout is deleted by Store, which then returns ErrDestroyed
// so the caller can drop the client's token. Regenerate issues a new ID and token
// for the same data, optionally deleting the old record; use it after privilege
// changes to defeat session fixation.
//
// # Configuration
//
//	type Config struct {
//		TTL           time.Duration `env:"SESSION_TTL" envDefault:"24h"`
//		TouchInterval time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"5m"`
//	}
//
// # Error Handling
//
//   - ErrNotFound: session doesn't exist in store
//   - ErrExpired: session has passed its expiration time
//   - ErrDestroyed: Store deleted a logged-out session
//   - ErrTokenGeneration: cryptographic token generation failed
//   - ErrSaveSession / ErrDeleteSession: wrap store failures
//   - ErrNoStore: manager built without a store
//
// # Thread Safety
//
// Session uses value semantics: sessions are copied when read from and written to
// the store. Store implementations must be safe for concurrent use.
package session
