// Package attributes provides an expiring key-value overlay for server-side sessions.
//
// A Store keeps a mapping from string keys to Entry values, each with an optional
// absolute expiry in unix seconds. Expiry is lazy: nothing sweeps in the background,
// and an expired entry is removed the next time Get reads it. Persistence and the
// session lifecycle belong to a Backend; SessionBackend adapts a session.Manager.
//
// # Basic Usage
//
//	mgr := session.NewManager[attributes.Map](store, 24*time.Hour, 5*time.Minute)
//
//	backend := attributes.NewSessionBackend(mgr, tokenFromClient)
//	attrs, err := attributes.New(ctx, backend)
//	if err != nil {
//		return err
//	}
//
//	attrs.AddWithExpiry("csrf", token, 15) // minutes
//	attrs.Add("theme", "dark")             // never expires
//
//	if v, ok := attrs.Get("csrf"); ok {
//		// live value
//	}
//
//	if err := attrs.Commit(ctx); err != nil {
//		return err
//	}
//	// hand backend.Token() back to the client
//
// # Liveness
//
// An entry is live when it is present and has no expiry or its expiry is not before
// the current second. Get and IsLive follow that rule. IsActive only reports presence,
// so it stays true for an expired entry until something purges it. GetAll and
// GetExpiredDetails inspect the raw mapping and never purge; PurgeExpired does.
//
// # Lifecycle
//
//   - ExpireAll: drop every entry, keep the session
//   - RemoveAll: drop every entry and end the session; the next write starts a new one
//   - RegenerateID: new session identifier, same entries, old session deleted
//
// Map operations never fail. Lifecycle operations and Commit return backend errors.
//
// # Values
//
// Values are stored as given. Backends that persist through JSON return numbers as
// float64 and structs as map[string]any after a reload; GetAs converts them back:
//
//	cart, ok := attributes.GetAs[Cart](attrs, "cart")
//
// # Concurrency
//
// A Store is safe for concurrent use within a process. Two requests working on the
// same session through different Stores are not coordinated: the last Commit wins.
package attributes
