package attributes

// Entry is a single attribute: its value and optional absolute expiry.
type Entry struct {
	Value any `json:"value"`
	// ExpiresAt is the expiry in unix seconds. Zero means the entry never expires.
	ExpiresAt int64 `json:"expiry,omitempty"`
}

// Expired reports whether the entry has an expiry strictly before now (unix seconds).
func (e Entry) Expired(now int64) bool {
	return e.ExpiresAt != 0 && e.ExpiresAt < now
}

// Map is the session-scoped attribute mapping. It is the Data carried by a session.
type Map map[string]Entry

// Clone returns a shallow copy of m. Values are not deep-copied.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, e := range m {
		out[k] = e
	}
	return out
}
