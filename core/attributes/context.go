package attributes

import "context"

// storeContextKey is an unexported key type to avoid context key collisions.
type storeContextKey struct{}

// WithStore returns a new context carrying s.
// If ctx is nil, context.Background() is used. If s is nil, ctx is returned unchanged.
func WithStore(ctx context.Context, s *Store) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if s == nil {
		return ctx
	}
	return context.WithValue(ctx, storeContextKey{}, s)
}

// FromContext extracts a Store previously attached with WithStore.
func FromContext(ctx context.Context) (*Store, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(storeContextKey{}).(*Store)
	return s, ok
}
