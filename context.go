package relay42

import (
	"context"

	"github.com/google/uuid"
)

type contextKey int

const visitorContextKey contextKey = 0

// WithVisitor returns a context carrying the visitor ID, so handlers deeper
// in the request stack can tag events for the same visitor.
func WithVisitor(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorContextKey, visitorID)
}

// VisitorFromContext returns the visitor ID stored by WithVisitor, or the
// empty string when the context carries none.
func VisitorFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(visitorContextKey).(string)
	return id
}

// NewVisitorID mints a fresh visitor identifier in the format the collector
// stores: a random UUID.
func NewVisitorID() string {
	return uuid.NewString()
}
