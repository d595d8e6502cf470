// Package requestid carries a correlation id from the gRPC edge to the CRM
// proxy so that one user action can be traced across both logs.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// MetadataKey is the gRPC metadata key and the HTTP header carrying the id.
const MetadataKey = "x-request-id"

type ctxKey struct{}

func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// From returns the id stored in ctx, or "" when there is none.
func From(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Ensure returns ctx carrying an id, generating one if needed.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := From(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return With(ctx, id), id
}
