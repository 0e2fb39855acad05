package mediate

import (
	"context"

	"github.com/google/uuid"
)

type correlationKey struct{}

// CorrelationBehavior guarantees every dispatch it wraps carries a
// correlation ID in its context. An ID already present — set by the caller
// with WithCorrelationID, or by an outer dispatch — is left alone, so nested
// Send calls share one ID.
//
// Register it for all requests:
//
//	mediate.RegisterPipelineBehavior[any, any](m, mediate.NewCorrelationBehavior())
type CorrelationBehavior struct{}

// NewCorrelationBehavior creates a CorrelationBehavior.
func NewCorrelationBehavior() *CorrelationBehavior {
	return &CorrelationBehavior{}
}

// Handle implements the PipelineBehavior interface.
func (b *CorrelationBehavior) Handle(ctx context.Context, req any, next Next[any]) (any, error) {
	if CorrelationID(ctx) == "" {
		ctx = WithCorrelationID(ctx, uuid.NewString())
	}
	return next(ctx)
}

// WithCorrelationID returns a context carrying the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the correlation ID carried by the context, or ""
// when there is none.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
