package mediate

import (
	"context"
	"reflect"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope reported on spans.
const tracerName = "github.com/bjaus/mediate"

// TracingBehavior opens an OpenTelemetry span around each dispatch it
// wraps. The span carries the concrete request type as an attribute, and a
// pipeline or handler failure is recorded on it.
//
// Register it for all requests:
//
//	mediate.RegisterPipelineBehavior[any, any](m, mediate.NewTracingBehavior())
type TracingBehavior struct {
	tracer trace.Tracer
}

// NewTracingBehavior creates a TracingBehavior using the globally registered
// tracer provider.
func NewTracingBehavior() *TracingBehavior {
	return &TracingBehavior{tracer: otel.Tracer(tracerName)}
}

// Handle implements the PipelineBehavior interface.
func (b *TracingBehavior) Handle(ctx context.Context, req any, next Next[any]) (any, error) {
	ctx, span := b.tracer.Start(ctx, "mediate.send",
		trace.WithAttributes(attribute.String("mediate.request_type", reflect.TypeOf(req).String())),
	)
	defer span.End()

	res, err := next(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return res, err
}
