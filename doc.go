// Package mediate provides an in-process mediator for typed request/response
// and publish/subscribe dispatch.
//
// Callers hand a request or notification value to a central Mediator, which
// locates the handlers registered for its concrete type (or for interfaces
// it satisfies), threads requests through a chain of pipeline behaviors, and
// invokes the handler. Everything happens in-process and inline with the
// caller: no transport, no queueing, no persistence.
//
// # Quick Start
//
// Define a request, its response, and a handler:
//
//	type CreateOrder struct {
//	    SKU      string
//	    Quantity int
//	}
//
//	type OrderReceipt struct {
//	    OrderID string
//	}
//
//	type CreateOrderHandler struct {
//	    orders OrderStore
//	}
//
//	func (h *CreateOrderHandler) Handle(ctx context.Context, req CreateOrder) (OrderReceipt, error) {
//	    id, err := h.orders.Insert(ctx, req.SKU, req.Quantity)
//	    if err != nil {
//	        return OrderReceipt{}, err
//	    }
//	    return OrderReceipt{OrderID: id}, nil
//	}
//
// Create a mediator, register, and dispatch:
//
//	m := mediate.New()
//
//	mediate.RegisterRequestHandler(m, &CreateOrderHandler{orders: store})
//
//	receipt, err := mediate.Send[OrderReceipt](ctx, m, CreateOrder{SKU: "tea", Quantity: 2})
//
// # Design Philosophy
//
// The package separates concerns into three layers:
//
//   - Messages: plain user-defined values; the mediator only ever looks at
//     their types, never their fields
//   - Mediator: resolves handlers by type, composes the behavior pipeline,
//     orchestrates dispatch
//   - Handlers and behaviors: pure business logic and cross-cutting wrappers
//
// This separation allows:
//   - Callers decoupled from handler implementations
//   - Cross-cutting concerns (validation, tracing, logging) written once
//   - Consistent observability via hooks
//   - Easy testing with function handlers
//
// # Requests
//
// A request expects exactly one handler and one response. Handlers implement
// RequestHandler with concrete request and response types and are registered
// with RegisterRequestHandler. Registering a second handler for the same
// request type fails with ErrDuplicateHandler, and sending a request with no
// registered handler fails with ErrHandlerNotFound.
//
// Resolution is by exact concrete type: a handler registered for an
// interface can never serve a request, and such a registration fails with
// ErrAmbiguousDeclaration.
//
// Use RegisterRequestHandlerFunc for simple cases without a struct:
//
//	mediate.RegisterRequestHandlerFunc(m, func(ctx context.Context, req Ping) (Pong, error) {
//	    return Pong{}, nil
//	})
//
// # Pipeline Behaviors
//
// Behaviors wrap a request's handler invocation. Each behavior receives the
// request and a continuation; it may run logic before and after invoking the
// continuation, skip it entirely to short-circuit the pipeline, or invoke it
// more than once.
//
// Behaviors match covariantly: one registered for an interface request type
// applies to every concrete request satisfying it. Registration order is
// pipeline order — the first registered matching behavior wraps outermost:
//
//	mediate.RegisterPipelineBehavior[any, any](m, mediate.NewTracingBehavior())    // outermost
//	mediate.RegisterPipelineBehavior[any, any](m, mediate.NewValidationBehavior()) // innermost
//
// Ready-made behaviors ship with the package: ValidationBehavior,
// TracingBehavior, CorrelationBehavior, and LoggingBehavior.
//
// # Notifications
//
// A notification is broadcast to zero or more independent handlers,
// registered with RegisterNotificationHandler. Matching is covariant like
// behaviors, and membership is exact: every handler registered for the
// notification's type or a matching interface runs exactly once. Execution
// order across handlers is unspecified.
//
// All matched handlers run to completion even when some fail; Publish then
// returns the failures joined into one error (errors.Is still matches each
// individual failure). Publishing with no matching handlers is a silent
// no-op by default; build the mediator with WithStrictNotifications to get
// ErrUnhandledNotification instead.
//
// # Factories
//
// By default the registered handler or behavior instance is reused for every
// dispatch, so keep registered instances stateless. To build instances per
// dispatch — or to resolve them from a DI container — configure a factory;
// it receives the registered implementation's reflect.Type:
//
//	m := mediate.New(
//	    mediate.WithRequestHandlerFactory(func(t reflect.Type) (any, error) {
//	        return container.Resolve(t)
//	    }),
//	)
//
// Handlers registered through the Func variants are closures and never go
// through a factory.
//
// # Hooks
//
// Hooks provide observability without coupling to specific logging or
// metrics systems:
//
//	m := mediate.New(
//	    mediate.WithOnDispatch(func(ctx context.Context, msgType string) {
//	        logger.Info("dispatching", "type", msgType)
//	    }),
//	    mediate.WithOnSuccess(func(ctx context.Context, msgType string, d time.Duration) {
//	        metrics.Timing("mediate.success", d, "type:"+msgType)
//	    }),
//	    mediate.WithOnFailure(func(ctx context.Context, msgType string, err error, d time.Duration) {
//	        metrics.Incr("mediate.failure", "type:"+msgType)
//	    }),
//	)
//
// Multiple hooks of the same kind are called in order. Hooks fire for both
// Send and Publish.
//
// # Error Handling
//
// Configuration and dispatch errors are sentinel values checked with
// errors.Is: ErrDuplicateHandler, ErrHandlerNotFound,
// ErrUnhandledNotification, and ErrAmbiguousDeclaration. Failures raised by
// handler or behavior code are never wrapped or suppressed; they propagate
// unchanged to the Send or Publish caller. Nothing is retried.
//
// # Cancellation
//
// Every dispatch carries a context.Context, but the mediator never inspects
// it. Cancellation and timeouts belong to the caller and to handler code;
// the mediator adds no suspension points of its own.
//
// # Thread Safety
//
// Mediator is safe for concurrent Send and Publish once registration is
// complete. Do not register concurrently with dispatch; finish registration
// at startup first. There is no unregistration.
package mediate
