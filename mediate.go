package mediate

import "context"

// RequestHandler handles a single request type and produces its response.
// Exactly one handler may be registered per concrete request type.
//
// The type parameters are: TReq for the request, TRes for the response.
//
// Example:
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
type RequestHandler[TReq, TRes any] interface {
	Handle(ctx context.Context, req TReq) (TRes, error)
}

// RequestHandlerFunc is a function adapter for RequestHandler. Use for
// simple handlers that don't need a struct:
//
//	mediate.RegisterRequestHandlerFunc(m, func(ctx context.Context, req Ping) (Pong, error) {
//	    return Pong{}, nil
//	})
type RequestHandlerFunc[TReq, TRes any] func(ctx context.Context, req TReq) (TRes, error)

// Handle implements the RequestHandler interface.
func (f RequestHandlerFunc[TReq, TRes]) Handle(ctx context.Context, req TReq) (TRes, error) {
	return f(ctx, req)
}

// Next is the continuation passed into a pipeline behavior. Invoking it
// runs the rest of the pipeline: any inner behaviors, then the handler.
//
// A behavior may invoke its continuation zero, one, or several times. If it
// never invokes it, the handler and all inner behaviors are skipped and the
// behavior's own return value becomes the response.
type Next[TRes any] func(ctx context.Context) (TRes, error)

// PipelineBehavior wraps a request's handler invocation with cross-cutting
// logic. Behaviors may run code before and/or after the continuation.
//
// A behavior registered for an interface request type matches every concrete
// request that satisfies it, so behaviors declared as
// PipelineBehavior[any, any] apply to all requests.
//
// Example:
//
//	type TimingBehavior struct{}
//
//	func (b *TimingBehavior) Handle(ctx context.Context, req any, next mediate.Next[any]) (any, error) {
//	    start := time.Now()
//	    res, err := next(ctx)
//	    log.Printf("%T took %v", req, time.Since(start))
//	    return res, err
//	}
type PipelineBehavior[TReq, TRes any] interface {
	Handle(ctx context.Context, req TReq, next Next[TRes]) (TRes, error)
}

// PipelineBehaviorFunc is a function adapter for PipelineBehavior.
type PipelineBehaviorFunc[TReq, TRes any] func(ctx context.Context, req TReq, next Next[TRes]) (TRes, error)

// Handle implements the PipelineBehavior interface.
func (f PipelineBehaviorFunc[TReq, TRes]) Handle(ctx context.Context, req TReq, next Next[TRes]) (TRes, error) {
	return f(ctx, req, next)
}

// NotificationHandler handles a broadcast notification. Any number of
// handlers may be registered per notification type, and a handler registered
// for an interface type matches every concrete notification that satisfies
// it.
//
// Example:
//
//	type OrderPlacedMailer struct {
//	    mail Mailer
//	}
//
//	func (h *OrderPlacedMailer) Handle(ctx context.Context, n OrderPlaced) error {
//	    return h.mail.SendReceipt(ctx, n.OrderID)
//	}
type NotificationHandler[TN any] interface {
	Handle(ctx context.Context, notification TN) error
}

// NotificationHandlerFunc is a function adapter for NotificationHandler.
type NotificationHandlerFunc[TN any] func(ctx context.Context, notification TN) error

// Handle implements the NotificationHandler interface.
func (f NotificationHandlerFunc[TN]) Handle(ctx context.Context, notification TN) error {
	return f(ctx, notification)
}

// validatable is the interface for request self-validation.
// Compatible with github.com/go-ozzo/ozzo-validation/v4.
type validatable interface {
	Validate() error
}
