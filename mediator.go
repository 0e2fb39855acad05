package mediate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// ErrAmbiguousDeclaration is returned at registration time when a handler
// declaration cannot identify exactly one concrete request type.
var ErrAmbiguousDeclaration = errors.New("ambiguous handler declaration")

// Factory builds handler and behavior instances for a dispatch. It receives
// the registered implementation's type and returns an instance of it. Use a
// factory to integrate a DI container or to get a fresh instance per
// dispatch; without one, the registered instance is reused across calls.
//
// Example:
//
//	m := mediate.New(
//	    mediate.WithRequestHandlerFactory(func(t reflect.Type) (any, error) {
//	        return container.Resolve(t)
//	    }),
//	)
type Factory func(implType reflect.Type) (any, error)

// Mediator dispatches requests to their handlers and broadcasts
// notifications. Register everything first, then dispatch; Send and Publish
// are safe for concurrent use once registration is complete.
//
// Usage:
//  1. Create a mediator with New
//  2. Register handlers and behaviors with the Register functions
//  3. Dispatch with Send and Publish
type Mediator struct {
	reg *registry
	res *resolver

	requestFactory      Factory
	behaviorFactory     Factory
	notificationFactory Factory

	strict bool
	hooks  hooks
}

// Option configures a Mediator.
type Option func(*Mediator)

// New creates a Mediator with the given options.
//
// Example:
//
//	m := mediate.New(
//	    mediate.WithOnSuccess(func(ctx context.Context, msgType string, d time.Duration) {
//	        metrics.Timing("mediate.success", d)
//	    }),
//	)
func New(opts ...Option) *Mediator {
	m := &Mediator{reg: newRegistry()}
	m.res = &resolver{reg: m.reg}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithRequestHandlerFactory sets the factory used to build request handler
// instances per dispatch.
func WithRequestHandlerFactory(f Factory) Option {
	return func(m *Mediator) {
		m.requestFactory = f
	}
}

// WithPipelineBehaviorFactory sets the factory used to build pipeline
// behavior instances per dispatch.
func WithPipelineBehaviorFactory(f Factory) Option {
	return func(m *Mediator) {
		m.behaviorFactory = f
	}
}

// WithNotificationHandlerFactory sets the factory used to build notification
// handler instances per publish.
func WithNotificationHandlerFactory(f Factory) Option {
	return func(m *Mediator) {
		m.notificationFactory = f
	}
}

// WithStrictNotifications makes Publish fail with ErrUnhandledNotification
// when no handler matches the notification. The default is a silent no-op.
func WithStrictNotifications() Option {
	return func(m *Mediator) {
		m.strict = true
	}
}

// construct builds the instance for one dispatch. Function adapters are
// closures and are always used as registered; struct implementations go
// through the factory when one is configured.
func construct(f Factory, implType reflect.Type, registered any, shared bool) (any, error) {
	if f == nil || shared {
		return registered, nil
	}
	return f(implType)
}

// Send dispatches a request to its registered handler, threading the call
// through every matching pipeline behavior. It returns whatever the
// outermost pipeline layer produces.
//
// The dispatch flow:
//  1. Resolve the handler by the request's exact concrete type
//  2. Resolve matching behaviors in registration order
//  3. Build handler and behavior instances (via factories, if configured)
//  4. Compose the pipeline and invoke it once
//
// Handler and behavior failures propagate unchanged to the caller.
func (m *Mediator) Send(ctx context.Context, req any) (any, error) {
	if req == nil {
		return nil, errors.New("mediate: request must not be nil")
	}

	t := reflect.TypeOf(req)
	plan, err := m.res.request(t)
	if err != nil {
		return nil, err
	}

	handler, err := construct(m.requestFactory, plan.handler.implType, plan.handler.instance, plan.handler.shared)
	if err != nil {
		return nil, err
	}

	instances := make([]any, len(plan.behaviors))
	for i, b := range plan.behaviors {
		instances[i], err = construct(m.behaviorFactory, b.implType, b.instance, b.shared)
		if err != nil {
			return nil, err
		}
	}

	terminal := func(ctx context.Context) (any, error) {
		return plan.handler.invoke(ctx, handler, req)
	}
	chain := composePipeline(req, plan.behaviors, instances, terminal)

	name := t.String()
	m.hooks.callOnDispatch(ctx, name)

	start := time.Now()
	res, err := chain(ctx)
	duration := time.Since(start)

	if err != nil {
		m.hooks.callOnFailure(ctx, name, err, duration)
		return nil, err
	}
	m.hooks.callOnSuccess(ctx, name, duration)
	return res, nil
}

// Send dispatches a request and asserts the response to TRes. Use the typed
// form when the response type is known at the call site:
//
//	receipt, err := mediate.Send[OrderReceipt](ctx, m, CreateOrder{SKU: "tea"})
func Send[TRes any](ctx context.Context, m *Mediator, req any) (TRes, error) {
	var zero TRes
	v, err := m.Send(ctx, req)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	res, ok := v.(TRes)
	if !ok {
		return zero, fmt.Errorf("mediate: response is %T, want %s", v, reflect.TypeFor[TRes]())
	}
	return res, nil
}

// Publish broadcasts a notification to every handler registered for its
// concrete type or for an interface it satisfies. Every matched handler runs
// to completion regardless of earlier failures; failures are collected and
// returned as a single joined error. Execution order across handlers is
// unspecified.
//
// With no matching handlers, Publish succeeds silently unless the mediator
// was built with WithStrictNotifications.
func (m *Mediator) Publish(ctx context.Context, notification any) error {
	if notification == nil {
		return errors.New("mediate: notification must not be nil")
	}

	t := reflect.TypeOf(notification)
	entries := m.res.notification(t)
	if len(entries) == 0 {
		if m.strict {
			return fmt.Errorf("%w for %s", ErrUnhandledNotification, t)
		}
		return nil
	}

	name := t.String()
	m.hooks.callOnDispatch(ctx, name)

	start := time.Now()
	var errs []error
	for _, e := range entries {
		handler, err := construct(m.notificationFactory, e.implType, e.instance, e.shared)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := e.invoke(ctx, handler, notification); err != nil {
			errs = append(errs, err)
		}
	}
	duration := time.Since(start)

	if err := errors.Join(errs...); err != nil {
		m.hooks.callOnFailure(ctx, name, err, duration)
		return err
	}
	m.hooks.callOnSuccess(ctx, name, duration)
	return nil
}

// RegisterRequestHandler registers the handler for requests of type TReq.
// The request type must be concrete: handlers never match through
// interfaces, so an interface TReq cannot identify the requests it serves.
//
// Registering a second handler for the same request type fails with
// ErrDuplicateHandler; the first registration stays in effect.
//
// This is a package-level function (not a method) due to Go generics
// limitations: methods cannot have type parameters independent of the
// receiver.
//
// Example:
//
//	mediate.RegisterRequestHandler(m, &CreateOrderHandler{orders: store})
func RegisterRequestHandler[TReq, TRes any](m *Mediator, h RequestHandler[TReq, TRes]) error {
	return registerRequestHandler(m, h, false)
}

// RegisterRequestHandlerFunc is a convenience function for registering a
// handler function. Function handlers are closures and never go through a
// factory.
func RegisterRequestHandlerFunc[TReq, TRes any](m *Mediator, fn func(ctx context.Context, req TReq) (TRes, error)) error {
	return registerRequestHandler[TReq, TRes](m, RequestHandlerFunc[TReq, TRes](fn), true)
}

func registerRequestHandler[TReq, TRes any](m *Mediator, h RequestHandler[TReq, TRes], shared bool) error {
	requestType := reflect.TypeFor[TReq]()
	if requestType.Kind() == reflect.Interface {
		return fmt.Errorf("%w: request type %s is an interface, request handlers need a concrete type", ErrAmbiguousDeclaration, requestType)
	}
	if h == nil {
		return errors.New("mediate: handler must not be nil")
	}

	return m.reg.addRequest(&requestEntry{
		requestType: requestType,
		implType:    reflect.TypeOf(h),
		instance:    h,
		shared:      shared,
		invoke: func(ctx context.Context, instance, req any) (any, error) {
			handler, ok := instance.(RequestHandler[TReq, TRes])
			if !ok {
				return nil, fmt.Errorf("mediate: factory built %T, want RequestHandler[%s, %s]", instance, requestType, reflect.TypeFor[TRes]())
			}
			r, ok := req.(TReq)
			if !ok {
				return nil, fmt.Errorf("mediate: request is %T, want %s", req, requestType)
			}
			return handler.Handle(ctx, r)
		},
	})
}

// RegisterPipelineBehavior registers a behavior for requests of type TReq.
// TReq may be an interface; the behavior then applies to every concrete
// request satisfying it. Registration order is pipeline order: the first
// registered matching behavior wraps outermost.
//
// Example:
//
//	mediate.RegisterPipelineBehavior[any, any](m, mediate.NewLoggingBehavior(nil))
func RegisterPipelineBehavior[TReq, TRes any](m *Mediator, b PipelineBehavior[TReq, TRes]) error {
	return registerPipelineBehavior(m, b, false)
}

// RegisterPipelineBehaviorFunc is a convenience function for registering a
// behavior function.
func RegisterPipelineBehaviorFunc[TReq, TRes any](m *Mediator, fn func(ctx context.Context, req TReq, next Next[TRes]) (TRes, error)) error {
	return registerPipelineBehavior[TReq, TRes](m, PipelineBehaviorFunc[TReq, TRes](fn), true)
}

func registerPipelineBehavior[TReq, TRes any](m *Mediator, b PipelineBehavior[TReq, TRes], shared bool) error {
	if b == nil {
		return errors.New("mediate: behavior must not be nil")
	}
	requestType := reflect.TypeFor[TReq]()
	responseType := reflect.TypeFor[TRes]()

	m.reg.addBehavior(&behaviorEntry{
		requestType: requestType,
		implType:    reflect.TypeOf(b),
		instance:    b,
		shared:      shared,
		wrap: func(ctx context.Context, instance, req any, inner nextFunc) (any, error) {
			behavior, ok := instance.(PipelineBehavior[TReq, TRes])
			if !ok {
				return nil, fmt.Errorf("mediate: factory built %T, want PipelineBehavior[%s, %s]", instance, requestType, responseType)
			}
			r, ok := req.(TReq)
			if !ok {
				return nil, fmt.Errorf("mediate: request is %T, want %s", req, requestType)
			}
			next := Next[TRes](func(ctx context.Context) (TRes, error) {
				var zero TRes
				v, err := inner(ctx)
				if err != nil {
					return zero, err
				}
				if v == nil {
					return zero, nil
				}
				res, ok := v.(TRes)
				if !ok {
					return zero, fmt.Errorf("mediate: response is %T, want %s", v, responseType)
				}
				return res, nil
			})
			return behavior.Handle(ctx, r, next)
		},
	})
	return nil
}

// RegisterNotificationHandler registers a handler for notifications of type
// TN. TN may be an interface; the handler then receives every concrete
// notification satisfying it.
//
// Example:
//
//	mediate.RegisterNotificationHandler(m, &OrderPlacedMailer{mail: mailer})
func RegisterNotificationHandler[TN any](m *Mediator, h NotificationHandler[TN]) error {
	return registerNotificationHandler(m, h, false)
}

// RegisterNotificationHandlerFunc is a convenience function for registering
// a notification handler function.
func RegisterNotificationHandlerFunc[TN any](m *Mediator, fn func(ctx context.Context, notification TN) error) error {
	return registerNotificationHandler[TN](m, NotificationHandlerFunc[TN](fn), true)
}

func registerNotificationHandler[TN any](m *Mediator, h NotificationHandler[TN], shared bool) error {
	if h == nil {
		return errors.New("mediate: handler must not be nil")
	}
	notificationType := reflect.TypeFor[TN]()

	m.reg.addNotification(&notificationEntry{
		notificationType: notificationType,
		implType:         reflect.TypeOf(h),
		instance:         h,
		shared:           shared,
		invoke: func(ctx context.Context, instance, notification any) error {
			handler, ok := instance.(NotificationHandler[TN])
			if !ok {
				return fmt.Errorf("mediate: factory built %T, want NotificationHandler[%s]", instance, notificationType)
			}
			n, ok := notification.(TN)
			if !ok {
				return fmt.Errorf("mediate: notification is %T, want %s", notification, notificationType)
			}
			return handler.Handle(ctx, n)
		},
	})
	return nil
}

// MustRegisterRequestHandler registers the handler and returns it unchanged,
// panicking on configuration errors. Use it for declaration-site
// registration:
//
//	var _ = mediate.MustRegisterRequestHandler(m, &CreateOrderHandler{})
func MustRegisterRequestHandler[TReq, TRes any](m *Mediator, h RequestHandler[TReq, TRes]) RequestHandler[TReq, TRes] {
	if err := RegisterRequestHandler(m, h); err != nil {
		panic(err)
	}
	return h
}

// MustRegisterPipelineBehavior registers the behavior and returns it
// unchanged, panicking on configuration errors.
func MustRegisterPipelineBehavior[TReq, TRes any](m *Mediator, b PipelineBehavior[TReq, TRes]) PipelineBehavior[TReq, TRes] {
	if err := RegisterPipelineBehavior(m, b); err != nil {
		panic(err)
	}
	return b
}

// MustRegisterNotificationHandler registers the handler and returns it
// unchanged, panicking on configuration errors.
func MustRegisterNotificationHandler[TN any](m *Mediator, h NotificationHandler[TN]) NotificationHandler[TN] {
	if err := RegisterNotificationHandler(m, h); err != nil {
		panic(err)
	}
	return h
}
