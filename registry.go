package mediate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// ErrDuplicateHandler is returned when a second request handler is
// registered for a request type that already has one.
var ErrDuplicateHandler = errors.New("request handler already registered")

// nextFunc is the untyped continuation threaded through a composed pipeline.
type nextFunc func(ctx context.Context) (any, error)

// invokeRequestFunc adapts a typed request handler so descriptors of
// different types can live in a single map. The instance argument is the
// handler built for this dispatch, which may come from a factory.
type invokeRequestFunc func(ctx context.Context, instance, req any) (any, error)

// wrapFunc adapts a typed pipeline behavior into one untyped pipeline layer.
type wrapFunc func(ctx context.Context, instance, req any, inner nextFunc) (any, error)

// invokeNotificationFunc adapts a typed notification handler.
type invokeNotificationFunc func(ctx context.Context, instance, notification any) error

// requestEntry associates exactly one concrete request type with one
// handler implementation.
type requestEntry struct {
	requestType reflect.Type
	implType    reflect.Type
	instance    any
	shared      bool // function adapters bypass factories
	invoke      invokeRequestFunc
}

// behaviorEntry associates a declared request type, possibly an interface
// covering many concrete requests, with one behavior implementation.
type behaviorEntry struct {
	requestType reflect.Type
	implType    reflect.Type
	instance    any
	shared      bool
	wrap        wrapFunc
}

// notificationEntry associates a declared notification type, possibly an
// interface, with one handler implementation.
type notificationEntry struct {
	notificationType reflect.Type
	implType         reflect.Type
	instance         any
	shared           bool
	invoke           invokeNotificationFunc
}

// registry holds every descriptor registered with a Mediator. Descriptors
// are only added, never mutated or removed; after the registration phase the
// registry is read-only, which is what makes concurrent dispatch safe
// without locks.
type registry struct {
	requests      map[reflect.Type]*requestEntry
	behaviors     []*behaviorEntry // registration order is pipeline order
	notifications map[reflect.Type][]*notificationEntry
}

func newRegistry() *registry {
	return &registry{
		requests:      make(map[reflect.Type]*requestEntry),
		notifications: make(map[reflect.Type][]*notificationEntry),
	}
}

func (r *registry) addRequest(e *requestEntry) error {
	if _, exists := r.requests[e.requestType]; exists {
		return fmt.Errorf("%w for %s", ErrDuplicateHandler, e.requestType)
	}
	r.requests[e.requestType] = e
	return nil
}

func (r *registry) addBehavior(e *behaviorEntry) {
	r.behaviors = append(r.behaviors, e)
}

func (r *registry) addNotification(e *notificationEntry) {
	r.notifications[e.notificationType] = append(r.notifications[e.notificationType], e)
}
