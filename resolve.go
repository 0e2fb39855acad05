package mediate

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrHandlerNotFound is returned by Send when no request handler is
// registered for the request's concrete type. Handlers registered for an
// interface never satisfy a request dispatch; only behaviors and
// notification handlers match through interfaces.
var ErrHandlerNotFound = errors.New("no request handler registered")

// ErrUnhandledNotification is returned by Publish, in strict mode only,
// when no notification handler matches the notification's type.
var ErrUnhandledNotification = errors.New("no notification handler registered")

// matches reports whether a registered message type covers the concrete
// type: either the exact same type, or an interface the concrete type
// satisfies.
func matches(registered, concrete reflect.Type) bool {
	if registered == concrete {
		return true
	}
	return registered.Kind() == reflect.Interface && concrete.Implements(registered)
}

// sendPlan is the resolved dispatch plan for one concrete request type:
// its handler and the behaviors that apply, in registration order.
type sendPlan struct {
	handler   *requestEntry
	behaviors []*behaviorEntry
}

// resolver answers "which descriptors apply to this concrete type".
// Resolution is a pure function of the registry and the type, so results
// are cached per type. The cache assumes registration has finished before
// dispatch begins, like the registry itself.
type resolver struct {
	reg *registry

	sends         sync.Map // reflect.Type -> *sendPlan
	notifications sync.Map // reflect.Type -> []*notificationEntry
}

// request resolves the exact-type handler and the covariantly matched
// behaviors for a concrete request type. A missing handler is always fatal;
// no behavior runs for an unhandled request.
func (rv *resolver) request(t reflect.Type) (*sendPlan, error) {
	if v, ok := rv.sends.Load(t); ok {
		return v.(*sendPlan), nil
	}

	entry, ok := rv.reg.requests[t]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrHandlerNotFound, t)
	}

	plan := &sendPlan{handler: entry}
	for _, b := range rv.reg.behaviors {
		if matches(b.requestType, t) {
			plan.behaviors = append(plan.behaviors, b)
		}
	}

	rv.sends.Store(t, plan)
	return plan, nil
}

// notification collects every handler whose declared type matches the
// concrete notification type. Iteration walks a map, so the order of the
// collected set is unspecified; Publish makes no ordering promise across
// handlers.
func (rv *resolver) notification(t reflect.Type) []*notificationEntry {
	if v, ok := rv.notifications.Load(t); ok {
		return v.([]*notificationEntry)
	}

	var matched []*notificationEntry
	for registered, entries := range rv.reg.notifications {
		if matches(registered, t) {
			matched = append(matched, entries...)
		}
	}

	rv.notifications.Store(t, matched)
	return matched
}
