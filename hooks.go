package mediate

import (
	"context"
	"time"
)

// OnDispatchFunc is called just before a request pipeline or notification
// fan-out executes. The messageType argument is the concrete type name of
// the request or notification.
type OnDispatchFunc func(ctx context.Context, messageType string)

// OnSuccessFunc is called after a dispatch completes successfully.
type OnSuccessFunc func(ctx context.Context, messageType string, duration time.Duration)

// OnFailureFunc is called after a dispatch fails. For Publish the error may
// be a joined error covering several handlers.
type OnFailureFunc func(ctx context.Context, messageType string, err error, duration time.Duration)

// hooks holds all configured hook functions.
type hooks struct {
	onDispatch []OnDispatchFunc
	onSuccess  []OnSuccessFunc
	onFailure  []OnFailureFunc
}

// WithOnDispatch adds a hook called just before a dispatch executes.
// Multiple hooks are called in order.
//
// Example:
//
//	mediate.WithOnDispatch(func(ctx context.Context, msgType string) {
//	    logger.Info(ctx, "dispatching", "type", msgType)
//	})
func WithOnDispatch(fn OnDispatchFunc) Option {
	return func(m *Mediator) {
		m.hooks.onDispatch = append(m.hooks.onDispatch, fn)
	}
}

// WithOnSuccess adds a hook called after a dispatch completes successfully.
// Multiple hooks are called in order.
//
// Example:
//
//	mediate.WithOnSuccess(func(ctx context.Context, msgType string, d time.Duration) {
//	    metrics.Timing("mediate.success", d, "type:"+msgType)
//	})
func WithOnSuccess(fn OnSuccessFunc) Option {
	return func(m *Mediator) {
		m.hooks.onSuccess = append(m.hooks.onSuccess, fn)
	}
}

// WithOnFailure adds a hook called after a dispatch fails.
// Multiple hooks are called in order.
//
// Example:
//
//	mediate.WithOnFailure(func(ctx context.Context, msgType string, err error, d time.Duration) {
//	    metrics.Incr("mediate.failure", "type:"+msgType)
//	    logger.Error(ctx, "dispatch failed", "error", err)
//	})
func WithOnFailure(fn OnFailureFunc) Option {
	return func(m *Mediator) {
		m.hooks.onFailure = append(m.hooks.onFailure, fn)
	}
}

func (h *hooks) callOnDispatch(ctx context.Context, messageType string) {
	for _, fn := range h.onDispatch {
		fn(ctx, messageType)
	}
}

func (h *hooks) callOnSuccess(ctx context.Context, messageType string, duration time.Duration) {
	for _, fn := range h.onSuccess {
		fn(ctx, messageType, duration)
	}
}

func (h *hooks) callOnFailure(ctx context.Context, messageType string, err error, duration time.Duration) {
	for _, fn := range h.onFailure {
		fn(ctx, messageType, err, duration)
	}
}
