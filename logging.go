package mediate

import (
	"context"
	"log/slog"
	"reflect"
	"time"
)

// LoggingBehavior writes a structured log line per dispatch it wraps:
// debug on success, error on failure, both with the concrete request type
// and the pipeline duration.
//
// Register it for all requests:
//
//	mediate.RegisterPipelineBehavior[any, any](m, mediate.NewLoggingBehavior(nil))
type LoggingBehavior struct {
	logger *slog.Logger
}

// NewLoggingBehavior creates a LoggingBehavior. A nil logger means
// slog.Default().
func NewLoggingBehavior(logger *slog.Logger) *LoggingBehavior {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingBehavior{logger: logger}
}

// Handle implements the PipelineBehavior interface.
func (b *LoggingBehavior) Handle(ctx context.Context, req any, next Next[any]) (any, error) {
	requestType := reflect.TypeOf(req).String()

	start := time.Now()
	res, err := next(ctx)
	duration := time.Since(start)

	if err != nil {
		b.logger.ErrorContext(ctx, "request failed",
			"request", requestType,
			"error", err,
			"duration", duration,
		)
		return res, err
	}

	b.logger.DebugContext(ctx, "request handled",
		"request", requestType,
		"duration", duration,
	)
	return res, nil
}
