package mediate

import (
	"context"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// ValidationBehavior validates requests before the rest of the pipeline
// runs. Requests implementing Validate() error are validated with their own
// method; struct requests without one are checked against their `validate`
// tags using go-playground/validator. A validation failure aborts the
// pipeline before the handler executes.
//
// Register it for all requests:
//
//	mediate.RegisterPipelineBehavior[any, any](m, mediate.NewValidationBehavior())
type ValidationBehavior struct {
	validate *validator.Validate
}

// NewValidationBehavior creates a ValidationBehavior with a default
// validator instance.
func NewValidationBehavior() *ValidationBehavior {
	return &ValidationBehavior{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Handle implements the PipelineBehavior interface.
func (b *ValidationBehavior) Handle(ctx context.Context, req any, next Next[any]) (any, error) {
	if v, ok := req.(validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		return next(ctx)
	}

	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if err := b.validate.StructCtx(ctx, req); err != nil {
			return nil, err
		}
	}

	return next(ctx)
}
