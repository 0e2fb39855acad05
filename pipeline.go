package mediate

import "context"

// composePipeline nests the matched behaviors around the terminal handler
// invocation. Wrapping runs from the last matched behavior to the first, so
// the first-registered matching behavior becomes the outermost layer and the
// last-registered sits closest to the handler.
//
// Each layer owns its continuation: a behavior that never invokes it
// short-circuits everything inside, and one that invokes it twice runs the
// inner chain twice. The composer only guarantees nesting order.
func composePipeline(req any, behaviors []*behaviorEntry, instances []any, terminal nextFunc) nextFunc {
	chain := terminal
	for i := len(behaviors) - 1; i >= 0; i-- {
		entry := behaviors[i]
		instance := instances[i]
		inner := chain
		chain = func(ctx context.Context) (any, error) {
			return entry.wrap(ctx, instance, req, inner)
		}
	}
	return chain
}
