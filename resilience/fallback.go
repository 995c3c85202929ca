package resilience

import "context"

// Fallback substitutes a recovery operation for configured failure kinds.
type Fallback struct {
	fn      Operation
	matches func(err error) bool
}

// NewFallback creates a fallback around the given recovery operation.
// The matches predicate selects which failures trigger the fallback;
// nil means every non-nil error does. Failures outside the predicate
// propagate unchanged, and if the fallback itself fails its error
// propagates unwrapped.
func NewFallback(fn Operation, matches func(err error) bool) *Fallback {
	if matches == nil {
		matches = func(err error) bool { return err != nil }
	}
	return &Fallback{fn: fn, matches: matches}
}

// Execute runs the operation, invoking the fallback on a matching failure.
func (f *Fallback) Execute(ctx context.Context, op Operation) error {
	err := op(ctx)
	if err == nil || !f.matches(err) {
		return err
	}
	return f.fn(ctx)
}
