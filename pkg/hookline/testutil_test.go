package hookline

import (
	"context"
	"errors"
)

// Helper handlers. These are package-level functions so Func resolves them
// to a function identity.

var errBoom = errors.New("boom")

// addOne increments an int accumulator.
func addOne(_ context.Context, v any, _ ...any) (any, error) {
	return v.(int) + 1, nil
}

// timesTen multiplies an int accumulator by ten.
func timesTen(_ context.Context, v any, _ ...any) (any, error) {
	return v.(int) * 10, nil
}

// passthrough returns the accumulator unchanged.
func passthrough(_ context.Context, v any, _ ...any) (any, error) {
	return v, nil
}

// fail always returns errBoom.
func fail(_ context.Context, v any, _ ...any) (any, error) {
	return v, errBoom
}

// track returns a closure handler that appends label to order.
func track(order *[]string, label string) Handler {
	return Closure(func(_ context.Context, v any, _ ...any) (any, error) {
		*order = append(*order, label)
		return v, nil
	})
}

// counter is a receiver for method handlers.
type counter struct {
	n int
}

func (c *counter) Handle(_ context.Context, v any, _ ...any) (any, error) {
	c.n++
	return v, nil
}

func (c *counter) Other(_ context.Context, v any, _ ...any) (any, error) {
	return v, nil
}

// audit is addressed statically.
type audit struct{}

func (audit) Record(_ context.Context, v any, _ ...any) (any, error) {
	return v, nil
}

// mapLocator is a minimal service directory.
type mapLocator map[string]any

func (m mapLocator) Get(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}
