package hookline

import (
	"context"
	"fmt"
	"reflect"
)

// Fold is Dispatch with a typed accumulator. Every handler under name must
// return a T (or nil, when T is a pointer, interface, map, slice, func or
// channel type); anything else is reported as a *TypeError.
//
//	n, err := hookline.Fold(ctx, d, "score", 0)
func Fold[T any](ctx context.Context, d *Dispatcher, name string, initial T, args ...any) (T, error) {
	out, err := d.Dispatch(ctx, name, append([]any{initial}, args...)...)
	v, ok := asType[T](out)
	if err != nil {
		if !ok {
			v = initial
		}
		return v, err
	}
	if !ok {
		return v, &TypeError{
			Name: name,
			Want: reflect.TypeFor[T]().String(),
			Got:  fmt.Sprintf("%T", out),
		}
	}
	return v, nil
}

func asType[T any](v any) (T, bool) {
	if t, ok := v.(T); ok {
		return t, true
	}
	var zero T
	if v != nil {
		return zero, false
	}
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return zero, true
	}
	return zero, false
}
