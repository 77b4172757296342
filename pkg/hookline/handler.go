package hookline

import (
	"context"
	"reflect"
)

// HandlerFunc is the signature every hook handler implements.
//
// value is the current accumulator; args are the extra arguments given to
// Dispatch, passed unchanged to every handler in the pass. The returned value
// becomes the new accumulator. A non-nil error aborts the pass and is
// returned from Dispatch as-is.
type HandlerFunc func(ctx context.Context, value any, args ...any) (any, error)

// Handler pairs a HandlerFunc with the identity derived for it at
// construction. Handler values are immutable and safe to copy; copies share
// the identity, so a Handler kept by the caller can later be used to remove
// or query its own registrations.
type Handler struct {
	fn HandlerFunc
	id Identity
}

// Func wraps a named function. Package-level functions are identified by
// their symbol, so two Func calls on the same function are interchangeable.
// Function literals receive an instance identity instead (see Closure).
// Method values such as obj.Handle carry no observable receiver and are
// unresolved; use Method for those.
func Func(fn HandlerFunc) Handler {
	if fn == nil {
		return Handler{}
	}
	return Handler{fn: fn, id: functionIdentity(fn)}
}

// Method wraps a method bound to owner. Registrations of the same owner and
// method name share an identity. owner must be a pointer (or another
// reference kind) for the identity to resolve.
//
//	d.Add("save", hookline.Method(svc, "OnSave", svc.OnSave))
func Method(owner any, name string, fn HandlerFunc) Handler {
	if fn == nil {
		return Handler{}
	}
	return Handler{fn: fn, id: methodIdentity(owner, name)}
}

// Static wraps a method addressed by type rather than receiver. Every
// Static[T] with the same name shares an identity.
//
//	d.Add("save", hookline.Static[Audit]("Record", Audit{}.Record))
func Static[T any](name string, fn HandlerFunc) Handler {
	if fn == nil {
		return Handler{}
	}
	return Handler{fn: fn, id: staticIdentity(reflect.TypeFor[T](), name)}
}

// Closure wraps an anonymous function. Each call yields a distinct identity,
// even for behaviorally identical functions.
func Closure(fn HandlerFunc) Handler {
	if fn == nil {
		return Handler{}
	}
	return Handler{fn: fn, id: anonymousIdentity()}
}

// Identity returns the handler's identity key.
func (h Handler) Identity() Identity {
	return h.id
}

// call invokes the handler. A handler without a function passes the
// accumulator through unchanged.
func (h Handler) call(ctx context.Context, value any, args []any) (any, error) {
	if h.fn == nil {
		return value, nil
	}
	return h.fn(ctx, value, args...)
}
