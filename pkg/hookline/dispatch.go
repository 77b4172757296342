package hookline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/hookline/pkg/hookline/observability"
)

// Unset is the type of NoValue.
type Unset struct{}

// String implements fmt.Stringer.
func (Unset) String() string { return "<no value>" }

// NoValue is the accumulator of a Dispatch called without a value. It is
// what such a call returns when nothing is registered under the name.
var NoValue = Unset{}

// errHandlerPanicked is recorded on spans and logs when a handler panics.
// The panic itself keeps unwinding.
var errHandlerPanicked = errors.New("handler panicked")

// Dispatch runs every handler registered under name and returns the folded
// result.
//
// args[0], when present, is the initial accumulator; any further args are
// handed unchanged to every handler. Each handler receives the current
// accumulator and its return value replaces it. With no handlers under name
// the initial accumulator comes back untouched (NoValue if none was given).
//
// Handlers run in ascending priority, then registration order, against the
// live registry: a handler added during the pass ahead of the current
// position runs in this pass, one removed before it is reached does not.
//
// If a handler's (name, identity, priority) slot is already running
// further up the stack, the pass stops with a *ReentrancyError. A handler
// error stops the pass and is returned unchanged. In both cases the value
// returned is the accumulator as it stood before the failing handler, and
// invocations that completed earlier remain counted by Dispatched.
//
// Example:
//
//	d.Add("price", hookline.Func(addTax))
//	total, err := d.Dispatch(ctx, "price", 100.0)
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args ...any) (result any, err error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	var value any = NoValue
	var extra []any
	if len(args) > 0 {
		value = args[0]
		extra = args[1:]
	}

	d.mu.Lock()
	_, registered := d.registry.events[name]
	d.mu.Unlock()
	if !registered {
		return value, nil
	}

	depth := depthFrom(ctx)
	if d.cfg.maxDepth > 0 && depth >= d.cfg.maxDepth {
		return value, &DepthError{Name: name, Max: d.cfg.maxDepth}
	}
	ctx = withDepth(ctx, depth+1)

	dispatchID := uuid.NewString()
	logger := observability.EnrichLogger(d.cfg.logger, dispatchID, name)
	observability.LogDispatchStart(logger, depth)

	ctx, span := d.cfg.spans.StartDispatchSpan(ctx, name, dispatchID)
	start := time.Now()
	ran := 0
	finished := false
	defer func() {
		if !finished {
			err = errHandlerPanicked
		}
		duration := time.Since(start)
		d.cfg.spans.EndSpanWithError(span, err)
		d.cfg.metrics.RecordDispatch(ctx, name, err == nil, duration)
		if err != nil {
			observability.LogDispatchError(logger, err, duration, ran)
		} else {
			observability.LogDispatchComplete(logger, duration, ran)
		}
	}()

	var c cursor
	for {
		d.mu.Lock()
		e, ok := d.registry.next(name, c)
		d.mu.Unlock()
		if !ok {
			break
		}
		c = cursor{priority: e.priority, seq: e.seq, started: true}

		next, callErr := d.invoke(ctx, logger, name, e, value, extra)
		if callErr != nil {
			finished = true
			return value, callErr
		}
		value = next
		ran++
	}

	finished = true
	return value, nil
}

// Trigger is Dispatch without the result.
func (d *Dispatcher) Trigger(ctx context.Context, name string, args ...any) error {
	_, err := d.Dispatch(ctx, name, args...)
	return err
}

// invoke runs one registration. The in-progress mark is released on every
// way out, including a panic, so a failed handler never leaves its slot
// looking busy. Only normal completions reach the ledger.
func (d *Dispatcher) invoke(ctx context.Context, logger *slog.Logger, name string, e *entry, value any, extra []any) (any, error) {
	id := e.handler.id
	label := id.String()

	d.mu.Lock()
	acquired := d.state.acquire(name, id, e.priority)
	d.mu.Unlock()
	if !acquired {
		observability.LogReentrancy(logger, label, e.priority)
		d.cfg.metrics.RecordReentrancy(ctx, name, e.priority)
		return value, &ReentrancyError{Name: name, Identity: id, Priority: e.priority}
	}

	release := sync.OnceFunc(func() {
		d.mu.Lock()
		d.state.release(name, id, e.priority)
		d.mu.Unlock()
	})
	defer release()

	observability.LogHandlerStart(logger, label, e.priority)
	hctx, span := d.cfg.spans.StartHandlerSpan(ctx, label, e.priority)
	start := time.Now()

	returned := false
	defer func() {
		if !returned {
			d.cfg.metrics.RecordHandler(ctx, name, e.priority, time.Since(start), errHandlerPanicked)
			d.cfg.spans.EndSpanWithError(span, errHandlerPanicked)
			observability.LogHandlerError(logger, label, e.priority, errHandlerPanicked)
		}
	}()

	out, err := e.handler.call(hctx, value, extra)
	returned = true

	duration := time.Since(start)
	d.cfg.metrics.RecordHandler(ctx, name, e.priority, duration, err)
	d.cfg.spans.EndSpanWithError(span, err)
	if err != nil {
		observability.LogHandlerError(logger, label, e.priority, err)
		return value, err
	}
	observability.LogHandlerComplete(logger, label, e.priority, duration)

	release()
	d.mu.Lock()
	d.ledger.record(name, id, e.priority)
	d.mu.Unlock()
	return out, nil
}

// Context keys for dispatch depth tracking.
type contextKey string

const dispatchDepthKey contextKey = "dispatch_depth"

func depthFrom(ctx context.Context) int {
	if v, ok := ctx.Value(dispatchDepthKey).(int); ok {
		return v
	}
	return 0
}

func withDepth(ctx context.Context, depth int) context.Context {
	return context.WithValue(ctx, dispatchDepthKey, depth)
}
