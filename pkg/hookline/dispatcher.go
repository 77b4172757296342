package hookline

import (
	"sync"
)

// Dispatcher is a priority-ordered, synchronous hook dispatcher.
//
// Handlers are registered under a name with an integer priority. Dispatch
// runs them in ascending priority, then registration order, folding one
// accumulator value through them. The dispatcher also remembers which
// slots are currently running (to reject reentrant calls) and how many
// times each slot has completed.
//
// A Dispatcher is meant to be created once per application root and passed
// by reference. Its methods may be called from inside handlers. The
// internal state is guarded by a mutex, but passes are not isolated from
// each other: two goroutines dispatching the same slot at once will see a
// reentrancy fault.
type Dispatcher struct {
	cfg dispatcherConfig

	mu       sync.Mutex
	registry *handlerRegistry
	state    *dispatchState
	ledger   *ledger
}

// New creates a Dispatcher.
func New(opts ...Option) *Dispatcher {
	cfg := defaultDispatcherConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Dispatcher{
		cfg:      cfg,
		registry: newHandlerRegistry(),
		state:    newDispatchState(),
		ledger:   newLedger(),
	}
}

// Add registers h under name at the default priority and returns its
// identity. Registering the same handler again, at any priority, adds
// another independent registration.
func (d *Dispatcher) Add(name string, h Handler) Identity {
	return d.AddAt(name, h, d.cfg.defaultPriority)
}

// AddAt registers h under name at priority. Lower priorities run first.
func (d *Dispatcher) AddAt(name string, h Handler, priority int) Identity {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.add(name, h, priority)
}

// Remove deletes the registrations under name selected by filters and
// returns how many were removed. With no filters every handler under name
// is removed. Dispatch history is not affected.
func (d *Dispatcher) Remove(name string, filters ...Filter) int {
	m := newMatch(filters)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.remove(name, m)
}

// Count returns the number of registrations under name selected by filters.
func (d *Dispatcher) Count(name string, filters ...Filter) int {
	m := newMatch(filters)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.count(name, m)
}

// Exists reports whether Count would be positive.
func (d *Dispatcher) Exists(name string, filters ...Filter) bool {
	return d.Count(name, filters...) > 0
}

// Dispatched returns how many handler invocations under name have
// completed, over the dispatcher's lifetime. Counts survive Remove.
func (d *Dispatcher) Dispatched(name string, filters ...Filter) int {
	m := newMatch(filters)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ledger.total(name, m)
}

// InDispatch reports whether a selected handler under name is running
// right now, somewhere up the call stack.
func (d *Dispatcher) InDispatch(name string, filters ...Filter) bool {
	m := newMatch(filters)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.isActive(name, m)
}

// Total returns the number of registrations across all names.
func (d *Dispatcher) Total() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.total()
}

// Names returns the names that currently have handlers, sorted.
func (d *Dispatcher) Names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.names()
}

// Services returns the locator given to WithServices, or nil.
func (d *Dispatcher) Services() Locator {
	return d.cfg.services
}
