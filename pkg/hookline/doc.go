/*
Package hookline provides a priority-ordered, synchronous hook dispatcher.

# Overview

Callers register handlers under an event name with an integer priority.
Dispatching the name runs every handler in ascending priority (ties in
registration order) and threads one accumulator value through them, so a
dispatch is a fold over the handler list:

	d := hookline.New()

	d.Add("price", hookline.Func(addTax))          // priority 10
	d.AddAt("price", hookline.Func(applyCoupon), 5) // runs first

	total, err := d.Dispatch(ctx, "price", 100.0, customer)

Each handler receives the current accumulator plus the extra arguments
given to Dispatch and returns the next accumulator:

	func addTax(ctx context.Context, value any, args ...any) (any, error) {
	    return value.(float64) * 1.2, nil
	}

Fold is a typed wrapper:

	total, err := hookline.Fold(ctx, d, "price", 100.0, customer)

# Handler Identity

Every Handler carries an Identity computed once when it is built. Queries
and removals match on identity, so the shape used to build the handler
matters:

  - Func(fn): a package-level function; every Func(fn) for the same fn is
    the same handler.
  - Method(owner, "Name", owner.Name): a method bound to a pointer
    receiver; same owner and name means same handler.
  - Static[T]("Name", fn): a method addressed through its type.
  - Closure(fn): an anonymous function; only the returned Handler value
    (and its copies) match it.

A handler whose identity cannot be derived, such as a method value passed
to Func, still runs but never matches a filtered Count, Remove, Dispatched
or InDispatch.

# Filters

Count, Exists, Remove, Dispatched and InDispatch take optional filters:

	d.Count("price")                                       // everything
	d.Count("price", hookline.ByHandler(tax))              // tax at any priority
	d.Remove("price", hookline.ByHandler(tax), hookline.ByPriority(5))

# Live Iteration

A pass walks the live registry rather than a snapshot. Handlers added
during the pass at or after the current position run in the same pass;
handlers removed before they are reached are skipped. A handler may remove
itself; it still completes and is counted.

# Reentrancy

While a handler runs, its (name, identity, priority) slot is marked busy.
A nested Dispatch of the same name that reaches a busy slot fails with a
*ReentrancyError, which aborts the inner pass and, when the handler returns
it, every enclosing pass. Nested dispatch of other names is unrestricted.
Marks are released on every exit, including handler errors and panics.

# History

Dispatched reports completed invocations over the dispatcher's lifetime.
The counts are independent of registration: removing a handler does not
reset them.

# Observability

	d := hookline.New(
	    hookline.WithLogger(logger),
	    hookline.WithMetrics(true),
	    hookline.WithTracing(true),
	)

See the observability package for metric and span names.
*/
package hookline
