package hookline

import (
	"errors"
	"fmt"
)

// ServiceName is the name a shared Dispatcher is conventionally registered
// under in a service directory.
const ServiceName = "core.events"

// ErrNoDispatcher indicates a locator had no usable Dispatcher under the
// requested name.
var ErrNoDispatcher = errors.New("no dispatcher registered")

// Locator is the read side of a service directory. The dispatcher does not
// manage the directory; it only looks itself up through it when an
// application is wired together, and hands it to handlers via Services.
type Locator interface {
	Get(name string) (any, bool)
}

// FromLocator returns the Dispatcher registered in loc under name.
func FromLocator(loc Locator, name string) (*Dispatcher, error) {
	if loc == nil {
		return nil, fmt.Errorf("%w: nil locator", ErrNoDispatcher)
	}
	svc, ok := loc.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q not found", ErrNoDispatcher, name)
	}
	d, ok := svc.(*Dispatcher)
	if !ok || d == nil {
		return nil, fmt.Errorf("%w: %q is %T", ErrNoDispatcher, name, svc)
	}
	return d, nil
}
