package hookline

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// IdentityKind tags which handler shape an Identity was derived from.
type IdentityKind uint8

const (
	// KindUnresolved marks a handler with no stable identity. It still runs
	// but never matches identity-based queries.
	KindUnresolved IdentityKind = iota

	// KindFunction is a named package-level function.
	KindFunction

	// KindMethod is a method bound to a specific receiver.
	KindMethod

	// KindStatic is a method addressed through its type rather than a receiver.
	KindStatic

	// KindAnonymous is a function literal; equal only to itself.
	KindAnonymous
)

// String returns the kind name.
func (k IdentityKind) String() string {
	switch k {
	case KindUnresolved:
		return "unresolved"
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindStatic:
		return "static"
	case KindAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Identity is the comparable key that recognizes "the same" handler across
// registrations. The zero value is unresolved.
type Identity struct {
	Kind IdentityKind

	// Owner is the receiver address for KindMethod.
	Owner uintptr

	// Type is the receiver or static type name.
	Type string

	// Name is the function symbol or method name.
	Name string

	// Instance is the per-closure id for KindAnonymous.
	Instance string
}

// Resolved reports whether the identity can take part in filtered queries.
func (id Identity) Resolved() bool {
	return id.Kind != KindUnresolved
}

// String renders the identity for logs and errors.
func (id Identity) String() string {
	switch id.Kind {
	case KindFunction:
		return id.Name
	case KindMethod:
		return fmt.Sprintf("%s@%#x::%s", id.Type, id.Owner, id.Name)
	case KindStatic:
		return id.Type + "::" + id.Name
	case KindAnonymous:
		return "closure#" + id.Instance
	default:
		return "<unresolved>"
	}
}

// functionIdentity classifies fn by its runtime symbol. Package-level
// functions are keyed by symbol name; function literals get a fresh instance
// id; method values and anything else we cannot pin down are unresolved.
func functionIdentity(fn any) Identity {
	if fn == nil {
		return Identity{}
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return Identity{}
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return Identity{}
	}
	name := rf.Name()
	switch {
	case name == "":
		return Identity{}
	case strings.HasSuffix(name, "-fm"):
		// Method value: the receiver is captured but not observable.
		return Identity{}
	case isFuncLiteral(name):
		return anonymousIdentity()
	}
	return Identity{Kind: KindFunction, Name: name}
}

// isFuncLiteral reports whether a runtime symbol names a function literal,
// e.g. "pkg.outer.func1" or "pkg.outer.func2.1".
func isFuncLiteral(symbol string) bool {
	// Strip the import path so dots in domains do not confuse the scan.
	if i := strings.LastIndex(symbol, "/"); i >= 0 {
		symbol = symbol[i+1:]
	}
	for _, part := range strings.Split(symbol, ".")[1:] {
		if strings.HasPrefix(part, "func") && len(part) > 4 && allDigits(part[4:]) {
			return true
		}
		if allDigits(part) {
			return true
		}
	}
	return false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// methodIdentity keys a bound method by receiver address. Receivers that
// are not pointers (or are nil) have no stable address.
func methodIdentity(owner any, method string) Identity {
	if owner == nil || method == "" {
		return Identity{}
	}
	v := reflect.ValueOf(owner)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if v.IsNil() {
			return Identity{}
		}
	default:
		return Identity{}
	}
	return Identity{
		Kind:  KindMethod,
		Owner: v.Pointer(),
		Type:  v.Type().String(),
		Name:  method,
	}
}

func staticIdentity(t reflect.Type, method string) Identity {
	if t == nil || method == "" {
		return Identity{}
	}
	name := t.String()
	if t.PkgPath() != "" {
		name = t.PkgPath() + "." + t.Name()
	}
	return Identity{Kind: KindStatic, Type: name, Name: method}
}

func anonymousIdentity() Identity {
	return Identity{Kind: KindAnonymous, Instance: uuid.NewString()}
}

// Resolve returns the identity carried by h. It never fails; handlers
// without a derivable identity report an unresolved Identity.
func Resolve(h Handler) Identity {
	return h.id
}
