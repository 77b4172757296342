package hookline

// Filter narrows Count, Remove, Exists, Dispatched and InDispatch.
//
// With no filters a query covers every handler under the name. ByHandler or
// ByIdentity restricts to one identity across all priorities; adding
// ByPriority restricts further to one bucket. ByPriority alone selects every
// handler in that bucket.
//
// An unresolved identity matches nothing. It is never a wildcard, so
// Remove("n", ByHandler(h)) for an unresolved h removes nothing.
type Filter func(*match)

// ByHandler filters by the identity of h.
func ByHandler(h Handler) Filter {
	return ByIdentity(h.id)
}

// ByIdentity filters by an identity returned from Add.
func ByIdentity(id Identity) Filter {
	return func(m *match) {
		m.id = id
		m.byID = true
	}
}

// ByPriority filters by priority.
func ByPriority(priority int) Filter {
	return func(m *match) {
		m.priority = priority
		m.byPriority = true
	}
}

type match struct {
	id         Identity
	byID       bool
	priority   int
	byPriority bool
}

func newMatch(filters []Filter) match {
	var m match
	for _, f := range filters {
		if f != nil {
			f(&m)
		}
	}
	return m
}

// all reports whether the match selects every handler under a name.
func (m match) all() bool {
	return !m.byID && !m.byPriority
}

// empty reports whether the match can never select anything.
func (m match) empty() bool {
	return m.byID && !m.id.Resolved()
}

// matches reports whether the registration (id, priority) is selected.
func (m match) matches(id Identity, priority int) bool {
	if m.byPriority && m.priority != priority {
		return false
	}
	return !m.byID || (m.id.Resolved() && m.id == id)
}
