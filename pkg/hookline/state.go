package hookline

// slots maps name -> identity -> priority -> V. Both the in-progress marks
// and the ledger use this shape and the same filter semantics.
type slots[V any] map[string]map[Identity]map[int]V

func (s slots[V]) get(name string, id Identity, priority int) (V, bool) {
	v, ok := s[name][id][priority]
	return v, ok
}

func (s slots[V]) set(name string, id Identity, priority int, v V) {
	byID, ok := s[name]
	if !ok {
		byID = make(map[Identity]map[int]V)
		s[name] = byID
	}
	byPriority, ok := byID[id]
	if !ok {
		byPriority = make(map[int]V)
		byID[id] = byPriority
	}
	byPriority[priority] = v
}

// unset deletes one slot and prunes the maps above it when they empty.
func (s slots[V]) unset(name string, id Identity, priority int) {
	byID, ok := s[name]
	if !ok {
		return
	}
	byPriority, ok := byID[id]
	if !ok {
		return
	}
	delete(byPriority, priority)
	if len(byPriority) == 0 {
		delete(byID, id)
	}
	if len(byID) == 0 {
		delete(s, name)
	}
}

// each calls fn for every slot under name selected by m.
func (s slots[V]) each(name string, m match, fn func(V)) {
	if m.empty() {
		return
	}
	for id, byPriority := range s[name] {
		for p, v := range byPriority {
			if m.matches(id, p) {
				fn(v)
			}
		}
	}
}

// dispatchState tracks the (name, identity, priority) slots currently
// executing. A slot exists only while its handler is on the stack.
type dispatchState struct {
	active slots[struct{}]
}

func newDispatchState() *dispatchState {
	return &dispatchState{active: make(slots[struct{}])}
}

// acquire marks a slot in progress. It returns false if the slot is
// already marked, which is a reentrant call.
func (s *dispatchState) acquire(name string, id Identity, priority int) bool {
	if _, busy := s.active.get(name, id, priority); busy {
		return false
	}
	s.active.set(name, id, priority, struct{}{})
	return true
}

func (s *dispatchState) release(name string, id Identity, priority int) {
	s.active.unset(name, id, priority)
}

func (s *dispatchState) isActive(name string, m match) bool {
	found := false
	s.active.each(name, m, func(struct{}) { found = true })
	return found
}

// ledger counts completed invocations. Counts only ever grow and outlive
// the registrations that produced them.
type ledger struct {
	counts slots[int]
}

func newLedger() *ledger {
	return &ledger{counts: make(slots[int])}
}

func (l *ledger) record(name string, id Identity, priority int) {
	n, _ := l.counts.get(name, id, priority)
	l.counts.set(name, id, priority, n+1)
}

func (l *ledger) total(name string, m match) int {
	n := 0
	l.counts.each(name, m, func(c int) { n += c })
	return n
}
