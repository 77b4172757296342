package hookline

import (
	"slices"
	"sort"
)

// entry is one registration. seq is assigned from a registry-wide counter,
// so entries within a bucket are always in ascending seq order.
type entry struct {
	handler  Handler
	priority int
	seq      uint64
}

// eventSet holds the buckets for one name. priorities is kept sorted and
// mirrors the keys of buckets; neither holds an empty bucket.
type eventSet struct {
	priorities []int
	buckets    map[int][]*entry
}

func (s *eventSet) size() int {
	n := 0
	for _, b := range s.buckets {
		n += len(b)
	}
	return n
}

func (s *eventSet) dropBucket(priority int) {
	delete(s.buckets, priority)
	if i, ok := slices.BinarySearch(s.priorities, priority); ok {
		s.priorities = slices.Delete(s.priorities, i, i+1)
	}
}

// handlerRegistry stores handlers per name, bucketed by priority in
// insertion order. It does no locking; Dispatcher serializes access.
type handlerRegistry struct {
	events map[string]*eventSet
	seq    uint64
}

func newHandlerRegistry() *handlerRegistry {
	return &handlerRegistry{events: make(map[string]*eventSet)}
}

func (r *handlerRegistry) add(name string, h Handler, priority int) Identity {
	set, ok := r.events[name]
	if !ok {
		set = &eventSet{buckets: make(map[int][]*entry)}
		r.events[name] = set
	}
	if _, ok := set.buckets[priority]; !ok {
		i, _ := slices.BinarySearch(set.priorities, priority)
		set.priorities = slices.Insert(set.priorities, i, priority)
	}
	r.seq++
	set.buckets[priority] = append(set.buckets[priority], &entry{
		handler:  h,
		priority: priority,
		seq:      r.seq,
	})
	return h.id
}

func (r *handlerRegistry) count(name string, m match) int {
	set, ok := r.events[name]
	if !ok || m.empty() {
		return 0
	}
	if m.all() {
		return set.size()
	}
	n := 0
	for p, bucket := range set.buckets {
		for _, e := range bucket {
			if m.matches(e.handler.id, p) {
				n++
			}
		}
	}
	return n
}

// remove deletes matching registrations and returns how many went. Buckets
// keep their relative order; emptied buckets and names are dropped.
func (r *handlerRegistry) remove(name string, m match) int {
	set, ok := r.events[name]
	if !ok || m.empty() {
		return 0
	}
	if m.all() {
		n := set.size()
		delete(r.events, name)
		return n
	}

	removed := 0
	for _, p := range slices.Clone(set.priorities) {
		bucket := set.buckets[p]
		kept := bucket[:0]
		for _, e := range bucket {
			if m.matches(e.handler.id, p) {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		clear(bucket[len(kept):])
		if len(kept) == 0 {
			set.dropBucket(p)
		} else {
			set.buckets[p] = kept
		}
	}
	if len(set.priorities) == 0 {
		delete(r.events, name)
	}
	return removed
}

func (r *handlerRegistry) total() int {
	n := 0
	for _, set := range r.events {
		n += set.size()
	}
	return n
}

func (r *handlerRegistry) names() []string {
	names := make([]string, 0, len(r.events))
	for name := range r.events {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// cursor is a position in a live dispatch walk: the priority being visited
// and the seq of the last entry run there. It holds no references into the
// registry, so it stays valid across any add or remove.
type cursor struct {
	priority int
	seq      uint64
	started  bool
}

// next returns the first registration after c under name, looking at the
// registry as it is now. Entries added at the current priority after the
// last visited one, or at any later priority, are found; removed entries
// are simply absent.
func (r *handlerRegistry) next(name string, c cursor) (*entry, bool) {
	set, ok := r.events[name]
	if !ok {
		return nil, false
	}
	i := 0
	if c.started {
		i, _ = slices.BinarySearch(set.priorities, c.priority)
	}
	for ; i < len(set.priorities); i++ {
		p := set.priorities[i]
		bucket := set.buckets[p]
		var after uint64
		if c.started && p == c.priority {
			after = c.seq
		}
		j := sort.Search(len(bucket), func(k int) bool { return bucket[k].seq > after })
		if j < len(bucket) {
			return bucket[j], true
		}
	}
	return nil, false
}
