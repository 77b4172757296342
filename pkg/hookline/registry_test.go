package hookline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walk drains a pass over name with no concurrent mutation.
func walk(r *handlerRegistry, name string) []uint64 {
	var seqs []uint64
	var c cursor
	for {
		e, ok := r.next(name, c)
		if !ok {
			return seqs
		}
		seqs = append(seqs, e.seq)
		c = cursor{priority: e.priority, seq: e.seq, started: true}
	}
}

func TestRegistryAdd(t *testing.T) {
	r := newHandlerRegistry()
	h := Func(addOne)

	r.add("n", h, 20)
	r.add("n", h, 5)
	r.add("n", h, 20)
	r.add("n", h, -3)

	set := r.events["n"]
	require.NotNil(t, set)
	assert.Equal(t, []int{-3, 5, 20}, set.priorities)
	assert.Len(t, set.buckets[20], 2)
	assert.Equal(t, 4, set.size())
	assert.Equal(t, []uint64{4, 2, 1, 3}, walk(r, "n"))
}

func TestRegistryCount(t *testing.T) {
	r := newHandlerRegistry()
	a, b := Func(addOne), Func(timesTen)
	r.add("n", a, 5)
	r.add("n", a, 20)
	r.add("n", b, 5)

	assert.Equal(t, 3, r.count("n", newMatch(nil)))
	assert.Equal(t, 2, r.count("n", newMatch([]Filter{ByHandler(a)})))
	assert.Equal(t, 2, r.count("n", newMatch([]Filter{ByPriority(5)})))
	assert.Equal(t, 1, r.count("n", newMatch([]Filter{ByHandler(b), ByPriority(5)})))
	assert.Equal(t, 0, r.count("n", newMatch([]Filter{ByHandler(b), ByPriority(20)})))
	assert.Equal(t, 0, r.count("n", newMatch([]Filter{ByIdentity(Identity{})})))
	assert.Equal(t, 0, r.count("missing", newMatch(nil)))
}

func TestRegistryRemove(t *testing.T) {
	t.Run("keeps order of survivors", func(t *testing.T) {
		r := newHandlerRegistry()
		a, b := Func(addOne), Func(timesTen)
		r.add("n", a, 10) // seq 1
		r.add("n", b, 10) // seq 2
		r.add("n", a, 10) // seq 3
		r.add("n", b, 10) // seq 4

		assert.Equal(t, 2, r.remove("n", newMatch([]Filter{ByHandler(a)})))
		assert.Equal(t, []uint64{2, 4}, walk(r, "n"))
	})

	t.Run("drops emptied buckets", func(t *testing.T) {
		r := newHandlerRegistry()
		a, b := Func(addOne), Func(timesTen)
		r.add("n", a, 5)
		r.add("n", b, 20)

		assert.Equal(t, 1, r.remove("n", newMatch([]Filter{ByPriority(5)})))
		set := r.events["n"]
		assert.Equal(t, []int{20}, set.priorities)
		_, ok := set.buckets[5]
		assert.False(t, ok)
	})

	t.Run("identity and priority together", func(t *testing.T) {
		r := newHandlerRegistry()
		a, b := Func(addOne), Func(timesTen)
		r.add("n", a, 5)  // seq 1
		r.add("n", b, 5)  // seq 2
		r.add("n", b, 20) // seq 3
		r.add("n", a, 5)  // seq 4

		assert.Equal(t, 1, r.remove("n", newMatch([]Filter{ByHandler(b), ByPriority(5)})))
		assert.Equal(t, []uint64{1, 4, 3}, walk(r, "n"))
		assert.Equal(t, 0, r.remove("n", newMatch([]Filter{ByHandler(a), ByPriority(20)})))
		assert.Equal(t, 3, r.total())
	})

	t.Run("drops emptied names", func(t *testing.T) {
		r := newHandlerRegistry()
		a := Func(addOne)
		r.add("n", a, 5)
		r.add("n", a, 20)

		assert.Equal(t, 2, r.remove("n", newMatch([]Filter{ByHandler(a)})))
		assert.NotContains(t, r.events, "n")
	})

	t.Run("no filter removes the name", func(t *testing.T) {
		r := newHandlerRegistry()
		r.add("n", Func(addOne), 5)
		r.add("n", Closure(passthrough), 6)
		r.add("keep", Func(addOne), 5)

		assert.Equal(t, 2, r.remove("n", newMatch(nil)))
		assert.Equal(t, []string{"keep"}, r.names())
	})

	t.Run("unresolved filter removes nothing", func(t *testing.T) {
		r := newHandlerRegistry()
		r.add("n", Func(nil), 5)

		assert.Equal(t, 0, r.remove("n", newMatch([]Filter{ByHandler(Func(nil))})))
		assert.Equal(t, 1, r.total())
	})

	t.Run("missing name", func(t *testing.T) {
		r := newHandlerRegistry()
		assert.Equal(t, 0, r.remove("n", newMatch(nil)))
	})
}

func TestRegistryTotalAndNames(t *testing.T) {
	r := newHandlerRegistry()
	r.add("zeta", Func(addOne), 1)
	r.add("alpha", Func(addOne), 1)
	r.add("alpha", Func(addOne), 2)

	assert.Equal(t, 3, r.total())
	assert.Equal(t, []string{"alpha", "zeta"}, r.names())
	assert.Empty(t, newHandlerRegistry().names())
}

func TestRegistryNextUnderMutation(t *testing.T) {
	r := newHandlerRegistry()
	a := Func(addOne)
	r.add("n", a, 10) // seq 1
	r.add("n", a, 10) // seq 2
	r.add("n", a, 30) // seq 3

	e, ok := r.next("n", cursor{})
	require.True(t, ok)
	require.Equal(t, uint64(1), e.seq)
	c := cursor{priority: e.priority, seq: e.seq, started: true}

	// The entry under the cursor disappears along with its bucket
	// neighbour; new entries appear before and after the position.
	r.remove("n", newMatch([]Filter{ByPriority(10)}))
	r.add("n", a, 5)  // seq 4, behind the cursor
	r.add("n", a, 10) // seq 5, same priority, after the cursor
	r.add("n", a, 20) // seq 6

	var seqs []uint64
	for {
		e, ok := r.next("n", c)
		if !ok {
			break
		}
		seqs = append(seqs, e.seq)
		c = cursor{priority: e.priority, seq: e.seq, started: true}
	}
	assert.Equal(t, []uint64{5, 6, 3}, seqs)
}

func TestRegistryNextMissingName(t *testing.T) {
	r := newHandlerRegistry()
	_, ok := r.next("n", cursor{})
	assert.False(t, ok)
}
