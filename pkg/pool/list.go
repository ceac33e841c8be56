package pool

import (
	"slices"

	"github.com/martinwells/objects/pkg/objerrors"
	stringpool "github.com/martinwells/objects/pkg/strings"
)

// node wraps exactly one list member. Nodes are cached per object identity
// and recycled across add/remove cycles so steady-state list mutation
// allocates nothing.
type node[T Keyed] struct {
	obj  T
	prev *node[T]
	next *node[T]
	free bool
}

// KeyedList is a doubly linked list keyed by each object's unique
// identifier. An object can be a member of a given list at most once at a
// time; adding a live member again is an error. All single-element
// operations are O(1).
//
// KeyedList is not safe for concurrent use; callers in multi-threaded hosts
// must provide external mutual exclusion.
type KeyedList[T Keyed] struct {
	name  string
	first *node[T]
	last  *node[T]
	count int

	// nodes caches a link node per object identity, including nodes whose
	// member has been removed (marked free) awaiting reuse.
	nodes map[uint64]*node[T]
}

// NewKeyedList creates an empty list. The name appears in error context and
// dump output.
func NewKeyedList[T Keyed](name string) *KeyedList[T] {
	return &KeyedList[T]{
		name:  name,
		nodes: make(map[uint64]*node[T]),
	}
}

// Name returns the list's name.
func (l *KeyedList[T]) Name() string {
	return l.name
}

// Count returns the number of live members.
func (l *KeyedList[T]) Count() int {
	return l.count
}

// Add appends obj as the new tail. If obj has a cached node from a prior
// add/remove cycle the node is reinitialized and reused; if the cached node
// is still live the add fails with a duplicate membership error.
func (l *KeyedList[T]) Add(obj T) error {
	id := obj.PoolID()

	n := l.nodes[id]
	if n != nil {
		if !n.free {
			return objerrors.New(objerrors.ErrorTypeDuplicate, "object is already a member of the list").
				WithDetail("object_id", id).
				WithDetail("list", l.name)
		}
		n.obj = obj
		n.prev = nil
		n.next = nil
		n.free = false
	} else {
		n = &node[T]{obj: obj}
		l.nodes[id] = n
	}

	if l.first == nil {
		l.first = n
		l.last = n
	} else {
		if l.last == nil {
			return objerrors.New(objerrors.ErrorTypeInvariant, "non-empty list has no tail").
				WithDetail("list", l.name).
				WithDetail("count", l.count)
		}
		l.last.next = n
		n.prev = l.last
		l.last = n
	}

	l.count++
	return nil
}

// Remove unlinks obj from the list. Removing an object that is not a live
// member is a no-op; the return value reports whether a removal happened.
func (l *KeyedList[T]) Remove(obj T) bool {
	n := l.nodes[obj.PoolID()]
	if n == nil || n.free {
		return false
	}

	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.first = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.last = n.prev
	}

	n.prev = nil
	n.next = nil
	n.free = true
	l.count--
	return true
}

// Has reports whether obj is currently a live member.
func (l *KeyedList[T]) Has(obj T) bool {
	n := l.nodes[obj.PoolID()]
	return n != nil && !n.free
}

// First returns the head object, if any.
func (l *KeyedList[T]) First() (T, bool) {
	if l.first == nil {
		var zero T
		return zero, false
	}
	return l.first.obj, true
}

// Last returns the tail object, if any.
func (l *KeyedList[T]) Last() (T, bool) {
	if l.last == nil {
		var zero T
		return zero, false
	}
	return l.last.obj, true
}

// MoveUp swaps obj with its predecessor in O(1) pointer surgery. Calling it
// on the first element, or on a non-member, is a no-op.
func (l *KeyedList[T]) MoveUp(obj T) {
	n := l.nodes[obj.PoolID()]
	if n == nil || n.free || n.prev == nil {
		return
	}

	p := n.prev
	if p.prev != nil {
		p.prev.next = n
	} else {
		l.first = n
	}
	n.prev = p.prev
	p.next = n.next
	if n.next != nil {
		n.next.prev = p
	} else {
		l.last = p
	}
	n.next = p
	p.prev = n
}

// MoveDown swaps obj with its successor. Calling it on the last element, or
// on a non-member, is a no-op.
func (l *KeyedList[T]) MoveDown(obj T) {
	n := l.nodes[obj.PoolID()]
	if n == nil || n.free || n.next == nil {
		return
	}
	l.MoveUp(n.next.obj)
}

// Sort extracts all members, clears the list, sorts with the given
// total-order comparator, and re-adds in sorted order. Re-adding reuses the
// cached nodes, so sorting allocates only the temporary slice.
func (l *KeyedList[T]) Sort(cmp func(a, b T) int) error {
	items := make([]T, 0, l.count)
	for n := l.first; n != nil; n = n.next {
		items = append(items, n.obj)
	}

	l.Clear()
	slices.SortStableFunc(items, cmp)

	for _, obj := range items {
		if err := l.Add(obj); err != nil {
			return err
		}
	}
	return nil
}

// Each calls fn for every live member in list order.
func (l *KeyedList[T]) Each(fn func(obj T)) {
	for n := l.first; n != nil; n = n.next {
		fn(n.obj)
	}
}

// Clear removes all members, marking every cached node free. The walk is
// O(n): cached nodes carrying a stale live flag would corrupt duplicate
// detection on later adds, so there is no O(1) clear.
func (l *KeyedList[T]) Clear() {
	for n := l.first; n != nil; {
		next := n.next
		n.prev = nil
		n.next = nil
		n.free = true
		n = next
	}
	l.first = nil
	l.last = nil
	l.count = 0
}

// Dump returns a one-line description of the list for debug output.
func (l *KeyedList[T]) Dump() string {
	b := stringpool.GetBuilder()
	defer stringpool.PutBuilder(b)

	b.WriteString(l.name)
	b.WriteString("[")
	b.WriteString(stringpool.ValueToString(l.count))
	b.WriteString("]:")
	for n := l.first; n != nil; n = n.next {
		b.WriteByte(' ')
		b.WriteString(stringpool.ValueToString(n.obj.PoolID()))
	}

	return stringpool.Clone(b.String())
}
