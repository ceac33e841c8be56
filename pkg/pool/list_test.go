package pool

import (
	"testing"

	"github.com/martinwells/objects/pkg/objerrors"
)

type listItem struct {
	Pooled
	value int
}

func newItems(values ...int) []*listItem {
	items := make([]*listItem, len(values))
	for i, v := range values {
		items[i] = &listItem{value: v}
	}
	return items
}

func traverse(l *KeyedList[*listItem]) []int {
	var values []int
	l.Each(func(obj *listItem) {
		values = append(values, obj.value)
	})
	return values
}

func mustAdd(t *testing.T, l *KeyedList[*listItem], items ...*listItem) {
	t.Helper()
	for _, item := range items {
		if err := l.Add(item); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
}

func TestAddAppendsAsTail(t *testing.T) {
	l := NewKeyedList[*listItem]("test")
	items := newItems(1, 2, 3)
	mustAdd(t, l, items...)

	if l.Count() != 3 {
		t.Fatalf("expected count 3, got %d", l.Count())
	}

	got := traverse(l)
	want := []int{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("traversal[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	last, ok := l.Last()
	if !ok || last.value != 3 {
		t.Errorf("expected tail 3, got %v ok=%v", last, ok)
	}
}

func TestDuplicateAdd(t *testing.T) {
	l := NewKeyedList[*listItem]("test")
	item := &listItem{value: 7}
	mustAdd(t, l, item)

	err := l.Add(item)
	if err == nil {
		t.Fatal("expected duplicate add to fail")
	}
	if !objerrors.IsType(err, objerrors.ErrorTypeDuplicate) {
		t.Errorf("expected duplicate_membership error, got %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	l := NewKeyedList[*listItem]("test")
	items := newItems(1, 2, 3)
	mustAdd(t, l, items...)

	if !l.Remove(items[1]) {
		t.Fatal("expected removal of a live member")
	}
	if l.Count() != 2 {
		t.Errorf("expected count 2, got %d", l.Count())
	}
	if l.Has(items[1]) {
		t.Error("removed member should not be present")
	}

	// Second remove is a no-op, not an error.
	if l.Remove(items[1]) {
		t.Error("second removal should report not-removed")
	}

	// Removing a never-added object is also a no-op.
	if l.Remove(&listItem{value: 99}) {
		t.Error("removal of a non-member should report not-removed")
	}
}

func TestAddRemoveRestoresCount(t *testing.T) {
	l := NewKeyedList[*listItem]("test")
	mustAdd(t, l, newItems(1, 2)...)

	before := l.Count()
	extra := &listItem{value: 3}
	mustAdd(t, l, extra)
	l.Remove(extra)

	if l.Count() != before {
		t.Errorf("count %d after add+remove, want %d", l.Count(), before)
	}
	if l.Has(extra) {
		t.Error("object should not be a member after add+remove")
	}
}

func TestNodeReuse(t *testing.T) {
	l := NewKeyedList[*listItem]("test")
	item := &listItem{value: 1}

	for i := 0; i < 10; i++ {
		mustAdd(t, l, item)
		l.Remove(item)
	}

	if len(l.nodes) != 1 {
		t.Errorf("expected one cached node across add/remove cycles, got %d", len(l.nodes))
	}
}

func TestRemoveHeadAndTail(t *testing.T) {
	l := NewKeyedList[*listItem]("test")
	items := newItems(1, 2, 3)
	mustAdd(t, l, items...)

	l.Remove(items[0])
	first, ok := l.First()
	if !ok || first.value != 2 {
		t.Errorf("expected head 2 after head removal, got %v ok=%v", first, ok)
	}

	l.Remove(items[2])
	last, ok := l.Last()
	if !ok || last.value != 2 {
		t.Errorf("expected tail 2 after tail removal, got %v ok=%v", last, ok)
	}
}

func TestMoveUp(t *testing.T) {
	l := NewKeyedList[*listItem]("test")
	items := newItems(1, 2, 3)
	mustAdd(t, l, items...)

	l.MoveUp(items[1])
	got := traverse(l)
	want := []int{2, 1, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after MoveUp traversal = %v, want %v", got, want)
		}
	}
}

func TestMoveUpFirstIsNoop(t *testing.T) {
	l := NewKeyedList[*listItem]("test")
	items := newItems(1, 2, 3)
	mustAdd(t, l, items...)

	l.MoveUp(items[0])

	first, _ := l.First()
	last, _ := l.Last()
	if first.value != 1 || last.value != 3 {
		t.Errorf("MoveUp on first element changed boundaries: first=%d last=%d", first.value, last.value)
	}
}

func TestMoveDown(t *testing.T) {
	l := NewKeyedList[*listItem]("test")
	items := newItems(1, 2, 3)
	mustAdd(t, l, items...)

	l.MoveDown(items[1])
	got := traverse(l)
	want := []int{1, 3, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after MoveDown traversal = %v, want %v", got, want)
		}
	}

	// Tail cannot move further down.
	l.MoveDown(items[1])
	last, _ := l.Last()
	if last.value != 2 {
		t.Errorf("MoveDown on last element should be a no-op, tail=%d", last.value)
	}
}

func TestSort(t *testing.T) {
	l := NewKeyedList[*listItem]("test")
	mustAdd(t, l, newItems(3, 1, 2)...)

	err := l.Sort(func(a, b *listItem) int {
		return a.value - b.value
	})
	if err != nil {
		t.Fatalf("sort failed: %v", err)
	}

	if l.Count() != 3 {
		t.Errorf("sort changed count: %d", l.Count())
	}
	got := traverse(l)
	want := []int{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after sort traversal = %v, want %v", got, want)
		}
	}
}

func TestClear(t *testing.T) {
	l := NewKeyedList[*listItem]("test")
	items := newItems(1, 2, 3)
	mustAdd(t, l, items...)

	l.Clear()

	if l.Count() != 0 {
		t.Errorf("expected empty list after clear, count=%d", l.Count())
	}
	if _, ok := l.First(); ok {
		t.Error("cleared list should have no head")
	}
	for _, item := range items {
		if l.Has(item) {
			t.Errorf("cleared list still has member %d", item.value)
		}
	}

	// Cached nodes must be reusable after clear.
	mustAdd(t, l, items...)
	if l.Count() != 3 {
		t.Errorf("re-add after clear failed, count=%d", l.Count())
	}
}

func TestFirstOnEmpty(t *testing.T) {
	l := NewKeyedList[*listItem]("test")
	if _, ok := l.First(); ok {
		t.Error("empty list should have no first")
	}
	if _, ok := l.Last(); ok {
		t.Error("empty list should have no last")
	}
}
