package status

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Family is a named set of metrics of one kind
// Readers load an immutable view without locking; only the first Get of a name takes the write lock.
// Pointers returned by Get stay valid for the family's lifetime.
type Family[T any] struct {
	mu   sync.Mutex
	view atomic.Pointer[familyView[T]]
}

// familyView is replaced wholesale on insert, never mutated
type familyView[T any] struct {
	byName map[string]*T
	names  []string // sorted
}

func NewFamily[T any]() *Family[T] {
	f := &Family[T]{}
	f.view.Store(&familyView[T]{byName: map[string]*T{}})
	return f
}

// Get returns the metric for name, creating it on first use
func (f *Family[T]) Get(name string) *T {
	if ptr, ok := f.view.Load().byName[name]; ok {
		return ptr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	old := f.view.Load()
	if ptr, ok := old.byName[name]; ok {
		return ptr
	}

	next := &familyView[T]{
		byName: make(map[string]*T, len(old.byName)+1),
		names:  make([]string, 0, len(old.names)+1),
	}
	for k, v := range old.byName {
		next.byName[k] = v
	}
	ptr := new(T)
	next.byName[name] = ptr

	i, _ := slices.BinarySearch(old.names, name)
	next.names = append(next.names, old.names[:i]...)
	next.names = append(next.names, name)
	next.names = append(next.names, old.names[i:]...)

	f.view.Store(next)
	return ptr
}

func (f *Family[T]) Has(name string) bool {
	_, ok := f.view.Load().byName[name]
	return ok
}

// Range visits metrics in name order as of the call
func (f *Family[T]) Range(fn func(name string, ptr *T)) {
	v := f.view.Load()
	for _, name := range v.names {
		fn(name, v.byName[name])
	}
}

func (f *Family[T]) Count() int {
	return len(f.view.Load().names)
}
