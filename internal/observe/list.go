// Package observe provides an observable ordered collection. Every mutation is
// reported to subscribers as a change record; mutations made inside Batch are
// reported together once the batch finishes.
package observe

import (
	"fmt"
	"slices"
)

// Change describes one splice applied to a List
type Change[E any] struct {
	Index      int // position of the splice
	AddedCount int
	Added      []E // elements inserted at Index
	Removed    []E // elements removed from Index
}

// Handler receives a batch of changes. A returned error is passed back to the
// caller that mutated the list.
type Handler[E any] func(changes []Change[E]) error

// Subscription is returned by Observe. Dispose stops future notifications.
type Subscription struct {
	disposed bool
	dispose  func()
}

// Dispose detaches the handler; safe to call more than once and on nil
func (s *Subscription) Dispose() {
	if s == nil || s.disposed {
		return
	}
	s.disposed = true
	if s.dispose != nil {
		s.dispose()
	}
}

// Disposed reports whether Dispose was called
func (s *Subscription) Disposed() bool {
	return s == nil || s.disposed
}

type observer[E any] struct {
	sub     *Subscription
	handler Handler[E]
}

// List is an ordered collection whose mutations can be observed.
// It is not safe for concurrent use.
type List[E any] struct {
	items     []E
	observers []*observer[E]
	batching  int
	pending   []Change[E]
}

// NewList creates a list holding items
func NewList[E any](items ...E) *List[E] {
	return &List[E]{items: slices.Clone(items)}
}

// Len returns the number of elements; a nil list is empty
func (l *List[E]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the element at i
func (l *List[E]) At(i int) E {
	return l.items[i]
}

// Items returns a copy of the elements
func (l *List[E]) Items() []E {
	if l == nil {
		return nil
	}
	return slices.Clone(l.items)
}

// All iterates the elements in order
func (l *List[E]) All() func(yield func(int, E) bool) {
	return func(yield func(int, E) bool) {
		if l == nil {
			return
		}
		for i, e := range l.items {
			if !yield(i, e) {
				return
			}
		}
	}
}

// IndexFunc returns the first index whose element satisfies match, or -1
func (l *List[E]) IndexFunc(match func(E) bool) int {
	if l == nil {
		return -1
	}
	return slices.IndexFunc(l.items, match)
}

// Observe registers handler for future changes
func (l *List[E]) Observe(handler Handler[E]) *Subscription {
	o := &observer[E]{handler: handler}
	o.sub = &Subscription{dispose: func() {
		l.observers = slices.DeleteFunc(l.observers, func(x *observer[E]) bool { return x == o })
	}}
	l.observers = append(l.observers, o)
	return o.sub
}

// Push appends items
func (l *List[E]) Push(items ...E) error {
	return l.Splice(len(l.items), 0, items...)
}

// Insert places items at index i
func (l *List[E]) Insert(i int, items ...E) error {
	return l.Splice(i, 0, items...)
}

// RemoveAt removes the element at index i
func (l *List[E]) RemoveAt(i int) error {
	return l.Splice(i, 1)
}

// Clear removes every element
func (l *List[E]) Clear() error {
	return l.Splice(0, len(l.items))
}

// Splice removes deleteCount elements at index and inserts items in their place
func (l *List[E]) Splice(index, deleteCount int, items ...E) error {
	if index < 0 || index > len(l.items) {
		return fmt.Errorf("splice index %d out of range [0,%d]", index, len(l.items))
	}
	if deleteCount < 0 || index+deleteCount > len(l.items) {
		return fmt.Errorf("splice delete count %d out of range at index %d", deleteCount, index)
	}
	if deleteCount == 0 && len(items) == 0 {
		return nil
	}

	removed := slices.Clone(l.items[index : index+deleteCount])
	l.items = slices.Replace(l.items, index, index+deleteCount, items...)

	return l.notify(Change[E]{
		Index:      index,
		AddedCount: len(items),
		Added:      slices.Clone(items),
		Removed:    removed,
	})
}

// Batch runs fn and delivers every change it made as one batch
func (l *List[E]) Batch(fn func() error) error {
	l.batching++
	err := fn()
	l.batching--
	if l.batching > 0 {
		return err
	}
	pending := l.pending
	l.pending = nil
	// Changes fn already applied are reported even when it failed
	derr := l.dispatch(pending)
	if err != nil {
		return err
	}
	return derr
}

func (l *List[E]) notify(change Change[E]) error {
	if l.batching > 0 {
		l.pending = append(l.pending, change)
		return nil
	}
	return l.dispatch([]Change[E]{change})
}

func (l *List[E]) dispatch(changes []Change[E]) error {
	if len(changes) == 0 {
		return nil
	}
	// Copy so handlers may dispose subscriptions while we iterate
	observers := slices.Clone(l.observers)
	for _, o := range observers {
		if o.sub.Disposed() {
			continue
		}
		if err := o.handler(changes); err != nil {
			return err
		}
	}
	return nil
}

// Contains reports whether a comparable list holds v
func Contains[E comparable](l *List[E], v E) bool {
	return Index(l, v) >= 0
}

// Index returns the position of v in a comparable list, or -1
func Index[E comparable](l *List[E], v E) int {
	if l == nil {
		return -1
	}
	return slices.Index(l.items, v)
}
