// Package selection keeps a selected value, a selected object, a collection
// of selected values and a collection of selected objects coherent with each
// other and with the item list of a selection widget.
//
// Every setter runs one synchronous reconciliation pass. When it returns nil
// the value and object sides agree again and the widget shows exactly the
// selected identifiers. Widget calls made by the synchronizer are silent so
// they never come back in as widget events.
package selection

import (
	"slices"

	"selectsync/internal/domain"
	"selectsync/internal/observe"
	"selectsync/internal/widget"
)

// Synchronizer reconciles the bound selection properties of one widget.
// It is not safe for concurrent use; drive it from a single goroutine.
type Synchronizer[T any] struct {
	settings Settings
	fields   domain.Fields[T]

	widget      widget.Widget
	attached    bool
	unsubscribe []func()

	candidates    *observe.List[T]
	candidatesSub *observe.Subscription

	value     domain.ID
	object    T
	hasObject bool

	values     *observe.List[domain.ID]
	objects    *observe.List[T]
	valuesSub  *observe.Subscription
	objectsSub *observe.Subscription

	listeners []func(Property)
}

// New creates a synchronizer. Fields.Value and Fields.Display are required;
// search and sort extractors default to Display.
func New[T any](settings Settings, fields domain.Fields[T]) *Synchronizer[T] {
	return &Synchronizer[T]{
		settings: settings.withDefaults(),
		fields:   fields.WithDefaults(),
	}
}

// Settings returns the effective settings
func (s *Synchronizer[T]) Settings() Settings {
	return s.settings
}

// OnChange registers fn to be told whenever the synchronizer writes a bound
// property, including writes caused by the caller's own assignment.
func (s *Synchronizer[T]) OnChange(fn func(Property)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Synchronizer[T]) notify(p Property) {
	for _, fn := range s.listeners {
		fn(p)
	}
}

func (s *Synchronizer[T]) Candidates() *observe.List[T] { return s.candidates }

func (s *Synchronizer[T]) SelectedValue() domain.ID { return s.value }

func (s *Synchronizer[T]) SelectedObject() (T, bool) { return s.object, s.hasObject }

func (s *Synchronizer[T]) SelectedValues() *observe.List[domain.ID] { return s.values }

func (s *Synchronizer[T]) SelectedObjects() *observe.List[T] { return s.objects }

// Attached reports whether a widget is currently attached
func (s *Synchronizer[T]) Attached() bool { return s.attached }

// Selection returns a snapshot shaped by the multiselect setting
func (s *Synchronizer[T]) Selection() Selection[T] {
	if s.settings.Multiselect {
		return Multiple[T]{
			Values:  s.values.Items(),
			Objects: s.objects.Items(),
		}
	}
	return Single[T]{
		Value:     s.value,
		Object:    s.object,
		HasObject: s.hasObject,
	}
}

// ValueIsNumeric reports whether candidate values are numbers, judged by the
// first candidate
func (s *Synchronizer[T]) ValueIsNumeric() bool {
	if s.candidates.Len() == 0 {
		return false
	}
	return s.fields.Value(s.candidates.At(0)).IsNumeric()
}

// normalize turns numeric text into a number when candidates are numeric
func (s *Synchronizer[T]) normalize(id domain.ID) domain.ID {
	if id.Kind() == domain.KindString && s.ValueIsNumeric() {
		return domain.ParseID(id.String(), true)
	}
	return id
}

// lookup finds the candidate whose value field equals id
func (s *Synchronizer[T]) lookup(id domain.ID) (T, bool) {
	for _, c := range s.candidates.All() {
		if s.fields.Value(c) == id {
			return c, true
		}
	}
	var zero T
	return zero, false
}

func (s *Synchronizer[T]) indexOfObject(objects *observe.List[T], id domain.ID) int {
	return objects.IndexFunc(func(o T) bool { return s.fields.Value(o) == id })
}

func (s *Synchronizer[T]) indexOfValue(values *observe.List[domain.ID], id domain.ID) int {
	return values.IndexFunc(func(v domain.ID) bool { return s.normalize(v) == id })
}

// Widget helpers. All writes are silent.

func (s *Synchronizer[T]) hasItem(id domain.ID) bool {
	return slices.Contains(s.widget.Items(), id.String())
}

func (s *Synchronizer[T]) addItem(id domain.ID) {
	if !s.hasItem(id) {
		s.widget.AddItem(id.String(), true)
	}
}

func (s *Synchronizer[T]) removeItem(id domain.ID) {
	if s.hasItem(id) {
		s.widget.RemoveItem(id.String(), true)
	}
}

func (s *Synchronizer[T]) clearItems() {
	if len(s.widget.Items()) > 0 {
		s.widget.ClearItems(true)
	}
}
