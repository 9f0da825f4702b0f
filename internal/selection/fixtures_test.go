package selection

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"selectsync/internal/domain"
	"selectsync/internal/observe"
	"selectsync/internal/widget"
)

type candidate struct {
	ID int
	D  string
}

var (
	alpha = candidate{ID: 1, D: "A"}
	beta  = candidate{ID: 2, D: "B"}
)

func candidateFields() domain.Fields[candidate] {
	return domain.Fields[candidate]{
		Value:   func(c candidate) domain.ID { return domain.NumberID(float64(c.ID)) },
		Display: func(c candidate) string { return c.D },
	}
}

func settings(multi bool) Settings {
	return Settings{
		Multiselect:  multi,
		ValueField:   "id",
		DisplayField: "d",
	}
}

// newAttached returns a synchronizer over alpha and beta attached to a fake widget
func newAttached(t *testing.T, multi bool) (*Synchronizer[candidate], *fakeWidget) {
	t.Helper()
	s := New(settings(multi), candidateFields())
	s.SetCandidates(observe.NewList(alpha, beta))
	w := newFakeWidget()
	require.NoError(t, s.Attach(w))
	w.calls = nil
	return s, w
}

func ids(ns ...int) []domain.ID {
	out := make([]domain.ID, 0, len(ns))
	for _, n := range ns {
		out = append(out, domain.NumberID(float64(n)))
	}
	return out
}

func valueList(ns ...int) *observe.List[domain.ID] {
	return observe.NewList(ids(ns...)...)
}

// requireScalarCoherent checks the single value/object invariant
func requireScalarCoherent(t *testing.T, s *Synchronizer[candidate]) {
	t.Helper()
	obj, has := s.SelectedObject()
	if s.SelectedValue().IsNull() {
		require.False(t, has, "null value must not keep an object")
		return
	}
	require.True(t, has, "value %v has no object", s.SelectedValue())
	require.Equal(t, s.SelectedValue(), domain.NumberID(float64(obj.ID)))
}

// requireCollectionCoherent checks the plural value/object invariant
func requireCollectionCoherent(t *testing.T, s *Synchronizer[candidate]) {
	t.Helper()
	values, objects := s.SelectedValues(), s.SelectedObjects()
	if values == nil || objects == nil {
		require.Nil(t, values)
		require.Nil(t, objects)
		return
	}
	require.Equal(t, values.Len(), objects.Len())
	var projected []domain.ID
	for _, o := range objects.All() {
		projected = append(projected, domain.NumberID(float64(o.ID)))
	}
	require.ElementsMatch(t, values.Items(), projected)
}

// fakeWidget records every call and emulates the item/event behaviour of a
// selectize-like control
type fakeWidget struct {
	opts        widget.Options
	initErr     error
	initialized bool
	destroyed   bool
	options     []widget.Option
	items       []string
	calls       []string
	fired       []widget.Event
	refreshes   int
	lastErr     error
	events      *widget.Dispatcher
}

func newFakeWidget() *fakeWidget {
	return &fakeWidget{events: widget.NewDispatcher()}
}

func (w *fakeWidget) Initialize(opts widget.Options) error {
	if w.initErr != nil {
		return w.initErr
	}
	w.opts = opts
	w.initialized = true
	return nil
}

func (w *fakeWidget) AddOption(opt widget.Option) {
	w.calls = append(w.calls, "addOption:"+opt.Value)
	w.options = append(w.options, opt)
}

func (w *fakeWidget) RemoveOption(value string) {
	w.calls = append(w.calls, "removeOption:"+value)
	w.options = slices.DeleteFunc(w.options, func(o widget.Option) bool { return o.Value == value })
}

func (w *fakeWidget) ClearOptions() {
	w.calls = append(w.calls, "clearOptions")
	w.options = nil
}

func (w *fakeWidget) RefreshDisplay() {
	w.refreshes++
}

func (w *fakeWidget) AddItem(value string, silent bool) {
	w.calls = append(w.calls, fmt.Sprintf("addItem:%s:%v", value, silent))
	if slices.Contains(w.items, value) {
		return
	}
	if w.opts.MaxItems == 1 {
		w.items = nil
	}
	w.items = append(w.items, value)
	if !silent {
		w.lastErr = w.fire(w.changeEvent())
	}
}

func (w *fakeWidget) RemoveItem(value string, silent bool) {
	w.calls = append(w.calls, fmt.Sprintf("removeItem:%s:%v", value, silent))
	i := slices.Index(w.items, value)
	if i < 0 {
		return
	}
	w.items = slices.Delete(w.items, i, i+1)
	if !silent {
		w.lastErr = w.fire(widget.Event{Name: widget.EventItemRemoved, Value: value})
	}
}

func (w *fakeWidget) ClearItems(silent bool) {
	w.calls = append(w.calls, fmt.Sprintf("clearItems:%v", silent))
	w.items = nil
	if !silent {
		w.lastErr = w.fire(w.changeEvent())
	}
}

func (w *fakeWidget) Items() []string {
	return slices.Clone(w.items)
}

func (w *fakeWidget) On(event string, handler widget.Handler) func() {
	return w.events.Subscribe(event, handler)
}

func (w *fakeWidget) Destroy() {
	w.destroyed = true
	w.events.Reset()
}

func (w *fakeWidget) changeEvent() widget.Event {
	if w.opts.MaxItems == 1 {
		e := widget.Event{Name: widget.EventSelectionChanged}
		if len(w.items) > 0 {
			e.Value = w.items[0]
		}
		return e
	}
	return widget.Event{Name: widget.EventSelectionChanged, Values: slices.Clone(w.items), Multiple: true}
}

func (w *fakeWidget) fire(e widget.Event) error {
	w.fired = append(w.fired, e)
	return w.events.Publish(e)
}

// pick emulates the user choosing value
func (w *fakeWidget) pick(value string) error {
	if w.opts.MaxItems == 1 {
		w.items = nil
	}
	if !slices.Contains(w.items, value) {
		w.items = append(w.items, value)
	}
	return w.fire(w.changeEvent())
}

// unpick emulates the user removing a chip
func (w *fakeWidget) unpick(value string) error {
	w.items = slices.DeleteFunc(w.items, func(v string) bool { return v == value })
	if err := w.fire(widget.Event{Name: widget.EventItemRemoved, Value: value}); err != nil {
		return err
	}
	return w.fire(w.changeEvent())
}

func (w *fakeWidget) itemCalls() []string {
	var out []string
	for _, c := range w.calls {
		if strings.HasPrefix(c, "addItem:") || strings.HasPrefix(c, "removeItem:") || strings.HasPrefix(c, "clearItems:") {
			out = append(out, c)
		}
	}
	return out
}
