package selection

import (
	"errors"
	"log"

	"selectsync/internal/domain"
	"selectsync/internal/observe"
	"selectsync/internal/widget"
)

// ErrAlreadyAttached is returned by Attach when a widget is already attached
var ErrAlreadyAttached = errors.New("selection: widget already attached")

// Attach initializes w, subscribes to its selection events, mirrors the
// candidates into it and shows the current selection.
func (s *Synchronizer[T]) Attach(w widget.Widget) error {
	if s.attached {
		return ErrAlreadyAttached
	}

	opts := widget.Options{
		SortField:   s.settings.SortField,
		SearchField: s.settings.SearchField,
		MaxItems:    1,
	}
	if s.settings.Multiselect {
		opts.Plugins = append(opts.Plugins, widget.PluginRemoveButton)
		opts.MaxItems = 0
	}
	if err := w.Initialize(opts); err != nil {
		return err
	}

	s.widget = w
	s.attached = true
	s.unsubscribe = append(s.unsubscribe,
		w.On(widget.EventSelectionChanged, s.itemSelected),
		w.On(widget.EventItemRemoved, s.itemRemoved),
	)

	s.syncOptions()
	if s.settings.Multiselect {
		for _, v := range s.values.All() {
			s.addCollectionItem(s.normalize(v))
		}
	} else {
		s.syncScalarItem()
	}

	log.Printf("selection: attached widget (multiselect=%v, candidates=%d)", s.settings.Multiselect, s.candidates.Len())
	return nil
}

// Detach unsubscribes from the widget and destroys it. Bound collections stay
// observed so the value and object sides keep agreeing while detached.
func (s *Synchronizer[T]) Detach() {
	if !s.attached {
		return
	}
	for _, unsubscribe := range s.unsubscribe {
		unsubscribe()
	}
	s.unsubscribe = nil
	s.widget.Destroy()
	s.widget = nil
	s.attached = false
	log.Printf("selection: detached widget")
}

// itemSelected handles a user pick. Only the values side is written; the
// objects side follows through the regular reconciliation paths.
func (s *Synchronizer[T]) itemSelected(e widget.Event) error {
	numeric := s.ValueIsNumeric()

	if !s.settings.Multiselect {
		id := domain.NullID
		if e.Value != "" {
			id = domain.ParseID(e.Value, numeric)
		}
		return s.SetSelectedValue(id)
	}

	if s.values == nil {
		if err := s.SetSelectedValues(observe.NewList[domain.ID]()); err != nil {
			return err
		}
	}
	values := s.values
	return values.Batch(func() error {
		for _, raw := range e.Values {
			id := domain.ParseID(raw, numeric)
			if s.indexOfValue(values, id) < 0 {
				if err := values.Push(id); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *Synchronizer[T]) itemRemoved(e widget.Event) error {
	id := domain.ParseID(e.Value, s.ValueIsNumeric())

	if !s.settings.Multiselect {
		if s.value.IsNull() {
			return nil
		}
		return s.SetSelectedValue(domain.NullID)
	}

	if s.values == nil {
		return nil
	}
	values := s.values
	return values.Batch(func() error {
		return s.removeValues(values, id)
	})
}
