package selection

import (
	"log"

	"selectsync/internal/domain"
)

// SetSelectedValue assigns the single selected value. The matching candidate
// becomes the selected object; a value with no candidate fails with a
// *LookupError and changes nothing. Assigning the current value is a no-op.
func (s *Synchronizer[T]) SetSelectedValue(id domain.ID) error {
	id = s.normalize(id)
	if id == s.value {
		return nil
	}
	return s.assignValue(id)
}

// SetSelectedObject assigns the single selected object; the selected value
// follows its value field.
func (s *Synchronizer[T]) SetSelectedObject(obj T) error {
	if s.hasObject && s.fields.Value(s.object) == s.fields.Value(obj) {
		return nil
	}
	return s.assignObject(obj, true)
}

// ClearSelectedObject sets the selected object to null, which also clears
// the selected value.
func (s *Synchronizer[T]) ClearSelectedObject() error {
	if !s.hasObject {
		return nil
	}
	var zero T
	return s.assignObject(zero, false)
}

func (s *Synchronizer[T]) assignValue(id domain.ID) error {
	resolve := !id.IsNull() && (!s.hasObject || s.fields.Value(s.object) != id)

	var obj T
	if resolve {
		found, ok := s.lookup(id)
		if !ok {
			log.Printf("selection: lookup failed for selected value %q", id)
			return &LookupError{Value: id}
		}
		obj = found
	}

	s.value = id
	s.notify(PropSelectedValue)

	if resolve {
		if err := s.assignObject(obj, true); err != nil {
			return err
		}
	}
	if id.IsNull() && s.hasObject {
		var zero T
		if err := s.assignObject(zero, false); err != nil {
			return err
		}
	}

	s.syncScalarItem()
	return nil
}

func (s *Synchronizer[T]) assignObject(obj T, has bool) error {
	s.object, s.hasObject = obj, has
	s.notify(PropSelectedObject)
	return s.objectChanged()
}

func (s *Synchronizer[T]) objectChanged() error {
	if !s.hasObject {
		if !s.value.IsNull() {
			return s.assignValue(domain.NullID)
		}
		return nil
	}

	v := s.fields.Value(s.object)
	if v.IsNull() {
		// An object without a value cannot be represented on the value side
		var zero T
		s.object, s.hasObject = zero, false
		s.notify(PropSelectedObject)
		if !s.value.IsNull() {
			return s.assignValue(domain.NullID)
		}
		return nil
	}
	if v != s.value {
		return s.assignValue(v)
	}
	return nil
}

// syncScalarItem makes the widget hold exactly the selected value
func (s *Synchronizer[T]) syncScalarItem() {
	if !s.attached || s.settings.Multiselect {
		return
	}
	if s.value.IsNull() {
		s.clearItems()
		return
	}
	items := s.widget.Items()
	if len(items) == 1 && items[0] == s.value.String() {
		return
	}
	s.clearItems()
	s.widget.AddItem(s.value.String(), true)
}
