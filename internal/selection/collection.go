package selection

import (
	"log"

	"selectsync/internal/domain"
	"selectsync/internal/observe"
)

// SetSelectedValues assigns the selected values collection. Unless the
// objects side already matches, it is rebuilt from candidate lookups; any
// value without a candidate fails with a *LookupError before anything is
// written. Repeated values are dropped from list. Later mutations of list are
// followed element by element.
func (s *Synchronizer[T]) SetSelectedValues(list *observe.List[domain.ID]) error {
	if list == s.values {
		return nil
	}

	var rebuilt []T
	rebuild := list != nil && !s.equivalent(list, s.objects)
	if rebuild {
		objs, err := s.resolveAll(list.Items())
		if err != nil {
			return err
		}
		rebuilt = objs
	}

	// The old reference must stop reporting before the new one is accepted
	s.valuesSub.Dispose()
	s.valuesSub = nil
	if err := dropDuplicates(list, s.normalize); err != nil {
		return err
	}
	s.values = list
	s.notify(PropSelectedValues)
	s.clearCollectionItems()

	if list == nil {
		if s.objects != nil {
			return s.SetSelectedObjects(nil)
		}
		return nil
	}

	if rebuild {
		if err := s.SetSelectedObjects(observe.NewList(rebuilt...)); err != nil {
			return err
		}
	}
	for _, v := range list.All() {
		s.addCollectionItem(s.normalize(v))
	}

	s.valuesSub = list.Observe(s.valuesMutated)
	return nil
}

// SetSelectedObjects assigns the selected objects collection. Objects are
// trusted candidates, so the values side is a plain projection and cannot
// fail a lookup. Objects repeating a value are dropped from list.
func (s *Synchronizer[T]) SetSelectedObjects(list *observe.List[T]) error {
	if list == s.objects {
		return nil
	}

	s.objectsSub.Dispose()
	s.objectsSub = nil
	if err := dropDuplicates(list, s.fields.Value); err != nil {
		return err
	}
	s.objects = list
	s.notify(PropSelectedObjects)

	if list == nil {
		if s.values != nil {
			return s.SetSelectedValues(nil)
		}
		return nil
	}

	if !s.equivalent(s.values, list) {
		values := make([]domain.ID, 0, list.Len())
		for _, o := range list.All() {
			values = append(values, s.fields.Value(o))
		}
		if err := s.SetSelectedValues(observe.NewList(values...)); err != nil {
			return err
		}
	}

	s.objectsSub = list.Observe(s.objectsMutated)
	return nil
}

// equivalent reports whether every value has an object and every object has
// a value. Both absent counts as equivalent.
func (s *Synchronizer[T]) equivalent(values *observe.List[domain.ID], objects *observe.List[T]) bool {
	if values == nil && objects == nil {
		return true
	}
	if values == nil || objects == nil {
		return false
	}
	for _, v := range values.All() {
		if s.indexOfObject(objects, s.normalize(v)) < 0 {
			return false
		}
	}
	for _, o := range objects.All() {
		if s.indexOfValue(values, s.fields.Value(o)) < 0 {
			return false
		}
	}
	return true
}

// resolveAll looks up every value and returns one object per distinct value
func (s *Synchronizer[T]) resolveAll(values []domain.ID) ([]T, error) {
	objs := make([]T, 0, len(values))
	seen := make(map[domain.ID]bool, len(values))
	for _, v := range values {
		v = s.normalize(v)
		if seen[v] {
			continue
		}
		obj, ok := s.lookup(v)
		if !ok {
			log.Printf("selection: lookup failed for selected value %q", v)
			return nil, &LookupError{Value: v}
		}
		seen[v] = true
		objs = append(objs, obj)
	}
	return objs, nil
}

func (s *Synchronizer[T]) valuesMutated(changes []observe.Change[domain.ID]) error {
	// Resolve every addition first so an unknown value leaves the objects
	// side and the widget untouched
	var added []domain.ID
	for _, change := range changes {
		added = append(added, change.Added...)
	}
	if _, err := s.resolveAll(added); err != nil {
		return err
	}

	objects := s.objects
	fresh := objects == nil
	if fresh {
		objects = observe.NewList[T]()
	}

	for _, change := range changes {
		for _, v := range change.Added {
			v = s.normalize(v)
			s.addCollectionItem(v)
			if s.indexOfObject(objects, v) < 0 {
				obj, _ := s.lookup(v)
				if err := objects.Push(obj); err != nil {
					return err
				}
			}
		}
		for _, v := range change.Removed {
			v = s.normalize(v)
			if s.indexOfValue(s.values, v) >= 0 {
				continue
			}
			if err := s.removeObjects(objects, v); err != nil {
				return err
			}
			s.removeCollectionItem(v)
		}
	}

	// A value pushed twice is kept once
	if err := dropDuplicates(s.values, s.normalize); err != nil {
		return err
	}

	// Only a freshly allocated collection gets assigned, once per batch
	if fresh {
		return s.SetSelectedObjects(objects)
	}
	return nil
}

func (s *Synchronizer[T]) objectsMutated(changes []observe.Change[T]) error {
	values := s.values
	fresh := values == nil
	if fresh {
		values = observe.NewList[domain.ID]()
	}

	for _, change := range changes {
		for _, o := range change.Added {
			v := s.fields.Value(o)
			if s.indexOfValue(values, v) < 0 {
				if err := values.Push(v); err != nil {
					return err
				}
			}
		}
		for _, o := range change.Removed {
			v := s.fields.Value(o)
			if s.indexOfObject(s.objects, v) >= 0 {
				continue
			}
			if err := s.removeValues(values, v); err != nil {
				return err
			}
		}
	}

	if err := dropDuplicates(s.objects, s.fields.Value); err != nil {
		return err
	}

	if fresh {
		return s.SetSelectedValues(values)
	}
	return nil
}

// removeObjects removes every object whose value is id
func (s *Synchronizer[T]) removeObjects(objects *observe.List[T], id domain.ID) error {
	for i := s.indexOfObject(objects, id); i >= 0; i = s.indexOfObject(objects, id) {
		if err := objects.RemoveAt(i); err != nil {
			return err
		}
	}
	return nil
}

// removeValues removes every occurrence of id
func (s *Synchronizer[T]) removeValues(values *observe.List[domain.ID], id domain.ID) error {
	for i := s.indexOfValue(values, id); i >= 0; i = s.indexOfValue(values, id) {
		if err := values.RemoveAt(i); err != nil {
			return err
		}
	}
	return nil
}

// dropDuplicates removes every element whose key already appeared earlier in
// list, so each identifier is held once
func dropDuplicates[E any](list *observe.List[E], key func(E) domain.ID) error {
	if list == nil {
		return nil
	}
	seen := make(map[domain.ID]bool, list.Len())
	for i := 0; i < list.Len(); {
		id := key(list.At(i))
		if seen[id] {
			if err := list.RemoveAt(i); err != nil {
				return err
			}
			continue
		}
		seen[id] = true
		i++
	}
	return nil
}

func (s *Synchronizer[T]) collectionWidget() bool {
	return s.attached && s.settings.Multiselect
}

func (s *Synchronizer[T]) addCollectionItem(id domain.ID) {
	if s.collectionWidget() {
		s.addItem(id)
	}
}

func (s *Synchronizer[T]) removeCollectionItem(id domain.ID) {
	if s.collectionWidget() {
		s.removeItem(id)
	}
}

func (s *Synchronizer[T]) clearCollectionItems() {
	if s.collectionWidget() {
		s.clearItems()
	}
}
