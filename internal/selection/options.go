package selection

import (
	"selectsync/internal/observe"
	"selectsync/internal/widget"
)

// SetCandidates replaces the candidate list. The widget's options are cleared
// and repopulated, and later mutations of list are mirrored incrementally.
func (s *Synchronizer[T]) SetCandidates(list *observe.List[T]) {
	if list == s.candidates {
		return
	}
	s.candidatesSub.Dispose()
	s.candidatesSub = nil

	s.candidates = list
	s.syncOptions()

	if list != nil {
		s.candidatesSub = list.Observe(s.candidatesMutated)
	}
}

func (s *Synchronizer[T]) option(c T) widget.Option {
	return widget.Option{
		Value:  s.fields.Value(c).String(),
		Text:   s.fields.Display(c),
		Search: s.fields.Search(c),
		Sort:   s.fields.Sort(c),
	}
}

func (s *Synchronizer[T]) syncOptions() {
	if !s.attached {
		return
	}
	s.widget.ClearOptions()
	for _, c := range s.candidates.All() {
		s.widget.AddOption(s.option(c))
	}
	s.widget.RefreshDisplay()
}

func (s *Synchronizer[T]) candidatesMutated(changes []observe.Change[T]) error {
	if !s.attached {
		return nil
	}
	for _, change := range changes {
		for _, added := range change.Added {
			s.widget.AddOption(s.option(added))
		}
		for _, removed := range change.Removed {
			s.widget.RemoveOption(s.fields.Value(removed).String())
		}
	}
	s.widget.RefreshDisplay()
	return nil
}
