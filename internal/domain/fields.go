package domain

// Fields extracts the identifier and labels of a candidate.
// Search and Sort fall back to Display when unset.
type Fields[T any] struct {
	Value   func(T) ID
	Display func(T) string
	Search  func(T) string
	Sort    func(T) string
}

// WithDefaults fills Search and Sort from Display
func (f Fields[T]) WithDefaults() Fields[T] {
	if f.Search == nil {
		f.Search = f.Display
	}
	if f.Sort == nil {
		f.Sort = f.Display
	}
	return f
}
