package selection

import "selectsync/internal/domain"

// Settings are read once when the synchronizer is created
type Settings struct {
	Multiselect  bool
	ValueField   string
	DisplayField string
	SearchField  string // defaults to DisplayField
	SortField    string // defaults to DisplayField
}

// DefaultSettings mirrors the usual id/description candidate shape
func DefaultSettings() Settings {
	return Settings{
		ValueField:   "id",
		DisplayField: "description",
	}
}

func (s Settings) withDefaults() Settings {
	if s.SearchField == "" {
		s.SearchField = s.DisplayField
	}
	if s.SortField == "" {
		s.SortField = s.DisplayField
	}
	return s
}

// Property names a bound property the synchronizer may write
type Property int

const (
	PropSelectedValue Property = iota
	PropSelectedObject
	PropSelectedValues
	PropSelectedObjects
)

func (p Property) String() string {
	switch p {
	case PropSelectedValue:
		return "selectedValue"
	case PropSelectedObject:
		return "selectedObject"
	case PropSelectedValues:
		return "selectedValues"
	case PropSelectedObjects:
		return "selectedObjects"
	default:
		return "unknown"
	}
}

// Selection is a settled snapshot, either Single or Multiple
type Selection[T any] interface {
	isSelection()
	// IDs returns the selected identifiers in selection order
	IDs() []domain.ID
}

// Single is the single-select snapshot
type Single[T any] struct {
	Value     domain.ID
	Object    T
	HasObject bool
}

func (Single[T]) isSelection() {}

func (s Single[T]) IDs() []domain.ID {
	if s.Value.IsNull() {
		return nil
	}
	return []domain.ID{s.Value}
}

// Multiple is the multi-select snapshot. Nil slices mean the bound
// collections are absent.
type Multiple[T any] struct {
	Values  []domain.ID
	Objects []T
}

func (Multiple[T]) isSelection() {}

func (m Multiple[T]) IDs() []domain.ID {
	return m.Values
}
