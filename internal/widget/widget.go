// Package widget defines the contract a selection-list control must satisfy
// to be driven by the selection synchronizer.
package widget

import "errors"

// Event names fired by a widget
const (
	EventSelectionChanged = "selection-changed"
	EventItemRemoved      = "item-removed"
)

// PluginRemoveButton lets the user remove chips in multi-select mode
const PluginRemoveButton = "remove_button"

var (
	ErrNotInitialized = errors.New("widget not initialized")
	ErrDestroyed      = errors.New("widget destroyed")
)

// Options configures a widget once at initialization
type Options struct {
	Plugins     []string
	SortField   string
	SearchField string
	MaxItems    int // 0 means unbounded
}

// HasPlugin reports whether name is enabled
func (o Options) HasPlugin(name string) bool {
	for _, p := range o.Plugins {
		if p == name {
			return true
		}
	}
	return false
}

// Option is one offered entry
type Option struct {
	Value  string
	Text   string
	Search string // text matched by the filter, defaults to Text
	Sort   string // sort key, defaults to Text
}

// Event is delivered to handlers registered with On.
// For selection-changed on a multi-select widget Values holds every current
// item; otherwise Value holds the single item ("" when empty).
type Event struct {
	Name     string
	Value    string
	Values   []string
	Multiple bool
}

// Handler reacts to a widget event
type Handler func(Event) error

// Widget is a selection-list control. Item identifiers are always text.
// Silent mutations must not fire events.
type Widget interface {
	Initialize(opts Options) error
	AddOption(opt Option)
	RemoveOption(value string)
	ClearOptions()
	RefreshDisplay()
	AddItem(value string, silent bool)
	RemoveItem(value string, silent bool)
	ClearItems(silent bool)
	Items() []string
	On(event string, handler Handler) (unsubscribe func())
	Destroy()
}
