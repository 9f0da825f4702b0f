// Package picker is a terminal selection list implementing widget.Widget.
// It offers options with a filter, shows the selected items as chips and
// fires widget events for user actions.
package picker

import (
	"errors"
	"log"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"selectsync/internal/widget"
)

// ErrAlreadyInitialized is returned by a second Initialize call
var ErrAlreadyInitialized = errors.New("picker: already initialized")

// Picker is a selectize-like list. Widget methods are called from the
// synchronizer, user actions come in through Update.
type Picker struct {
	title string
	opts  widget.Options

	initialized bool
	destroyed   bool

	options []widget.Option
	items   []string
	visible []widget.Option
	cursor  int

	events *widget.Dispatcher

	filter textinput.Model
	keys   KeyMap
	help   help.Model
	styles *Styles

	status string
	width  int
	height int
}

var _ widget.Widget = (*Picker)(nil)

// New creates a picker with the given title
func New(title string) *Picker {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "type to filter"
	ti.CharLimit = 64

	return &Picker{
		title:  title,
		events: widget.NewDispatcher(),
		filter: ti,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: NewStyles(),
	}
}

// Initialize applies opts. It can only be called once.
func (p *Picker) Initialize(opts widget.Options) error {
	if p.destroyed {
		return widget.ErrDestroyed
	}
	if p.initialized {
		return ErrAlreadyInitialized
	}
	p.opts = opts
	p.initialized = true
	p.RefreshDisplay()
	return nil
}

// Multiple reports whether more than one item may be selected
func (p *Picker) Multiple() bool {
	return p.opts.MaxItems != 1
}

func (p *Picker) AddOption(opt widget.Option) {
	if opt.Search == "" {
		opt.Search = opt.Text
	}
	if opt.Sort == "" {
		opt.Sort = opt.Text
	}
	if i := p.optionIndex(opt.Value); i >= 0 {
		p.options[i] = opt
		return
	}
	p.options = append(p.options, opt)
}

// RemoveOption drops the option and, silently, its item
func (p *Picker) RemoveOption(value string) {
	i := p.optionIndex(value)
	if i < 0 {
		return
	}
	p.options = slices.Delete(p.options, i, i+1)
	p.items = slices.DeleteFunc(p.items, func(v string) bool { return v == value })
}

// ClearOptions drops every option that is not currently selected
func (p *Picker) ClearOptions() {
	p.options = slices.DeleteFunc(p.options, func(o widget.Option) bool {
		return !slices.Contains(p.items, o.Value)
	})
}

// RefreshDisplay recomputes the visible options
func (p *Picker) RefreshDisplay() {
	p.visible = visibleOptions(p.options, p.filter.Value(), p.opts.SortField != "")
	if p.cursor >= len(p.visible) {
		p.cursor = len(p.visible) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *Picker) AddItem(value string, silent bool) {
	p.report(p.addItem(value, silent))
}

func (p *Picker) RemoveItem(value string, silent bool) {
	p.report(p.removeItem(value, silent))
}

func (p *Picker) ClearItems(silent bool) {
	p.report(p.clearItems(silent))
}

func (p *Picker) Items() []string {
	return slices.Clone(p.items)
}

func (p *Picker) On(event string, handler widget.Handler) func() {
	return p.events.Subscribe(event, handler)
}

// Destroy drops subscriptions and state. The picker cannot be reused.
func (p *Picker) Destroy() {
	p.destroyed = true
	p.events.Reset()
	p.options = nil
	p.items = nil
	p.visible = nil
	p.cursor = 0
}

// Pick selects value as the user would
func (p *Picker) Pick(value string) error {
	if err := p.usable(); err != nil {
		return err
	}
	return p.addItem(value, false)
}

// Unpick removes value as the user would
func (p *Picker) Unpick(value string) error {
	if err := p.usable(); err != nil {
		return err
	}
	return p.removeItem(value, false)
}

// Toggle picks value, or removes it when it is already selected
func (p *Picker) Toggle(value string) error {
	if slices.Contains(p.items, value) {
		return p.Unpick(value)
	}
	return p.Pick(value)
}

// Clear removes every item as the user would
func (p *Picker) Clear() error {
	if err := p.usable(); err != nil {
		return err
	}
	return p.clearItems(false)
}

// Filtering reports whether the filter input has focus
func (p *Picker) Filtering() bool {
	return p.filter.Focused()
}

// Status returns the last error reported by an event handler
func (p *Picker) Status() string {
	return p.status
}

func (p *Picker) usable() error {
	if p.destroyed {
		return widget.ErrDestroyed
	}
	if !p.initialized {
		return widget.ErrNotInitialized
	}
	return nil
}

func (p *Picker) addItem(value string, silent bool) error {
	if slices.Contains(p.items, value) {
		return nil
	}
	if p.optionIndex(value) < 0 {
		log.Printf("picker: ignoring item %q without an option", value)
		return nil
	}
	switch {
	case p.opts.MaxItems == 1:
		p.items = p.items[:0]
	case p.opts.MaxItems > 1 && len(p.items) >= p.opts.MaxItems:
		return nil
	}
	p.items = append(p.items, value)
	if silent {
		return nil
	}
	return p.fire(p.changeEvent())
}

func (p *Picker) removeItem(value string, silent bool) error {
	i := slices.Index(p.items, value)
	if i < 0 {
		return nil
	}
	p.items = slices.Delete(p.items, i, i+1)
	if silent {
		return nil
	}
	if err := p.fire(widget.Event{Name: widget.EventItemRemoved, Value: value}); err != nil {
		return err
	}
	return p.fire(p.changeEvent())
}

func (p *Picker) clearItems(silent bool) error {
	if len(p.items) == 0 {
		return nil
	}
	removed := p.items
	p.items = nil
	if silent {
		return nil
	}
	for _, v := range removed {
		if err := p.fire(widget.Event{Name: widget.EventItemRemoved, Value: v}); err != nil {
			return err
		}
	}
	return p.fire(p.changeEvent())
}

func (p *Picker) changeEvent() widget.Event {
	if !p.Multiple() {
		e := widget.Event{Name: widget.EventSelectionChanged}
		if len(p.items) > 0 {
			e.Value = p.items[0]
		}
		return e
	}
	return widget.Event{
		Name:     widget.EventSelectionChanged,
		Values:   slices.Clone(p.items),
		Multiple: true,
	}
}

func (p *Picker) fire(e widget.Event) error {
	return p.events.Publish(e)
}

// report records a handler error for the status line
func (p *Picker) report(err error) {
	if err == nil {
		return
	}
	log.Printf("picker: %v", err)
	p.status = err.Error()
}

func (p *Picker) optionIndex(value string) int {
	return slices.IndexFunc(p.options, func(o widget.Option) bool { return o.Value == value })
}

func (p *Picker) option(value string) (widget.Option, bool) {
	if i := p.optionIndex(value); i >= 0 {
		return p.options[i], true
	}
	return widget.Option{}, false
}
