package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"selectsync/internal/config"
	"selectsync/internal/domain"
	"selectsync/internal/eventbus"
	"selectsync/internal/observe"
	"selectsync/internal/picker"
	"selectsync/internal/selection"
)

type keyMap struct {
	Quit   key.Binding
	Report key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Report: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "report"),
		),
	}
}

// Model is the top-level application model. It owns the picker and the
// synchronizer driving it, and publishes selection changes on the bus.
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	sync   *selection.Synchronizer[config.Record]
	picker *picker.Picker
	pager  Pager
	keys   keyMap

	dirty       bool
	seq         uint64
	status      string
	width       int
	height      int
	inPagerMode bool

	statusStyle lipgloss.Style
	dimStyle    lipgloss.Style

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates the application model. The synchronizer must already be
// attached to p.
func NewModel(bus eventbus.EventBus, cfg *config.Config, sync *selection.Synchronizer[config.Record], p *picker.Picker) *Model {
	m := &Model{
		bus:         bus,
		config:      cfg,
		sync:        sync,
		picker:      p,
		keys:        defaultKeyMap(),
		statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		dimStyle:    lipgloss.NewStyle().Faint(true),
	}
	sync.OnChange(func(selection.Property) { m.dirty = true })
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if m.pager == nil {
		m.pager = NewOvPager(p)
	}
}

// SetStatus shows msg on the status line until a later status replaces it
func (m *Model) SetStatus(msg string) {
	m.status = msg
}

// SetPager replaces the report pager
func (m *Model) SetPager(p Pager) {
	m.pager = p
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		_, cmd = m.picker.Update(msg)

	case tea.KeyMsg:
		if !m.picker.Filtering() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keys.Report):
				if m.pager == nil {
					m.status = "no pager available"
					return m, nil
				}
				return m, m.showReport()
			}
		}
		_, cmd = m.picker.Update(msg)

	case reportPagerMsg:
		if msg.err != nil {
			log.Printf("Report pager failed: %v", msg.err)
			m.status = fmt.Sprintf("pager failed: %v", msg.err)
			return m, clearStatusAfter(3 * time.Second)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	m.publishIfChanged()
	return m, cmd
}

// publishIfChanged publishes the settled selection once per update
func (m *Model) publishIfChanged() {
	if !m.dirty {
		return
	}
	m.dirty = false
	ids := m.sync.Selection().IDs()
	log.Printf("ui: selection changed to %v", ids)
	if m.bus != nil {
		m.seq++
		m.bus.Publish(eventbus.ConfigChangedEvent{Seq: m.seq, Selected: ids})
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	b.WriteString(m.statusStyle.Render(m.summary()))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(m.dimStyle.Render("r report • q quit"))
	return b.String()
}

func (m *Model) title() string {
	if m.config != nil && m.config.Title != "" {
		return m.config.Title
	}
	return "selectsync"
}

// summary describes the current selection by display text
func (m *Model) summary() string {
	labels := m.selectedLabels()
	if len(labels) == 0 {
		return "nothing selected"
	}
	return fmt.Sprintf("%d selected: %s", len(labels), strings.Join(labels, ", "))
}

func (m *Model) selectedLabels() []string {
	fields := m.config.Fields()
	switch sel := m.sync.Selection().(type) {
	case selection.Single[config.Record]:
		if sel.HasObject {
			return []string{fields.Display(sel.Object)}
		}
	case selection.Multiple[config.Record]:
		labels := make([]string, 0, len(sel.Objects))
		for _, o := range sel.Objects {
			labels = append(labels, fields.Display(o))
		}
		return labels
	}
	return nil
}

// Restore applies a persisted selection to s. A LookupError leaves the
// selection empty and is returned so the caller can report it.
func Restore[T any](s *selection.Synchronizer[T], ids []domain.ID) error {
	if s.Settings().Multiselect {
		return s.SetSelectedValues(observe.NewList(ids...))
	}
	if len(ids) == 0 {
		return nil
	}
	return s.SetSelectedValue(ids[0])
}
