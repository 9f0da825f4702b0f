package picker

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"selectsync/internal/widget"
)

// Init returns an initial command
func (p *Picker) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.help.Width = msg.Width

	case tea.KeyMsg:
		if p.filter.Focused() {
			return p, p.updateFilter(msg)
		}
		p.handleKey(msg)
	}
	return p, nil
}

func (p *Picker) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Cancel):
		p.filter.Blur()
		p.filter.SetValue("")
		p.RefreshDisplay()
		return nil
	case msg.Type == tea.KeyEnter:
		p.filter.Blur()
		return nil
	case msg.Type == tea.KeyUp:
		p.moveCursor(-1)
		return nil
	case msg.Type == tea.KeyDown:
		p.moveCursor(1)
		return nil
	}

	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	p.RefreshDisplay()
	return cmd
}

func (p *Picker) handleKey(msg tea.KeyMsg) {
	p.status = ""
	switch {
	case key.Matches(msg, p.keys.Up):
		p.moveCursor(-1)
	case key.Matches(msg, p.keys.Down):
		p.moveCursor(1)
	case key.Matches(msg, p.keys.Toggle):
		if opt, ok := p.Current(); ok {
			p.report(p.Toggle(opt.Value))
		}
	case key.Matches(msg, p.keys.RemoveLast):
		if n := len(p.items); n > 0 {
			p.report(p.Unpick(p.items[n-1]))
		}
	case key.Matches(msg, p.keys.ClearAll):
		p.report(p.Clear())
	case key.Matches(msg, p.keys.Filter):
		p.filter.Focus()
	case key.Matches(msg, p.keys.Help):
		p.help.ShowAll = !p.help.ShowAll
	}
}

func (p *Picker) moveCursor(delta int) {
	if len(p.visible) == 0 {
		return
	}
	p.cursor = (p.cursor + delta + len(p.visible)) % len(p.visible)
}

// Current returns the option under the cursor
func (p *Picker) Current() (widget.Option, bool) {
	if p.cursor < 0 || p.cursor >= len(p.visible) {
		return widget.Option{}, false
	}
	return p.visible[p.cursor], true
}

// View renders the picker
func (p *Picker) View() string {
	var b strings.Builder

	b.WriteString(p.styles.Title.Render(p.title))
	b.WriteString("\n")
	b.WriteString(p.renderChips())
	b.WriteString("\n")

	if p.filter.Focused() || p.filter.Value() != "" {
		b.WriteString(p.styles.Filter.Render(p.filter.View()))
		b.WriteString("\n")
	}

	if len(p.visible) == 0 {
		b.WriteString(p.styles.Dim.Render("  no matching options"))
		b.WriteString("\n")
	}
	for i, opt := range p.visible {
		b.WriteString(p.renderOption(i, opt.Value, opt.Text))
		b.WriteString("\n")
	}

	if p.status != "" {
		b.WriteString(p.styles.StatusError.Render(p.status))
		b.WriteString("\n")
	}
	b.WriteString(p.styles.Help.Render(p.help.View(p.keys)))
	return b.String()
}

func (p *Picker) renderChips() string {
	if len(p.items) == 0 {
		return p.styles.Dim.Render("nothing selected")
	}
	removable := p.opts.HasPlugin(widget.PluginRemoveButton)
	chips := make([]string, 0, len(p.items))
	for _, v := range p.items {
		text := v
		if opt, ok := p.option(v); ok {
			text = opt.Text
		}
		if removable {
			text += " " + p.styles.ChipRemove.Render("×")
		}
		chips = append(chips, p.styles.Chip.Render(text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (p *Picker) renderOption(i int, value, text string) string {
	cursor := "  "
	if i == p.cursor {
		cursor = p.styles.Cursor.Render("> ")
	}
	mark := "[ ]"
	line := text
	if slices.Contains(p.items, value) {
		mark = "[x]"
		line = p.styles.Selected.Render(text)
	}
	return fmt.Sprintf("%s%s %s", cursor, mark, line)
}
