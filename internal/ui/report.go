package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"selectsync/internal/config"
	"selectsync/internal/selection"
)

// renderReport lists the candidates and the bound selection properties
func (m *Model) renderReport() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var b strings.Builder
	settings := m.sync.Settings()

	b.WriteString(titleStyle.Render(m.title() + " report"))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Settings"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render("multiselect  "), descStyle.Render(fmt.Sprint(settings.Multiselect)))
	fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render("value field  "), descStyle.Render(settings.ValueField))
	fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render("display field"), descStyle.Render(settings.DisplayField))
	fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render("search field "), descStyle.Render(settings.SearchField))
	fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render("sort field   "), descStyle.Render(settings.SortField))

	b.WriteString(sectionStyle.Render("Selection"))
	b.WriteString("\n")
	switch sel := m.sync.Selection().(type) {
	case selection.Single[config.Record]:
		fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render("selectedValue  "), descStyle.Render(sel.Value.GoString()))
		obj := "none"
		if sel.HasObject {
			obj = formatRecord(sel.Object)
		}
		fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render("selectedObject "), descStyle.Render(obj))
	case selection.Multiple[config.Record]:
		values := make([]string, 0, len(sel.Values))
		for _, v := range sel.Values {
			values = append(values, v.GoString())
		}
		fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render("selectedValues "), descStyle.Render("["+strings.Join(values, ", ")+"]"))
		fmt.Fprintf(&b, "  %s\n", keyStyle.Render("selectedObjects"))
		for _, o := range sel.Objects {
			fmt.Fprintf(&b, "    %s\n", descStyle.Render(formatRecord(o)))
		}
	}

	b.WriteString(sectionStyle.Render("Candidates"))
	b.WriteString("\n")
	for _, c := range m.sync.Candidates().All() {
		fmt.Fprintf(&b, "  %s\n", descStyle.Render(formatRecord(c)))
	}

	return b.String()
}

// formatRecord renders a record with sorted keys
func formatRecord(r config.Record) string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, r[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
