package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// Pager shows text full screen until the user leaves it
type Pager interface {
	Page(content string) error
}

// OvPager pages content with ov, releasing the terminal held by program
type OvPager struct {
	program *tea.Program
}

// NewOvPager creates a pager bound to program
func NewOvPager(program *tea.Program) *OvPager {
	return &OvPager{program: program}
}

// Page shows content using the ov pager
func (p *OvPager) Page(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Do not write on exit, it would mess with our screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// showReport returns a command that pages the selection report
func (m *Model) showReport() tea.Cmd {
	content := m.renderReport()
	return func() tea.Msg {
		if m.program != nil {
			m.program.Send(pauseRenderingMsg{})
		}

		err := m.pager.Page(content)

		if m.program != nil {
			m.program.Send(resumeRenderingMsg{})
		}
		return reportPagerMsg{err: err}
	}
}
