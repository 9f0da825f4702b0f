//go:build e2e && unix

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

var binPath = "selectsync_e2e"

// Keys understood by the picker and the app model
const (
	KeyEnter  = "\r"
	KeyCtrlC  = "\x03"
	KeyDown   = "j"
	KeySpace  = " "
	KeyQuit   = "q"
	KeyReport = "r"
	KeyFilter = "/"
	KeyRemove = "x"
)

// keyGap keeps consecutive writes from being read as one rune burst
const keyGap = 40 * time.Millisecond

const (
	screenSize  = 1 << 20 // bytes of output kept
	waitTimeout = 3 * time.Second
)

// escapes matches terminal control sequences and carriage returns
var escapes = regexp.MustCompile(
	`\x1b\[[0-9;?]*[ -/]*[@-~]` + // CSI
		`|\x1b\][^\x07]*\x07` + // OSC
		`|\x1b[()][A-Za-z]` + // charset
		`|\x1b[=>]` + // keypad
		`|\r`,
)

// screen keeps the most recent output of the app
type screen struct {
	mu   sync.Mutex
	data []byte
}

func (s *screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append(s.data, p...)
	if over := len(s.data) - screenSize; over > 0 {
		s.data = s.data[over:]
	}
	return len(p), nil
}

// Plain returns the output with control sequences removed
func (s *screen) Plain() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return escapes.ReplaceAllString(string(s.data), "")
}

// appSession runs one selectsync process on a pseudo-terminal inside a
// temporary workspace
type appSession struct {
	t         *testing.T
	workspace string
	cmd       *exec.Cmd
	ptmx      *os.File
	out       screen
	done      chan struct{} // closed once the process has been reaped
	waitErr   error
}

// newSession creates a session with a fresh workspace. Cleanup is registered
// on t.
func newSession(t *testing.T) *appSession {
	t.Helper()
	s := &appSession{t: t, workspace: t.TempDir()}
	t.Cleanup(s.close)
	return s
}

// Start launches the app with args in the workspace and waits for its
// first frame
func (s *appSession) Start(args ...string) {
	s.t.Helper()

	s.cmd = exec.Command(binPath, args...)
	s.cmd.Dir = s.workspace
	s.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+s.workspace,
	)

	ptmx, err := pty.StartWithSize(s.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	require.NoError(s.t, err, "failed to start app on a pty")
	s.ptmx = ptmx

	// The copy ends when the app exits and the pty reports EIO
	go func() { _, _ = io.Copy(&s.out, ptmx) }()

	s.done = make(chan struct{})
	go func() {
		s.waitErr = s.cmd.Wait()
		close(s.done)
	}()

	require.True(s.t, s.See("r report"), "app did not draw its first frame\n%s", s.tail())
}

// Press sends each key separately
func (s *appSession) Press(keys ...string) {
	s.t.Helper()
	for _, k := range keys {
		_, err := s.ptmx.Write([]byte(k))
		require.NoError(s.t, err, "failed to send %q", k)
		time.Sleep(keyGap)
	}
}

func (s *appSession) Pick()       { s.Press(KeyEnter) }
func (s *appSession) Toggle()     { s.Press(KeySpace) }
func (s *appSession) Down()       { s.Press(KeyDown) }
func (s *appSession) RemoveLast() { s.Press(KeyRemove) }
func (s *appSession) OpenReport() { s.Press(KeyReport) }

// Filter focuses the filter input and types query
func (s *appSession) Filter(query string) {
	s.Press(KeyFilter, query)
}

// See waits until text shows up in the plain output
func (s *appSession) See(text string) bool {
	s.t.Helper()
	return s.waitFor(func(out string) bool { return strings.Contains(out, text) }, waitTimeout)
}

// SeeAll waits until every part shows up in the plain output
func (s *appSession) SeeAll(parts ...string) bool {
	s.t.Helper()
	return s.waitFor(func(out string) bool {
		for _, p := range parts {
			if !strings.Contains(out, p) {
				return false
			}
		}
		return true
	}, waitTimeout)
}

// Mark forgets the output so far, so later checks only see new frames
func (s *appSession) Mark() {
	s.out.mu.Lock()
	s.out.data = s.out.data[:0]
	s.out.mu.Unlock()
}

func (s *appSession) waitFor(pred func(string) bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if pred(s.out.Plain()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// Quit presses q and waits for the process to end, falling back to ctrl+c
func (s *appSession) Quit() error {
	s.t.Helper()
	s.Press(KeyQuit)
	select {
	case <-s.done:
		return s.waitErr
	case <-time.After(1500 * time.Millisecond):
	}

	s.t.Logf("q did not exit the app, sending ctrl+c")
	s.Press(KeyCtrlC)
	select {
	case <-s.done:
		return fmt.Errorf("app exited only after ctrl+c (%v)", s.waitErr)
	case <-time.After(750 * time.Millisecond):
		s.dumpTail("exit-failure")
		return errors.New("app did not exit")
	}
}

func (s *appSession) tail() string {
	out := s.out.Plain()
	if len(out) > 4096 {
		out = out[len(out)-4096:]
	}
	return out
}

// dumpTail saves the end of the output for debugging a failed test
func (s *appSession) dumpTail(name string) {
	p := filepath.Join(s.t.TempDir(), name+".txt")
	_ = os.WriteFile(p, []byte(s.tail()), 0644)
	s.t.Logf("Saved tail to %s", p)
}

func (s *appSession) close() {
	if s.ptmx != nil {
		// Closing the pty delivers SIGHUP
		_ = s.ptmx.Close()
	}
	if s.done != nil {
		_ = s.cmd.Process.Kill()
		<-s.done
	}
}
