// Package progress shows a spinner on the terminal while gittem waits on
// the network.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-isatty"
)

// Spinner draws an animated message until stopped.
type Spinner struct {
	out       io.Writer
	message   string
	program   *tea.Program
	done      chan struct{}
	mu        sync.Mutex
	isRunning bool
}

type spinnerModel struct {
	spinner spinner.Model
	message string
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() tea.View {
	return tea.NewView(fmt.Sprintf("%s %s", m.spinner.View(), m.message))
}

// NewSpinner creates a spinner drawing message to out.
func NewSpinner(out io.Writer, message string) *Spinner {
	return &Spinner{
		out:     out,
		message: message,
		done:    make(chan struct{}),
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	s.program = tea.NewProgram(spinnerModel{spinner: sp, message: s.message},
		tea.WithoutSignalHandler(), tea.WithOutput(s.out))
	s.isRunning = true

	go func() {
		_, _ = s.program.Run()
		close(s.done)
	}()
}

// Stop stops the spinner and clears its line. Stopping a spinner that
// was never started does nothing.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	s.program.Quit()

	select {
	case <-s.done:
	case <-time.After(500 * time.Millisecond):
	}

	fmt.Fprint(s.out, "\r\033[K")
}

// IsTerminal reports whether w is a terminal the spinner can draw on.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Busy returns a callback that runs a spinner on out for the duration of
// one wait. It returns nil when out is not a terminal, so callers that
// accept an optional busy hook print nothing.
func Busy(out io.Writer) func(msg string) func() {
	if !IsTerminal(out) {
		return nil
	}
	return func(msg string) func() {
		s := NewSpinner(out, msg)
		s.Start()
		return s.Stop
	}
}
