package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressMsg reports that done of total items have completed.
type ProgressMsg struct {
	Done  int
	Total int
}

type progressStopMsg struct{}

// ProgressModel renders a spinner followed by "label [done/total]".
type ProgressModel struct {
	spinner  spinner.Model
	label    string
	done     int
	total    int
	finished bool
}

// NewProgress creates a progress model
func NewProgress(label string, total int) ProgressModel {
	return ProgressModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(SpinnerStyle)),
		label:   label,
		total:   total,
	}
}

// Init starts the spinner
func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		if msg.Done > m.done {
			m.done = msg.Done
		}
		m.total = msg.Total
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progressStopMsg:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.finished = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the component
func (m ProgressModel) View() string {
	if m.finished {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), m.Line())
}

// Line returns the text next to the spinner.
func (m ProgressModel) Line() string {
	return fmt.Sprintf("%s [%d/%d]", m.label, m.done, m.total)
}

// Done returns the number of completed items
func (m ProgressModel) Done() int {
	return m.done
}

// Progress reports completion counts to the user.
type Progress interface {
	Update(done, total int)
	Stop()
}

// SpinnerProgress runs a ProgressModel in its own bubbletea program.
type SpinnerProgress struct {
	program  *tea.Program
	finished chan struct{}
}

// StartSpinner starts rendering a spinner to out. Call Stop to clear it.
func StartSpinner(out io.Writer, label string, total int) *SpinnerProgress {
	p := &SpinnerProgress{
		program:  tea.NewProgram(NewProgress(label, total), tea.WithOutput(out), tea.WithInput(nil)),
		finished: make(chan struct{}),
	}

	go func() {
		defer close(p.finished)
		_, _ = p.program.Run()
	}()

	return p
}

// Update implements Progress.
func (p *SpinnerProgress) Update(done, total int) {
	p.program.Send(ProgressMsg{Done: done, Total: total})
}

// Stop implements Progress and waits until the spinner is cleared.
func (p *SpinnerProgress) Stop() {
	p.program.Send(progressStopMsg{})
	<-p.finished
}

// NopProgress discards progress updates, for non-interactive output.
type NopProgress struct{}

func (NopProgress) Update(int, int) {}
func (NopProgress) Stop()           {}
