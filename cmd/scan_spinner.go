package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/udns-tools/udnscan/internal/application"
)

type scanProgressMsg struct {
	progress application.Progress
}

type scanDoneMsg struct {
	err error
}

type scanSpinnerModel struct {
	spinner  spinner.Model
	label    string
	progress application.Progress
	err      error
	done     bool
}

func newScanSpinnerModel(label string) scanSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return scanSpinnerModel{
		spinner: s,
		label:   label,
	}
}

func (m scanSpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m scanSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case scanProgressMsg:
		m.progress = msg.progress
		return m, nil
	case scanDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m scanSpinnerModel) View() string {
	if m.done {
		return ""
	}
	if m.progress.Total == 0 {
		return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
	}

	return fmt.Sprintf("%s %s (%d/%d)", m.spinner.View(), m.label, m.progress.Index, m.progress.Total)
}

// runScanSpinner shows a spinner that tracks the outer sub-account loop
// while scan runs. The spinner writes to output only; it never influences
// the scan itself.
func runScanSpinner(ctx context.Context, output io.Writer, scan func(context.Context, func(application.Progress)) error) error {
	p := tea.NewProgram(
		newScanSpinnerModel("Scanning sub-accounts..."),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	go func() {
		err := scan(ctx, func(progress application.Progress) {
			p.Send(scanProgressMsg{progress: progress})
		})
		p.Send(scanDoneMsg{err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(scanSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
