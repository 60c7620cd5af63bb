package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/resumelens/internal/session"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))

type spinnerTickMsg struct{}

// taskDoneMsg carries a finished model call back to the update loop. apply
// stores the result in the session; it runs on the update goroutine.
type taskDoneMsg struct {
	title string
	body  string
	note  string
	err   error
	apply func(*session.Session)
}

// task is one model call run off the update loop.
type task func(ctx context.Context) taskDoneMsg

func runTask(timeout time.Duration, t task) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return t(ctx)
	}
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func renderLoading(frame int, label string) string {
	return fmt.Sprintf("\n  %s %s...\n", spinnerStyle.Render(spinnerFrames[frame]), label)
}
