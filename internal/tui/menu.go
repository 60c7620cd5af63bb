package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(1, 0, 1, 2)

	itemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 0, 0, 2)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true).
			Padding(1, 0, 0, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(1, 0, 0, 2)
)

type action int

const (
	actionView action = iota
	actionAnalyze
	actionSkills
	actionSuggest
	actionMatch
	actionSave
	actionQuit
)

var menuItems = []struct {
	action action
	label  string
}{
	{actionView, "View extracted text"},
	{actionAnalyze, "Analyze resume"},
	{actionSkills, "Extract skills"},
	{actionSuggest, "Suggest skills for a role"},
	{actionMatch, "Match a job description"},
	{actionSave, "Save analysis report"},
	{actionQuit, "Quit"},
}

func renderMenu(cursor int) string {
	var b strings.Builder
	for i, item := range menuItems {
		if i == cursor {
			b.WriteString(selectedStyle.Render("> "+item.label) + "\n")
		} else {
			b.WriteString(itemStyle.Render(item.label) + "\n")
		}
	}
	return b.String()
}
