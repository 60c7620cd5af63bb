// Package tui is the interactive session shell: a menu of actions over one
// extracted resume, a spinner while the model works and a scrollable result view.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/resumelens/internal/ai"
	"github.com/amishk599/resumelens/internal/model"
	"github.com/amishk599/resumelens/internal/report"
	"github.com/amishk599/resumelens/internal/session"
)

// Analyzer is the part of the executor the session shell drives.
type Analyzer interface {
	AnalyzeResume(ctx context.Context, resumeText string) (string, error)
	ExtractResumeSkillsResult(ctx context.Context, resumeText string) model.Result[model.SkillProfile]
	SuggestMissingSkillsResult(ctx context.Context, current model.SkillProfile, targetRole string) model.Result[[]model.SkillSuggestion]
	MatchToJobDescriptionResult(ctx context.Context, resumeSkills model.SkillProfile, jobDescription string) model.Result[model.JobMatchResult]
}

// Options configures a session shell.
type Options struct {
	ReportPath string
	Timeout    time.Duration // per model call
}

type viewState int

const (
	stateMenu viewState = iota
	stateInput
	stateLoading
	stateResult
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39"))

	resultTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))
)

// Model is the bubbletea model for one session.
type Model struct {
	sess       *session.Session
	analyzer   Analyzer
	reportPath string
	timeout    time.Duration

	state   viewState
	cursor  int
	pending action
	status  string
	isErr   bool

	role textinput.Model
	jd   textarea.Model

	frame   int
	running string

	result      viewport.Model
	resultTitle string

	width  int
	height int
}

// New builds the session shell model.
func New(sess *session.Session, analyzer Analyzer, opts Options) Model {
	role := textinput.New()
	role.Placeholder = ai.DefaultTargetRole
	role.CharLimit = 120
	role.Width = 50

	jd := textarea.New()
	jd.Placeholder = "Paste the job description here"
	jd.CharLimit = 0
	jd.SetWidth(74)
	jd.SetHeight(12)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return Model{
		sess:       sess,
		analyzer:   analyzer,
		reportPath: opts.ReportPath,
		timeout:    timeout,
		role:       role,
		jd:         jd,
		width:      80,
		height:     24,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.result.Width = max(m.width-4, 20)
		m.result.Height = max(m.height-5, 5)
		m.jd.SetWidth(max(m.width-6, 20))
		return m, nil

	case spinnerTickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, tick()

	case taskDoneMsg:
		return m.finish(msg), nil

	case tea.KeyMsg:
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case stateInput:
			return m.updateInput(msg)
		case stateResult:
			return m.updateResult(msg)
		case stateLoading:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	if m.state == stateInput {
		return m.forwardInput(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "enter":
		return m.choose(menuItems[m.cursor].action)
	}
	return m, nil
}

func (m Model) choose(a action) (tea.Model, tea.Cmd) {
	m.setInfo("")
	switch a {
	case actionView:
		m.showResult("Extracted Text", m.sess.Preview(session.DefaultPreviewChars))
		return m, nil

	case actionAnalyze:
		return m.start("Analyzing resume", m.analyzeTask())

	case actionSkills:
		return m.start("Extracting skills", m.skillsTask())

	case actionSuggest, actionMatch:
		if _, err := m.sess.RequireSkills(); err != nil {
			m.setInfo("Extract skills first: suggestions and job matching work from the extracted skills.")
			return m, nil
		}
		m.pending = a
		m.state = stateInput
		if a == actionSuggest {
			m.role.SetValue(m.sess.TargetRole)
			return m, m.role.Focus()
		}
		m.jd.SetValue(m.sess.JobDescription)
		return m, m.jd.Focus()

	case actionSave:
		if m.sess.Report == "" {
			m.setInfo("Nothing to save yet: run Analyze resume first.")
			return m, nil
		}
		if err := report.WriteReport(m.reportPath, m.sess.Report); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.setInfo("Report saved to " + m.reportPath)
		return m, nil

	case actionQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.role.Blur()
		m.jd.Blur()
		m.state = stateMenu
		return m, nil
	case "enter":
		if m.pending == actionSuggest {
			role := strings.TrimSpace(m.role.Value())
			if role == "" {
				role = ai.DefaultTargetRole
			}
			m.role.Blur()
			return m.start("Suggesting skills for "+role, m.suggestTask(role))
		}
	case "ctrl+s":
		if m.pending == actionMatch {
			jd := m.jd.Value()
			if strings.TrimSpace(jd) == "" {
				m.setInfo("Paste a job description before matching.")
				return m, nil
			}
			m.jd.Blur()
			return m.start("Matching against the job description", m.matchTask(jd))
		}
	}
	return m.forwardInput(msg)
}

func (m Model) forwardInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.pending == actionSuggest {
		m.role, cmd = m.role.Update(msg)
	} else {
		m.jd, cmd = m.jd.Update(msg)
	}
	return m, cmd
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace", "b":
		m.state = stateMenu
		return m, nil
	}
	var cmd tea.Cmd
	m.result, cmd = m.result.Update(msg)
	return m, cmd
}

func (m Model) start(label string, t task) (tea.Model, tea.Cmd) {
	m.state = stateLoading
	m.running = label
	m.frame = 0
	return m, tea.Batch(runTask(m.timeout, t), tick())
}

func (m Model) finish(msg taskDoneMsg) Model {
	if msg.err != nil {
		m.state = stateMenu
		m.setError(msg.err.Error())
		return m
	}
	if msg.apply != nil {
		msg.apply(m.sess)
	}
	m.showResult(msg.title, msg.body)
	m.setInfo(msg.note)
	return m
}

func (m Model) analyzeTask() task {
	a, text := m.analyzer, m.sess.ResumeText
	return func(ctx context.Context) taskDoneMsg {
		out, err := a.AnalyzeResume(ctx, text)
		if err != nil {
			return taskDoneMsg{err: fmt.Errorf("analysis failed (%s): %w", ai.Categorize(err), err)}
		}
		return taskDoneMsg{
			title: "Resume Analysis",
			body:  out,
			apply: func(s *session.Session) { s.SetReport(out) },
		}
	}
}

func (m Model) skillsTask() task {
	a, text := m.analyzer, m.sess.ResumeText
	return func(ctx context.Context) taskDoneMsg {
		r := a.ExtractResumeSkillsResult(ctx, text)
		return taskDoneMsg{
			title: "Extracted Skills",
			body:  report.RenderSkills(r.Value),
			note:  report.Outcome(r.Status, r.Reason),
			apply: func(s *session.Session) { s.SetSkills(r.Value) },
		}
	}
}

func (m Model) suggestTask(role string) task {
	a := m.analyzer
	skills, _ := m.sess.RequireSkills()
	return func(ctx context.Context) taskDoneMsg {
		r := a.SuggestMissingSkillsResult(ctx, skills, role)
		return taskDoneMsg{
			title: "Skill Suggestions",
			body:  report.RenderSuggestions(role, r.Value),
			note:  report.Outcome(r.Status, r.Reason),
			apply: func(s *session.Session) { s.SetSuggestions(role, r.Value) },
		}
	}
}

func (m Model) matchTask(jd string) task {
	a := m.analyzer
	skills, _ := m.sess.RequireSkills()
	return func(ctx context.Context) taskDoneMsg {
		r := a.MatchToJobDescriptionResult(ctx, skills, jd)
		return taskDoneMsg{
			title: "Job Match",
			body:  report.RenderMatch(r.Value),
			note:  report.Outcome(r.Status, r.Reason),
			apply: func(s *session.Session) { s.SetMatch(jd, r.Value) },
		}
	}
}

func (m *Model) showResult(title, body string) {
	width := max(m.width-4, 20)
	m.result = viewport.New(width, max(m.height-5, 5))
	m.result.SetContent(lipgloss.NewStyle().Width(width).Render(body))
	m.resultTitle = title
	m.state = stateResult
}

func (m *Model) setInfo(s string) {
	m.status = s
	m.isErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.isErr = true
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.isErr {
		return errorStyle.Render("⚠ "+m.status) + "\n"
	}
	return infoStyle.Render(m.status) + "\n"
}

func (m Model) View() string {
	switch m.state {
	case stateLoading:
		return renderLoading(m.frame, m.running)
	case stateInput:
		return m.viewInput()
	case stateResult:
		return m.viewResult()
	default:
		return m.viewMenu()
	}
}

func (m Model) viewMenu() string {
	title := fmt.Sprintf("%s · %d characters extracted", m.sess.Document, m.sess.CharCount())
	s := titleStyle.Render(title) + "\n"
	s += renderMenu(m.cursor)
	s += m.renderStatus()
	s += hintStyle.Render("↑/↓/j/k navigate  enter select  q quit")
	return s
}

func (m Model) viewInput() string {
	var s string
	if m.pending == actionSuggest {
		s = titleStyle.Render("Target role") + "\n"
		s += "  " + m.role.View() + "\n"
		s += m.renderStatus()
		s += hintStyle.Render("enter submit  esc back")
		return s
	}
	s = titleStyle.Render("Job description") + "\n"
	s += m.jd.View() + "\n"
	s += m.renderStatus()
	s += hintStyle.Render("ctrl+s submit  esc back")
	return s
}

func (m Model) viewResult() string {
	title := resultTitleStyle.Render(m.resultTitle)
	content := borderStyle.Width(m.width - 2).Render(m.result.View())

	hint := " ↑/↓ scroll  esc/b back  q quit"
	if m.status != "" {
		hint = " " + m.status + "   " + hint
	}
	return title + "\n" + content + "\n" + statusBarStyle.Width(m.width).Render(hint)
}

// Run launches the interactive session for sess.
func Run(sess *session.Session, analyzer Analyzer, opts Options) error {
	p := tea.NewProgram(New(sess, analyzer, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
