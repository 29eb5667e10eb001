// Package wizard runs the survey in the terminal.
//
// Flow owns the session state and the transitions between questions. Render
// turns that state into a View, and Model is the bubbletea program that draws
// the View and turns key presses into Flow transitions.
package wizard

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/workwithprnv-stack/survey/internal/models"
	"github.com/workwithprnv-stack/survey/internal/responses"
	"github.com/workwithprnv-stack/survey/internal/submit"
)

// Submitter sends a finished response set. *submit.Client satisfies it.
type Submitter interface {
	Submit(ctx context.Context, set models.ResponseSet) submit.Outcome
}

type submittedMsg struct {
	outcome submit.Outcome
}

type exportedMsg struct {
	path string
	err  error
}

type Model struct {
	flow      *Flow
	submitter Submitter
	exportDir string

	highlight int
	status    string
	quitting  bool

	keys     keyMap
	help     help.Model
	progress progress.Model
	theme    Theme
}

// New builds the wizard. Exports are written to exportDir.
func New(flow *Flow, submitter Submitter, exportDir string) Model {
	return Model{
		flow:      flow,
		submitter: submitter,
		exportDir: exportDir,
		keys:      defaultKeyMap(),
		help:      help.New(),
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40)),
		theme:     DefaultTheme(),
	}
}

// Init submits straight away when a resumed session is already complete.
func (m Model) Init() tea.Cmd {
	return m.submitIfFinished()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = clamp(msg.Width-8, 10, 60)
		m.help.Width = msg.Width
		return m, nil

	case submittedMsg:
		if msg.outcome.Accepted {
			m.status = "Your responses were sent."
		} else {
			m.status = "Your responses are saved on this device."
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.status = "Saved " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	question, ok := m.flow.Current()
	if !ok {
		if key.Matches(msg, m.keys.Export) {
			return m, m.exportCmd()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Previous):
		m.highlight = clamp(m.highlight-1, 0, len(question.Options)-1)
	case key.Matches(msg, m.keys.Next):
		m.highlight = clamp(m.highlight+1, 0, len(question.Options)-1)
	case key.Matches(msg, m.keys.Select):
		return m.choose(question.Options[clamp(m.highlight, 0, len(question.Options)-1)])
	default:
		if value, ok := optionForKey(question, msg.String()); ok {
			return m.choose(value)
		}
	}
	return m, nil
}

// optionForKey maps a typed digit to an option: the option with that value
// on a scale, the nth option otherwise.
func optionForKey(question models.Question, pressed string) (string, bool) {
	n, err := strconv.Atoi(pressed)
	if err != nil {
		return "", false
	}
	if question.Kind == models.KindScale {
		return pressed, question.HasOption(pressed)
	}
	if n < 1 || n > len(question.Options) {
		return "", false
	}
	return question.Options[n-1], true
}

func (m Model) choose(value string) (tea.Model, tea.Cmd) {
	if _, err := m.flow.Choose(value); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.highlight = 0
	m.status = ""
	return m, m.submitIfFinished()
}

func (m Model) submitIfFinished() tea.Cmd {
	set, ok := m.flow.TakeSubmission()
	if !ok || m.submitter == nil {
		return nil
	}
	submitter := m.submitter
	return func() tea.Msg {
		return submittedMsg{outcome: submitter.Submit(context.Background(), set)}
	}
}

func (m Model) exportCmd() tea.Cmd {
	set := m.flow.Store().Stamped()
	path := filepath.Join(m.exportDir, responses.ExportFileName(set.SessionID))
	return func() tea.Msg {
		if err := responses.WriteFile(path, set); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path}
	}
}

func (m Model) state() State {
	s := m.flow.State()
	s.Highlight = m.highlight
	s.Status = m.status
	return s
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	v := Render(m.state())

	var b strings.Builder
	if v.Finished {
		b.WriteString(m.theme.Done.Render("✅ " + v.Prompt))
		b.WriteString("\n")
		b.WriteString(m.progress.ViewAs(v.Percent))
		b.WriteString("\n\n")
		b.WriteString(m.theme.Faint.Render("Session ID: " + v.SessionTag))
		b.WriteString("\n")
		if v.Status != "" {
			b.WriteString(v.Status + "\n")
		}
		b.WriteString("\n" + m.help.ShortHelpView(m.keys.finishedHelp()))
		return m.theme.Frame.Render(b.String())
	}

	b.WriteString(m.theme.Step.Render(fmt.Sprintf("Step %d / %d", v.Step, v.Total)))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(v.Percent))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Prompt.Render(v.Prompt))
	b.WriteString("\n")
	b.WriteString(m.renderOptions(v))
	b.WriteString("\n")
	if v.Status != "" {
		b.WriteString("\n" + v.Status + "\n")
	}
	b.WriteString("\n" + m.help.ShortHelpView(m.keys.ShortHelp()))
	return m.theme.Frame.Render(b.String())
}

func (m Model) renderOptions(v View) string {
	if v.Kind == models.KindScale {
		cells := make([]string, len(v.Options))
		for i, option := range v.Options {
			style := m.theme.ScaleCell
			if i == v.Highlight {
				style = m.theme.ScaleSel
			}
			cells[i] = style.Render(option)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}

	lines := make([]string, len(v.Options))
	for i, option := range v.Options {
		label := fmt.Sprintf("%d. %s", i+1, option)
		if i == v.Highlight {
			lines[i] = m.theme.Selected.Render("› " + label)
		} else {
			lines[i] = m.theme.Option.Render(label)
		}
	}
	return strings.Join(lines, "\n")
}
