// Package tui is a terminal front end for quiz sessions.
package tui

import (
	"context"
	"errors"

	"vocabquiz/internal/quiz"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseResult
)

type quizService interface {
	Start(ctx context.Context, count quiz.Count) (*quiz.View, error)
	Grade(ctx context.Context, in quiz.GradeInput) (*quiz.Result, error)
	RetryWrong(ctx context.Context, id string) (*quiz.View, error)
	Regenerate(ctx context.Context, id string, count quiz.Count) (*quiz.View, error)
}

// Options configures the terminal quiz.
type Options struct {
	Count   quiz.Count
	NoColor bool
}

// Model drives one quiz session from the keyboard.
type Model struct {
	svc      quizService
	opts     Options
	phase    phase
	view     *quiz.View
	inputs   []textinput.Model
	focus    int
	result   *quiz.Result
	notice   string
	err      error
	width    int
	quitting bool
}

type sessionMsg struct{ view *quiz.View }

type gradedMsg struct{ result *quiz.Result }

type errMsg struct{ err error }

func NewModel(svc quizService, opts Options) Model {
	return Model{svc: svc, opts: opts, phase: phaseLoading}
}

// Init starts the first session.
func (m Model) Init() tea.Cmd {
	return m.start()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil
	case sessionMsg:
		return m.loadSession(typed.view)
	case gradedMsg:
		m.phase = phaseResult
		m.result = typed.result
		m.blurAll()
		return m, nil
	case errMsg:
		if errors.Is(typed.err, quiz.ErrNothingToRetry) {
			m.notice = "all answers were correct"
			return m, nil
		}
		m.err = typed.err
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m.updateFocused(msg)
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.phase {
	case phaseAnswering:
		switch key.Type {
		case tea.KeyEnter:
			if m.focus < len(m.inputs)-1 {
				cmd := m.setFocus(m.focus + 1)
				return m, cmd
			}
			return m, m.grade()
		case tea.KeyTab, tea.KeyDown:
			cmd := m.setFocus(min(m.focus+1, len(m.inputs)-1))
			return m, cmd
		case tea.KeyShiftTab, tea.KeyUp:
			cmd := m.setFocus(max(m.focus-1, 0))
			return m, cmd
		}
		return m.updateFocused(key)
	case phaseResult, phaseLoading:
		switch key.String() {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			if m.phase == phaseResult {
				m.notice = ""
				return m, m.retry()
			}
		case "n":
			if m.view != nil {
				m.notice = ""
				return m, m.regenerate()
			}
		}
	}
	return m, nil
}

func (m Model) loadSession(v *quiz.View) (tea.Model, tea.Cmd) {
	m.view = v
	m.result = nil
	m.err = nil
	m.focus = 0
	m.inputs = make([]textinput.Model, len(v.Questions))
	for i := range v.Questions {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 200
		m.inputs[i] = ti
	}
	if len(m.inputs) == 0 {
		m.phase = phaseResult
		m.notice = "no questions available"
		return m, nil
	}
	m.phase = phaseAnswering
	cmd := m.setFocus(0)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.blurAll()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.phase != phaseAnswering || len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) answers() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = in.Value()
	}
	return out
}

func (m Model) start() tea.Cmd {
	svc, count := m.svc, m.opts.Count
	return func() tea.Msg {
		v, err := svc.Start(context.Background(), count)
		if err != nil {
			return errMsg{err}
		}
		return sessionMsg{v}
	}
}

func (m Model) grade() tea.Cmd {
	svc := m.svc
	in := quiz.GradeInput{SessionID: m.view.ID, Round: m.view.Round, Answers: m.answers()}
	return func() tea.Msg {
		res, err := svc.Grade(context.Background(), in)
		if err != nil {
			return errMsg{err}
		}
		return gradedMsg{res}
	}
}

func (m Model) retry() tea.Cmd {
	svc, id := m.svc, m.view.ID
	return func() tea.Msg {
		v, err := svc.RetryWrong(context.Background(), id)
		if err != nil {
			return errMsg{err}
		}
		return sessionMsg{v}
	}
}

func (m Model) regenerate() tea.Cmd {
	svc, id, count := m.svc, m.view.ID, m.opts.Count
	return func() tea.Msg {
		v, err := svc.Regenerate(context.Background(), id, count)
		if err != nil {
			return errMsg{err}
		}
		return sessionMsg{v}
	}
}
