package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current phase.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	parts := []string{renderHeader(m)}
	switch {
	case m.err != nil:
		parts = append(parts, stylize("Error: "+m.err.Error(), m.opts.NoColor, lipgloss.Color("160")))
	case m.phase == phaseLoading:
		parts = append(parts, stylize("Loading questions...", m.opts.NoColor, lipgloss.Color("242")))
	case m.phase == phaseAnswering:
		parts = append(parts, renderQuestions(m))
	case m.phase == phaseResult:
		parts = append(parts, renderResult(m))
	}
	if m.notice != "" {
		parts = append(parts, stylize(m.notice, m.opts.NoColor, lipgloss.Color("33")))
	}
	parts = append(parts, renderFooter(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderHeader(m Model) string {
	line := "Vocabulary Quiz"
	if m.view != nil {
		line = fmt.Sprintf("Vocabulary Quiz  %s  %s", m.view.MetaText, scoreText(m))
	}
	if m.opts.NoColor {
		return line
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Render(line)
}

func scoreText(m Model) string {
	if m.result != nil {
		return fmt.Sprintf("Correct: %d / %d", m.result.Score, m.result.Total)
	}
	return "ungraded"
}

func renderQuestions(m Model) string {
	var sb strings.Builder
	for i, q := range m.view.Questions {
		label := fmt.Sprintf("Q%d. %s", i+1, q.Prompt)
		if q.Unit != "" {
			label += stylize("  ("+q.Unit+")", m.opts.NoColor, lipgloss.Color("242"))
		}
		sb.WriteString(label)
		sb.WriteString("\n")
		sb.WriteString(m.inputs[i].View())
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderResult(m Model) string {
	if m.result == nil {
		return ""
	}
	var sb strings.Builder
	for _, it := range m.result.Items {
		mark := stylize("o", m.opts.NoColor, lipgloss.Color("34"))
		if !it.Correct {
			mark = stylize("x", m.opts.NoColor, lipgloss.Color("160"))
		}
		fmt.Fprintf(&sb, "%s Q%d. %s  you: %s", mark, it.Index+1, it.Record.Prompt(), blankIfEmpty(it.User))
		if !it.Correct {
			fmt.Fprintf(&sb, "  answer: %s", strings.Join(it.Accepted, " / "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderFooter(m Model) string {
	help := "enter: next / grade  tab: move  ctrl+c: quit"
	if m.phase != phaseAnswering {
		help = "r: retry wrong  n: new questions  q: quit"
	}
	return stylize(help, m.opts.NoColor, lipgloss.Color("240"))
}

func blankIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(blank)"
	}
	return s
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
