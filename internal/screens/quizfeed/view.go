package quizfeed

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"quickcard/internal/ui/components"
	"quickcard/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if len(s.pool) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nNo cards found for this deck")
	}

	if s.sess.MasteryComplete {
		return s.renderMastery(width)
	}

	var b strings.Builder
	b.WriteString(s.renderStatsBar(width))
	b.WriteString("\n")
	b.WriteString(s.renderLoopBar(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderCard(width))
	return b.String()
}

// renderLoopBar shows how close the current loop is to a perfect pass.
func (s *QuizScreen) renderLoopBar(width int) string {
	total := len(s.sess.Order)
	if total == 0 {
		return ""
	}
	barWidth := width / 2
	if barWidth > 40 {
		barWidth = 40
	}
	bar := components.NewProgressBar("", s.sess.LoopProgress, total, barWidth)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(bar.View())
}

func (s *QuizScreen) renderStatsBar(width int) string {
	stats := fmt.Sprintf("Streak %d   Best %d   Total ✓ %d   %d / %d",
		s.sess.Streak,
		s.tracker.BestStreak(),
		s.tracker.TotalCorrect(),
		s.sess.Cursor+1,
		len(s.sess.Order),
	)
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(stats)
}

func (s *QuizScreen) renderCard(width int) string {
	cur := s.sess.Current()
	if cur == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(string(cur.Kind)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(cur.PromptLine))
	b.WriteString("\n\n")

	if cur.Question != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(cur.Question))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(s.choices.View()))

	if s.sess.Answer.Answered() {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
	}

	return b.String()
}

func (s *QuizScreen) renderFeedback(width int) string {
	cur := s.sess.Current()
	var b strings.Builder

	if s.sess.Answer.Correct {
		b.WriteString(theme.Correct.Width(width).Align(lipgloss.Center).Render("✓ Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render("✗ Incorrect"))
	}
	b.WriteString("\n")

	if cur != nil {
		if expl, ok := cur.Explanations[s.sess.Answer.Selected]; ok && expl != "" {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(expl))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *QuizScreen) renderMastery(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Bold(true).
		Render("🏆 Perfect loop — deck mastered!"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("All %d cards answered correctly in one pass.", len(s.sess.Order))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Enter to keep looping · Esc to exit"))
	return b.String()
}
