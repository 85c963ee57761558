package speedrun

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"quickcard/internal/quiz"
	"quickcard/internal/ui/theme"
)

func (s *SpeedrunScreen) View(width, height int) string {
	if len(s.pool) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nNo cards found for this deck")
	}

	switch s.stage {
	case stagePre:
		return s.renderPre(width)
	case stageDone:
		return s.renderDone(width)
	}
	return s.renderRun(width)
}

func center(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

func (s *SpeedrunScreen) renderPre(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(width).Foreground(theme.Accent).Bold(true).Render("⚡ SPEEDRUN"))
	b.WriteString("\n\n")
	b.WriteString(center(width).Foreground(theme.Text).Bold(true).Render(s.deck.DeckName))
	b.WriteString("\n")
	b.WriteString(center(width).Foreground(theme.TextDim).Render(
		fmt.Sprintf("%d cards · best %s", len(s.pool), quiz.FormatBest(s.prevBest, s.hasBest))))
	b.WriteString("\n\n")
	b.WriteString(center(width).Foreground(theme.TextDim).Render(
		"One pass, against the clock. A wrong answer locks you out"))
	b.WriteString("\n")
	b.WriteString(center(width).Foreground(theme.TextDim).Render(
		fmt.Sprintf("for %d seconds. Miss more than %d cards and the run fails.",
			quiz.PenaltySeconds, quiz.MissCap)))
	b.WriteString("\n\n")
	b.WriteString(center(width).Foreground(theme.Primary).Bold(true).Render("Press Enter to start"))
	return b.String()
}

func (s *SpeedrunScreen) renderRun(width int) string {
	if s.sess.Mode == quiz.ModeReview {
		return s.renderReview(width)
	}

	var b strings.Builder

	status := fmt.Sprintf("⏱ %s   ✗ %d/%d   %d / %d",
		quiz.FormatTime(s.sess.Elapsed),
		len(s.sess.Missed), quiz.MissCap,
		s.sess.Cursor+1, len(s.sess.Order),
	)
	b.WriteString(center(width).Foreground(theme.Accent).Render(status))
	b.WriteString("\n\n")
	b.WriteString(s.renderCard(width))

	if s.sess.PenaltyCountdown > 0 {
		b.WriteString("\n")
		b.WriteString(center(width).Render(
			s.spin.View() + " " + lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(
				fmt.Sprintf("✗ Wrong, locked for %ds", s.sess.PenaltyCountdown))))
		if cur := s.sess.Current(); cur != nil {
			if expl, ok := cur.Explanations[s.sess.Answer.Selected]; ok && expl != "" {
				b.WriteString("\n")
				b.WriteString(center(width).Foreground(theme.TextDim).Render(expl))
			}
		}
	}
	return b.String()
}

func (s *SpeedrunScreen) renderReview(width int) string {
	var b strings.Builder
	b.WriteString(center(width).Foreground(theme.Secondary).Render(
		fmt.Sprintf("REVIEW · %d / %d", s.sess.Cursor+1, len(s.sess.Order))))
	b.WriteString("\n\n")
	b.WriteString(s.renderCard(width))

	if s.sess.Answer.Answered() {
		b.WriteString("\n")
		if s.sess.Answer.Correct {
			b.WriteString(theme.Correct.Width(width).Align(lipgloss.Center).Render("✓ Correct"))
		} else {
			b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render("✗ Not quite"))
		}
		if cur := s.sess.Current(); cur != nil {
			if expl, ok := cur.Explanations[s.sess.Answer.Selected]; ok && expl != "" {
				b.WriteString("\n")
				b.WriteString(center(width).Foreground(theme.TextDim).Render(expl))
			}
		}
	}
	return b.String()
}

func (s *SpeedrunScreen) renderCard(width int) string {
	cur := s.sess.Current()
	if cur == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(center(width).Foreground(theme.Text).Bold(true).Render(cur.PromptLine))
	b.WriteString("\n\n")
	if cur.Question != "" {
		b.WriteString(center(width).Foreground(theme.TextDim).Render(cur.Question))
		b.WriteString("\n\n")
	}
	b.WriteString(center(width).Render(s.choices.View()))
	return b.String()
}

func (s *SpeedrunScreen) renderDone(width int) string {
	var b strings.Builder
	b.WriteString("\n")

	missed := len(s.sess.MissedIDs())
	final := s.sess.FinalTime()

	if s.sess.Failed {
		b.WriteString(center(width).Foreground(theme.Error).Bold(true).Render("✗ RUN FAILED"))
		b.WriteString("\n\n")
		b.WriteString(center(width).Foreground(theme.TextDim).Render(
			fmt.Sprintf("More than %d cards missed. No time recorded.", quiz.MissCap)))
	} else {
		b.WriteString(center(width).Foreground(theme.Success).Bold(true).Render("🏁 RUN COMPLETE"))
		b.WriteString("\n\n")
		b.WriteString(center(width).Foreground(theme.Text).Bold(true).Render(
			"Time  " + quiz.FormatTime(final)))
		if !s.hasBest || final < s.prevBest {
			b.WriteString("\n")
			b.WriteString(center(width).Foreground(theme.Accent).Bold(true).Render("★ New best!"))
		} else {
			b.WriteString("\n")
			b.WriteString(center(width).Foreground(theme.TextDim).Render(
				"Best  " + quiz.FormatBest(s.prevBest, s.hasBest)))
		}
	}

	b.WriteString("\n\n")
	if missed > 0 {
		b.WriteString(center(width).Foreground(theme.TextDim).Render(
			fmt.Sprintf("%d card(s) missed", missed)))
		b.WriteString("\n\n")
		b.WriteString(center(width).Foreground(theme.TextDim).Render(
			"R review misses · P practice misses · Enter run again"))
	} else {
		b.WriteString(center(width).Foreground(theme.TextDim).Render("Flawless — no misses."))
		b.WriteString("\n\n")
		b.WriteString(center(width).Foreground(theme.TextDim).Render("Enter to run again"))
	}

	b.WriteString("\n\n")
	b.WriteString(center(width).Foreground(theme.TextDim).Render("run " + shortRunID(s.sess.RunID)))
	return b.String()
}

// shortRunID truncates a run id to its first uuid group for display.
func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
