package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"quickcard/internal/catalog"
	"quickcard/internal/ui/theme"
)

// ChoiceList renders a card's four A–D options and tracks cursor selection.
// Scoring stays in the session engine; the list only reflects the answer
// state it is given.
type ChoiceList struct {
	Card     catalog.Card
	Cursor   int
	Selected catalog.OptionKey // "" until answered
	Disabled bool              // penalty window: input locked
}

// NewChoiceList builds a list for a freshly presented card.
func NewChoiceList(card catalog.Card) ChoiceList {
	return ChoiceList{Card: card}
}

// Update handles navigation and returns the chosen option key, if any.
// Letter keys answer directly, like the web app's tappable choices.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, catalog.OptionKey) {
	if c.Selected != "" || c.Disabled {
		return c, ""
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, ""
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(catalog.OptionKeys)-1 {
			c.Cursor++
		}
	case "enter":
		return c, catalog.OptionKeys[c.Cursor]
	case "a", "1":
		return c, catalog.OptionA
	case "b", "2":
		return c, catalog.OptionB
	case "c", "3":
		return c, catalog.OptionC
	case "d", "4":
		return c, catalog.OptionD
	}
	return c, ""
}

// View renders the options. After answering, the correct choice shows green,
// a wrong selection shows red, and the rest dim out.
func (c ChoiceList) View() string {
	var s string
	answered := c.Selected != ""

	for i, key := range catalog.OptionKeys {
		prefix := "  "
		if !answered && i == c.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, key, c.Card.Choices[key])

		switch {
		case answered && key == c.Card.Correct:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case answered && key == c.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
		case answered:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == c.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}
