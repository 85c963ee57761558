package screen

import (
	tea "charm.land/bubbletea/v2"

	"quickcard/internal/ui/layout"
)

// Screen is one routed view: home, deck browser, quiz, speedrun.
type Screen interface {
	// Init returns an initial command when the screen is first created
	// (e.g. speaking the first card's prompt).
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints. Hints change with the screen's
// state (answered, locked out, reviewing).
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
