// Package chapters is the deck browser: chapters, sections with rollup
// times, and per-deck best time and mastery marks.
package chapters

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"quickcard/internal/catalog"
	"quickcard/internal/progress"
	"quickcard/internal/quiz"
	"quickcard/internal/router"
	"quickcard/internal/screen"
	quizscreen "quickcard/internal/screens/quizfeed"
	"quickcard/internal/screens/speedrun"
	"quickcard/internal/speech"
	"quickcard/internal/ui/layout"
	"quickcard/internal/ui/theme"
)

// row is one renderable line: a chapter header, a section header, or a
// selectable deck.
type row struct {
	chapter int
	section string
	deck    *catalog.Deck
}

// ChaptersScreen lists every deck grouped by chapter and section.
type ChaptersScreen struct {
	cat     *catalog.Catalog
	tracker *progress.Tracker
	speaker *speech.Speaker

	rows     []row
	selected int
}

var _ screen.Screen = (*ChaptersScreen)(nil)
var _ screen.KeyHintProvider = (*ChaptersScreen)(nil)

// New creates the deck browser.
func New(cat *catalog.Catalog, tracker *progress.Tracker, speaker *speech.Speaker) *ChaptersScreen {
	s := &ChaptersScreen{cat: cat, tracker: tracker, speaker: speaker}
	s.buildRows()
	s.selected = s.nextSelectable(-1, +1)
	return s
}

func (s *ChaptersScreen) buildRows() {
	for _, ch := range s.cat.Chapters() {
		s.rows = append(s.rows, row{chapter: ch})
		lastSection := ""
		for _, d := range s.cat.DecksForChapter(ch) {
			if d.Section != lastSection {
				lastSection = d.Section
				s.rows = append(s.rows, row{section: d.Section})
			}
			deck := d
			s.rows = append(s.rows, row{deck: &deck})
		}
	}
}

func (s *ChaptersScreen) Init() tea.Cmd {
	return nil
}

func (s *ChaptersScreen) Title() string {
	return "Chapters"
}

func (s *ChaptersScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Quiz"},
		{Key: "S", Description: "Deck Run"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChaptersScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if i := s.nextSelectable(s.selected, -1); i >= 0 {
			s.selected = i
		}
	case "down", "j":
		if i := s.nextSelectable(s.selected, +1); i >= 0 {
			s.selected = i
		}
	case "enter":
		return s, s.openQuiz()
	case "s", "S":
		return s, s.openSpeedrun()
	}
	return s, nil
}

// nextSelectable walks from i in the given direction to the next playable
// deck row, skipping headers and match decks. Returns -1 if none.
func (s *ChaptersScreen) nextSelectable(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(s.rows); j += dir {
		if d := s.rows[j].deck; d != nil && !d.IsMatch() {
			return j
		}
	}
	return -1
}

func (s *ChaptersScreen) selectedDeck() *catalog.Deck {
	if s.selected < 0 || s.selected >= len(s.rows) {
		return nil
	}
	return s.rows[s.selected].deck
}

func (s *ChaptersScreen) openQuiz() tea.Cmd {
	deck := s.selectedDeck()
	if deck == nil {
		return nil
	}
	pool := s.cat.ResolvePool(catalog.Selector{DeckIDs: []string{deck.ID}})
	scr := quizscreen.New(pool, deck.ID, deck.DeckName, s.tracker, s.speaker)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: scr}
	}
}

func (s *ChaptersScreen) openSpeedrun() tea.Cmd {
	deck := s.selectedDeck()
	if deck == nil {
		return nil
	}
	pool := s.cat.ResolvePool(catalog.Selector{DeckIDs: []string{deck.ID}})
	scr := speedrun.New(s.cat, *deck, pool, s.tracker, s.speaker)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: scr}
	}
}

func (s *ChaptersScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.rows {
		switch {
		case r.chapter != 0:
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true).
				Render(fmt.Sprintf("  Chapter %d", r.chapter)))
			b.WriteString("\n")
		case r.section != "":
			rollup := s.sectionRollup(s.sectionDecks(i))
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Secondary).
				Render(fmt.Sprintf("    %s", r.section)))
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render(fmt.Sprintf("  %s", rollup)))
			b.WriteString("\n")
		default:
			b.WriteString(s.renderDeckRow(i, *r.deck))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *ChaptersScreen) renderDeckRow(i int, d catalog.Deck) string {
	prefix := "      "
	if i == s.selected {
		prefix = "    ▸ "
	}

	label := d.DeckName
	if d.IsMatch() {
		label += "  (match)"
	}

	mastery := " "
	if s.tracker.IsMastered(d.ID) {
		mastery = lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	}

	best := quiz.FormatBest(s.tracker.BestTime(d.ID))
	meta := fmt.Sprintf("%s  %s  %d cards", mastery, best, s.cat.CardCount(d.ID))

	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	if d.IsMatch() {
		style = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	return style.Render(prefix+label) + "  " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(meta)
}

// sectionDecks collects the runnable decks listed under the section row at
// index i. Match decks have no speedrun times and stay out of the rollup.
func (s *ChaptersScreen) sectionDecks(i int) []catalog.Deck {
	var decks []catalog.Deck
	for j := i + 1; j < len(s.rows); j++ {
		d := s.rows[j].deck
		if d == nil {
			break
		}
		if !d.IsMatch() {
			decks = append(decks, *d)
		}
	}
	return decks
}

// sectionRollup sums deck best times for a section; incomplete until every
// deck has a recorded time.
func (s *ChaptersScreen) sectionRollup(decks []catalog.Deck) string {
	total := 0
	for _, d := range decks {
		t, ok := s.tracker.BestTime(d.ID)
		if !ok {
			return "--:--"
		}
		total += t
	}
	if len(decks) == 0 {
		return "--:--"
	}
	return quiz.FormatTime(total)
}
