package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"quickcard/internal/catalog"
	"quickcard/internal/progress"
	"quickcard/internal/router"
	"quickcard/internal/screen"
	"quickcard/internal/screens/chapters"
	quizscreen "quickcard/internal/screens/quizfeed"
	"quickcard/internal/speech"
	"quickcard/internal/ui/components"
	"quickcard/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ██╗   ██╗██╗ ██████╗██╗  ██╗ ██████╗ █████╗ ██████╗ ██████╗
 ██╔═══██╗██║   ██║██║██╔════╝██║ ██╔╝██╔════╝██╔══██╗██╔══██╗██╔══██╗
 ██║   ██║██║   ██║██║██║     █████╔╝ ██║     ███████║██████╔╝██║  ██║
 ██║▄▄ ██║██║   ██║██║██║     ██╔═██╗ ██║     ██╔══██║██╔══██╗██║  ██║
 ╚██████╔╝╚██████╔╝██║╚██████╗██║  ██╗╚██████╗██║  ██║██║  ██║██████╔╝
  ╚══▀▀═╝  ╚═════╝ ╚═╝ ╚═════╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝`

const bannerCompact = "Q U I C K C A R D"

// HomeScreen is the landing screen: banner, lifetime stats, main menu.
type HomeScreen struct {
	cat     *catalog.Catalog
	tracker *progress.Tracker
	speaker *speech.Speaker
	menu    components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(cat *catalog.Catalog, tracker *progress.Tracker, speaker *speech.Speaker) *HomeScreen {
	h := &HomeScreen{cat: cat, tracker: tracker, speaker: speaker}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Quick Quiz — all cards", Action: h.startQuickQuiz},
		{Label: "HSK 1 Drill", Action: h.startHSK1Drill},
		{Label: "Chapters", Action: h.openChapters},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	banner := bannerArt
	if width < 74 {
		banner = bannerCompact
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Width(width).
		Align(lipgloss.Center).
		Render(banner))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Chinese flashcards, streaks, and deck runs"))
	b.WriteString("\n\n")

	mastered := 0
	for _, d := range h.cat.Decks() {
		if h.tracker.IsMastered(d.ID) {
			mastered++
		}
	}
	stats := fmt.Sprintf("%d cards · %d decks · %d mastered",
		len(h.cat.Cards()), len(h.cat.Decks()), mastered)
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(width).
		Align(lipgloss.Center).
		Render(stats))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(h.menu.View()))

	return b.String()
}

func (h *HomeScreen) startQuickQuiz() tea.Cmd {
	var ids []string
	for _, d := range h.cat.Decks() {
		if !d.IsMatch() {
			ids = append(ids, d.ID)
		}
	}
	pool := h.cat.ResolvePool(catalog.Selector{DeckIDs: ids})
	s := quizscreen.New(pool, "", "Quick Quiz", h.tracker, h.speaker)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

// startHSK1Drill quizzes across every hsk1-tagged card regardless of deck.
func (h *HomeScreen) startHSK1Drill() tea.Cmd {
	pool := h.cat.ResolvePool(catalog.Selector{Levels: []string{"hsk1"}})
	s := quizscreen.New(pool, "", "HSK 1 Drill", h.tracker, h.speaker)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) openChapters() tea.Cmd {
	s := chapters.New(h.cat, h.tracker, h.speaker)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}
