package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"quickcard/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	home := &stubScreen{title: "Home"}
	r := New(home)

	chapters := &stubScreen{title: "Chapters"}
	r.Push(chapters)

	if r.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "Chapters" {
		t.Errorf("Active() = %q, want %q", r.Active().Title(), "Chapters")
	}
	if !chapters.initRan {
		t.Error("Init() did not run on the pushed screen")
	}
}

func TestPop(t *testing.T) {
	home := &stubScreen{title: "Home"}
	r := New(home)

	r.Push(&stubScreen{title: "Chapters"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", r.Depth())
	}
	if r.Active().Title() != "Home" {
		t.Errorf("Active() = %q, want %q", r.Active().Title(), "Home")
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "Home"})

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("Depth() = %d after pop at bottom, want 1", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	r := New(&stubScreen{title: "Home"})

	quiz := &stubScreen{title: "Quiz"}
	r.Replace(quiz)

	if r.Depth() != 1 {
		t.Errorf("Depth() = %d after replace, want 1", r.Depth())
	}
	if r.Active().Title() != "Quiz" {
		t.Errorf("Active() = %q, want %q", r.Active().Title(), "Quiz")
	}
	if !quiz.initRan {
		t.Error("Init() did not run on the replacing screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	r := New(&stubScreen{title: "Home"})

	quiz := &stubScreen{title: "Quiz"}
	r.Update(ReplaceScreenMsg{Screen: quiz})

	if r.Active().Title() != "Quiz" {
		t.Errorf("Active() = %q, want %q", r.Active().Title(), "Quiz")
	}
	if !quiz.initRan {
		t.Error("Init() did not run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	r := New(&stubScreen{title: "Home"})
	r.Push(&stubScreen{title: "Chapters"})

	r.Replace(&stubScreen{title: "Speedrun"})

	if r.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "Speedrun" {
		t.Errorf("Active() = %q, want %q", r.Active().Title(), "Speedrun")
	}
}
