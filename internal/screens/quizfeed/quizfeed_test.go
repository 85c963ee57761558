package quizfeed

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"quickcard/internal/catalog"
	"quickcard/internal/progress"
	"quickcard/internal/quiz"
	"quickcard/internal/speech"
)

type memKV struct {
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testPool(n int) []catalog.Card {
	cards := make([]catalog.Card, n)
	for i := range cards {
		cards[i] = catalog.Card{
			ID:         fmt.Sprintf("card-%02d", i),
			Kind:       catalog.KindVocab,
			DeckID:     "ch1-greetings",
			PromptLine: fmt.Sprintf("cí %d — 词%d", i, i),
			Choices: map[catalog.OptionKey]string{
				catalog.OptionA: "right",
				catalog.OptionB: "wrong b",
				catalog.OptionC: "wrong c",
				catalog.OptionD: "wrong d",
			},
			Correct: catalog.OptionA,
		}
	}
	return cards
}

func TestQuizScreen_CorrectAnswerBumpsCounters(t *testing.T) {
	tracker := progress.NewTracker(newMemKV())
	s := New(testPool(3), "ch1-greetings", "Greetings", tracker, nil)

	s.Update(keyPress('a'))

	if !s.sess.Answer.Correct {
		t.Fatal("Answer.Correct = false, want true")
	}
	if tracker.TotalCorrect() != 1 {
		t.Errorf("TotalCorrect = %d, want 1", tracker.TotalCorrect())
	}
	if tracker.BestStreak() != 1 {
		t.Errorf("BestStreak = %d, want 1", tracker.BestStreak())
	}
}

func TestQuizScreen_EnterAdvancesAfterAnswer(t *testing.T) {
	tracker := progress.NewTracker(newMemKV())
	s := New(testPool(3), "ch1-greetings", "Greetings", tracker, nil)

	s.Update(keyPress('a'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if s.sess.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", s.sess.Cursor)
	}
	if s.sess.Answer.Answered() {
		t.Error("Answer carried over to the next card")
	}
	if s.choices.Selected != "" {
		t.Error("choice list not reset for the next card")
	}
}

func TestQuizScreen_PerfectLoopMastersDeck(t *testing.T) {
	tracker := progress.NewTracker(newMemKV())
	s := New(testPool(2), "ch1-greetings", "Greetings", tracker, nil)

	s.Update(keyPress('a'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(keyPress('a'))

	if !s.sess.MasteryComplete {
		t.Fatal("MasteryComplete = false after a perfect loop")
	}
	if !tracker.IsMastered("ch1-greetings") {
		t.Error("deck not marked mastered")
	}

	// Confirming keeps looping with a fresh pass.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.sess.MasteryComplete {
		t.Error("MasteryComplete still set after confirming")
	}
	if s.sess.Phase != quiz.PhaseActive {
		t.Errorf("Phase = %v, want PhaseActive", s.sess.Phase)
	}
}

func TestQuizScreen_WrongAnswerShowsFeedbackBeforeRestart(t *testing.T) {
	tracker := progress.NewTracker(newMemKV())
	s := New(testPool(3), "ch1-greetings", "Greetings", tracker, nil)

	s.Update(keyPress('c'))

	// Feedback stays up until confirmed; nothing counted.
	if s.sess.Answer.Correct {
		t.Fatal("Answer.Correct = true for a wrong choice")
	}
	if tracker.TotalCorrect() != 0 {
		t.Errorf("TotalCorrect = %d, want 0", tracker.TotalCorrect())
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.sess.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0: a miss restarts the loop", s.sess.Cursor)
	}
	if s.sess.LoopProgress != 0 {
		t.Errorf("LoopProgress = %d, want 0", s.sess.LoopProgress)
	}
}

// nullPlayer completes playback immediately.
type nullPlayer struct{}

func (nullPlayer) Play(context.Context, []byte) error { return nil }

func reverseCard() catalog.Card {
	return catalog.Card{
		ID:         "rev-01",
		Kind:       catalog.KindVocab,
		DeckID:     "ch1-greetings",
		PromptLine: "hello",
		Question:   "How do you say this in Chinese?",
		Choices: map[catalog.OptionKey]string{
			catalog.OptionA: "再见",
			catalog.OptionB: "谢谢",
			catalog.OptionC: "请",
			catalog.OptionD: "你好",
		},
		Correct: catalog.OptionD,
		Tags:    []string{"reverse"},
	}
}

func TestPromptUtterance(t *testing.T) {
	regular := testPool(1)[0]
	u, ok := PromptUtterance(regular)
	if !ok || u.Lang != speech.LangChinese || u.Text != "词0" {
		t.Errorf("PromptUtterance(regular) = %+v, %v, want the hanzi in Chinese", u, ok)
	}

	u, ok = PromptUtterance(reverseCard())
	if !ok || u.Lang != speech.LangEnglish || u.Text != "hello" {
		t.Errorf("PromptUtterance(reverse) = %+v, %v, want the English prompt", u, ok)
	}

	// A separator-less prompt without the reverse tag has nothing speakable.
	plain := regular
	plain.PromptLine = "no separator here"
	if _, ok := PromptUtterance(plain); ok {
		t.Error("PromptUtterance(plain) = ok, want nothing speakable")
	}
}

func TestQuizScreen_ReverseCardSpeaksEnglishPrompt(t *testing.T) {
	synth := &speech.MockSynthesizer{}
	speaker := speech.NewSpeaker(synth, nullPlayer{})
	defer speaker.Close()

	tracker := progress.NewTracker(newMemKV())
	s := New([]catalog.Card{reverseCard()}, "ch1-greetings", "Greetings", tracker, speaker)

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("Init() = nil, want a speak command for the reverse card")
	}
	cmd()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, u := range synth.Seen() {
			if u.Text == "hello" {
				if u.Lang != speech.LangEnglish {
					t.Errorf("Lang = %v, want LangEnglish", u.Lang)
				}
				return
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("English prompt never spoken; saw %v", synth.Seen())
}

func TestQuizScreen_EmptyPoolIsInert(t *testing.T) {
	tracker := progress.NewTracker(newMemKV())
	s := New(nil, "", "Quick Quiz", tracker, nil)

	s.Update(keyPress('a'))

	if s.sess.Answer.Answered() {
		t.Error("an empty pool accepted an answer")
	}
	if view := s.View(80, 24); view == "" {
		t.Error("View() = empty for the empty-pool state")
	}
}
