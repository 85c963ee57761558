package quiz

import (
	"fmt"
	"testing"

	"quickcard/internal/catalog"
)

type fakeSink struct {
	bestTimes map[string]int
	mastered  []string
}

func newFakeSink() *fakeSink {
	return &fakeSink{bestTimes: make(map[string]int)}
}

func (f *fakeSink) SaveBestTime(deckID string, seconds int) {
	f.bestTimes[deckID] = seconds
}

func (f *fakeSink) MarkMastered(deckID string) {
	f.mastered = append(f.mastered, deckID)
}

func makeCards(n int) []catalog.Card {
	cards := make([]catalog.Card, n)
	for i := range cards {
		cards[i] = catalog.Card{
			ID:         fmt.Sprintf("card-%02d", i),
			Kind:       catalog.KindVocab,
			DeckID:     "deck-1",
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

// answerCurrent answers the card under the cursor, correctly or not.
func answerCurrent(t *testing.T, s *Session, correct bool) {
	t.Helper()
	cur := s.Current()
	if cur == nil {
		t.Fatal("Current() = nil, want a card")
	}
	choice := cur.Correct
	if !correct {
		for _, k := range catalog.OptionKeys {
			if k != cur.Correct {
				choice = k
				break
			}
		}
	}
	s.SubmitAnswer(choice)
}

func TestStart_EmptyPoolIsNoop(t *testing.T) {
	s := New("deck-1", nil)
	s.Start(nil, ModeNormal)

	if s.Phase != PhaseIdle {
		t.Errorf("Phase = %v, want PhaseIdle", s.Phase)
	}
	if s.Current() != nil {
		t.Errorf("Current() = %v, want nil", s.Current())
	}
}

func TestStart_MintsFreshRunID(t *testing.T) {
	s := New("deck-1", nil)
	s.Start(makeCards(2), ModeSpeedrun)

	first := s.RunID
	if first == "" {
		t.Fatal("RunID empty after Start")
	}

	s.Start(makeCards(2), ModeSpeedrun)
	if s.RunID == first {
		t.Error("RunID reused across runs of the same session")
	}
}

func TestStart_ShufflesWholePool(t *testing.T) {
	pool := makeCards(10)
	s := New("deck-1", nil)
	s.Start(pool, ModeNormal)

	if s.Phase != PhaseActive {
		t.Fatalf("Phase = %v, want PhaseActive", s.Phase)
	}
	if len(s.Order) != len(pool) {
		t.Fatalf("len(Order) = %d, want %d", len(s.Order), len(pool))
	}
	seen := make(map[string]bool)
	for _, c := range s.Order {
		seen[c.ID] = true
	}
	for _, c := range pool {
		if !seen[c.ID] {
			t.Errorf("card %s missing from shuffled order", c.ID)
		}
	}
}

func TestSubmitAnswer_SecondSubmissionIgnored(t *testing.T) {
	s := New("deck-1", nil)
	s.Start(makeCards(3), ModeNormal)

	answerCurrent(t, s, true)
	first := s.Answer

	// A double-tap must not re-score.
	answerCurrent(t, s, true)

	if s.Streak != 1 {
		t.Errorf("Streak = %d, want 1", s.Streak)
	}
	if s.LoopProgress != 1 {
		t.Errorf("LoopProgress = %d, want 1", s.LoopProgress)
	}
	if s.Answer != first {
		t.Errorf("Answer = %+v, want unchanged %+v", s.Answer, first)
	}
}

func TestSubmitAnswer_UnknownKeyIgnored(t *testing.T) {
	s := New("deck-1", nil)
	s.Start(makeCards(3), ModeNormal)

	s.SubmitAnswer("Z")

	if s.Answer.Answered() {
		t.Errorf("Answer = %+v, want unanswered", s.Answer)
	}
}

func TestNormalMode_PerfectLoopIsMastery(t *testing.T) {
	sink := newFakeSink()
	s := New("deck-1", sink)
	s.Start(makeCards(4), ModeNormal)

	for i := 0; i < 4; i++ {
		answerCurrent(t, s, true)
		if i < 3 {
			if s.MasteryComplete {
				t.Fatalf("MasteryComplete after %d of 4 cards", i+1)
			}
			s.Advance()
		}
	}

	if !s.MasteryComplete {
		t.Fatal("MasteryComplete = false after a perfect loop")
	}
	if len(sink.mastered) != 1 || sink.mastered[0] != "deck-1" {
		t.Errorf("mastered = %v, want [deck-1]", sink.mastered)
	}

	// Confirming mastery starts a fresh loop.
	s.Advance()
	if s.MasteryComplete {
		t.Error("MasteryComplete still set after confirming")
	}
	if s.Cursor != 0 || s.LoopProgress != 0 {
		t.Errorf("Cursor = %d, LoopProgress = %d, want 0, 0", s.Cursor, s.LoopProgress)
	}
}

func TestNormalMode_MissVoidsTheLoop(t *testing.T) {
	sink := newFakeSink()
	s := New("deck-1", sink)
	s.Start(makeCards(4), ModeNormal)

	answerCurrent(t, s, true)
	s.Advance()
	answerCurrent(t, s, true)
	s.Advance()

	// A miss at position 3 resets everything.
	answerCurrent(t, s, false)
	if s.Streak != 0 {
		t.Errorf("Streak = %d, want 0", s.Streak)
	}
	if s.LoopProgress != 0 {
		t.Errorf("LoopProgress = %d, want 0", s.LoopProgress)
	}

	s.Advance()
	if s.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 after restart", s.Cursor)
	}
	if len(s.Order) != 4 {
		t.Errorf("len(Order) = %d, want full pool of 4", len(s.Order))
	}

	// Finishing the new loop perfectly still earns mastery: the miss voided
	// the loop, not the session.
	for i := 0; i < 4; i++ {
		answerCurrent(t, s, true)
		if i < 3 {
			s.Advance()
		}
	}
	if !s.MasteryComplete {
		t.Error("MasteryComplete = false after a clean restart loop")
	}
	if len(sink.mastered) != 1 {
		t.Errorf("mastered = %v, want exactly one entry", sink.mastered)
	}
}

func TestNormalMode_FreshLoopAfterMissCanMaster(t *testing.T) {
	s := New("deck-1", nil)
	s.Start(makeCards(3), ModeNormal)

	answerCurrent(t, s, false)
	s.Advance()

	// Correct answers only from here, but the first loop was voided, so
	// mastery needs the full fresh loop, not just three correct in a row
	// spread across loops.
	answerCurrent(t, s, true)
	s.Advance()
	answerCurrent(t, s, true)
	s.Advance()
	answerCurrent(t, s, true)

	if !s.MasteryComplete {
		t.Error("MasteryComplete = false, want true: three correct in the fresh loop")
	}
}

func TestMixedPool_NeverPersistsMastery(t *testing.T) {
	sink := newFakeSink()
	s := New("", sink)
	s.Start(makeCards(2), ModeNormal)

	answerCurrent(t, s, true)
	s.Advance()
	answerCurrent(t, s, true)

	if !s.MasteryComplete {
		t.Fatal("MasteryComplete = false after a perfect loop")
	}
	if len(sink.mastered) != 0 {
		t.Errorf("mastered = %v, want none for a mixed pool", sink.mastered)
	}
}

func TestAdvance_RequiresAnswer(t *testing.T) {
	s := New("deck-1", nil)
	s.Start(makeCards(3), ModeNormal)

	s.Advance()

	if s.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0: advance before answering is a no-op", s.Cursor)
	}
}

func TestReviewMissed_NoStakes(t *testing.T) {
	sink := newFakeSink()
	s := New("deck-1", sink)
	s.Start(makeCards(3), ModeSpeedrun)

	// Miss one card, finish the run.
	answerCurrent(t, s, false)
	for i := 0; i < PenaltySeconds; i++ {
		s.Tick()
	}
	answerCurrent(t, s, true)
	s.Advance()
	answerCurrent(t, s, true)
	s.Advance()

	if s.Phase != PhaseComplete {
		t.Fatalf("Phase = %v, want PhaseComplete", s.Phase)
	}
	savedBest := sink.bestTimes["deck-1"]
	missedBefore := len(s.Missed)

	if !s.ReviewMissed() {
		t.Fatal("ReviewMissed() = false, want true with misses on record")
	}
	if s.Mode != ModeReview {
		t.Fatalf("Mode = %v, want ModeReview", s.Mode)
	}
	if len(s.Order) != 1 {
		t.Fatalf("len(Order) = %d, want 1 missed card", len(s.Order))
	}

	// A wrong answer in review changes nothing that persists.
	answerCurrent(t, s, false)
	if len(s.Missed) != missedBefore {
		t.Errorf("len(Missed) = %d, want %d: review never grows the missed set", len(s.Missed), missedBefore)
	}
	if s.PenaltyCountdown != 0 {
		t.Errorf("PenaltyCountdown = %d, want 0 in review", s.PenaltyCountdown)
	}

	s.Advance()
	if s.Phase != PhaseComplete {
		t.Errorf("Phase = %v, want PhaseComplete after the single review card", s.Phase)
	}
	if sink.bestTimes["deck-1"] != savedBest {
		t.Errorf("best time changed during review: %d -> %d", savedBest, sink.bestTimes["deck-1"])
	}
}

func TestReviewMissed_RequiresCompletedSpeedrun(t *testing.T) {
	s := New("deck-1", nil)
	s.Start(makeCards(3), ModeNormal)

	answerCurrent(t, s, false)

	if s.ReviewMissed() {
		t.Error("ReviewMissed() = true mid-run, want false")
	}
}

func TestMissedCards_FirstMissOrder(t *testing.T) {
	s := New("deck-1", nil)
	s.Start(makeCards(5), ModeSpeedrun)

	var wantOrder []string
	for i := 0; i < 3; i++ {
		wantOrder = append(wantOrder, s.Current().ID)
		answerCurrent(t, s, false)
		for j := 0; j < PenaltySeconds; j++ {
			s.Tick()
		}
	}

	got := s.MissedIDs()
	if len(got) != 3 {
		t.Fatalf("len(MissedIDs) = %d, want 3", len(got))
	}
	for i, id := range wantOrder {
		if got[i] != id {
			t.Errorf("MissedIDs[%d] = %s, want %s", i, got[i], id)
		}
	}
}
