package quiz

import (
	"github.com/google/uuid"

	"quickcard/internal/catalog"
)

// Mode selects the session's rules.
type Mode string

const (
	// ModeNormal loops the shuffled pool until a perfect pass (mastery).
	ModeNormal Mode = "normal"
	// ModeSpeedrun is a timed single pass with blocking wrong-answer penalties.
	ModeSpeedrun Mode = "speedrun"
	// ModeReview is a no-stakes pass over previously missed cards.
	ModeReview Mode = "review"
)

// Phase is the session's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseComplete
)

const (
	// PenaltySeconds is the blocking countdown after a wrong speedrun answer.
	PenaltySeconds = 3

	// MissCap is the number of distinct missed cards a speedrun tolerates.
	// One more fails the run.
	MissCap = 10
)

// Answer records the choice made for the currently presented card.
// Selected is empty until the card has been answered.
type Answer struct {
	Selected catalog.OptionKey
	Correct  bool
}

// Answered reports whether the current card has been answered.
func (a Answer) Answered() bool {
	return a.Selected != ""
}

// ProgressSink receives the engine's persistence side effects. All calls are
// best-effort: implementations swallow storage errors.
type ProgressSink interface {
	SaveBestTime(deckID string, seconds int)
	MarkMastered(deckID string)
}

// Session is the quiz state machine. It owns card sequencing, scoring,
// mastery detection, and speedrun penalty accounting. It never renders and
// never blocks: the host view calls SubmitAnswer/Advance on user input and
// Tick once per second while a speedrun is active.
type Session struct {
	// RunID identifies this run in summaries. Each Start mints a new one, so
	// "run again" on the same session gets its own id.
	RunID string

	// DeckID is the deck this session is bound to, or "" for mixed pools.
	// Mastery and best times persist only for single-deck sessions.
	DeckID string

	// Pool is the resolved working set, immutable for the session.
	Pool []catalog.Card

	// Order is the current shuffled sequence.
	Order []catalog.Card

	// Cursor indexes the card currently shown.
	Cursor int

	Mode  Mode
	Phase Phase

	// Answer is reset every time the cursor advances.
	Answer Answer

	// LoopProgress counts consecutive correct answers since the last
	// reshuffle or restart; reaching len(Order) in normal mode is mastery.
	LoopProgress int

	// Streak counts consecutive correct answers across loop boundaries.
	Streak int

	// Missed is the set of card ids answered incorrectly at least once this
	// run. A card stays in the set even if later answered correctly.
	Missed map[string]bool

	// Elapsed is whole seconds since the speedrun started.
	Elapsed int

	// PenaltyCountdown blocks input while > 0; Tick auto-advances at zero.
	PenaltyCountdown int

	// Failed is set when a speedrun exceeds the miss cap.
	Failed bool

	// MasteryComplete signals a perfect normal-mode loop. The session pauses
	// until Advance confirms continuing (which starts a fresh loop).
	MasteryComplete bool

	// missedOrder keeps missed cards in first-miss order for review.
	missedOrder []catalog.Card

	// restartPending schedules a full reshuffle on the next Advance after a
	// normal-mode miss: one miss voids the loop.
	restartPending bool

	// finalTime is the completion time captured when a speedrun finishes.
	finalTime int

	sink ProgressSink
}

// New creates an idle session. deckID may be empty for mixed pools; sink may
// be nil when progress should not persist (review, tests).
func New(deckID string, sink ProgressSink) *Session {
	return &Session{
		RunID:  uuid.New().String(),
		DeckID: deckID,
		Phase:  PhaseIdle,
		Missed: make(map[string]bool),
		sink:   sink,
	}
}

// Start shuffles the pool and enters Active. Starting an empty pool is a
// no-op: the caller surfaces the empty state instead. Start also restarts a
// completed session from scratch (run again).
func (s *Session) Start(pool []catalog.Card, mode Mode) {
	if len(pool) == 0 {
		return
	}
	s.RunID = uuid.New().String()
	s.Pool = pool
	s.Order = Shuffle(pool)
	s.Cursor = 0
	s.Mode = mode
	s.Phase = PhaseActive
	s.Answer = Answer{}
	s.LoopProgress = 0
	s.Streak = 0
	s.Missed = make(map[string]bool)
	s.missedOrder = nil
	s.Elapsed = 0
	s.PenaltyCountdown = 0
	s.Failed = false
	s.MasteryComplete = false
	s.restartPending = false
	s.finalTime = 0
}

// Current returns the card under the cursor, or nil outside Active.
func (s *Session) Current() *catalog.Card {
	if s.Phase != PhaseActive || s.Cursor < 0 || s.Cursor >= len(s.Order) {
		return nil
	}
	return &s.Order[s.Cursor]
}

// SubmitAnswer scores the chosen option for the current card. A card may be
// answered exactly once per presentation; repeat calls, calls during the
// penalty window, and calls outside Active are ignored (UI double-taps must
// not corrupt state).
func (s *Session) SubmitAnswer(choice catalog.OptionKey) {
	card := s.Current()
	if card == nil || s.Answer.Answered() || s.PenaltyCountdown > 0 || s.MasteryComplete {
		return
	}
	if _, ok := card.Choices[choice]; !ok {
		return
	}

	correct := choice == card.Correct
	s.Answer = Answer{Selected: choice, Correct: correct}

	if correct {
		s.Streak++
		s.LoopProgress++
		if s.Mode == ModeNormal && s.LoopProgress == len(s.Order) {
			s.MasteryComplete = true
			if s.sink != nil && s.DeckID != "" {
				s.sink.MarkMastered(s.DeckID)
			}
		}
		return
	}

	s.Streak = 0
	s.LoopProgress = 0

	switch s.Mode {
	case ModeNormal:
		s.recordMiss(*card)
		s.restartPending = true
	case ModeSpeedrun:
		s.recordMiss(*card)
		if len(s.Missed) > MissCap {
			s.completeSpeedrun(true)
			return
		}
		s.PenaltyCountdown = PenaltySeconds
	case ModeReview:
		// Remediation only: no counters, no missed-set growth.
	}
}

func (s *Session) recordMiss(card catalog.Card) {
	if !s.Missed[card.ID] {
		s.Missed[card.ID] = true
		s.missedOrder = append(s.missedOrder, card)
	}
}

// Advance moves to the next card. It requires an answered card and an
// expired penalty window; otherwise it is a no-op. At the end of the order
// it completes the run (speedrun, review) or reshuffles and loops (normal).
func (s *Session) Advance() {
	if s.Phase != PhaseActive || !s.Answer.Answered() || s.PenaltyCountdown > 0 {
		return
	}

	// Mastery confirmation or a voided loop: start a fresh shuffled loop.
	if s.MasteryComplete || s.restartPending {
		s.MasteryComplete = false
		s.restartPending = false
		s.reshuffleLoop()
		return
	}

	if s.Cursor+1 < len(s.Order) {
		s.Cursor++
		s.Answer = Answer{}
		return
	}

	switch s.Mode {
	case ModeNormal:
		// Normal mode runs indefinitely; loop on a fresh shuffle.
		s.reshuffleLoop()
	case ModeSpeedrun:
		s.completeSpeedrun(false)
	case ModeReview:
		s.Phase = PhaseComplete
	}
}

func (s *Session) reshuffleLoop() {
	s.Order = Shuffle(s.Pool)
	s.Cursor = 0
	s.Answer = Answer{}
	s.LoopProgress = 0
}

func (s *Session) completeSpeedrun(failed bool) {
	s.Phase = PhaseComplete
	s.Failed = failed
	s.PenaltyCountdown = 0
	s.finalTime = s.Elapsed
	if !failed && s.sink != nil && s.DeckID != "" {
		s.sink.SaveBestTime(s.DeckID, s.finalTime)
	}
}

// ReviewMissed re-enters Active over the shuffled missed cards. Valid only
// from a completed speedrun with a non-empty missed set. Review never scores
// mastery, never writes a best time, and has no penalties.
func (s *Session) ReviewMissed() bool {
	if s.Phase != PhaseComplete || s.Mode != ModeSpeedrun || len(s.missedOrder) == 0 {
		return false
	}
	s.Mode = ModeReview
	s.Order = Shuffle(s.missedOrder)
	s.Cursor = 0
	s.Answer = Answer{}
	s.PenaltyCountdown = 0
	s.Phase = PhaseActive
	return true
}

// MissedCards returns the cards ever missed this run, in first-miss order.
func (s *Session) MissedCards() []catalog.Card {
	out := make([]catalog.Card, len(s.missedOrder))
	copy(out, s.missedOrder)
	return out
}

// MissedIDs returns the ids of the missed cards, in first-miss order.
func (s *Session) MissedIDs() []string {
	out := make([]string, len(s.missedOrder))
	for i, c := range s.missedOrder {
		out[i] = c.ID
	}
	return out
}

// FinalTime returns the completion time of a finished speedrun, in seconds.
func (s *Session) FinalTime() int {
	return s.finalTime
}
