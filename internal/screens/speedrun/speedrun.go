package speedrun

import (
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"quickcard/internal/catalog"
	"quickcard/internal/progress"
	"quickcard/internal/quiz"
	"quickcard/internal/router"
	"quickcard/internal/screen"
	"quickcard/internal/screens/quizfeed"
	"quickcard/internal/speech"
	"quickcard/internal/ui/components"
	"quickcard/internal/ui/layout"
)

type stage int

const (
	stagePre stage = iota
	stageRun
	stageDone
)

// advanceDelay is how long a correct answer stays on screen before the next
// card. Wrong answers are held by the penalty countdown instead.
const advanceDelay = 300 * time.Millisecond

// SpeedrunScreen runs a deck as a timed single pass: every card once, three
// blocked seconds per miss, run failed past the miss cap. A finished run can
// be reviewed or restarted in place.
type SpeedrunScreen struct {
	cat     *catalog.Catalog
	deck    catalog.Deck
	pool    []catalog.Card
	sess    *quiz.Session
	choices components.ChoiceList
	tracker *progress.Tracker
	speaker *speech.Speaker
	spin    spinner.Model

	stage stage

	// prevBest is the best time on record before this run, for the finish
	// screen's "new best" banner.
	prevBest  int
	hasBest   bool
	currentID string
}

var _ screen.Screen = (*SpeedrunScreen)(nil)
var _ screen.KeyHintProvider = (*SpeedrunScreen)(nil)

// New creates the speedrun screen in its pre-run state. Nothing starts until
// the player confirms.
func New(cat *catalog.Catalog, deck catalog.Deck, pool []catalog.Card, tracker *progress.Tracker, speaker *speech.Speaker) *SpeedrunScreen {
	s := &SpeedrunScreen{
		cat:     cat,
		deck:    deck,
		pool:    pool,
		sess:    quiz.New(deck.ID, tracker),
		tracker: tracker,
		speaker: speaker,
		spin:    components.NewSpinner(),
		stage:   stagePre,
	}
	s.prevBest, s.hasBest = tracker.BestTime(deck.ID)
	return s
}

func (s *SpeedrunScreen) Init() tea.Cmd {
	return nil
}

func (s *SpeedrunScreen) Title() string {
	return "Speedrun · " + s.deck.DeckName
}

func (s *SpeedrunScreen) KeyHints() []layout.KeyHint {
	switch s.stage {
	case stagePre:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case stageDone:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Run again"},
		}
		if len(s.sess.MissedCards()) > 0 {
			hints = append(hints,
				layout.KeyHint{Key: "R", Description: "Review misses"},
				layout.KeyHint{Key: "P", Description: "Practice misses"},
			)
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}

	if s.sess.Mode == quiz.ModeReview {
		hints := []layout.KeyHint{
			{Key: "A–D", Description: "Answer"},
		}
		if s.sess.Answer.Answered() {
			hints = append(hints,
				layout.KeyHint{Key: "O", Description: "Hear it"},
				layout.KeyHint{Key: "Enter", Description: "Next"},
			)
		}
		return hints
	}
	if s.sess.PenaltyCountdown > 0 {
		return []layout.KeyHint{
			{Key: "", Description: "Locked out"},
		}
	}
	return []layout.KeyHint{
		{Key: "A–D / 1–4", Description: "Answer"},
	}
}

func (s *SpeedrunScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick()
	case advanceMsg:
		return s.handleAutoAdvance()
	case spinner.TickMsg:
		// Animate only while the penalty lockout is showing.
		if s.stage == stageRun && s.sess.PenaltyCountdown > 0 {
			var cmd tea.Cmd
			s.spin, cmd = s.spin.Update(msg)
			return s, cmd
		}
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SpeedrunScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.stage != stageRun || s.sess.Mode != quiz.ModeSpeedrun {
		return s, nil
	}

	s.sess.Tick()

	if s.sess.Phase == quiz.PhaseComplete {
		s.stage = stageDone
		return s, nil
	}

	// The countdown reaching zero auto-advances inside Tick.
	cmd := s.resyncAfterMove()
	return s, tea.Batch(tickCmd(), cmd)
}

func (s *SpeedrunScreen) handleAutoAdvance() (screen.Screen, tea.Cmd) {
	if s.stage != stageRun || !s.sess.Answer.Answered() {
		return s, nil
	}
	s.sess.Advance()
	if s.sess.Phase == quiz.PhaseComplete {
		s.stage = stageDone
		return s, nil
	}
	return s, s.resyncAfterMove()
}

func (s *SpeedrunScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.stage {
	case stagePre:
		if key == "enter" {
			return s.startRun()
		}
		return s, nil

	case stageDone:
		switch key {
		case "enter":
			return s.startRun()
		case "r":
			if s.sess.ReviewMissed() {
				s.stage = stageRun
				s.currentID = ""
				return s, s.resyncAfterMove()
			}
		case "p":
			pool := s.practicePool()
			if len(pool) > 0 {
				return s, func() tea.Msg {
					return router.PushScreenMsg{
						Screen: quizfeed.New(pool, "", "Practice · "+s.deck.DeckName, s.tracker, s.speaker),
					}
				}
			}
		}
		return s, nil
	}

	// Live run.
	if s.sess.Mode == quiz.ModeReview {
		return s.handleReviewKey(key, msg)
	}

	if s.sess.PenaltyCountdown > 0 || s.sess.Answer.Answered() {
		return s, nil
	}

	var choice catalog.OptionKey
	s.choices, choice = s.choices.Update(msg)
	if choice == "" {
		return s, nil
	}

	s.sess.SubmitAnswer(choice)
	s.choices.Selected = s.sess.Answer.Selected
	s.choices.Disabled = s.sess.PenaltyCountdown > 0

	if s.sess.Phase == quiz.PhaseComplete {
		// Miss cap reached.
		s.stage = stageDone
		return s, nil
	}
	if s.sess.Answer.Correct {
		s.tracker.AddCorrect(1)
		s.tracker.RecordStreak(s.sess.Streak)
		return s, advanceCmd()
	}
	return s, s.spin.Tick
}

func (s *SpeedrunScreen) handleReviewKey(key string, msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.sess.Answer.Answered() {
		switch key {
		// Reinforcement audio only once the card is answered, so the
		// English side cannot give the answer away.
		case "o":
			return s, s.speakReinforce()
		case "enter", "space", "n":
			s.sess.Advance()
			if s.sess.Phase == quiz.PhaseComplete {
				s.stage = stageDone
				return s, nil
			}
			return s, s.resyncAfterMove()
		}
		return s, nil
	}

	var choice catalog.OptionKey
	s.choices, choice = s.choices.Update(msg)
	if choice == "" {
		return s, nil
	}
	s.sess.SubmitAnswer(choice)
	s.choices.Selected = s.sess.Answer.Selected
	return s, nil
}

// practicePool resolves the run's missed card ids back through the catalog,
// so practice sessions get the same kind filtering and catalog ordering as
// any other pool.
func (s *SpeedrunScreen) practicePool() []catalog.Card {
	return s.cat.ResolvePool(catalog.Selector{CardIDs: s.sess.MissedIDs()})
}

func (s *SpeedrunScreen) startRun() (screen.Screen, tea.Cmd) {
	s.prevBest, s.hasBest = s.tracker.BestTime(s.deck.ID)
	s.sess.Start(s.pool, quiz.ModeSpeedrun)
	if s.sess.Phase != quiz.PhaseActive {
		return s, nil
	}
	s.stage = stageRun
	s.currentID = ""
	return s, tea.Batch(tickCmd(), s.resyncAfterMove())
}

// resyncAfterMove rebuilds the choice list if the cursor moved and speaks the
// new card's prompt.
func (s *SpeedrunScreen) resyncAfterMove() tea.Cmd {
	cur := s.sess.Current()
	if cur == nil || cur.ID == s.currentID {
		return nil
	}
	s.currentID = cur.ID
	s.choices = components.NewChoiceList(*cur)
	return s.speakCurrent()
}

func (s *SpeedrunScreen) speakCurrent() tea.Cmd {
	if s.speaker == nil {
		return nil
	}
	cur := s.sess.Current()
	if cur == nil {
		return nil
	}
	utt, ok := quizfeed.PromptUtterance(*cur)
	if !ok {
		return nil
	}
	speaker := s.speaker
	return func() tea.Msg {
		speaker.Speak(utt)
		return nil
	}
}

// speakReinforce plays the card both ways, Chinese then English, as a scripted
// sequence so the pair is never split by a newer request mid-way.
func (s *SpeedrunScreen) speakReinforce() tea.Cmd {
	if s.speaker == nil {
		return nil
	}
	cur := s.sess.Current()
	if cur == nil {
		return nil
	}
	hanzi := cur.Hanzi()
	answer := cur.AnswerText()
	if hanzi == "" || answer == "" {
		return nil
	}
	speaker := s.speaker
	return func() tea.Msg {
		speaker.SpeakSequence(
			speech.Utterance{Text: hanzi, Lang: speech.LangChinese},
			speech.Utterance{Text: answer, Lang: speech.LangEnglish},
		)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func advanceCmd() tea.Cmd {
	return tea.Tick(advanceDelay, func(time.Time) tea.Msg {
		return advanceMsg{}
	})
}
