// Package quizfeed is the endless normal-mode quiz screen: shuffled loop,
// streak tracking, mastery on a perfect pass.
package quizfeed

import (
	tea "charm.land/bubbletea/v2"

	"quickcard/internal/catalog"
	"quickcard/internal/progress"
	"quickcard/internal/quiz"
	"quickcard/internal/screen"
	"quickcard/internal/speech"
	"quickcard/internal/ui/components"
	"quickcard/internal/ui/layout"
)

// QuizScreen drives a normal-mode session for one deck, a multi-deck pool,
// or an explicit practice list.
type QuizScreen struct {
	sess    *quiz.Session
	choices components.ChoiceList
	tracker *progress.Tracker
	speaker *speech.Speaker

	pool  []catalog.Card
	title string

	currentID string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen. deckID may be "" for mixed pools, which
// disables mastery persistence but keeps streak counters.
func New(pool []catalog.Card, deckID, title string, tracker *progress.Tracker, speaker *speech.Speaker) *QuizScreen {
	s := &QuizScreen{
		sess:    quiz.New(deckID, tracker),
		tracker: tracker,
		speaker: speaker,
		pool:    pool,
		title:   title,
	}
	s.sess.Start(pool, quiz.ModeNormal)
	s.syncCard()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.speakCurrent()
}

func (s *QuizScreen) Title() string {
	return s.title
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.sess.MasteryComplete:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Keep looping"},
			{Key: "Esc", Description: "Exit"},
		}
	case s.sess.Answer.Answered():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Exit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "Esc", Description: "Exit"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if len(s.pool) == 0 {
		return s, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.sess.MasteryComplete || s.sess.Answer.Answered() {
		switch kmsg.String() {
		case "enter", "space", "n":
			s.sess.Advance()
			s.syncCard()
			return s, s.speakCurrent()
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
	if s.sess.Answer.Correct {
		s.tracker.AddCorrect(1)
		s.tracker.RecordStreak(s.sess.Streak)
	}
	return s, nil
}

// syncCard rebuilds the choice list when a new card is presented.
func (s *QuizScreen) syncCard() {
	cur := s.sess.Current()
	if cur == nil || cur.ID == s.currentID {
		return
	}
	s.currentID = cur.ID
	s.choices = components.NewChoiceList(*cur)
}

// PromptUtterance picks what to say when a card is presented: the hanzi for a
// regular prompt, the English prompt for reverse-tagged cards. ok is false
// for cards with nothing speakable.
func PromptUtterance(c catalog.Card) (u speech.Utterance, ok bool) {
	if hanzi := c.Hanzi(); hanzi != "" {
		return speech.Utterance{Text: hanzi, Lang: speech.LangChinese}, true
	}
	if c.HasTag("reverse") && c.PromptLine != "" {
		return speech.Utterance{Text: c.PromptLine, Lang: speech.LangEnglish}, true
	}
	return speech.Utterance{}, false
}

func (s *QuizScreen) speakCurrent() tea.Cmd {
	if s.speaker == nil {
		return nil
	}
	cur := s.sess.Current()
	if cur == nil {
		return nil
	}
	utt, ok := PromptUtterance(*cur)
	if !ok {
		return nil
	}
	speaker := s.speaker
	return func() tea.Msg {
		speaker.Speak(utt)
		return nil
	}
}
