package catalog

import "strings"

// CardKind classifies what a card drills.
type CardKind string

const (
	KindVocab    CardKind = "vocab"
	KindSentence CardKind = "sentence"
	KindPhrase   CardKind = "phrase"
)

// quizKinds are the kinds that take part in quiz play. Other kinds in the
// data file (future mini-games, raw audio entries) are skipped by the
// resolver.
var quizKinds = map[CardKind]bool{
	KindVocab:    true,
	KindSentence: true,
	KindPhrase:   true,
}

// OptionKey identifies one of a card's four answer choices.
type OptionKey string

const (
	OptionA OptionKey = "A"
	OptionB OptionKey = "B"
	OptionC OptionKey = "C"
	OptionD OptionKey = "D"
)

// OptionKeys lists the choice keys in display order.
var OptionKeys = []OptionKey{OptionA, OptionB, OptionC, OptionD}

// promptSeparator splits a prompt line into romanization and script halves.
const promptSeparator = " — "

// Card is an immutable catalog entry: one multiple-choice flashcard.
type Card struct {
	ID           string               `json:"id"`
	Kind         CardKind             `json:"kind"`
	DeckID       string               `json:"deckId"`
	PromptLine   string               `json:"promptLine"`
	Question     string               `json:"question"`
	Choices      map[OptionKey]string `json:"choices"`
	Correct      OptionKey            `json:"correct"`
	Explanations map[OptionKey]string `json:"explanations,omitempty"`
	Tags         []string             `json:"tags"`
	Difficulty   int                  `json:"difficulty"`
}

// HasTag reports whether the card carries the given tag.
func (c Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Hanzi returns the script half of the prompt line ("pinyin — 汉字"),
// or "" when the prompt has no separator.
func (c Card) Hanzi() string {
	_, script, ok := strings.Cut(c.PromptLine, promptSeparator)
	if !ok {
		return ""
	}
	return script
}

// AnswerText returns the text of the correct choice.
func (c Card) AnswerText() string {
	return c.Choices[c.Correct]
}

// Deck groups cards for one study unit.
type Deck struct {
	ID            string `json:"-"`
	DeckName      string `json:"deckName"`
	Chapter       int    `json:"chapter"`
	Section       string `json:"section"`
	Order         int    `json:"order"`
	Mode          string `json:"mode,omitempty"`
	SourceChapter int    `json:"sourceChapter,omitempty"`
}

// IsMatch reports whether the deck is a match-game deck rather than a quiz
// deck. Match decks share the progress key scheme but not the quiz engine.
func (d Deck) IsMatch() bool {
	return d.Mode == "match"
}
