package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed data/cards.json
var cardsJSON []byte

//go:embed data/decks.json
var decksJSON []byte

// Catalog is the read-only card and deck collection, loaded once at startup.
type Catalog struct {
	cards []Card
	decks map[string]Deck

	byDeck map[string][]Card
}

// Load parses and validates the embedded catalog data.
func Load() (*Catalog, error) {
	return Parse(cardsJSON, decksJSON)
}

// Parse builds a Catalog from raw JSON. Both files are schema-validated and
// each card is checked for structural invariants (four choices, correct key
// present among them).
func Parse(cardsRaw, decksRaw []byte) (*Catalog, error) {
	if err := ValidateCardsJSON(cardsRaw); err != nil {
		return nil, fmt.Errorf("cards: %w", err)
	}
	if err := ValidateDecksJSON(decksRaw); err != nil {
		return nil, fmt.Errorf("decks: %w", err)
	}

	var cards []Card
	if err := json.Unmarshal(cardsRaw, &cards); err != nil {
		return nil, fmt.Errorf("parse cards: %w", err)
	}
	var decks map[string]Deck
	if err := json.Unmarshal(decksRaw, &decks); err != nil {
		return nil, fmt.Errorf("parse decks: %w", err)
	}
	for id, d := range decks {
		d.ID = id
		decks[id] = d
	}

	c := &Catalog{
		cards:  cards,
		decks:  decks,
		byDeck: make(map[string][]Card),
	}
	for _, card := range cards {
		if err := card.validate(); err != nil {
			return nil, fmt.Errorf("card %s: %w", card.ID, err)
		}
		c.byDeck[card.DeckID] = append(c.byDeck[card.DeckID], card)
	}
	return c, nil
}

// validate enforces the per-card invariants the schema cannot express alone.
func (c Card) validate() error {
	if len(c.Choices) != len(OptionKeys) {
		return fmt.Errorf("has %d choices, want %d", len(c.Choices), len(OptionKeys))
	}
	if _, ok := c.Choices[c.Correct]; !ok {
		return fmt.Errorf("correct key %q not among choices", c.Correct)
	}
	return nil
}

// Cards returns all cards in catalog order. The returned slice is shared;
// callers must not mutate it.
func (c *Catalog) Cards() []Card {
	return c.cards
}

// Deck returns the deck with the given id.
func (c *Catalog) Deck(id string) (Deck, bool) {
	d, ok := c.decks[id]
	return d, ok
}

// DeckIDByName maps a legacy display name to its stable deck id.
// Retained only for the one-time progress key migration.
func (c *Catalog) DeckIDByName(name string) (string, bool) {
	for id, d := range c.decks {
		if d.DeckName == name {
			return id, true
		}
	}
	return "", false
}

// Decks returns all decks sorted by chapter, section, then order.
func (c *Catalog) Decks() []Deck {
	out := make([]Deck, 0, len(c.decks))
	for _, d := range c.decks {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Chapter != out[j].Chapter {
			return out[i].Chapter < out[j].Chapter
		}
		if out[i].Section != out[j].Section {
			return out[i].Section < out[j].Section
		}
		return out[i].Order < out[j].Order
	})
	return out
}

// Chapters returns the distinct chapter numbers in ascending order.
func (c *Catalog) Chapters() []int {
	seen := make(map[int]bool)
	var out []int
	for _, d := range c.decks {
		if !seen[d.Chapter] {
			seen[d.Chapter] = true
			out = append(out, d.Chapter)
		}
	}
	sort.Ints(out)
	return out
}

// DecksForChapter returns the chapter's decks sorted by section and order.
func (c *Catalog) DecksForChapter(chapter int) []Deck {
	var out []Deck
	for _, d := range c.Decks() {
		if d.Chapter == chapter {
			out = append(out, d)
		}
	}
	return out
}

// CardCount returns the number of quiz-playable cards in a deck.
func (c *Catalog) CardCount(deckID string) int {
	n := 0
	for _, card := range c.byDeck[deckID] {
		if quizKinds[card.Kind] {
			n++
		}
	}
	return n
}
