package catalog

// Selector picks the working set of cards for a session. Exactly one of the
// fields should be set; they are checked in declaration order.
type Selector struct {
	// DeckIDs selects every quiz card whose deck is in the set.
	DeckIDs []string

	// Levels selects cards carrying any of these level tags (e.g. "hsk1").
	Levels []string

	// CardIDs selects exactly these cards, in catalog order. This is the
	// practice-missed-cards path.
	CardIDs []string
}

// ResolvePool filters the catalog down to the active working set.
// Always restricted to quiz-playable kinds. Unresolvable ids silently match
// nothing: card content is externally curated and may lag behind deck lists,
// so the caller distinguishes an empty pool from a load failure.
// The catalog is never mutated; the result preserves catalog order.
func (c *Catalog) ResolvePool(sel Selector) []Card {
	var keep func(Card) bool

	switch {
	case len(sel.DeckIDs) > 0:
		ids := toSet(sel.DeckIDs)
		keep = func(card Card) bool { return ids[card.DeckID] }
	case len(sel.Levels) > 0:
		levels := toSet(sel.Levels)
		keep = func(card Card) bool {
			for _, t := range card.Tags {
				if levels[t] {
					return true
				}
			}
			return false
		}
	case len(sel.CardIDs) > 0:
		ids := toSet(sel.CardIDs)
		keep = func(card Card) bool { return ids[card.ID] }
	default:
		return nil
	}

	var pool []Card
	for _, card := range c.cards {
		if quizKinds[card.Kind] && keep(card) {
			pool = append(pool, card)
		}
	}
	return pool
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
