package progress

import (
	"encoding/json"
	"strconv"

	"quickcard/internal/catalog"
)

// schemaKey guards the one-time legacy migration. Historical saves keyed
// best times and mastery flags by deck display name; the canonical scheme
// keys exclusively by stable deck id.
const (
	schemaKey     = "qc_progress_schema"
	schemaCurrent = "2"
)

// MigrateLegacyKeys copies name-keyed progress records forward to id keys.
// It runs once per store (guarded by the schema key), never deletes legacy
// entries, and never overwrites an existing id-keyed record, so a better
// time recorded under the new scheme survives. Errors are swallowed like
// every other progress write.
func MigrateLegacyKeys(kv KV, cat *catalog.Catalog) {
	if v, ok, _ := kv.Get(schemaKey); ok && v == schemaCurrent {
		return
	}

	for _, deck := range cat.Decks() {
		migrateBestTime(kv, deck)
	}
	migrateMasteredSet(kv, cat)

	_ = kv.Set(schemaKey, schemaCurrent)
}

func migrateBestTime(kv KV, deck catalog.Deck) {
	raw, ok, err := kv.Get(bestTimePrefix + deck.DeckName)
	if err != nil || !ok {
		return
	}
	legacy, err := strconv.Atoi(raw)
	if err != nil {
		return
	}
	if _, exists := NewTracker(kv).BestTime(deck.ID); exists {
		return
	}
	_ = kv.Set(bestTimePrefix+deck.ID, strconv.Itoa(legacy))
}

func migrateMasteredSet(kv KV, cat *catalog.Catalog) {
	raw, ok, err := kv.Get(masteredKey)
	if err != nil || !ok {
		return
	}
	var set map[string]bool
	if err := json.Unmarshal([]byte(raw), &set); err != nil || set == nil {
		return
	}

	changed := false
	for key, mastered := range set {
		if !mastered {
			continue
		}
		if _, isID := cat.Deck(key); isID {
			continue
		}
		if id, ok := cat.DeckIDByName(key); ok && !set[id] {
			set[id] = true
			changed = true
		}
	}
	if !changed {
		return
	}
	out, err := json.Marshal(set)
	if err != nil {
		return
	}
	_ = kv.Set(masteredKey, string(out))
}
