package progress

import (
	"encoding/json"
	"testing"

	"quickcard/internal/catalog"
)

func migrationCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	return cat
}

func TestMigrateLegacyKeys_CopiesNameKeysForward(t *testing.T) {
	cat := migrationCatalog(t)
	deck := cat.Decks()[0]

	kv := newMemKV()
	kv.data[bestTimePrefix+deck.DeckName] = "47"

	MigrateLegacyKeys(kv, cat)

	tr := NewTracker(kv)
	got, ok := tr.BestTime(deck.ID)
	if !ok || got != 47 {
		t.Errorf("BestTime(%s) = %d, %v, want 47, true", deck.ID, got, ok)
	}

	// Legacy entries are left in place, not deleted.
	if _, ok := kv.data[bestTimePrefix+deck.DeckName]; !ok {
		t.Error("legacy name-keyed entry was deleted")
	}
}

func TestMigrateLegacyKeys_NeverOverwritesIDKey(t *testing.T) {
	cat := migrationCatalog(t)
	deck := cat.Decks()[0]

	kv := newMemKV()
	kv.data[bestTimePrefix+deck.DeckName] = "80"
	kv.data[bestTimePrefix+deck.ID] = "35"

	MigrateLegacyKeys(kv, cat)

	tr := NewTracker(kv)
	if got, _ := tr.BestTime(deck.ID); got != 35 {
		t.Errorf("BestTime(%s) = %d, want the existing 35 kept", deck.ID, got)
	}
}

func TestMigrateLegacyKeys_RekeysMasteredSet(t *testing.T) {
	cat := migrationCatalog(t)
	deck := cat.Decks()[0]

	kv := newMemKV()
	raw, _ := json.Marshal(map[string]bool{deck.DeckName: true})
	kv.data[masteredKey] = string(raw)

	MigrateLegacyKeys(kv, cat)

	tr := NewTracker(kv)
	if !tr.IsMastered(deck.ID) {
		t.Errorf("IsMastered(%s) = false after migration", deck.ID)
	}
}

func TestMigrateLegacyKeys_RunsOnce(t *testing.T) {
	cat := migrationCatalog(t)
	deck := cat.Decks()[0]

	kv := newMemKV()
	MigrateLegacyKeys(kv, cat)

	if v := kv.data[schemaKey]; v != schemaCurrent {
		t.Fatalf("schema key = %q, want %q", v, schemaCurrent)
	}

	// A legacy key appearing after the first migration must not be picked
	// up: the guard makes later runs no-ops.
	kv.data[bestTimePrefix+deck.DeckName] = "12"
	MigrateLegacyKeys(kv, cat)

	tr := NewTracker(kv)
	if _, ok := tr.BestTime(deck.ID); ok {
		t.Error("BestTime migrated on a second run, want guard to skip it")
	}
}
