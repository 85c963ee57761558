// Package progress layers typed, monotonic progress operations over a
// generic string-keyed store. It is the only component that touches the
// store; failures are swallowed since this is advisory data, recoverable by
// replaying a deck.
package progress

import (
	"encoding/json"
	"strconv"
)

// Key scheme, shared with the legacy data this app migrates forward:
//
//	qc_deck_speedrun_best:<deckID>  best elapsed seconds (integer)
//	quickcard_mastered_sections     JSON object: deckID -> true
//	bestStreak                      best normal-mode streak
//	totalCorrect                    lifetime correct-answer counter
const (
	bestTimePrefix  = "qc_deck_speedrun_best:"
	masteredKey     = "quickcard_mastered_sections"
	bestStreakKey   = "bestStreak"
	totalCorrectKey = "totalCorrect"
)

// KV is the generic persistence store the tracker writes through.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Tracker is the progress persistence adapter.
type Tracker struct {
	kv KV
}

// NewTracker wraps a KV store.
func NewTracker(kv KV) *Tracker {
	return &Tracker{kv: kv}
}

// BestTime returns the recorded best speedrun time for a deck.
func (t *Tracker) BestTime(deckID string) (int, bool) {
	return t.getInt(bestTimePrefix + deckID)
}

// SaveBestTime records a completed speedrun time, keeping only monotonic
// improvements: the write is skipped unless seconds beats the current best.
func (t *Tracker) SaveBestTime(deckID string, seconds int) {
	if existing, ok := t.BestTime(deckID); ok && seconds >= existing {
		return
	}
	_ = t.kv.Set(bestTimePrefix+deckID, strconv.Itoa(seconds))
}

// IsMastered reports whether the deck has ever closed a perfect loop.
func (t *Tracker) IsMastered(deckID string) bool {
	return t.masteredSet()[deckID]
}

// MarkMastered sets the deck's mastery flag. Idempotent; the flag never
// resets.
func (t *Tracker) MarkMastered(deckID string) {
	set := t.masteredSet()
	if set[deckID] {
		return
	}
	set[deckID] = true
	t.writeMasteredSet(set)
}

// BestStreak returns the best recorded normal-mode streak.
func (t *Tracker) BestStreak() int {
	n, _ := t.getInt(bestStreakKey)
	return n
}

// RecordStreak updates the best streak if n beats it.
func (t *Tracker) RecordStreak(n int) {
	if n <= t.BestStreak() {
		return
	}
	_ = t.kv.Set(bestStreakKey, strconv.Itoa(n))
}

// TotalCorrect returns the lifetime correct-answer count.
func (t *Tracker) TotalCorrect() int {
	n, _ := t.getInt(totalCorrectKey)
	return n
}

// AddCorrect bumps the lifetime correct-answer counter.
func (t *Tracker) AddCorrect(n int) {
	if n <= 0 {
		return
	}
	_ = t.kv.Set(totalCorrectKey, strconv.Itoa(t.TotalCorrect()+n))
}

func (t *Tracker) getInt(key string) (int, bool) {
	raw, ok, err := t.kv.Get(key)
	if err != nil || !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (t *Tracker) masteredSet() map[string]bool {
	raw, ok, err := t.kv.Get(masteredKey)
	if err != nil || !ok {
		return map[string]bool{}
	}
	var set map[string]bool
	if err := json.Unmarshal([]byte(raw), &set); err != nil || set == nil {
		return map[string]bool{}
	}
	return set
}

func (t *Tracker) writeMasteredSet(set map[string]bool) {
	raw, err := json.Marshal(set)
	if err != nil {
		return
	}
	_ = t.kv.Set(masteredKey, string(raw))
}
