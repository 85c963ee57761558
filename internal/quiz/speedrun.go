package quiz

import "fmt"

// Tick drives the speedrun wall clock. The host fires it once per real
// second while the session is active; it stops mattering the moment the run
// completes, so a stale timer cannot mutate a finished session.
//
// During a penalty window the clock keeps running (the block itself is the
// penalty) and the countdown decrements; when it hits zero the session
// auto-advances past the missed card.
func (s *Session) Tick() {
	if s.Phase != PhaseActive || s.Mode != ModeSpeedrun {
		return
	}

	s.Elapsed++

	if s.PenaltyCountdown > 0 {
		s.PenaltyCountdown--
		if s.PenaltyCountdown == 0 {
			s.Advance()
		}
	}
}

// FormatTime renders whole seconds as mm:ss.
func FormatTime(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatBest renders a best time, or the empty placeholder when unset.
func FormatBest(seconds int, ok bool) string {
	if !ok {
		return "--:--"
	}
	return FormatTime(seconds)
}
