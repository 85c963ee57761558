package speedrun

import "time"

// tickMsg is sent every second while the run is live; it drives the elapsed
// clock and the penalty countdown.
type tickMsg time.Time

// advanceMsg is sent shortly after a correct answer so the green flash is
// visible before the next card appears.
type advanceMsg struct{}
