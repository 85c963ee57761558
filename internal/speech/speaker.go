// Package speech is the audio side-channel: fire-and-forget text-to-speech
// with a latest-wins queue, so a new playback request cancels any in-flight
// one and overlapping audio never occurs.
package speech

import (
	"context"
	"sync"
)

// Lang tags an utterance's language for the synthesizer.
type Lang string

const (
	LangChinese Lang = "zh-CN"
	LangEnglish Lang = "en-US"
)

// Utterance is one piece of text to speak.
type Utterance struct {
	Text string
	Lang Lang
}

// Synthesizer converts an utterance to playable audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, u Utterance) ([]byte, error)
}

// Player plays synthesized audio to completion or context cancellation.
type Player interface {
	Play(ctx context.Context, audio []byte) error
}

// Speaker serializes speech requests through a single worker. Speak and
// SpeakSequence never block the caller and never report errors: audio is a
// side effect, not part of the session contract.
type Speaker struct {
	synth  Synthesizer
	player Player

	mu     sync.Mutex
	cancel context.CancelFunc

	jobs chan []Utterance
	done chan struct{}
	once sync.Once
}

// NewSpeaker starts the playback worker.
func NewSpeaker(synth Synthesizer, player Player) *Speaker {
	s := &Speaker{
		synth:  synth,
		player: player,
		jobs:   make(chan []Utterance, 1),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

// Speak requests a single utterance, replacing any in-flight playback.
func (s *Speaker) Speak(u Utterance) {
	s.enqueue([]Utterance{u})
}

// SpeakSequence requests a scripted sequence played in order (the
// reinforcement flow: Chinese, then English). The sequence replaces any
// in-flight playback but is itself uninterrupted unless replaced.
func (s *Speaker) SpeakSequence(us ...Utterance) {
	if len(us) == 0 {
		return
	}
	s.enqueue(us)
}

// Close cancels in-flight playback and stops the worker.
func (s *Speaker) Close() {
	s.once.Do(func() {
		s.cancelCurrent()
		close(s.jobs)
		<-s.done
	})
}

func (s *Speaker) enqueue(batch []Utterance) {
	s.cancelCurrent()

	// Latest wins: drop a queued-but-unstarted batch before replacing it.
	select {
	case <-s.jobs:
	default:
	}
	select {
	case s.jobs <- batch:
	default:
	}
}

func (s *Speaker) cancelCurrent() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
}

func (s *Speaker) run() {
	defer close(s.done)
	for batch := range s.jobs {
		ctx, cancel := context.WithCancel(context.Background())
		s.mu.Lock()
		s.cancel = cancel
		s.mu.Unlock()

		s.play(ctx, batch)
		cancel()
	}
}

func (s *Speaker) play(ctx context.Context, batch []Utterance) {
	for _, u := range batch {
		if ctx.Err() != nil {
			return
		}
		audio, err := s.synth.Synthesize(ctx, u)
		if err != nil {
			return
		}
		if err := s.player.Play(ctx, audio); err != nil {
			return
		}
	}
}
