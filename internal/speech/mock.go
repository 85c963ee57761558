package speech

import (
	"context"
	"sync"
)

// MockSynthesizer records utterances and returns canned audio. Test helper.
type MockSynthesizer struct {
	mu        sync.Mutex
	Utterings []Utterance
}

var _ Synthesizer = (*MockSynthesizer)(nil)

func (m *MockSynthesizer) Synthesize(_ context.Context, u Utterance) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Utterings = append(m.Utterings, u)
	return []byte(u.Text), nil
}

// Seen returns a copy of the recorded utterances.
func (m *MockSynthesizer) Seen() []Utterance {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Utterance, len(m.Utterings))
	copy(out, m.Utterings)
	return out
}

// BlockingPlayer blocks until the play context is cancelled or Release is
// called, for exercising the replace-in-flight path.
type BlockingPlayer struct {
	Started chan Utterance
	release chan struct{}
	mu      sync.Mutex
	played  [][]byte
}

var _ Player = (*BlockingPlayer)(nil)

func NewBlockingPlayer() *BlockingPlayer {
	return &BlockingPlayer{
		Started: make(chan Utterance, 16),
		release: make(chan struct{}, 16),
	}
}

func (p *BlockingPlayer) Play(ctx context.Context, audio []byte) error {
	p.mu.Lock()
	p.played = append(p.played, audio)
	p.mu.Unlock()
	select {
	case p.Started <- Utterance{Text: string(audio)}:
	default:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.release:
		return nil
	}
}

// Release lets one in-flight Play call finish normally.
func (p *BlockingPlayer) Release() {
	p.release <- struct{}{}
}

// Played returns the audio payloads handed to the player so far.
func (p *BlockingPlayer) Played() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.played))
	for i, b := range p.played {
		out[i] = string(b)
	}
	return out
}
