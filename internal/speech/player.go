package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// playerCandidates are known MP3-capable command line players, tried in
// order. Each entry is the binary plus the flags that make it play one file
// and exit without opening a window.
var playerCandidates = [][]string{
	{"afplay"},
	{"mpg123", "-q"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"mpv", "--no-video", "--really-quiet"},
}

// ExecPlayer plays audio by shelling out to an installed player binary.
type ExecPlayer struct {
	command []string
}

var _ Player = (*ExecPlayer)(nil)

// NewExecPlayer locates the first available player binary.
func NewExecPlayer() (*ExecPlayer, error) {
	for _, candidate := range playerCandidates {
		if _, err := exec.LookPath(candidate[0]); err == nil {
			return &ExecPlayer{command: candidate}, nil
		}
	}
	return nil, fmt.Errorf("no audio player found (tried afplay, mpg123, ffplay, mpv)")
}

// Play writes the audio to a temp file and runs the player. Cancelling the
// context kills the player process, cutting the audio off immediately.
func (p *ExecPlayer) Play(ctx context.Context, audio []byte) error {
	f, err := os.CreateTemp("", "quickcard-*.mp3")
	if err != nil {
		return fmt.Errorf("create temp audio file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(audio); err != nil {
		f.Close()
		return fmt.Errorf("write audio: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	args := append(append([]string{}, p.command[1:]...), path)
	cmd := exec.CommandContext(ctx, p.command[0], args...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", p.command[0], err)
	}
	return nil
}
