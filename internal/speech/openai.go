package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// speechSpeed slows playback slightly for learner comprehension, matching
// the 0.9 rate the web app used for speechSynthesis.
const speechSpeed = 0.9

// OpenAISynthesizer produces MP3 audio via the OpenAI speech endpoint.
// The voice handles Chinese and English input alike, so Lang is advisory.
type OpenAISynthesizer struct {
	client *openai.Client
	voice  openai.SpeechVoice
}

var _ Synthesizer = (*OpenAISynthesizer)(nil)

// NewOpenAISynthesizer builds a synthesizer from an API key.
func NewOpenAISynthesizer(apiKey string) *OpenAISynthesizer {
	return &OpenAISynthesizer{
		client: openai.NewClient(apiKey),
		voice:  openai.VoiceAlloy,
	}
}

// Synthesize requests TTS audio for the utterance.
func (o *OpenAISynthesizer) Synthesize(ctx context.Context, u Utterance) ([]byte, error) {
	res, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          u.Text,
		Voice:          o.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          speechSpeed,
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	defer res.Close()

	audio, err := io.ReadAll(res)
	if err != nil {
		return nil, fmt.Errorf("read speech response: %w", err)
	}
	return audio, nil
}

// NewFromEnv assembles a Speaker from the environment: OPENAI_API_KEY for
// synthesis and an installed audio player binary for playback. The app runs
// silent when either is missing; callers treat a nil Speaker as no audio.
func NewFromEnv() (*Speaker, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY not set")
	}
	player, err := NewExecPlayer()
	if err != nil {
		return nil, err
	}
	return NewSpeaker(NewOpenAISynthesizer(apiKey), player), nil
}
