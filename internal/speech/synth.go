package speech

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	perrors "github.com/parley/parley/internal/errors"
	"github.com/parley/parley/internal/logger"
)

// Clip is the result of audio generation: an opaque reference to a playable
// resource plus the script text that was voiced.
type Clip struct {
	Ref    string
	Script string
}

// Synthesizer turns a prompt into a spoken clip in a given voice style.
type Synthesizer interface {
	Synthesize(ctx context.Context, prompt string, style VoiceStyle) (*Clip, error)
}

// MockSynthesizer fabricates clip references after a short delay. The audio
// itself is never decoded here; the reference is opaque to the UI.
type MockSynthesizer struct {
	// Latency is how long Synthesize waits before returning.
	Latency time.Duration
	// Err, when set, makes every call fail with this error.
	Err error
}

// NewMockSynthesizer returns a mock with a generation-feeling delay.
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{Latency: 1200 * time.Millisecond}
}

// Synthesize produces a fake clip voicing the prompt in the given style.
func (m *MockSynthesizer) Synthesize(ctx context.Context, prompt string, style VoiceStyle) (*Clip, error) {
	if !IsValidStyle(string(style)) {
		return nil, perrors.E(perrors.Op("speech.Synthesize"), perrors.KindInvalid,
			fmt.Sprintf("unknown voice style: %s", style))
	}

	select {
	case <-time.After(m.Latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if m.Err != nil {
		return nil, perrors.SynthesisFailed(m.Err)
	}

	clip := &Clip{
		Ref:    "audio://" + uuid.New().String(),
		Script: fmt.Sprintf("[%s] %s", style.Label(), prompt),
	}
	logger.Log("Speech: Synthesized clip %s (style=%s)", clip.Ref, style)
	return clip, nil
}
