package speech

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	perrors "github.com/parley/parley/internal/errors"
)

func TestVoiceStyles(t *testing.T) {
	styles := VoiceStyles()
	if len(styles) != 6 {
		t.Fatalf("len(VoiceStyles()) = %d, want 6", len(styles))
	}
	for _, s := range styles {
		if !IsValidStyle(string(s)) {
			t.Errorf("IsValidStyle(%q) = false", s)
		}
		if s.Label() == "" || s.Label() == string(s) {
			t.Errorf("style %q has no display label", s)
		}
	}
	if IsValidStyle("operatic-tenor") {
		t.Error("unknown style accepted")
	}
}

func TestSynthesize(t *testing.T) {
	m := &MockSynthesizer{Latency: 0}

	clip, err := m.Synthesize(context.Background(), "tell me a story", VoicePodcastHost)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if !strings.HasPrefix(clip.Ref, "audio://") {
		t.Errorf("clip ref = %q, want audio:// prefix", clip.Ref)
	}
	if !strings.Contains(clip.Script, "tell me a story") {
		t.Errorf("script = %q should contain the prompt", clip.Script)
	}
}

func TestSynthesizeUnknownStyle(t *testing.T) {
	m := &MockSynthesizer{Latency: 0}
	_, err := m.Synthesize(context.Background(), "x", VoiceStyle("whisper"))
	if !perrors.Is(err, perrors.KindInvalid) {
		t.Errorf("err = %v, want KindInvalid", err)
	}
}

func TestSynthesizeFailure(t *testing.T) {
	m := &MockSynthesizer{Latency: 0, Err: errors.New("tts down")}
	_, err := m.Synthesize(context.Background(), "x", VoiceRobotic)
	if !perrors.Is(err, perrors.KindAudio) {
		t.Errorf("err = %v, want KindAudio", err)
	}
}

func TestRecognizerUnsupported(t *testing.T) {
	r := &MockRecognizer{Supported: false}
	if r.Available() {
		t.Error("Available() = true for unsupported host")
	}
	_, err := r.Start(context.Background())
	if !perrors.Is(err, perrors.KindCapability) {
		t.Errorf("err = %v, want KindCapability", err)
	}
}

func TestRecognizerPermissionDenied(t *testing.T) {
	r := &MockRecognizer{Supported: true, DenyPermission: true}
	_, err := r.Start(context.Background())
	if !perrors.Is(err, perrors.KindPermission) {
		t.Errorf("err = %v, want KindPermission", err)
	}
}

func TestRecognizerInterimThenFinal(t *testing.T) {
	r := &MockRecognizer{
		Supported:  true,
		Transcript: "hello world",
		WordDelay:  time.Millisecond,
	}

	sess, err := r.Start(context.Background())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	var interim int
	var final string
	for res := range sess.Results() {
		switch res.Kind {
		case ResultInterim:
			interim++
		case ResultFinal:
			final = res.Text
		}
	}

	if interim != 2 {
		t.Errorf("interim results = %d, want 2", interim)
	}
	if final != "hello world" {
		t.Errorf("final = %q, want %q", final, "hello world")
	}
	if sess.Err() != nil {
		t.Errorf("Err() = %v, want nil", sess.Err())
	}
}

func TestRecognizerStopEndsSession(t *testing.T) {
	r := &MockRecognizer{
		Supported:  true,
		Transcript: "one two three four five",
		WordDelay:  time.Hour,
	}

	sess, err := r.Start(context.Background())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	sess.Stop()
	sess.Stop() // idempotent

	select {
	case _, open := <-sess.Results():
		if open {
			t.Error("result delivered after Stop")
		}
	case <-time.After(time.Second):
		t.Error("Results channel not closed after Stop")
	}
}

func TestRecognizerRuntimeError(t *testing.T) {
	r := &MockRecognizer{
		Supported:  true,
		Transcript: "oops",
		WordDelay:  time.Millisecond,
		Err:        errors.New("decoder crashed"),
	}

	sess, err := r.Start(context.Background())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	for range sess.Results() {
	}
	if !perrors.Is(sess.Err(), perrors.KindAudio) {
		t.Errorf("Err() = %v, want KindAudio", sess.Err())
	}
}
