package speech

import (
	"context"
	"strings"
	"sync"
	"time"

	perrors "github.com/parley/parley/internal/errors"
	"github.com/parley/parley/internal/logger"
)

// ResultKind distinguishes interim recognition hypotheses from the final
// transcript.
type ResultKind int

const (
	ResultInterim ResultKind = iota
	ResultFinal
)

// Result is one event from a recognition session. Receipt of a final result
// means the session is ending; only final text is consumed as input.
type Result struct {
	Kind ResultKind
	Text string
}

// Session is a live recognition capture. Results is closed when the session
// ends for any reason; Err reports why, if the end was not a clean stop.
type Session interface {
	Results() <-chan Result
	Err() error
	// Stop releases the microphone and cancels pending callbacks.
	// Safe to call more than once.
	Stop()
}

// Recognizer starts speech-to-text capture sessions.
type Recognizer interface {
	// Available reports whether the host environment supports recognition.
	Available() bool
	// Start acquires the microphone and begins a capture session.
	Start(ctx context.Context) (Session, error)
}

// MockRecognizer simulates the host speech facility: it emits the words of a
// scripted transcript as interim results, then the whole line as final.
type MockRecognizer struct {
	// Supported=false simulates a host without speech recognition.
	Supported bool
	// DenyPermission simulates a refused microphone prompt.
	DenyPermission bool
	// Transcript is the text "heard" by the session.
	Transcript string
	// WordDelay is the pause between interim results.
	WordDelay time.Duration
	// Err, when set, aborts the session mid-capture with this error.
	Err error
}

// NewMockRecognizer returns a supported recognizer with a stock transcript.
func NewMockRecognizer() *MockRecognizer {
	return &MockRecognizer{
		Supported:  true,
		Transcript: "this is a voice message",
		WordDelay:  300 * time.Millisecond,
	}
}

// Available reports simulated host support.
func (r *MockRecognizer) Available() bool {
	return r.Supported
}

// Start begins a mock capture session.
func (r *MockRecognizer) Start(ctx context.Context) (Session, error) {
	if !r.Supported {
		return nil, perrors.VoiceUnsupported()
	}
	if r.DenyPermission {
		return nil, perrors.MicrophoneDenied(nil)
	}

	sessCtx, cancel := context.WithCancel(ctx)
	s := &mockSession{
		results: make(chan Result, 8),
		cancel:  cancel,
	}
	logger.Log("Speech: Recognition session started")
	go s.run(sessCtx, r)
	return s, nil
}

type mockSession struct {
	results chan Result
	cancel  context.CancelFunc

	mu  sync.Mutex
	err error

	stopOnce sync.Once
}

func (s *mockSession) Results() <-chan Result {
	return s.results
}

func (s *mockSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *mockSession) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		logger.Log("Speech: Recognition session stopped")
	})
}

func (s *mockSession) run(ctx context.Context, r *MockRecognizer) {
	defer close(s.results)
	defer s.cancel()

	words := strings.Fields(r.Transcript)
	heard := make([]string, 0, len(words))
	for _, w := range words {
		select {
		case <-ctx.Done():
			return
		case <-time.After(r.WordDelay):
		}
		heard = append(heard, w)
		s.emit(ctx, Result{Kind: ResultInterim, Text: strings.Join(heard, " ")})
	}

	if r.Err != nil {
		s.mu.Lock()
		s.err = perrors.RecognitionFailed(r.Err)
		s.mu.Unlock()
		return
	}

	s.emit(ctx, Result{Kind: ResultFinal, Text: r.Transcript})
}

func (s *mockSession) emit(ctx context.Context, res Result) {
	select {
	case s.results <- res:
	case <-ctx.Done():
	}
}
