// Package errors provides structured error types for the Parley application.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindPermission
	KindCapability
	KindTransport
	KindConfig
	KindAudio
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindPermission:
		return "permission denied"
	case KindCapability:
		return "capability unavailable"
	case KindTransport:
		return "transport error"
	case KindConfig:
		return "configuration error"
	case KindAudio:
		return "audio error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for Parley.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Conversation errors

func ConversationNotFound(id string) error {
	return E(Op("chat.Get"), KindNotFound, fmt.Sprintf("conversation %s not found", id))
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Generation errors

func GenerationFailed(conversationID string, err error) error {
	return E(Op("genai.Generate"), KindTransport, fmt.Sprintf("failed to generate reply for conversation %s", conversationID), err)
}

// Speech errors

func VoiceUnsupported() error {
	return E(Op("speech.Start"), KindCapability, "voice input is not available in this environment")
}

func MicrophoneDenied(err error) error {
	return E(Op("speech.Start"), KindPermission, "microphone access denied", err)
}

func RecognitionFailed(err error) error {
	return E(Op("speech.Listen"), KindAudio, "speech recognition failed", err)
}

func SynthesisFailed(err error) error {
	return E(Op("speech.Synthesize"), KindAudio, "audio generation failed", err)
}

// Export errors

func ExportFailed(format string, err error) error {
	return E(Op("export.Write"), KindInvalid, fmt.Sprintf("failed to export as %s", format), err)
}
