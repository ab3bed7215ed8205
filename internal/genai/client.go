// Package genai abstracts the text-generation service behind a small client
// interface. The UI only needs a prompt-in, text-out round trip; the default
// build wires a mock client so the app runs without credentials.
package genai

import "context"

// Request is a single generation round trip.
type Request struct {
	Prompt string
	Model  string
}

// Response carries the generated text.
type Response struct {
	Content   string
	Model     string
	LatencyMs int64
}

// Client is the text-generation service.
type Client interface {
	// Name returns the provider name for logging.
	Name() string

	// Generate produces a reply for the prompt. A single failed call is
	// surfaced immediately; there is no retry policy.
	Generate(ctx context.Context, req *Request) (*Response, error)
}
