package genai

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"
)

// MockClient is the default generation backend. It fabricates plausible
// replies after a short delay so the full send pipeline can be exercised
// without credentials or network access.
type MockClient struct {
	// Latency is how long Generate waits before replying.
	Latency time.Duration
	// Err, when set, makes every call fail with this error.
	Err error
}

// NewMockClient returns a mock with a human-feeling reply delay.
func NewMockClient() *MockClient {
	return &MockClient{Latency: 800 * time.Millisecond}
}

// Name returns the provider name.
func (c *MockClient) Name() string {
	return "mock"
}

var cannedReplies = []string{
	"That's an interesting point. Let me break it down:\n• The core idea holds up well\n• There are a couple of edge cases worth a closer look\n\nWant me to go deeper on either?",
	"Here's a quick take:\n\n**Short answer:** yes, with caveats.\n\n```example := refine(input)\n\nThe main thing to watch is how the inputs are framed.",
	"Good question. I'd approach it in three steps: clarify the goal, sketch the smallest version that works, then iterate from there.",
	"I can help with that. Could you share a bit more context about what you've tried so far?",
	"Summarizing what you said:\n- You want a clear starting point\n- You'd rather keep things simple\n\nA minimal first pass is usually the right call.",
}

// Generate returns a canned reply chosen deterministically from the prompt.
func (c *MockClient) Generate(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	select {
	case <-time.After(c.Latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if c.Err != nil {
		return nil, c.Err
	}

	h := fnv.New32a()
	fmt.Fprint(h, req.Prompt)
	reply := cannedReplies[int(h.Sum32())%len(cannedReplies)]

	return &Response{
		Content:   reply,
		Model:     req.Model,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}
