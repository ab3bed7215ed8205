package genai

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockGenerateDeterministic(t *testing.T) {
	c := &MockClient{Latency: 0}
	ctx := context.Background()

	first, err := c.Generate(ctx, &Request{Prompt: "hello", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if first.Content == "" {
		t.Fatal("empty reply")
	}
	if first.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", first.Model)
	}

	second, err := c.Generate(ctx, &Request{Prompt: "hello"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if first.Content != second.Content {
		t.Error("same prompt should yield same canned reply")
	}
}

func TestMockGenerateErr(t *testing.T) {
	want := errors.New("boom")
	c := &MockClient{Latency: 0, Err: want}

	_, err := c.Generate(context.Background(), &Request{Prompt: "x"})
	if !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
}

func TestMockGenerateRespectsContext(t *testing.T) {
	c := &MockClient{Latency: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Generate(ctx, &Request{Prompt: "x"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
