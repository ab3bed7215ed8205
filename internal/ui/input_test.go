package ui

import (
	"strings"
	"testing"
)

func TestInputCanSubmit(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		inFlight    bool
		voiceActive bool
		want        bool
	}{
		{"plain text", "hello", false, false, true},
		{"empty draft", "", false, false, false},
		{"whitespace only", "   \n\t ", false, false, false},
		{"request in flight", "hello", true, false, false},
		{"voice capture active", "hello", false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInput()
			in.SetValue(tt.value)
			in.SetInFlight(tt.inFlight)
			if tt.voiceActive {
				in.StartVoice()
			}
			if got := in.CanSubmit(); got != tt.want {
				t.Errorf("CanSubmit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInputSubmitTrimsAndClears(t *testing.T) {
	in := NewInput()
	in.SetValue("  hello world  ")

	val, ok := in.Submit()
	if !ok {
		t.Fatal("Submit() should succeed with non-blank draft")
	}
	if val != "hello world" {
		t.Errorf("Submit() = %q, want %q", val, "hello world")
	}
	if in.Value() != "" {
		t.Errorf("draft should be cleared after submit, got %q", in.Value())
	}
}

func TestInputSubmitRejectedKeepsDraft(t *testing.T) {
	in := NewInput()
	in.SetValue("draft text")
	in.SetInFlight(true)

	if _, ok := in.Submit(); ok {
		t.Fatal("Submit() should fail while a request is in flight")
	}
	if in.Value() != "draft text" {
		t.Errorf("rejected submit should keep draft, got %q", in.Value())
	}
}

func TestInputAppendTranscript(t *testing.T) {
	in := NewInput()

	// Empty draft: transcript becomes the draft.
	in.AppendTranscript("first words")
	if in.Value() != "first words" {
		t.Errorf("Value() = %q, want %q", in.Value(), "first words")
	}

	// Non-empty draft: space-joined.
	in.AppendTranscript("more words")
	if in.Value() != "first words more words" {
		t.Errorf("Value() = %q, want %q", in.Value(), "first words more words")
	}

	// Blank transcript is a no-op.
	in.AppendTranscript("   ")
	if in.Value() != "first words more words" {
		t.Errorf("blank transcript should not change draft, got %q", in.Value())
	}
}

func TestInputVoiceModeSwallowsDraftEdits(t *testing.T) {
	in := NewInput()
	in.SetValue("kept")
	in.StartVoice()

	if !in.VoiceActive() {
		t.Fatal("StartVoice() should enter voice mode")
	}
	if in.CanSubmit() {
		t.Error("submission should be disabled during voice capture")
	}

	in.StopVoice()
	if in.VoiceActive() {
		t.Error("StopVoice() should leave voice mode")
	}
	if in.Value() != "kept" {
		t.Errorf("voice mode should not touch the draft, got %q", in.Value())
	}
}

func TestInputHeightGrowsWithContent(t *testing.T) {
	in := NewInput()
	in.SetSize(80)

	base := in.Height()
	if base != TextareaMinHeight+TextareaBorderHeight {
		t.Errorf("empty input height = %d, want %d", base, TextareaMinHeight+TextareaBorderHeight)
	}

	in.SetValue(strings.Repeat("line\n", 3) + "line")
	if in.Height() <= base {
		t.Errorf("multi-line draft should grow the input, height = %d", in.Height())
	}

	in.SetValue(strings.Repeat("line\n", 20) + "line")
	if in.Height() > TextareaMaxHeight+TextareaBorderHeight {
		t.Errorf("input height %d exceeds maximum %d", in.Height(), TextareaMaxHeight+TextareaBorderHeight)
	}
}
