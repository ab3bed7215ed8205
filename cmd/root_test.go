package cmd

import (
	"strings"
	"testing"
)

func TestVersionTemplate(t *testing.T) {
	version, commit, date = "1.2.3", "abc123", "2026-01-01"
	got := versionTemplate()
	if !strings.Contains(got, "1.2.3") || !strings.Contains(got, "abc123") {
		t.Errorf("Expected version and commit in template, got %q", got)
	}

	commit = "none"
	got = versionTemplate()
	if strings.Contains(got, "commit") {
		t.Errorf("Expected plain template without commit info, got %q", got)
	}
}

func TestNewClient_DefaultsToMock(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	client, err := newClient()
	if err != nil {
		t.Fatalf("newClient() error: %v", err)
	}
	if client.Name() != "mock" {
		t.Errorf("Expected mock backend without an API key, got %s", client.Name())
	}
}

func TestNewClient_UsesOpenAIWithKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	client, err := newClient()
	if err != nil {
		t.Fatalf("newClient() error: %v", err)
	}
	if client.Name() != "openai" {
		t.Errorf("Expected openai backend with an API key, got %s", client.Name())
	}
}
