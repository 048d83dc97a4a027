package ai

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func contentText(c *genai.Content) string {
	var out string
	for _, p := range c.Parts {
		if t, ok := p.(genai.Text); ok {
			out += string(t)
		}
	}
	return out
}

func TestBuildHistoryAlternatesRoles(t *testing.T) {
	history := []ChatMessage{
		{Author: "alice", Content: "hello"},
		{Author: "bob", Content: "hi there"},
		{Content: "Hello both of you!", FromBot: true},
		{Author: "alice", Content: "what can you do?"},
	}

	contents := buildHistory(history)
	if len(contents) != 3 {
		t.Fatalf("contents = %d, want 3 (consecutive user messages merged)", len(contents))
	}

	wantRoles := []string{"user", "model", "user"}
	for i, c := range contents {
		if c.Role != wantRoles[i] {
			t.Errorf("contents[%d].Role = %q, want %q", i, c.Role, wantRoles[i])
		}
	}

	merged := contentText(contents[0])
	if merged != "alice: hello\nbob: hi there" {
		t.Errorf("merged user turn = %q", merged)
	}
	if got := contentText(contents[1]); got != "Hello both of you!" {
		t.Errorf("model turn = %q", got)
	}
}

func TestBuildHistoryDropsLeadingBotMessages(t *testing.T) {
	history := []ChatMessage{
		{Content: "I said this earlier", FromBot: true},
		{Author: "alice", Content: "a question"},
	}

	contents := buildHistory(history)
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	if contents[0].Role != "user" {
		t.Errorf("first role = %q, want user", contents[0].Role)
	}
}

func TestBuildHistoryEmpty(t *testing.T) {
	if got := buildHistory(nil); got != nil {
		t.Errorf("buildHistory(nil) = %v, want nil", got)
	}
}
