package events

import "testing"

func TestStripBotMention(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain mention", "<@42> hello there", "hello there"},
		{"nickname mention", "<@!42> hello", "hello"},
		{"mention in middle", "hey <@42> what's up", "hey  what's up"},
		{"bare mention", "<@42>", ""},
		{"other user untouched", "<@99> hi", "<@99> hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripBotMention(tt.content, "42"); got != tt.want {
				t.Errorf("stripBotMention(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
