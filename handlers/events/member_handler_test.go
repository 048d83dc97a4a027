package events

import "testing"

func TestExpandWelcome(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"both placeholders", "Welcome {user} to {server}! 🎉", "Welcome <@123> to Gopher Den! 🎉"},
		{"repeated", "{user} {user}", "<@123> <@123>"},
		{"no placeholders", "Hello there", "Hello there"},
		{"server only", "New face on {server}", "New face on Gopher Den"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandWelcome(tt.template, "<@123>", "Gopher Den"); got != tt.want {
				t.Errorf("expandWelcome(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}
