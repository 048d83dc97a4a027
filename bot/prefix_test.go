package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestMatchPrefix(t *testing.T) {
	const botID = "111222333"

	tests := []struct {
		name     string
		content  string
		prefix   string
		wantRest string
		wantOK   bool
	}{
		{name: "custom prefix", content: "xping", prefix: "x", wantRest: "ping", wantOK: true},
		{name: "custom prefix with args", content: "!ban @user spam", prefix: "!", wantRest: "ban @user spam", wantOK: true},
		{name: "multi char prefix", content: "l!help", prefix: "l!", wantRest: "help", wantOK: true},
		{name: "mention form", content: "<@111222333> ping", prefix: "x", wantRest: "ping", wantOK: true},
		{name: "nickname mention form", content: "<@!111222333> ping", prefix: "x", wantRest: "ping", wantOK: true},
		{name: "bare mention", content: "<@111222333>", prefix: "x", wantRest: "", wantOK: true},
		{name: "no prefix", content: "ping", prefix: "x", wantRest: "", wantOK: false},
		{name: "prefix not at start", content: "say xping", prefix: "x", wantRest: "", wantOK: false},
		{name: "other user mention", content: "<@999> ping", prefix: "x", wantRest: "", wantOK: false},
		{name: "empty content", content: "", prefix: "x", wantRest: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, ok := matchPrefix(tt.content, tt.prefix, botID)
			if ok != tt.wantOK {
				t.Fatalf("matchPrefix(%q) ok = %v, want %v", tt.content, ok, tt.wantOK)
			}
			if rest != tt.wantRest {
				t.Errorf("matchPrefix(%q) rest = %q, want %q", tt.content, rest, tt.wantRest)
			}
		})
	}
}

func TestHasPermissions(t *testing.T) {
	mod := int64(discordgo.PermissionKickMembers | discordgo.PermissionBanMembers)

	tests := []struct {
		name     string
		perms    int64
		required int64
		want     bool
	}{
		{name: "exact match", perms: mod, required: mod, want: true},
		{name: "superset", perms: mod | discordgo.PermissionManageMessages, required: mod, want: true},
		{name: "missing one bit", perms: discordgo.PermissionKickMembers, required: mod, want: false},
		{name: "no perms", perms: 0, required: mod, want: false},
		{name: "nothing required", perms: 0, required: 0, want: true},
		{name: "administrator bypasses", perms: discordgo.PermissionAdministrator, required: mod, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPermissions(tt.perms, tt.required); got != tt.want {
				t.Errorf("HasPermissions(%#x, %#x) = %v, want %v", tt.perms, tt.required, got, tt.want)
			}
		})
	}
}
