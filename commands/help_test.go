package commands

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestUsageSuffix(t *testing.T) {
	tests := []struct {
		name string
		def  *discordgo.ApplicationCommand
		want string
	}{
		{
			name: "no options",
			def:  &discordgo.ApplicationCommand{Name: "ping"},
			want: "",
		},
		{
			name: "required and optional",
			def: &discordgo.ApplicationCommand{
				Name: "ban",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Required: true},
					{Type: discordgo.ApplicationCommandOptionString, Name: "reason"},
				},
			},
			want: " <user> [reason]",
		},
		{
			name: "subcommands",
			def: &discordgo.ApplicationCommand{
				Name: "social",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "add"},
					{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "remove"},
					{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "list"},
				},
			},
			want: " <add|remove|list>",
		},
	}

	for _, tt := range tests {
		if got := usageSuffix(tt.def); got != tt.want {
			t.Errorf("%s: usageSuffix = %q, want %q", tt.name, got, tt.want)
		}
	}
}
