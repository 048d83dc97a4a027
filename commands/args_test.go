package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func banDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name: "ban",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Required: false},
		},
	}
}

func purgeDef() *discordgo.ApplicationCommand {
	min := float64(1)
	return &discordgo.ApplicationCommand{
		Name: "purge",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:     discordgo.ApplicationCommandOptionInteger,
				Name:     "count",
				Required: true,
				MinValue: &min,
				MaxValue: 100,
			},
		},
	}
}

func socialDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name: "social",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type: discordgo.ApplicationCommandOptionSubCommand,
				Name: "add",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "url", Required: true},
					{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Required: true},
				},
			},
			{
				Type: discordgo.ApplicationCommandOptionSubCommand,
				Name: "list",
			},
		},
	}
}

func TestParseArgsPositional(t *testing.T) {
	def := banDef()

	sub, opts, err := parseArgs(def, []string{"<@123456789012345678>", "spamming", "in", "general"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if sub != "" {
		t.Errorf("sub = %q, want empty", sub)
	}
	if got := opts["user"].userID; got != "123456789012345678" {
		t.Errorf("user = %q, want 123456789012345678", got)
	}
	if got := opts["reason"].str; got != "spamming in general" {
		t.Errorf("reason = %q, want greedy tail", got)
	}
}

func TestParseArgsOptionalOmitted(t *testing.T) {
	def := banDef()

	_, opts, err := parseArgs(def, []string{"123456789012345678"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if _, ok := opts["reason"]; ok {
		t.Error("reason should be absent when omitted")
	}
}

func TestParseArgsMissingRequired(t *testing.T) {
	def := banDef()

	_, _, err := parseArgs(def, nil)
	var missing *MissingArgumentError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingArgumentError", err)
	}
	if missing.Option != "user" {
		t.Errorf("Option = %q, want user", missing.Option)
	}
}

func TestParseArgsIntegerBounds(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    int64
		wantErr bool
	}{
		{name: "valid", token: "50", want: 50},
		{name: "lower bound", token: "1", want: 1},
		{name: "upper bound", token: "100", want: 100},
		{name: "too low", token: "0", wantErr: true},
		{name: "too high", token: "101", wantErr: true},
		{name: "not a number", token: "many", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, opts, err := parseArgs(purgeDef(), []string{tt.token})
			if tt.wantErr {
				var invalid *InvalidArgumentError
				if !errors.As(err, &invalid) {
					t.Fatalf("err = %v, want InvalidArgumentError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseArgs: %v", err)
			}
			if got := opts["count"].i; got != tt.want {
				t.Errorf("count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseArgsStringMaxLength(t *testing.T) {
	def := &discordgo.ApplicationCommand{
		Name: "calc",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "expression", Required: true, MaxLength: 10},
		},
	}

	_, opts, err := parseArgs(def, []string{"1+2+3"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if got := opts["expression"].str; got != "1+2+3" {
		t.Errorf("expression = %q, want 1+2+3", got)
	}

	_, _, err = parseArgs(def, []string{"1+2+3+4+5+6+7"})
	var invalid *InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidArgumentError", err)
	}
	if invalid.Option != "expression" {
		t.Errorf("Option = %q, want expression", invalid.Option)
	}
}

func TestParseArgsOptionalTypeSkip(t *testing.T) {
	max := float64(7)
	min := float64(0)
	def := &discordgo.ApplicationCommand{
		Name: "ban",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Required: true},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "delete_days", Required: false, MinValue: &min, MaxValue: max},
			{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Required: false},
		},
	}

	t.Run("token skips optional int", func(t *testing.T) {
		_, opts, err := parseArgs(def, []string{"123456789012345678", "spamming", "hard"})
		if err != nil {
			t.Fatalf("parseArgs: %v", err)
		}
		if _, ok := opts["delete_days"]; ok {
			t.Error("delete_days should be absent")
		}
		if got := opts["reason"].str; got != "spamming hard" {
			t.Errorf("reason = %q, want %q", got, "spamming hard")
		}
	})

	t.Run("numeric token fills optional int", func(t *testing.T) {
		_, opts, err := parseArgs(def, []string{"123456789012345678", "3", "spamming"})
		if err != nil {
			t.Fatalf("parseArgs: %v", err)
		}
		if got := opts["delete_days"].i; got != 3 {
			t.Errorf("delete_days = %d, want 3", got)
		}
		if got := opts["reason"].str; got != "spamming" {
			t.Errorf("reason = %q, want spamming", got)
		}
	})

	t.Run("out of range still errors", func(t *testing.T) {
		_, _, err := parseArgs(def, []string{"123456789012345678", "9", "spamming"})
		var invalid *InvalidArgumentError
		if !errors.As(err, &invalid) {
			t.Fatalf("err = %v, want InvalidArgumentError", err)
		}
	})
}

func TestParseArgsSubcommand(t *testing.T) {
	def := socialDef()

	sub, opts, err := parseArgs(def, []string{"add", "https://example.com/feed.xml", "<#987654321098765432>"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if sub != "add" {
		t.Errorf("sub = %q, want add", sub)
	}
	if got := opts["url"].str; got != "https://example.com/feed.xml" {
		t.Errorf("url = %q", got)
	}
	if got := opts["channel"].channelID; got != "987654321098765432" {
		t.Errorf("channel = %q", got)
	}
}

func TestParseArgsSubcommandCaseInsensitive(t *testing.T) {
	sub, _, err := parseArgs(socialDef(), []string{"LIST"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if sub != "list" {
		t.Errorf("sub = %q, want list", sub)
	}
}

func TestParseArgsUnknownSubcommand(t *testing.T) {
	_, _, err := parseArgs(socialDef(), []string{"destroy"})
	var unknown *UnknownSubcommandError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownSubcommandError", err)
	}
	if unknown.Given != "destroy" {
		t.Errorf("Given = %q", unknown.Given)
	}
	if len(unknown.Valid) != 2 {
		t.Errorf("Valid = %v, want 2 entries", unknown.Valid)
	}
}

func TestParseArgsNoSubcommandToken(t *testing.T) {
	_, _, err := parseArgs(socialDef(), nil)
	var missing *MissingArgumentError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingArgumentError", err)
	}
}

func TestParseArgsChoices(t *testing.T) {
	def := &discordgo.ApplicationCommand{
		Name: "module",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:     discordgo.ApplicationCommandOptionString,
				Name:     "action",
				Required: true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Enable", Value: "enable"},
					{Name: "Disable", Value: "disable"},
				},
			},
		},
	}

	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{name: "by value", token: "enable", want: "enable"},
		{name: "by display name", token: "Disable", want: "disable"},
		{name: "case insensitive", token: "ENABLE", want: "enable"},
		{name: "not a choice", token: "remove", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, opts, err := parseArgs(def, []string{tt.token})
			if tt.wantErr {
				var invalid *InvalidArgumentError
				if !errors.As(err, &invalid) {
					t.Fatalf("err = %v, want InvalidArgumentError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseArgs: %v", err)
			}
			if got := opts["action"].str; got != tt.want {
				t.Errorf("action = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseArgsBoolean(t *testing.T) {
	def := &discordgo.ApplicationCommand{
		Name: "autorole",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionBoolean, Name: "enabled", Required: true},
		},
	}

	tests := []struct {
		token   string
		want    bool
		wantErr bool
	}{
		{token: "true", want: true},
		{token: "yes", want: true},
		{token: "on", want: true},
		{token: "1", want: true},
		{token: "false", want: false},
		{token: "no", want: false},
		{token: "off", want: false},
		{token: "0", want: false},
		{token: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			_, opts, err := parseArgs(def, []string{tt.token})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseArgs: %v", err)
			}
			if got := opts["enabled"].b; got != tt.want {
				t.Errorf("enabled = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractID(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		re     string
		want   string
		wantOK bool
	}{
		{name: "user mention", raw: "<@123456789012345678>", re: "user", want: "123456789012345678", wantOK: true},
		{name: "nickname mention", raw: "<@!123456789012345678>", re: "user", want: "123456789012345678", wantOK: true},
		{name: "raw id", raw: "123456789012345678", re: "user", want: "123456789012345678", wantOK: true},
		{name: "channel mention", raw: "<#123456789012345678>", re: "channel", want: "123456789012345678", wantOK: true},
		{name: "role mention", raw: "<@&123456789012345678>", re: "role", want: "123456789012345678", wantOK: true},
		{name: "too short", raw: "12345", re: "user", wantOK: false},
		{name: "not an id", raw: "someone", re: "user", wantOK: false},
		{name: "channel mention against user pattern", raw: "<#123456789012345678>", re: "user", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := userMentionPattern
			switch tt.re {
			case "channel":
				re = channelMentionPattern
			case "role":
				re = roleMentionPattern
			}
			got, ok := extractID(tt.raw, re)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("id = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLongDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "90s", want: 90 * time.Second},
		{in: "10m", want: 10 * time.Minute},
		{in: "2h", want: 2 * time.Hour},
		{in: "1d", want: 24 * time.Hour},
		{in: "1d2h30m", want: 26*time.Hour + 30*time.Minute},
		{in: "7D", want: 7 * 24 * time.Hour},
		{in: "", wantErr: true},
		{in: "soon", wantErr: true},
		{in: "10", wantErr: true},
		{in: "1d tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLongDuration(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLongDuration(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLongDuration(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLongDuration(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
