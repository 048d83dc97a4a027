package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("LOGIQ_TEST_TOKEN", "abc123")
	t.Setenv("LOGIQ_TEST_EMPTY", "")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"set variable", "${LOGIQ_TEST_TOKEN}", "abc123"},
		{"embedded", "Bot ${LOGIQ_TEST_TOKEN}!", "Bot abc123!"},
		{"unset keeps placeholder", "${LOGIQ_TEST_UNSET_XYZ}", "${LOGIQ_TEST_UNSET_XYZ}"},
		{"empty but set", "a${LOGIQ_TEST_EMPTY}b", "ab"},
		{"no placeholder", "plain text", "plain text"},
		{"multiple", "${LOGIQ_TEST_TOKEN}/${LOGIQ_TEST_TOKEN}", "abc123/abc123"},
	}
	for _, tt := range tests {
		if got := ExpandEnv(tt.input); got != tt.want {
			t.Errorf("%s: ExpandEnv(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
		}
	}
}

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		prefix  string
		wantErr bool
	}{
		{"x", false},
		{"!", false},
		{"x!", false},
		{"logiq", false},
		{"", true},
		{"toolong", true},
		{"/", true},
		{"/x", true},
		{"@", true},
		{"#", true},
	}
	for _, tt := range tests {
		err := ValidatePrefix(tt.prefix)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePrefix(%q) error = %v, wantErr %v", tt.prefix, err, tt.wantErr)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("LOGIQ_TEST_LOAD_TOKEN", "token-from-env")
	os.Unsetenv("DISCORD_BOT_TOKEN")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
bot:
  token: ${LOGIQ_TEST_LOAD_TOKEN}
  prefix: "x"
database:
  path: "test.db"
web:
  enabled: false
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if err := Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if Cfg.Bot.Token != "token-from-env" {
		t.Errorf("token = %q, want %q", Cfg.Bot.Token, "token-from-env")
	}
	if Cfg.Bot.Prefix != "x" {
		t.Errorf("prefix = %q, want %q", Cfg.Bot.Prefix, "x")
	}
	if Cfg.Database.Path != "test.db" {
		t.Errorf("database path = %q, want %q", Cfg.Database.Path, "test.db")
	}
	// 既定値の確認
	if Cfg.Logging.Level != "info" {
		t.Errorf("logging level = %q, want default %q", Cfg.Logging.Level, "info")
	}
	if Cfg.AI.Model != "gemini-1.5-flash" {
		t.Errorf("ai model = %q, want default", Cfg.AI.Model)
	}
}

func TestLoadTokenOverride(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "override-token")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
bot:
  token: "file-token"
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if err := Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if Cfg.Bot.Token != "override-token" {
		t.Errorf("token = %q, want env override %q", Cfg.Bot.Token, "override-token")
	}
}
