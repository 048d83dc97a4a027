package commands

import "testing"

func TestParseEmbedColor(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "empty defaults to blurple", raw: "", want: 0x5865f2},
		{name: "named color", raw: "red", want: 0xed4245},
		{name: "named color mixed case", raw: "Purple", want: 0x9b59b6},
		{name: "hex with hash", raw: "#ff5500", want: 0xff5500},
		{name: "hex without hash", raw: "FF5500", want: 0xff5500},
		{name: "hex too short", raw: "#1234", wantErr: true},
		{name: "not a color", raw: "mauve", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEmbedColor(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseEmbedColor(%q) = %#x, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseEmbedColor(%q): %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("parseEmbedColor(%q) = %#x, want %#x", tt.raw, got, tt.want)
			}
		})
	}
}
