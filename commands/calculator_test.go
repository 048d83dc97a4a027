package commands

import "testing"

func TestEvalExpression(t *testing.T) {
	tests := []struct {
		expr    string
		want    string
		wantErr bool
	}{
		{expr: "1 + 2", want: "3"},
		{expr: "(10 + 20) * 3 / 2", want: "45"},
		{expr: "10 / 4", want: "2.5"},
		{expr: "2 ** 10", want: "1024"},
		{expr: "1 > 2", want: "false"},
		{expr: "-5 + 3", want: "-2"},
		{expr: "1 +", wantErr: true},
		{expr: "foo(", wantErr: true},
	}

	for _, tt := range tests {
		got, err := evalExpression(tt.expr)
		if tt.wantErr {
			if err == nil {
				t.Errorf("evalExpression(%q) expected an error, got %q", tt.expr, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("evalExpression(%q): %v", tt.expr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("evalExpression(%q) = %q, want %q", tt.expr, got, tt.want)
		}
	}
}
