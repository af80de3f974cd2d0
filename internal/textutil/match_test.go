package textutil

import "testing"

func TestContainsFold(t *testing.T) {
	tests := []struct {
		name  string
		field string
		query string
		want  bool
	}{
		{"exact", "Leonardo DiCaprio", "Leonardo DiCaprio", true},
		{"case insensitive", "Leonardo DiCaprio, Kate Winslet", "dicaprio", true},
		{"unicode fold", "ÉCOLE Films", "école", true},
		{"no match", "Shah Rukh Khan", "DiCaprio", false},
		{"blank query", "Shah Rukh Khan", "   ", false},
		{"blank field", "", "khan", false},
		{"trims query", "Shah Rukh Khan", "  rukh ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsFold(tt.field, tt.query); got != tt.want {
				t.Errorf("ContainsFold(%q, %q) = %v, want %v", tt.field, tt.query, got, tt.want)
			}
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"파이썬":            "파이썬",
		"go/rust: tips?": "go-rust- tips",
		"  spaced  ":     "spaced",
		"":               "",
		`a"b<c>d|e\f*g`:  "abcde-f-g",
		"tab\there":      "tabhere",
	}
	for in, want := range tests {
		if got := SanitizeFileName(in); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
