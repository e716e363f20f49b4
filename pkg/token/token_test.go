package token

import "testing"

func TestNew(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(tok) != EncodedLength {
		t.Errorf("New() length = %d, want %d", len(tok), EncodedLength)
	}
	if !IsWellFormed(tok) {
		t.Errorf("New() produced malformed token %q", tok)
	}

	other, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tok == other {
		t.Error("New() returned the same token twice")
	}
}

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "empty", token: "", want: false},
		{name: "too short", token: "abcdef", want: false},
		{name: "valid hex of right length", token: "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff", want: true},
		{name: "right length but not hex", token: "zz112233445566778899aabbccddeeff00112233445566778899aabbccddeeff", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWellFormed(tt.token); got != tt.want {
				t.Errorf("IsWellFormed(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}
