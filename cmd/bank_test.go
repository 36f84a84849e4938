package cmd

import (
	"testing"
	"unicode/utf8"
)

func TestClipText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short untouched", "What is fiscal policy?", 50, "What is fiscal policy?"},
		{"long ascii clipped", "aaaaaa", 4, "aaaa…"},
		{"multi-byte clipped on rune boundary", "अनुच्छेद ३५६ किससे संबंधित है?", 8, "अनुच्छेद…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clipText(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("clipText(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("clipText(%q, %d) produced invalid UTF-8", tt.in, tt.max)
			}
		})
	}
}
