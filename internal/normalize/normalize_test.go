package normalize

import "testing"

func TestSearchTerm(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Author 1", "author 1"},
		{"  Author 1  ", "author 1"},
		{"Café", "cafe"},
		{"BRONTË", "bronte"},
		{"Über", "uber"},
		{"", ""},
		{"   ", ""},
		{"plain", "plain"},
		{"with\x00null", "withnull"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := SearchTerm(tt.input)
			if result != tt.expected {
				t.Errorf("SearchTerm(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
