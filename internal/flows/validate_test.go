package flows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"100", 100, true},
		{"100.5", 100.5, true},
		{"100,5", 100.5, true},
		{" 0,25 ", 0.25, true},
		{"-3", -3, true},
		{"1e3", 1000, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12abc", 0, false},
		{"10 000", 0, false},
		{"1,000.5", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAmount(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}

func TestNormalizeAccount(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"+7 700 123 45 67", "+77001234567", true},
		{"87001234567", "87001234567", true},
		{"8 (700) 123-45-67", "87001234567", true},
		{"4400 4300 1234 5678", "4400430012345678", true},
		{"4400-4300-1234-5678", "4400430012345678", true},
		{"123", "", false},
		{"not a number", "", false},
		{"+1 - - - - - - - - -", "", false}, // shape passes, too few digits remain
		{"++77001234567", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeAccount(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
