package textparse

import "testing"

func TestParseAmerican(t *testing.T) {
	tests := []struct {
		token string
		want  float64
		ok    bool
	}{
		{"+600", 7.0, true},
		{"+100", 2.0, true},
		{"+150", 2.5, true},
		{"-190", 1.526, true},
		{"-100", 2.0, true},
		{"-110", 1.909, true},
		{"2.5", 2.5, true}, // already decimal
		{"abc", 0, false},
		{"", 0, false},
		{"+", 0, false},
		{"-", 0, false},
		{"+0", 0, false},
		{"-0", 0, false},
		{"+abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAmerican(tt.token)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseAmerican(%q) = (%v, %v), want (%v, %v)",
				tt.token, got, ok, tt.want, tt.ok)
		}
	}
}
