package textparse

import "testing"

func TestIsPercentOnlyLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"45%45%", true},
		{"28%28%", true},
		{"45%", true},
		{"45", false}, // bare number, no percent sign
		{"Tue, 2 Dec 19:30\tDraw\t28%", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isPercentOnlyLine(tt.line); got != tt.want {
			t.Errorf("isPercentOnlyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestIsNoiseLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Sky Sports+Disney+ Hotstar\tLeaning Bournemouth", true},
		{"Forecast:\tLeaning Wigan", true},
		{"Sky Sports+\tCould go either way", true},
		{"Backing Arsenal", true},
		{"Leaning Chelsea", true},
		{"Vitality Stadium\tEverton\tEverton\t27%", false},
		{"Prem\tPremier League\tBournemouth\tBournemouth\t45%", false},
	}
	for _, tt := range tests {
		if got := isNoiseLine(tt.line); got != tt.want {
			t.Errorf("isNoiseLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestIsTeamCandidate(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Arsenal", true},
		{"Manchester City", true},
		{"62%", false},
		{"+120", false},
		{"-130", false},
		{"7", false},
		{"X", false}, // single rune
		{"BetRivers", false},
		{"DraftKings", false},
	}
	for _, tt := range tests {
		if got := isTeamCandidate(tt.line); got != tt.want {
			t.Errorf("isTeamCandidate(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestNumericOrPercent(t *testing.T) {
	tests := []struct {
		field string
		want  bool
	}{
		{"45%", true},
		{"45", true},
		{"Draw", false},
		{"Everton", false},
		{"%", false},
	}
	for _, tt := range tests {
		if got := numericOrPercent(tt.field); got != tt.want {
			t.Errorf("numericOrPercent(%q) = %v, want %v", tt.field, got, tt.want)
		}
	}
}

func TestDrawPercent(t *testing.T) {
	tests := []struct {
		line string
		want float64
		ok   bool
	}{
		{"Tue, 2 Dec 19:30\tDraw\t28%", 0.28, true},
		{"Draw 19%", 0.19, true},
		{"45%45%", 0, false},
		{"Everton 27%", 0, false},
	}
	for _, tt := range tests {
		got, ok := drawPercent(tt.line)
		if ok != tt.ok || !floatEq(got, tt.want) {
			t.Errorf("drawPercent(%q) = (%v, %v), want (%v, %v)", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"Prem\tPremier League\tBournemouth\tBournemouth\t45%",
			[]string{"Prem", "Premier League", "Bournemouth", "Bournemouth", "45%"}},
		{"Prem  Premier League  Bournemouth  45%",
			[]string{"Prem", "Premier League", "Bournemouth", "45%"}},
		{"one\t\ttwo", []string{"one", "two"}},
	}
	for _, tt := range tests {
		got := splitFields(tt.line)
		if len(got) != len(tt.want) {
			t.Errorf("splitFields(%q) = %v, want %v", tt.line, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitFields(%q)[%d] = %q, want %q", tt.line, i, got[i], tt.want[i])
			}
		}
	}
}
