package models

import (
	"testing"
	"time"
)

func TestNaturalKey(t *testing.T) {
	kickoff := time.Date(2025, time.December, 2, 19, 30, 0, 0, time.UTC)

	tests := []struct {
		teamA, teamB string
		kickoff      time.Time
		want         string
	}{
		{"Bournemouth", "Everton", kickoff, "bournemouth|everton|2025-12-02"},
		{"  Bournemouth ", "EVERTON", kickoff, "bournemouth|everton|2025-12-02"},
		{"Manchester  City", "Leeds United", kickoff, "manchester city|leeds united|2025-12-02"},
		// Same calendar date with a different time of day collides on purpose.
		{"Bournemouth", "Everton", kickoff.Add(2 * time.Hour), "bournemouth|everton|2025-12-02"},
	}
	for _, tt := range tests {
		got := NaturalKey(tt.teamA, tt.teamB, tt.kickoff)
		if got != tt.want {
			t.Errorf("NaturalKey(%q, %q) = %q, want %q", tt.teamA, tt.teamB, got, tt.want)
		}
	}
}

func TestNaturalKeySeparatorInName(t *testing.T) {
	kickoff := time.Date(2025, time.December, 2, 0, 0, 0, 0, time.UTC)
	got := NaturalKey("Team|A", "B", kickoff)
	want := "team a|b|2025-12-02"
	if got != want {
		t.Errorf("NaturalKey with separator in name = %q, want %q", got, want)
	}
}

func TestImpliedProb(t *testing.T) {
	tests := []struct {
		odds float64
		want float64
	}{
		{2.0, 0.5},
		{4.0, 0.25},
		{1.0, 1.0},
		{0, 0}, // missing odds imply nothing
	}
	for _, tt := range tests {
		m := Match{OddsA: tt.odds, OddsB: tt.odds}
		if got := m.ImpliedProbA(); got != tt.want {
			t.Errorf("ImpliedProbA(odds=%v) = %v, want %v", tt.odds, got, tt.want)
		}
		if got := m.ImpliedProbB(); got != tt.want {
			t.Errorf("ImpliedProbB(odds=%v) = %v, want %v", tt.odds, got, tt.want)
		}
	}
}

func TestMatchName(t *testing.T) {
	m := Match{TeamA: Team{Name: "Arsenal"}, TeamB: Team{Name: "Chelsea"}}
	if got := m.Name(); got != "Arsenal vs Chelsea" {
		t.Errorf("Name() = %q, want %q", got, "Arsenal vs Chelsea")
	}
}
