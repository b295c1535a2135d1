package textparse

import (
	"testing"
	"time"

	"github.com/avolkov/footpred/internal/competitions"
)

func parserAt(now time.Time) *Parser {
	p := New(competitions.Default())
	p.now = func() time.Time { return now }
	return p
}

func TestResolveTabularDate(t *testing.T) {
	now := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	p := parserAt(now)

	tests := []struct {
		line string
		want time.Time
		ok   bool
	}{
		{"Tue, 2 Dec 19:30\tDraw\t28%", time.Date(2025, time.December, 2, 19, 30, 0, 0, time.UTC), true},
		{"Fri, 28 Nov 20:45", time.Date(2025, time.November, 28, 20, 45, 0, 0, time.UTC), true},
		{"Wed, 3 Dec 20:15\tDraw\t27%", time.Date(2025, time.December, 3, 20, 15, 0, 0, time.UTC), true},
		{"no date here", time.Time{}, false},
		{"Tue, 2 Dec", time.Time{}, false}, // missing time of day
	}
	for _, tt := range tests {
		got, ok := p.resolveTabularDate(tt.line)
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("resolveTabularDate(%q) = (%v, %v), want (%v, %v)",
				tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolveTabularDateYearRollover(t *testing.T) {
	// A January fixture on a board read in December belongs to next year.
	p := parserAt(time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC))

	got, ok := p.resolveTabularDate("Sat, 3 Jan 15:00")
	if !ok {
		t.Fatal("resolveTabularDate returned ok=false")
	}
	if got.Year() != 2026 {
		t.Errorf("year = %d, want 2026", got.Year())
	}
}

func TestResolveNarrativeDate(t *testing.T) {
	now := time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC)
	p := parserAt(now)

	tests := []struct {
		line string
		want time.Time
		ok   bool
	}{
		{"Nov 29, 10:00 AM ET", time.Date(2025, time.November, 29, 10, 0, 0, 0, time.UTC), true},
		{"Nov 29, 12:30 PM ET", time.Date(2025, time.November, 29, 12, 30, 0, 0, time.UTC), true},
		{"Dec 6, 3:00 PM ET", time.Date(2025, time.December, 6, 15, 0, 0, 0, time.UTC), true},
		{"Dec 6, 12:00 AM ET", time.Date(2025, time.December, 6, 0, 0, 0, 0, time.UTC), true},
		{"Upcoming", time.Time{}, false},
		{"Nov 29", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := p.resolveNarrativeDate(tt.line)
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("resolveNarrativeDate(%q) = (%v, %v), want (%v, %v)",
				tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWeekNumber(t *testing.T) {
	// ISO week 1 of 2026 starts Monday Dec 29, 2025.
	tests := []struct {
		t    time.Time
		want int
	}{
		{time.Date(2025, time.December, 2, 19, 30, 0, 0, time.UTC), 49},
		{time.Date(2025, time.December, 29, 12, 0, 0, 0, time.UTC), 1},
	}
	for _, tt := range tests {
		if got := weekNumber(tt.t); got != tt.want {
			t.Errorf("weekNumber(%v) = %d, want %d", tt.t, got, tt.want)
		}
	}
}
