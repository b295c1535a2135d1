package textparse

import (
	"testing"
	"time"
)

// narrativeFixture mirrors the free-flow layout: a date heading, each team
// name rendered twice, its win percentage and American odds on their own
// lines, sportsbook labels in between, and the league title after the data.
const narrativeFixture = `Upcoming
Nov 29, 10:00 AM ET
Arsenal
Arsenal
62%
+120
BetRivers
Chelsea
Chelsea
24%
+240
FanDuel
Premier League
Nov 29, 12:30 PM ET
Everton
55%
-130
Liverpool
30%
+210
`

func TestExtractNarrative(t *testing.T) {
	p := parserAt(time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC))

	matches := p.Extract(narrativeFixture)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}

	first := matches[0]
	if first.TeamA != "Arsenal" || first.TeamB != "Chelsea" {
		t.Errorf("first match = %s vs %s, want Arsenal vs Chelsea", first.TeamA, first.TeamB)
	}
	wantKickoff := time.Date(2025, time.November, 29, 10, 0, 0, 0, time.UTC)
	if !first.Kickoff.Equal(wantKickoff) {
		t.Errorf("kickoff = %v, want %v", first.Kickoff, wantKickoff)
	}
	if !floatEq(first.ProbA, 0.62) || !floatEq(first.ProbB, 0.24) {
		t.Errorf("probs = %v/%v, want 0.62/0.24", first.ProbA, first.ProbB)
	}
	if !floatEq(first.DrawProb, 0.14) {
		t.Errorf("draw prob = %v, want 0.14", first.DrawProb)
	}
	if first.OddsA != 2.2 || first.OddsB != 3.4 {
		t.Errorf("odds = %v/%v, want 2.2/3.4", first.OddsA, first.OddsB)
	}
	if first.Competition != "Premier League" || first.Country != "England" {
		t.Errorf("competition = %q (%q), want Premier League (England)", first.Competition, first.Country)
	}

	second := matches[1]
	if second.TeamA != "Everton" || second.TeamB != "Liverpool" {
		t.Errorf("second match = %s vs %s, want Everton vs Liverpool", second.TeamA, second.TeamB)
	}
	if second.OddsA != 1.769 || second.OddsB != 3.1 {
		t.Errorf("second odds = %v/%v, want 1.769/3.1", second.OddsA, second.OddsB)
	}
	if second.Competition != "" {
		t.Errorf("second competition = %q, want empty (no title line)", second.Competition)
	}
}

func TestExtractNarrativeDefaultOdds(t *testing.T) {
	p := parserAt(time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC))

	// Input truncated after team B's percentage: the record still emits, with
	// the missing odds substituted.
	text := `Nov 29, 10:00 AM ET
Arsenal
62%
+120
Chelsea
24%
`
	matches := p.Extract(text)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].OddsB != DefaultOdds {
		t.Errorf("OddsB = %v, want default %v", matches[0].OddsB, DefaultOdds)
	}
	if matches[0].OddsA != 2.2 {
		t.Errorf("OddsA = %v, want 2.2", matches[0].OddsA)
	}
}

func TestExtractNarrativeIncomplete(t *testing.T) {
	p := parserAt(time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC))

	text := `Nov 29, 10:00 AM ET
Arsenal
62%
`
	if matches := p.Extract(text); len(matches) != 0 {
		t.Fatalf("got %d matches, want 0", len(matches))
	}
}

func TestExtractNarrativeDrawClamped(t *testing.T) {
	p := parserAt(time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC))

	// Percentages over 100% combined must not produce a negative draw.
	text := `Nov 29, 10:00 AM ET
Arsenal
70%
+120
Chelsea
45%
+240
`
	matches := p.Extract(text)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].DrawProb != 0 {
		t.Errorf("draw prob = %v, want 0", matches[0].DrawProb)
	}
}

func TestExtractNarrativeDuplicateNameSkipped(t *testing.T) {
	p := parserAt(time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC))

	// The duplicate rendering of a name must not be captured as the opponent.
	text := `Nov 29, 10:00 AM ET
Everton
Everton
48%
-105
Everton
Wolves
31%
+180
`
	matches := p.Extract(text)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].TeamB != "Wolves" {
		t.Errorf("TeamB = %q, want Wolves", matches[0].TeamB)
	}
}
