package textparse

import (
	"math"
	"strings"
	"time"

	"github.com/avolkov/footpred/internal/competitions"
	"github.com/avolkov/footpred/internal/pkg/models"
)

// The narrative layout interleaves team names, win percentages and American
// odds in free-flow lines under a date heading. A five-state walk classifies
// one line at a time; every transition is driven by a single classified line,
// so the machine is testable against synthetic sequences.
type narrativeState int

const (
	stateSeekingTeamA narrativeState = iota
	stateReadingTeamA
	stateSeekingTeamB
	stateReadingTeamB
	stateComplete
)

// teamCapture accumulates one side's fields. First occurrence wins for both
// the percentage and the odds token; later ones are rendering duplicates.
type teamCapture struct {
	name    string
	prob    float64
	probSet bool
	odds    float64
	oddsSet bool
}

func (tc *teamCapture) readNumbers(line string) {
	if !tc.probSet {
		if prob, ok := percentValue(line); ok {
			tc.prob, tc.probSet = prob, true
		}
	}
	if !tc.oddsSet {
		if token, ok := americanToken(line); ok {
			if odds, ok := ParseAmerican(token); ok {
				tc.odds, tc.oddsSet = odds, true
			}
		}
	}
}

func (tc *teamCapture) done() bool { return tc.probSet && tc.oddsSet }

// extractNarrative keys fixtures off explicit date headings ("Nov 29,
// 10:00 AM ET") and runs the state machine over the lines between headings.
func (p *Parser) extractNarrative(text string) []models.ParsedMatch {
	lines := splitLines(text)
	var out []models.ParsedMatch

	i := 0
	for i < len(lines) {
		kickoff, ok := p.resolveNarrativeDate(lines[i])
		if !ok {
			i++
			continue
		}
		record, next := p.collectNarrativeMatch(lines, i+1, kickoff)
		if record != nil {
			out = append(out, *record)
		}
		if next <= i {
			next = i + 1 // guard against stalling on a heading-only tail
		}
		i = next
	}
	return out
}

// collectNarrativeMatch scans from start until the next date heading or the
// end of input, stopping early once the record is complete and a competition
// title has been seen. Returns the record (nil when required fields never
// completed) and the first unconsumed line index.
func (p *Parser) collectNarrativeMatch(lines []string, start int, kickoff time.Time) (*models.ParsedMatch, int) {
	var teamA, teamB teamCapture
	state := stateSeekingTeamA
	lastSeen := ""
	var entry competitions.Entry
	entrySet := false

	i := start
	for i < len(lines) {
		if narrativeDateRe.MatchString(lines[i]) {
			break
		}
		line := strings.TrimSpace(lines[i])

		// Competition tokens are recognized in any state. A line that IS the
		// token carries nothing else, so it is consumed here.
		if e, ok := p.comps.Lookup(line); ok {
			if !entrySet {
				entry, entrySet = e, true
			}
			if state == stateComplete {
				i++
				break
			}
			i++
			continue
		}

		if skipNarrativeLine(line) {
			i++
			continue
		}
		isTeam := isTeamCandidate(line)

		switch state {
		case stateSeekingTeamA:
			if isTeam {
				teamA.name = line
				lastSeen = strings.ToLower(line)
				state = stateReadingTeamA
			}
		case stateReadingTeamA:
			if isTeam && strings.ToLower(line) == lastSeen {
				break // rendering duplicate of the name already captured
			}
			teamA.readNumbers(line)
			if teamA.done() {
				state = stateSeekingTeamB
			}
		case stateSeekingTeamB:
			if isTeam && !strings.EqualFold(line, teamA.name) && strings.ToLower(line) != lastSeen {
				teamB.name = line
				lastSeen = strings.ToLower(line)
				state = stateReadingTeamB
			}
		case stateReadingTeamB:
			if isTeam && strings.ToLower(line) == lastSeen {
				break
			}
			teamB.readNumbers(line)
			if teamB.done() {
				state = stateComplete
			}
		}

		if state == stateComplete && entrySet {
			i++
			break
		}
		i++
	}

	if teamA.name == "" || teamB.name == "" || !teamA.probSet || !teamB.probSet {
		return nil, i
	}
	if strings.EqualFold(strings.TrimSpace(teamA.name), strings.TrimSpace(teamB.name)) {
		return nil, i
	}

	oddsA, oddsB := teamA.odds, teamB.odds
	if !teamA.oddsSet {
		oddsA = DefaultOdds
	}
	if !teamB.oddsSet {
		oddsB = DefaultOdds
	}
	return &models.ParsedMatch{
		TeamA:       teamA.name,
		TeamB:       teamB.name,
		Kickoff:     kickoff,
		ProbA:       teamA.prob,
		ProbB:       teamB.prob,
		DrawProb:    math.Max(0, 1-teamA.prob-teamB.prob),
		OddsA:       oddsA,
		OddsB:       oddsB,
		WeekNumber:  weekNumber(kickoff),
		Country:     entry.Country,
		Competition: entry.Canonical,
	}, i
}

// skipNarrativeLine drops lines that carry no fixture data in the narrative
// layout: blanks, "See ..." links, result markers, season labels, bare
// numbers and sportsbook column labels.
func skipNarrativeLine(line string) bool {
	if line == "" ||
		strings.HasPrefix(line, "See") ||
		line == "FINAL" ||
		line == "Upcoming" ||
		isNumeric(line) {
		return true
	}
	return isSportsbookLine(line)
}
