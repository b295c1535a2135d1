package textparse

import (
	"math"
	"strings"
	"time"

	"github.com/avolkov/footpred/internal/competitions"
	"github.com/avolkov/footpred/internal/pkg/models"
)

// tabularHeader is the parsed anchor row of one tabular fixture: competition
// token(s), team A's name (which the board renders twice) and team A's win
// percentage on a single line, e.g.
//
//	Prem	Premier League	Bournemouth	Bournemouth	45%
type tabularHeader struct {
	entry competitions.Entry
	teamA string
	probA float64
}

// extractTabular walks the board line by line. A line matching a known
// competition token anchors one fixture; the lines after it are scanned for
// the date row, the draw percentage and the second team until the record is
// complete or the next anchor appears. Incomplete fixtures are abandoned
// silently; the scan never rewinds, so a header line is processed exactly
// once.
func (p *Parser) extractTabular(text string) []models.ParsedMatch {
	lines := splitLines(text)
	var out []models.ParsedMatch

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" || isHeaderLine(line) || isPercentOnlyLine(line) || isNoiseLine(line) {
			i++
			continue
		}
		header, ok := p.parseCompetitionHeader(line)
		if !ok {
			i++
			continue
		}
		record, next := p.collectTabularMatch(lines, i+1, header)
		if record != nil {
			out = append(out, *record)
		}
		i = next
	}
	return out
}

// parseCompetitionHeader recognizes a fixture anchor row and pulls team A out
// of it. The team name is the first column after the last competition-name
// column that is not itself a competition name, a number/percentage or a
// forecast stop-word.
func (p *Parser) parseCompetitionHeader(line string) (tabularHeader, bool) {
	fields := splitFields(line)
	lastComp := -1
	var entry competitions.Entry
	for idx, f := range fields {
		if e, ok := p.comps.Lookup(f); ok {
			if lastComp == -1 {
				entry = e
			}
			lastComp = idx
		}
	}
	if lastComp == -1 {
		return tabularHeader{}, false
	}

	teamA := ""
	for _, f := range fields[lastComp+1:] {
		if numericOrPercent(f) || isStopWord(f) || p.comps.Contains(f) {
			continue
		}
		teamA = f
		break
	}
	probA, okProb := percentValue(line)
	if teamA == "" || !okProb {
		return tabularHeader{}, false
	}
	return tabularHeader{entry: entry, teamA: teamA, probA: probA}, true
}

// collectTabularMatch accumulates the remaining fields of one fixture
// starting just past its anchor row. It returns the completed record (nil if
// the fixture never completed) and the index of the first unconsumed line.
func (p *Parser) collectTabularMatch(lines []string, start int, header tabularHeader) (*models.ParsedMatch, int) {
	var (
		kickoff    time.Time
		kickoffSet bool
		drawProb   float64
		drawSet    bool
		teamB      string
		probB      float64
		teamBSet   bool
	)

	j := start
	for j < len(lines) {
		line := strings.TrimSpace(lines[j])
		if line == "" || isHeaderLine(line) || isPercentOnlyLine(line) || isNoiseLine(line) {
			j++
			continue
		}
		// The next anchor row ends this fixture; leave it unconsumed so the
		// outer loop picks it up.
		if _, ok := p.parseCompetitionHeader(line); ok {
			break
		}

		if !kickoffSet {
			if t, ok := p.resolveTabularDate(line); ok {
				kickoff, kickoffSet = t, true
				if dp, ok := drawPercent(line); ok && !drawSet {
					drawProb, drawSet = dp, true
				}
				j++
				if kickoffSet && teamBSet {
					break
				}
				continue
			}
		}
		if !drawSet {
			if dp, ok := drawPercent(line); ok {
				drawProb, drawSet = dp, true
				j++
				continue
			}
		}
		if !teamBSet {
			if name, prob, ok := p.parseTeamLine(line, header.teamA); ok {
				teamB, probB, teamBSet = name, prob, true
				j++
				if kickoffSet {
					break
				}
				continue
			}
		}
		j++
	}

	if !kickoffSet || !teamBSet {
		return nil, j // abandoned: required fields never completed
	}
	if strings.EqualFold(strings.TrimSpace(header.teamA), strings.TrimSpace(teamB)) {
		return nil, j
	}
	if !drawSet {
		drawProb = math.Max(0, 1-header.probA-probB)
	}
	return &models.ParsedMatch{
		TeamA:       header.teamA,
		TeamB:       teamB,
		Kickoff:     kickoff,
		ProbA:       header.probA,
		ProbB:       probB,
		DrawProb:    drawProb,
		OddsA:       DefaultOdds, // the tabular layout carries no odds data
		OddsB:       DefaultOdds,
		WeekNumber:  weekNumber(kickoff),
		Country:     header.entry.Country,
		Competition: header.entry.Canonical,
	}, j
}

// parseTeamLine recognizes the second team's row: an optional stadium column,
// the team name (rendered twice) and a win percentage. The name must differ
// from team A's and precede the percentage column.
func (p *Parser) parseTeamLine(line, teamA string) (string, float64, bool) {
	fields := splitFields(line)
	name := ""
	nameIdx := -1
	for idx, f := range fields {
		if isStadium(f) || numericOrPercent(f) || isStopWord(f) || p.comps.Contains(f) {
			continue
		}
		if tabularDateRe.MatchString(f) {
			continue
		}
		if strings.EqualFold(f, teamA) {
			continue
		}
		name, nameIdx = f, idx
		break
	}
	if name == "" {
		return "", 0, false
	}
	for idx, f := range fields {
		if idx <= nameIdx {
			continue
		}
		if prob, ok := percentValue(f); ok {
			return name, prob, true
		}
	}
	return "", 0, false
}
