package textparse

import (
	"regexp"
	"strconv"
	"strings"
)

// Vocabularies for line classification. Matching is substring-based and
// case-insensitive unless noted; extending a list does not touch control flow.
var (
	// headerPrefixes mark the repeated column-header rows of the tabular board.
	headerPrefixes = []string{"INFO", "TEAMS", "FORECAST"}

	// broadcasters appear in TV-listing noise lines between fixtures.
	broadcasters = []string{
		"Sky Sports",
		"Disney+",
		"Hotstar",
		"TNT Sports",
		"SuperSport",
		"VOYO",
		"Amazon Prime",
		"BBC One",
		"ITV",
		"beIN",
	}

	// sportsbooks appear as odds-column labels in the narrative layout.
	// The short aliases ("Bet", "Fan", ...) are deliberate: the source
	// renders truncated book names next to each odds cell.
	sportsbooks = []string{
		"BetRivers", "BetMGM", "DraftKings", "FanDuel",
		"Rivers", "MGM", "Kings", "Draft", "Fan", "Bet",
	}

	// stadiums lead the second team row of a tabular fixture.
	stadiums = []string{
		"Vitality Stadium", "Craven Cottage", "The Brick Community Stadium",
		"Ewood Park", "St James Park", "American Express Stadium",
		"Turf Moor", "Emirates Stadium", "Molineux Stadium", "Elland Road",
		"Anfield", "Old Trafford", "Stamford Bridge", "Etihad Stadium",
		"Goodison Park", "Hill Dickinson Stadium", "Villa Park",
		"King Power Stadium", "London Stadium", "Tottenham Hotspur Stadium",
		"Selhurst Park", "St Mary's Stadium", "City Ground", "Portman Road",
		"Bramall Lane", "Kenilworth Road", "Gtech Community Stadium",
	}

	// stopWords are forecast-commentary tokens that must never be taken for
	// a team name when scanning tabular columns.
	stopWords = map[string]bool{
		"draw": true, "forecast": true, "could": true, "go": true,
		"either": true, "way": true, "leaning": true, "backing": true,
	}
)

var (
	percentRe     = regexp.MustCompile(`(\d+)%`)
	americanRe    = regexp.MustCompile(`[+-]\d+`)
	percentOnlyRe = regexp.MustCompile(`^[0-9%\s]+$`)
	drawRe        = regexp.MustCompile(`(?i)\bdraw\b\D*?(\d+)%`)
)

// isHeaderLine reports the tabular board's column-header rows (INFO/TEAMS/
// FORECAST prefixes, upper-case in the source).
func isHeaderLine(line string) bool {
	for _, p := range headerPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// isPercentOnlyLine reports lines consisting solely of digits, percent signs
// and whitespace. These are rendering duplicates of a percentage already
// captured on an adjacent structural line.
func isPercentOnlyLine(line string) bool {
	return strings.Contains(line, "%") && percentOnlyRe.MatchString(line)
}

// isNoiseLine reports broadcaster listings and forecast commentary.
func isNoiseLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.HasPrefix(lower, "forecast:") ||
		strings.HasPrefix(lower, "leaning") ||
		strings.HasPrefix(lower, "backing") ||
		strings.Contains(lower, "could go either way") {
		return true
	}
	for _, b := range broadcasters {
		if strings.Contains(lower, strings.ToLower(b)) {
			return true
		}
	}
	return false
}

func isSportsbookLine(line string) bool {
	lower := strings.ToLower(line)
	for _, sb := range sportsbooks {
		if strings.Contains(lower, strings.ToLower(sb)) {
			return true
		}
	}
	return false
}

// isTeamCandidate classifies a narrative-layout line as a possible team name:
// no percentage or odds characters, longer than one rune, not a bare number
// and not a sportsbook label.
func isTeamCandidate(line string) bool {
	if strings.ContainsAny(line, "%+-") {
		return false
	}
	if len([]rune(line)) <= 1 {
		return false
	}
	if isNumeric(line) {
		return false
	}
	return !isSportsbookLine(line)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isStadium(field string) bool {
	for _, s := range stadiums {
		if strings.EqualFold(field, s) {
			return true
		}
	}
	return false
}

func isStopWord(field string) bool {
	return stopWords[strings.ToLower(strings.TrimSpace(field))]
}

// percentValue returns the first NN% token on the line as a [0,1] fraction.
func percentValue(line string) (float64, bool) {
	m := percentRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return float64(n) / 100, true
}

// drawPercent returns the percentage attached to a literal Draw token, as on
// the tabular date row ("Tue, 2 Dec 19:30	Draw	28%").
func drawPercent(line string) (float64, bool) {
	m := drawRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return float64(n) / 100, true
}

// americanToken returns the first signed-integer odds token on the line.
func americanToken(line string) (string, bool) {
	m := americanRe.FindString(line)
	return m, m != ""
}

// numericOrPercent reports fields like "45%" or "45" that can never be a
// team name in a tabular column scan.
func numericOrPercent(field string) bool {
	trimmed := strings.TrimSuffix(field, "%")
	return trimmed != field && isNumeric(trimmed) || isNumeric(field)
}
