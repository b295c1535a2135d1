package textparse

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmerican converts an American-odds token to decimal odds:
// "+600" -> 7.000, "-190" -> 1.526. A token without a sign is taken as a
// decimal price already. The boolean is false when the token cannot be
// converted; callers substitute the documented default (2.0) instead of
// failing the record.
func ParseAmerican(token string) (float64, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}
	switch token[0] {
	case '+':
		n, err := strconv.Atoi(token[1:])
		if err != nil || n <= 0 {
			return 0, false
		}
		return round3(float64(n)/100+1), true
	case '-':
		n, err := strconv.Atoi(token[1:])
		if err != nil || n <= 0 {
			return 0, false
		}
		return round3(100/float64(n)+1), true
	default:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
}

// DefaultOdds is used for both sides when the source carries no odds data.
const DefaultOdds = 2.0

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
