package models

import (
	"fmt"
	"strings"
	"time"
)

// Team is a stable team identity resolved by name.
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Match is a stored fixture with win/draw probabilities and decimal odds.
type Match struct {
	ID          int64     `json:"id"`
	TeamA       Team      `json:"team_a"`
	TeamB       Team      `json:"team_b"`
	Kickoff     time.Time `json:"kickoff"`
	ProbA       float64   `json:"prob_a"`
	ProbB       float64   `json:"prob_b"`
	DrawProb    float64   `json:"draw_prob"`
	OddsA       float64   `json:"odds_a"`
	OddsB       float64   `json:"odds_b"`
	WeekNumber  int       `json:"week_number"`
	Country     string    `json:"country,omitempty"`
	Competition string    `json:"competition,omitempty"`
	// ActualResult is filled in after the match settles; empty until then.
	ActualResult Outcome   `json:"actual_result,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (m *Match) Name() string {
	return fmt.Sprintf("%s vs %s", m.TeamA.Name, m.TeamB.Name)
}

// ImpliedProbA is the probability the decimal odds for team A imply (1/odds).
func (m *Match) ImpliedProbA() float64 {
	if m.OddsA > 0 {
		return 1 / m.OddsA
	}
	return 0
}

// ImpliedProbB is the probability the decimal odds for team B imply (1/odds).
func (m *Match) ImpliedProbB() float64 {
	if m.OddsB > 0 {
		return 1 / m.OddsB
	}
	return 0
}

// ParsedMatch is one record extracted from pasted board text, not yet persisted.
// Every emitted record has both team names, both win probabilities, a draw
// probability (computed when the text carries none) and decimal odds
// (defaulted when the text carries none).
type ParsedMatch struct {
	TeamA       string    `json:"team_a"`
	TeamB       string    `json:"team_b"`
	Kickoff     time.Time `json:"kickoff"`
	ProbA       float64   `json:"prob_a"`
	ProbB       float64   `json:"prob_b"`
	DrawProb    float64   `json:"draw_prob"`
	OddsA       float64   `json:"odds_a"`
	OddsB       float64   `json:"odds_b"`
	WeekNumber  int       `json:"week_number"`
	Country     string    `json:"country,omitempty"`
	Competition string    `json:"competition,omitempty"`
}

// NaturalKey builds a stable match identifier from the team pair and the
// calendar date (time of day ignored, so re-imports of the same fixture with
// a shifted kickoff still collide).
func NaturalKey(teamA, teamB string, kickoff time.Time) string {
	return normalizeKeyPart(teamA) + "|" + normalizeKeyPart(teamB) + "|" + kickoff.UTC().Format("2006-01-02")
}

func normalizeKeyPart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "|", " ")
	return strings.Join(strings.Fields(s), " ")
}

// Outcome is a symbolic match prediction.
type Outcome string

const (
	OutcomeHomeWin Outcome = "home-win"
	OutcomeDraw    Outcome = "draw"
	OutcomeAwayWin Outcome = "away-win"
)

// Prediction is one strategy's verdict for a stored match.
type Prediction struct {
	ID        int64     `json:"id"`
	MatchID   int64     `json:"match_id"`
	Strategy  string    `json:"strategy"`
	Outcome   Outcome   `json:"outcome"`
	Source    string    `json:"source"` // "rules" or "deepseek"
	CreatedAt time.Time `json:"created_at"`
}
