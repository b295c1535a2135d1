// Package predictor derives win/draw/loss verdicts from a match's stored
// probabilities and odds under three deterministic strategies, optionally
// cross-checked against a language-model call.
package predictor

import (
	"github.com/avolkov/footpred/internal/pkg/config"
	"github.com/avolkov/footpred/internal/pkg/models"
)

const (
	StrategyBaseline   = "baseline"
	StrategyProfitable = "profitable"
	StrategyBalanced   = "balanced"
)

// Strategies lists every rule the engine evaluates, in a stable order.
var Strategies = []string{StrategyBaseline, StrategyProfitable, StrategyBalanced}

// Engine evaluates the prediction rules. All methods are pure functions over
// the match's numeric fields.
type Engine struct {
	baseline      float64
	value         float64
	balancedProb  float64
	balancedValue float64
}

func NewEngine(cfg *config.ThresholdsConfig) *Engine {
	e := &Engine{
		baseline:      cfg.Baseline,
		value:         cfg.Value,
		balancedProb:  cfg.BalancedProb,
		balancedValue: cfg.BalancedValue,
	}
	if e.baseline <= 0 {
		e.baseline = 0.15
	}
	if e.value <= 0 {
		e.value = 0.10
	}
	if e.balancedProb <= 0 {
		e.balancedProb = 0.45
	}
	if e.balancedValue <= 0 {
		e.balancedValue = 0.05
	}
	return e
}

// Baseline picks the side with the clearly higher win probability; close
// matches are called draws.
func (e *Engine) Baseline(m *models.Match) models.Outcome {
	diff := m.ProbA - m.ProbB
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= e.baseline:
		return models.OutcomeDraw
	case m.ProbA > m.ProbB:
		return models.OutcomeHomeWin
	default:
		return models.OutcomeAwayWin
	}
}

// Profitable picks the side whose stated probability exceeds the probability
// its odds imply by at least the value threshold, meaning the book
// undervalues that side. No clear value means draw.
func (e *Engine) Profitable(m *models.Match) models.Outcome {
	valueA := m.ProbA - m.ImpliedProbA()
	valueB := m.ProbB - m.ImpliedProbB()
	switch {
	case valueA >= e.value && valueA > valueB:
		return models.OutcomeHomeWin
	case valueB >= e.value && valueB > valueA:
		return models.OutcomeAwayWin
	default:
		return models.OutcomeDraw
	}
}

// Balanced requires probability and odds to align: a side scores one point
// for a high win probability and one for an edge over its implied
// probability, and needs both points plus a strict lead over the other side.
func (e *Engine) Balanced(m *models.Match) models.Outcome {
	scoreA := 0
	if m.ProbA > e.balancedProb {
		scoreA++
	}
	if m.ProbA > m.ImpliedProbA()+e.balancedValue {
		scoreA++
	}

	scoreB := 0
	if m.ProbB > e.balancedProb {
		scoreB++
	}
	if m.ProbB > m.ImpliedProbB()+e.balancedValue {
		scoreB++
	}

	switch {
	case scoreA >= 2 && scoreA > scoreB:
		return models.OutcomeHomeWin
	case scoreB >= 2 && scoreB > scoreA:
		return models.OutcomeAwayWin
	default:
		return models.OutcomeDraw
	}
}

// Predict runs every strategy.
func (e *Engine) Predict(m *models.Match) map[string]models.Outcome {
	return map[string]models.Outcome{
		StrategyBaseline:   e.Baseline(m),
		StrategyProfitable: e.Profitable(m),
		StrategyBalanced:   e.Balanced(m),
	}
}
