package predictor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/avolkov/footpred/internal/notify"
	"github.com/avolkov/footpred/internal/pkg/models"
	"github.com/avolkov/footpred/internal/pkg/storage"
)

// Runner periodically scores matches that have no predictions yet, stores the
// verdicts, and optionally cross-checks them via DeepSeek and alerts via
// Telegram. The redis cache keeps re-runs from re-alerting the same match.
type Runner struct {
	store      storage.Store
	engine     *Engine
	deepseek   *DeepSeekClient // nil when cross-checking is disabled
	cache      *storage.PredictionCache
	notifier   *notify.TelegramNotifier
	interval   time.Duration
	batchLimit int
	alertTTL   time.Duration
}

type RunnerOptions struct {
	DeepSeek   *DeepSeekClient
	Cache      *storage.PredictionCache
	Notifier   *notify.TelegramNotifier
	Interval   time.Duration
	BatchLimit int
	AlertTTL   time.Duration
}

func NewRunner(store storage.Store, engine *Engine, opts RunnerOptions) *Runner {
	r := &Runner{
		store:      store,
		engine:     engine,
		deepseek:   opts.DeepSeek,
		cache:      opts.Cache,
		notifier:   opts.Notifier,
		interval:   opts.Interval,
		batchLimit: opts.BatchLimit,
		alertTTL:   opts.AlertTTL,
	}
	if r.interval <= 0 {
		r.interval = 5 * time.Minute
	}
	if r.batchLimit <= 0 {
		r.batchLimit = 100
	}
	if r.alertTTL <= 0 {
		r.alertTTL = 24 * time.Hour
	}
	return r
}

// Start blocks until the context is cancelled, scoring one batch per tick.
// The first batch runs immediately.
func (r *Runner) Start(ctx context.Context) error {
	slog.Info("Starting prediction runner", "interval", r.interval)

	if err := r.RunOnce(ctx); err != nil {
		slog.Error("Prediction cycle failed", "error", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("Prediction runner stopped")
			return nil
		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				slog.Error("Prediction cycle failed", "error", err)
			}
		}
	}
}

// RunOnce scores a single batch of unpredicted matches.
func (r *Runner) RunOnce(ctx context.Context) error {
	matches, err := r.store.ListUnpredictedMatches(ctx, r.batchLimit)
	if err != nil {
		return fmt.Errorf("failed to list unpredicted matches: %w", err)
	}
	if len(matches) == 0 {
		slog.Debug("No matches to predict")
		return nil
	}
	slog.Info("Scoring matches", "count", len(matches))

	for i := range matches {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.scoreMatch(ctx, &matches[i])
	}
	return nil
}

func (r *Runner) scoreMatch(ctx context.Context, m *models.Match) {
	verdicts := r.engine.Predict(m)
	for _, strategy := range Strategies {
		outcome := verdicts[strategy]
		pred := &models.Prediction{
			MatchID:  m.ID,
			Strategy: strategy,
			Outcome:  outcome,
			Source:   "rules",
		}
		if err := r.store.StorePrediction(ctx, pred); err != nil {
			slog.Error("Failed to store prediction",
				"match", m.Name(), "strategy", strategy, "error", err)
			continue
		}

		if r.deepseek != nil {
			aiOutcome, err := r.deepseek.CrossCheck(ctx, m, strategy)
			if err != nil {
				// Score unavailable; the rule verdict stands.
				slog.Warn("DeepSeek cross-check unavailable",
					"match", m.Name(), "strategy", strategy, "error", err)
				continue
			}
			aiPred := &models.Prediction{
				MatchID:  m.ID,
				Strategy: strategy,
				Outcome:  aiOutcome,
				Source:   "deepseek",
			}
			if err := r.store.StorePrediction(ctx, aiPred); err != nil {
				slog.Error("Failed to store cross-check",
					"match", m.Name(), "strategy", strategy, "error", err)
			}
			if aiOutcome != outcome {
				slog.Info("Cross-check disagrees with rules",
					"match", m.Name(), "strategy", strategy,
					"rules", outcome, "deepseek", aiOutcome)
			}
		}
	}

	r.alert(ctx, m, verdicts)
}

func (r *Runner) alert(ctx context.Context, m *models.Match, verdicts map[string]models.Outcome) {
	if r.notifier == nil {
		return
	}
	key := models.NaturalKey(m.TeamA.Name, m.TeamB.Name, m.Kickoff)
	if r.cache != nil {
		alerted, err := r.cache.WasAlerted(ctx, key)
		if err != nil {
			slog.Warn("Alert cooldown check failed", "match", m.Name(), "error", err)
		} else if alerted {
			slog.Debug("Alert still in cooldown", "match", m.Name())
			return
		}
	}

	if err := r.notifier.Send(formatAlert(m, verdicts)); err != nil {
		slog.Error("Failed to send prediction alert", "match", m.Name(), "error", err)
		return
	}
	if r.cache != nil {
		if err := r.cache.MarkAlerted(ctx, key, r.alertTTL); err != nil {
			slog.Warn("Failed to record alert cooldown", "match", m.Name(), "error", err)
		}
	}
}

func formatAlert(m *models.Match, verdicts map[string]models.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s\n", m.Name(), m.Kickoff.Format("Mon, 2 Jan 15:04"))
	if m.Competition != "" {
		fmt.Fprintf(&b, "%s", m.Competition)
		if m.Country != "" {
			fmt.Fprintf(&b, " (%s)", m.Country)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Probabilities: %.0f%% / %.0f%% / %.0f%%\n",
		m.ProbA*100, m.DrawProb*100, m.ProbB*100)

	strategies := make([]string, 0, len(verdicts))
	for s := range verdicts {
		strategies = append(strategies, s)
	}
	sort.Strings(strategies)
	for _, s := range strategies {
		fmt.Fprintf(&b, "%s: %s\n", s, verdicts[s])
	}
	return b.String()
}
