// Package importer reconciles parsed board text against the match store:
// team names become stable identities, natural-key duplicates become
// warnings, and everything else becomes a stored match. One bad record never
// aborts the batch.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/avolkov/footpred/internal/pkg/models"
	"github.com/avolkov/footpred/internal/pkg/storage"
	"github.com/avolkov/footpred/internal/textparse"
)

// Result is the tally of one best-effort batch import.
type Result struct {
	Created  int      `json:"created"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

type Importer struct {
	parser         *textparse.Parser
	store          storage.Store
	skipDuplicates bool
}

func New(parser *textparse.Parser, store storage.Store, skipDuplicates bool) *Importer {
	return &Importer{parser: parser, store: store, skipDuplicates: skipDuplicates}
}

// Import extracts match records from the text and persists the new ones.
func (im *Importer) Import(ctx context.Context, text string) Result {
	parsed := im.parser.Extract(text)
	slog.Info("Extracted matches from text", "count", len(parsed))

	var res Result
	for _, pm := range parsed {
		if err := im.importOne(ctx, pm, &res); err != nil {
			res.Errors = append(res.Errors, err.Error())
		}
	}
	slog.Info("Import finished",
		"created", res.Created, "errors", len(res.Errors), "warnings", len(res.Warnings))
	return res
}

func (im *Importer) importOne(ctx context.Context, pm models.ParsedMatch, res *Result) error {
	// The extractors drop same-team records already; checked again here
	// because imports may come from other producers than the text parser.
	if strings.EqualFold(strings.TrimSpace(pm.TeamA), strings.TrimSpace(pm.TeamB)) {
		return fmt.Errorf("invalid match: %s vs %s - teams cannot be the same", pm.TeamA, pm.TeamB)
	}

	teamA, err := im.store.GetOrCreateTeam(ctx, pm.TeamA)
	if err != nil {
		return fmt.Errorf("error resolving team %s: %v", pm.TeamA, err)
	}
	teamB, err := im.store.GetOrCreateTeam(ctx, pm.TeamB)
	if err != nil {
		return fmt.Errorf("error resolving team %s: %v", pm.TeamB, err)
	}
	if teamA.ID == teamB.ID {
		return fmt.Errorf("invalid match: %s vs %s - teams cannot be the same", pm.TeamA, pm.TeamB)
	}

	if im.skipDuplicates {
		exists, err := im.store.MatchExists(ctx, teamA.ID, teamB.ID, pm.Kickoff)
		if err != nil {
			return fmt.Errorf("error checking duplicates for %s vs %s: %v", pm.TeamA, pm.TeamB, err)
		}
		if exists {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"Duplicate skipped: %s vs %s on %s",
				pm.TeamA, pm.TeamB, pm.Kickoff.Format("2006-01-02")))
			return nil
		}
	}

	match := &models.Match{
		TeamA:       teamA,
		TeamB:       teamB,
		Kickoff:     pm.Kickoff,
		ProbA:       pm.ProbA,
		ProbB:       pm.ProbB,
		DrawProb:    pm.DrawProb,
		OddsA:       pm.OddsA,
		OddsB:       pm.OddsB,
		WeekNumber:  pm.WeekNumber,
		Country:     pm.Country,
		Competition: pm.Competition,
	}
	if err := im.store.CreateMatch(ctx, match); err != nil {
		return fmt.Errorf("error creating %s vs %s: %v", pm.TeamA, pm.TeamB, err)
	}
	res.Created++
	return nil
}
