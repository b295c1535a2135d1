package storage

import (
	"context"
	"time"

	"github.com/avolkov/footpred/internal/pkg/models"
)

// Store is the persistence boundary the import reconciler and the predictor
// write through. Team resolution is find-or-create by name; match identity is
// the natural key (team pair + calendar date).
type Store interface {
	// GetOrCreateTeam resolves a team name to a stable identity, creating it
	// on first sight.
	GetOrCreateTeam(ctx context.Context, name string) (models.Team, error)

	// MatchExists reports whether a match for the same team pair on the same
	// calendar date (time of day ignored) is already stored.
	MatchExists(ctx context.Context, teamAID, teamBID int64, day time.Time) (bool, error)

	// CreateMatch persists a new match and fills in its ID.
	CreateMatch(ctx context.Context, match *models.Match) error

	// ListMatches returns recent matches, newest kickoff first.
	ListMatches(ctx context.Context, limit int) ([]models.Match, error)

	// ListUnpredictedMatches returns matches that have no stored predictions
	// yet, oldest kickoff first.
	ListUnpredictedMatches(ctx context.Context, limit int) ([]models.Match, error)

	// StorePrediction persists one strategy verdict for a match.
	StorePrediction(ctx context.Context, prediction *models.Prediction) error

	// Close closes the underlying connection.
	Close() error
}
