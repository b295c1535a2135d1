package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/avolkov/footpred/internal/pkg/config"
	"github.com/avolkov/footpred/internal/pkg/models"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore persists teams, matches and predictions in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the connection, verifies it and initializes the
// schema.
func NewPostgresStore(cfg *config.PostgresConfig) (*PostgresStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL store initialized")
	return store, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS teams (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS matches (
		id SERIAL PRIMARY KEY,
		team_a_id INTEGER NOT NULL REFERENCES teams(id),
		team_b_id INTEGER NOT NULL REFERENCES teams(id),
		kickoff TIMESTAMP NOT NULL,
		prob_a DECIMAL(5, 4) NOT NULL,
		prob_b DECIMAL(5, 4) NOT NULL,
		draw_prob DECIMAL(5, 4) NOT NULL DEFAULT 0,
		odds_a DECIMAL(10, 4) NOT NULL,
		odds_b DECIMAL(10, 4) NOT NULL,
		week_number INTEGER,
		country VARCHAR(100),
		competition VARCHAR(100),
		actual_result VARCHAR(20),
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS predictions (
		id SERIAL PRIMARY KEY,
		match_id INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
		strategy VARCHAR(50) NOT NULL,
		outcome VARCHAR(20) NOT NULL,
		source VARCHAR(50) NOT NULL DEFAULT 'rules',
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE(match_id, strategy, source)
	);

	CREATE INDEX IF NOT EXISTS idx_matches_kickoff ON matches(kickoff DESC);
	CREATE INDEX IF NOT EXISTS idx_matches_teams_date ON matches(team_a_id, team_b_id, kickoff);
	CREATE INDEX IF NOT EXISTS idx_predictions_match ON predictions(match_id);
	`

	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *PostgresStore) GetOrCreateTeam(ctx context.Context, name string) (models.Team, error) {
	var team models.Team
	// Insert-then-select so concurrent importers converge on one row.
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO teams (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return team, fmt.Errorf("failed to insert team %q: %w", name, err)
	}
	err = s.db.QueryRowContext(ctx,
		`SELECT id, name FROM teams WHERE name = $1`, name).Scan(&team.ID, &team.Name)
	if err != nil {
		return team, fmt.Errorf("failed to select team %q: %w", name, err)
	}
	return team, nil
}

func (s *PostgresStore) MatchExists(ctx context.Context, teamAID, teamBID int64, day time.Time) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE team_a_id = $1 AND team_b_id = $2 AND kickoff::date = $3::date
		)`, teamAID, teamBID, day).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check match existence: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) CreateMatch(ctx context.Context, match *models.Match) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO matches (
			team_a_id, team_b_id, kickoff, prob_a, prob_b, draw_prob,
			odds_a, odds_b, week_number, country, competition
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		match.TeamA.ID, match.TeamB.ID, match.Kickoff,
		match.ProbA, match.ProbB, match.DrawProb,
		match.OddsA, match.OddsB, match.WeekNumber,
		nullString(match.Country), nullString(match.Competition),
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

const matchColumns = `
	m.id, m.kickoff, m.prob_a, m.prob_b, m.draw_prob, m.odds_a, m.odds_b,
	COALESCE(m.week_number, 0), COALESCE(m.country, ''), COALESCE(m.competition, ''),
	COALESCE(m.actual_result, ''), m.created_at, m.updated_at,
	ta.id, ta.name, tb.id, tb.name`

func (s *PostgresStore) ListMatches(ctx context.Context, limit int) ([]models.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+matchColumns+`
		FROM matches m
		JOIN teams ta ON ta.id = m.team_a_id
		JOIN teams tb ON tb.id = m.team_b_id
		ORDER BY m.kickoff DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()
	return scanMatches(rows)
}

func (s *PostgresStore) ListUnpredictedMatches(ctx context.Context, limit int) ([]models.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+matchColumns+`
		FROM matches m
		JOIN teams ta ON ta.id = m.team_a_id
		JOIN teams tb ON tb.id = m.team_b_id
		LEFT JOIN predictions p ON p.match_id = m.id
		WHERE p.id IS NULL
		ORDER BY m.kickoff ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unpredicted matches: %w", err)
	}
	defer rows.Close()
	return scanMatches(rows)
}

func scanMatches(rows *sql.Rows) ([]models.Match, error) {
	var matches []models.Match
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(
			&m.ID, &m.Kickoff, &m.ProbA, &m.ProbB, &m.DrawProb, &m.OddsA, &m.OddsB,
			&m.WeekNumber, &m.Country, &m.Competition, &m.ActualResult,
			&m.CreatedAt, &m.UpdatedAt,
			&m.TeamA.ID, &m.TeamA.Name, &m.TeamB.ID, &m.TeamB.Name,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *PostgresStore) StorePrediction(ctx context.Context, prediction *models.Prediction) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO predictions (match_id, strategy, outcome, source)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (match_id, strategy, source)
		DO UPDATE SET outcome = EXCLUDED.outcome
		RETURNING id, created_at`,
		prediction.MatchID, prediction.Strategy, string(prediction.Outcome), prediction.Source,
	).Scan(&prediction.ID, &prediction.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store prediction: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
