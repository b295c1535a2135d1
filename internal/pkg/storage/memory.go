package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/avolkov/footpred/internal/pkg/models"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps everything in process memory. It backs one-shot imports
// run without a configured database, and the tests.
type MemoryStore struct {
	mu          sync.Mutex
	teams       map[string]models.Team
	matches     []models.Match
	predictions []models.Prediction
	nextTeamID  int64
	nextMatchID int64
	nextPredID  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		teams:       make(map[string]models.Team),
		nextTeamID:  1,
		nextMatchID: 1,
		nextPredID:  1,
	}
}

func (s *MemoryStore) GetOrCreateTeam(_ context.Context, name string) (models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(strings.TrimSpace(name))
	if team, ok := s.teams[key]; ok {
		return team, nil
	}
	team := models.Team{ID: s.nextTeamID, Name: strings.TrimSpace(name)}
	s.nextTeamID++
	s.teams[key] = team
	return team, nil
}

func (s *MemoryStore) MatchExists(_ context.Context, teamAID, teamBID int64, day time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	y, m, d := day.Date()
	for _, match := range s.matches {
		my, mm, md := match.Kickoff.Date()
		if match.TeamA.ID == teamAID && match.TeamB.ID == teamBID &&
			my == y && mm == m && md == d {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) CreateMatch(_ context.Context, match *models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	match.ID = s.nextMatchID
	s.nextMatchID++
	now := time.Now()
	match.CreatedAt = now
	match.UpdatedAt = now
	s.matches = append(s.matches, *match)
	return nil
}

func (s *MemoryStore) ListMatches(_ context.Context, limit int) ([]models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Match, len(s.matches))
	copy(out, s.matches)
	sort.Slice(out, func(i, j int) bool { return out[i].Kickoff.After(out[j].Kickoff) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) ListUnpredictedMatches(_ context.Context, limit int) ([]models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	predicted := make(map[int64]bool, len(s.predictions))
	for _, p := range s.predictions {
		predicted[p.MatchID] = true
	}
	var out []models.Match
	for _, m := range s.matches {
		if !predicted[m.ID] {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kickoff.Before(out[j].Kickoff) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) StorePrediction(_ context.Context, prediction *models.Prediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prediction.ID = s.nextPredID
	s.nextPredID++
	prediction.CreatedAt = time.Now()
	s.predictions = append(s.predictions, *prediction)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
