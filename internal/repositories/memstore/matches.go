package memstore

import (
	"context"
	"sort"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"github.com/google/uuid"
)

func (s *Store) CreateMatch(ctx context.Context, match *models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("CreateMatch"); err != nil {
		return err
	}
	return s.insertMatchLocked(match)
}

func (s *Store) insertMatchLocked(match *models.Match) error {
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	match.PairKey = models.PairKey(match.User1ID, match.User2ID)
	var last models.Match
	for _, m := range s.matches {
		if m.PairKey == match.PairKey || (match.RequestID != "" && m.RequestID == match.RequestID) {
			return conflict("match")
		}
		if m.CreatedAt.After(last.CreatedAt) {
			last = m
		}
	}
	match.CreatedAt = s.clock(last.CreatedAt)
	s.matches[match.ID] = *match
	return nil
}

func (s *Store) FindMatch(ctx context.Context, a, b string) (*models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure("FindMatch"); err != nil {
		return nil, err
	}
	key := models.PairKey(a, b)
	for _, m := range s.matches {
		if m.PairKey == key {
			return &m, nil
		}
	}
	return nil, nil
}

func (s *Store) ListMatchesFor(ctx context.Context, userID string) ([]models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure("ListMatchesFor"); err != nil {
		return nil, err
	}
	var out []models.Match
	for _, m := range s.matches {
		if m.User1ID == userID || m.User2ID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ListAllMatches returns every match with both users filled in, oldest first.
func (s *Store) ListAllMatches(ctx context.Context) ([]models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure("ListAllMatches"); err != nil {
		return nil, err
	}
	out := make([]models.Match, 0, len(s.matches))
	for _, m := range s.matches {
		m.User1 = s.users[m.User1ID]
		m.User2 = s.users[m.User2ID]
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
