package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
	"github.com/google/uuid"
)

func (s *Store) CreateSwapRequest(ctx context.Context, req *models.SwapRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("CreateSwapRequest"); err != nil {
		return err
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = models.SwapRequestStatusPending
	}
	req.PairKey = models.PairKey(req.SenderID, req.RecipientID)
	if req.Status == models.SwapRequestStatusPending && s.pendingByPairLocked(req.PairKey) != nil {
		return conflict("pending swap request")
	}
	req.CreatedAt = s.clock(s.lastRequestTimeLocked())
	req.UpdatedAt = req.CreatedAt
	s.requests[req.ID] = *req
	return nil
}

func (s *Store) lastRequestTimeLocked() time.Time {
	var last time.Time
	for _, r := range s.requests {
		if r.CreatedAt.After(last) {
			last = r.CreatedAt
		}
	}
	return last
}

func (s *Store) pendingByPairLocked(pairKey string) *models.SwapRequest {
	for _, r := range s.requests {
		if r.PairKey == pairKey && r.Status == models.SwapRequestStatusPending {
			r := r
			return &r
		}
	}
	return nil
}

func (s *Store) GetSwapRequest(ctx context.Context, id string) (*models.SwapRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure("GetSwapRequest"); err != nil {
		return nil, err
	}
	req, ok := s.requests[id]
	if !ok {
		return nil, notFound("swap request")
	}
	return &req, nil
}

func (s *Store) UpdateSwapRequestStatus(ctx context.Context, id, from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("UpdateSwapRequestStatus"); err != nil {
		return err
	}
	req, ok := s.requests[id]
	if !ok || req.Status != from {
		return errors.New(errors.ErrCodeNotFound, "swap request not found or already processed")
	}
	req.Status = to
	req.UpdatedAt = s.now()
	s.requests[id] = req
	return nil
}

func (s *Store) DeleteSwapRequest(ctx context.Context, id, senderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("DeleteSwapRequest"); err != nil {
		return err
	}
	req, ok := s.requests[id]
	if !ok || req.SenderID != senderID || req.Status != models.SwapRequestStatusPending {
		return errors.New(errors.ErrCodeNotFound, "swap request not found or already processed")
	}
	delete(s.requests, id)
	return nil
}

// AcceptSwapRequest applies the status change and the match insert under one lock.
func (s *Store) AcceptSwapRequest(ctx context.Context, id, recipientID string, match *models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("AcceptSwapRequest"); err != nil {
		return err
	}
	req, ok := s.requests[id]
	if !ok || req.RecipientID != recipientID || req.Status != models.SwapRequestStatusPending {
		return errors.New(errors.ErrCodeNotFound, "swap request not found or already processed")
	}
	if err := s.insertMatchLocked(match); err != nil {
		return err
	}
	req.Status = models.SwapRequestStatusAccepted
	req.UpdatedAt = s.now()
	s.requests[id] = req
	return nil
}

func (s *Store) FindPendingBetween(ctx context.Context, a, b string) (*models.SwapRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure("FindPendingBetween"); err != nil {
		return nil, err
	}
	return s.pendingByPairLocked(models.PairKey(a, b)), nil
}

func (s *Store) FindPendingFrom(ctx context.Context, sender, recipient string) (*models.SwapRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure("FindPendingFrom"); err != nil {
		return nil, err
	}
	for _, r := range s.requests {
		if r.SenderID == sender && r.RecipientID == recipient && r.Status == models.SwapRequestStatusPending {
			return &r, nil
		}
	}
	return nil, nil
}

func (s *Store) ListPendingIncoming(ctx context.Context, userID string) ([]models.SwapRequest, error) {
	return s.listPending("ListPendingIncoming", func(r models.SwapRequest) bool { return r.RecipientID == userID })
}

func (s *Store) ListPendingOutgoing(ctx context.Context, userID string) ([]models.SwapRequest, error) {
	return s.listPending("ListPendingOutgoing", func(r models.SwapRequest) bool { return r.SenderID == userID })
}

func (s *Store) listPending(op string, keep func(models.SwapRequest) bool) ([]models.SwapRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure(op); err != nil {
		return nil, err
	}
	var out []models.SwapRequest
	for _, r := range s.requests {
		if r.Status == models.SwapRequestStatusPending && keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
