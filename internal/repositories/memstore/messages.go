package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"github.com/google/uuid"
)

func (s *Store) CreateMessage(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("CreateMessage"); err != nil {
		return err
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		var last time.Time
		for _, m := range s.messages {
			if m.Timestamp.After(last) {
				last = m.Timestamp
			}
		}
		msg.Timestamp = s.clock(last)
	}
	s.messages[msg.ID] = *msg
	return nil
}

func (s *Store) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure("GetMessage"); err != nil {
		return nil, err
	}
	msg, ok := s.messages[id]
	if !ok {
		return nil, notFound("message")
	}
	return &msg, nil
}

func (s *Store) MarkMessageRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("MarkMessageRead"); err != nil {
		return err
	}
	msg, ok := s.messages[id]
	if !ok {
		return notFound("message")
	}
	msg.Read = true
	s.messages[id] = msg
	return nil
}

func (s *Store) ListMessagesBetween(ctx context.Context, a, b string) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure("ListMessagesBetween"); err != nil {
		return nil, err
	}
	out := s.conversationLocked(a, b)
	return out, nil
}

func (s *Store) conversationLocked(a, b string) []models.Message {
	var out []models.Message
	for _, m := range s.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

func (s *Store) MarkConversationRead(ctx context.Context, reader, other string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("MarkConversationRead"); err != nil {
		return nil, err
	}
	var ids []string
	for _, m := range s.conversationLocked(reader, other) {
		if m.SenderID == other && !m.Read {
			m.Read = true
			s.messages[m.ID] = m
			ids = append(ids, m.ID)
		}
	}
	return ids, nil
}

func (s *Store) LastMessageAt(ctx context.Context, a, b string) (*time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure("LastMessageAt"); err != nil {
		return nil, err
	}
	conv := s.conversationLocked(a, b)
	if len(conv) == 0 {
		return nil, nil
	}
	ts := conv[len(conv)-1].Timestamp
	return &ts, nil
}
