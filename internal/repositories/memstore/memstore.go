// Package memstore is an in-process entity store with the same contract as
// the GORM repositories. It backs STORE_DRIVER=memory and the service tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]models.User
	skills   map[string]models.Skill
	requests map[string]models.SwapRequest
	matches  map[string]models.Match
	messages map[string]models.Message

	// failures forces the named operation to fail with a transient error
	failures map[string]error
	now      func() time.Time
}

func New() *Store {
	return &Store{
		users:    make(map[string]models.User),
		skills:   make(map[string]models.Skill),
		requests: make(map[string]models.SwapRequest),
		matches:  make(map[string]models.Match),
		messages: make(map[string]models.Message),
		failures: make(map[string]error),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// FailOn makes every later call of op return err. A nil err clears it.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) failure(op string) error {
	if err, ok := s.failures[op]; ok {
		return errors.Wrap(err, errors.ErrCodeTransientStore, op+" failed")
	}
	return nil
}

func notFound(what string) error {
	return errors.New(errors.ErrCodeNotFound, what+" not found")
}

func conflict(what string) error {
	return errors.New(errors.ErrCodeInvalidState, what+" already exists")
}

// clock returns a strictly increasing time so ordering by timestamp is stable
func (s *Store) clock(last time.Time) time.Time {
	t := s.now()
	if !t.After(last) {
		t = last.Add(time.Microsecond)
	}
	return t
}

// Users

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("CreateUser"); err != nil {
		return err
	}
	if err := user.BeforeSave(nil); err != nil {
		return errors.Wrap(err, errors.ErrCodeValidation, "invalid user")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if _, ok := s.users[user.ID]; ok {
		return conflict("user")
	}
	now := s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure("GetUser"); err != nil {
		return nil, err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, notFound("user")
	}
	return &user, nil
}

func (s *Store) GetUsers(ctx context.Context, ids []string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure("GetUsers"); err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *Store) LinkTelegramChat(ctx context.Context, userID string, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("LinkTelegramChat"); err != nil {
		return err
	}
	user, ok := s.users[userID]
	if !ok {
		return notFound("user")
	}
	user.TelegramChatID = chatID
	user.UpdatedAt = s.now()
	s.users[userID] = user
	return nil
}

// Skills

func (s *Store) CreateSkill(ctx context.Context, skill *models.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("CreateSkill"); err != nil {
		return err
	}
	if err := skill.BeforeSave(nil); err != nil {
		return errors.Wrap(err, errors.ErrCodeValidation, "invalid skill")
	}
	if _, ok := s.users[skill.UserID]; !ok {
		return notFound("user")
	}
	if skill.ID == "" {
		skill.ID = uuid.NewString()
	}
	skill.CreatedAt = s.clock(s.lastSkillTime())
	s.skills[skill.ID] = *skill
	return nil
}

func (s *Store) lastSkillTime() time.Time {
	var last time.Time
	for _, sk := range s.skills {
		if sk.CreatedAt.After(last) {
			last = sk.CreatedAt
		}
	}
	return last
}

func (s *Store) GetSkillsByUser(ctx context.Context, userID, role string) ([]models.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure("GetSkillsByUser"); err != nil {
		return nil, err
	}
	var skills []models.Skill
	for _, sk := range s.skills {
		if sk.UserID == userID && sk.Role == role {
			skills = append(skills, sk)
		}
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].CreatedAt.Before(skills[j].CreatedAt) })
	return skills, nil
}

func (s *Store) ListUsersTeaching(ctx context.Context, categories []string, excludeUserID string) ([]string, error) {
	return s.listUsersByRole("ListUsersTeaching", models.SkillRoleTeach, categories, excludeUserID)
}

func (s *Store) ListUsersLearning(ctx context.Context, categories []string, excludeUserID string) ([]string, error) {
	return s.listUsersByRole("ListUsersLearning", models.SkillRoleLearn, categories, excludeUserID)
}

func (s *Store) listUsersByRole(op, role string, categories []string, excludeUserID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failure(op); err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}
	seen := make(map[string]struct{})
	var ids []string
	for _, sk := range s.skills {
		if sk.Role != role || sk.UserID == excludeUserID {
			continue
		}
		if _, ok := wanted[sk.Category]; !ok {
			continue
		}
		if _, dup := seen[sk.UserID]; dup {
			continue
		}
		seen[sk.UserID] = struct{}{}
		ids = append(ids, sk.UserID)
	}
	sort.Strings(ids)
	return ids, nil
}
