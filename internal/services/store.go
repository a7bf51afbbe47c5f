package services

import (
	"context"
	"time"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
)

type UserReader interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUsers(ctx context.Context, ids []string) ([]models.User, error)
}

type SkillReader interface {
	GetSkillsByUser(ctx context.Context, userID, role string) ([]models.Skill, error)
	ListUsersTeaching(ctx context.Context, categories []string, excludeUserID string) ([]string, error)
	ListUsersLearning(ctx context.Context, categories []string, excludeUserID string) ([]string, error)
}

type SwapRequestStore interface {
	CreateSwapRequest(ctx context.Context, req *models.SwapRequest) error
	GetSwapRequest(ctx context.Context, id string) (*models.SwapRequest, error)
	UpdateSwapRequestStatus(ctx context.Context, id, from, to string) error
	DeleteSwapRequest(ctx context.Context, id, senderID string) error
	AcceptSwapRequest(ctx context.Context, id, recipientID string, match *models.Match) error
	FindPendingBetween(ctx context.Context, a, b string) (*models.SwapRequest, error)
	FindPendingFrom(ctx context.Context, sender, recipient string) (*models.SwapRequest, error)
	ListPendingIncoming(ctx context.Context, userID string) ([]models.SwapRequest, error)
	ListPendingOutgoing(ctx context.Context, userID string) ([]models.SwapRequest, error)
}

type MatchStore interface {
	CreateMatch(ctx context.Context, match *models.Match) error
	FindMatch(ctx context.Context, a, b string) (*models.Match, error)
	ListMatchesFor(ctx context.Context, userID string) ([]models.Match, error)
	ListAllMatches(ctx context.Context) ([]models.Match, error)
}

type MessageStore interface {
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessage(ctx context.Context, id string) (*models.Message, error)
	MarkMessageRead(ctx context.Context, id string) error
	ListMessagesBetween(ctx context.Context, a, b string) ([]models.Message, error)
	MarkConversationRead(ctx context.Context, reader, other string) ([]string, error)
	LastMessageAt(ctx context.Context, a, b string) (*time.Time, error)
}

// Store is the full entity store the services run against. Both the GORM
// repositories and memstore satisfy it.
type Store interface {
	UserReader
	SkillReader
	SwapRequestStore
	MatchStore
	MessageStore
}
