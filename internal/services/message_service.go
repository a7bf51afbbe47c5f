package services

import (
	"context"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"github.com/Rohan-debug788/SkillSwap/internal/security"
	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
	"github.com/Rohan-debug788/SkillSwap/pkg/logger"
)

const defaultMaxMessageLength = 2000

type MessageService struct {
	store         MessageStore
	notifier      *OfflineNotifier
	maxMessageLen int
}

func NewMessageService(store MessageStore, maxMessageLen int) *MessageService {
	if maxMessageLen <= 0 {
		maxMessageLen = defaultMaxMessageLength
	}
	return &MessageService{
		store:         store,
		maxMessageLen: maxMessageLen,
	}
}

// SetNotifier attaches the offline notifier. A nil notifier disables notices.
func (s *MessageService) SetNotifier(n *OfflineNotifier) {
	s.notifier = n
}

// Send persists a new unread message from senderID to receiverID.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, content string) (*models.Message, error) {
	if receiverID == "" {
		return nil, errors.New(errors.ErrCodeValidation, "receiver ID is required")
	}

	content = security.SanitizeText(content, s.maxMessageLen)
	if content == "" {
		return nil, errors.New(errors.ErrCodeValidation, "message content is required")
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Read:       false,
	}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		logger.Error("Failed to persist message", "sender_id", senderID, "receiver_id", receiverID, "error", err)
		return nil, err
	}

	s.notifier.MessageReceived(ctx, senderID, receiverID)
	return msg, nil
}

// MarkRead flags a message as read on behalf of one of its participants and
// returns it. Unknown messages and outsiders both get NOT_FOUND_OR_UNAUTHORIZED.
func (s *MessageService) MarkRead(ctx context.Context, messageID, actorID string) (*models.Message, error) {
	if messageID == "" {
		return nil, errors.New(errors.ErrCodeValidation, "message ID is required")
	}

	msg, err := s.store.GetMessage(ctx, messageID)
	if err != nil {
		return nil, hideNotFound(err)
	}
	if msg.ReceiverID != actorID && msg.SenderID != actorID {
		return nil, notFoundOrUnauthorized()
	}

	if err := s.store.MarkMessageRead(ctx, messageID); err != nil {
		return nil, hideNotFound(err)
	}
	msg.Read = true
	return msg, nil
}

// History returns the conversation between userID and otherID, oldest first.
func (s *MessageService) History(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	if otherID == "" {
		return nil, errors.New(errors.ErrCodeValidation, "user ID is required")
	}
	messages, err := s.store.ListMessagesBetween(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

// MarkConversationRead marks everything otherID sent to readerID as read and
// returns the affected message ids.
func (s *MessageService) MarkConversationRead(ctx context.Context, readerID, otherID string) ([]string, error) {
	if otherID == "" {
		return nil, errors.New(errors.ErrCodeValidation, "user ID is required")
	}
	ids, err := s.store.MarkConversationRead(ctx, readerID, otherID)
	if err != nil {
		return nil, err
	}
	logger.Debug("Conversation marked read", "reader_id", readerID, "other_id", otherID, "count", len(ids))
	return ids, nil
}
