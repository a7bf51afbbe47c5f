package repositories

import (
	"context"
	"time"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// CreateMessage persists a chat message
func (r *MessageRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	return translate(r.db.WithContext(ctx).Create(msg).Error, "message not found", "failed to save message")
}

// GetMessage retrieves a message by ID
func (r *MessageRepository) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	var msg models.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error; err != nil {
		return nil, translate(err, "message not found", "failed to get message")
	}
	return &msg, nil
}

// MarkMessageRead sets the read flag; marking an already-read message is not an error
func (r *MessageRepository) MarkMessageRead(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("id = ?", id).
		Update("read", true)

	if result.Error != nil {
		return translate(result.Error, "message not found", "failed to mark message read")
	}
	if result.RowsAffected == 0 {
		// Postgres reports matched rows, so zero means the id is unknown
		return errors.New(errors.ErrCodeNotFound, "message not found")
	}
	return nil
}

// ListMessagesBetween returns the conversation between a and b, oldest first
func (r *MessageRepository) ListMessagesBetween(ctx context.Context, a, b string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("timestamp ASC").
		Find(&messages).Error
	if err != nil {
		return nil, translate(err, "messages not found", "failed to list messages")
	}
	return messages, nil
}

// MarkConversationRead marks every unread message from other to reader and returns their ids
func (r *MessageRepository) MarkConversationRead(ctx context.Context, reader, other string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Message{}).
			Where("sender_id = ? AND receiver_id = ? AND read = ?", other, reader, false).
			Order("timestamp ASC").
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Model(&models.Message{}).Where("id IN ?", ids).Update("read", true).Error
	})
	if err != nil {
		return nil, translate(err, "messages not found", "failed to mark conversation read")
	}
	return ids, nil
}

// LastMessageAt returns the timestamp of the newest message between a and b, or nil
func (r *MessageRepository) LastMessageAt(ctx context.Context, a, b string) (*time.Time, error) {
	var msg models.Message
	result := r.db.WithContext(ctx).
		Select("timestamp").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("timestamp DESC").
		Limit(1).
		Find(&msg)
	if result.Error != nil {
		return nil, translate(result.Error, "message not found", "failed to get last message")
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &msg.Timestamp, nil
}
