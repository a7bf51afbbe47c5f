package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	SenderID   string    `gorm:"type:varchar(36);not null;index:idx_message_pair" json:"senderId"`
	ReceiverID string    `gorm:"type:varchar(36);not null;index:idx_message_pair" json:"receiverId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Read       bool      `gorm:"not null;default:false" json:"read"`
	Timestamp  time.Time `gorm:"not null;index" json:"timestamp"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return nil
}

func (Message) TableName() string {
	return "messages"
}
