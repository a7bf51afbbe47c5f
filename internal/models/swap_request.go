package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SwapRequest is a directed proposal from Sender to Recipient.
// Cancelling deletes the row, so there is no cancelled status.
type SwapRequest struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	SenderID    string    `gorm:"type:varchar(36);not null;index" json:"senderId"`
	Sender      User      `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	RecipientID string    `gorm:"type:varchar(36);not null;index" json:"recipientId"`
	Recipient   User      `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`
	Message     string    `gorm:"type:text" json:"message,omitempty"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PairKey     string    `gorm:"type:varchar(80);not null;index:idx_swap_pending_pair,unique,where:status = 'pending'" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

// Swap request status constants
const (
	SwapRequestStatusPending  = "pending"
	SwapRequestStatusAccepted = "accepted"
	SwapRequestStatusDeclined = "declined"
)

func (r *SwapRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.PairKey == "" {
		r.PairKey = PairKey(r.SenderID, r.RecipientID)
	}
	return nil
}

// Involves reports whether userID is the sender or the recipient.
func (r *SwapRequest) Involves(userID string) bool {
	return r.SenderID == userID || r.RecipientID == userID
}

// Counterpart returns the other side of the request relative to userID.
func (r *SwapRequest) Counterpart(userID string) string {
	if r.SenderID == userID {
		return r.RecipientID
	}
	return r.SenderID
}

func (SwapRequest) TableName() string {
	return "swap_requests"
}
