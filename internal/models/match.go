package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match is the undirected edge created when a swap request is accepted.
type Match struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	User1ID   string    `gorm:"type:varchar(36);not null;index" json:"user1Id"`
	User1     User      `gorm:"foreignKey:User1ID;constraint:OnDelete:CASCADE" json:"-"`
	User2ID   string    `gorm:"type:varchar(36);not null;index" json:"user2Id"`
	User2     User      `gorm:"foreignKey:User2ID;constraint:OnDelete:CASCADE" json:"-"`
	RequestID string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"requestId"`
	PairKey   string    `gorm:"type:varchar(80);not null;uniqueIndex" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.PairKey == "" {
		m.PairKey = PairKey(m.User1ID, m.User2ID)
	}
	return nil
}

// Partner returns the matched user that is not userID.
func (m *Match) Partner(userID string) string {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

func (Match) TableName() string {
	return "matches"
}

// PairKey is the order-independent key of a user pair.
func PairKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + ":" + b
}
