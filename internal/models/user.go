package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty"`
	Bio            string    `gorm:"type:text" json:"bio,omitempty"`
	Location       string    `gorm:"type:varchar(255)" json:"location,omitempty"`
	ProfilePicture string    `gorm:"type:varchar(500)" json:"profilePicture,omitempty"`
	TelegramChatID int64     `gorm:"default:0" json:"-"` // linked chat for offline notices, 0 if none
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"-"`
}

// BeforeCreate assigns a UUID when the caller did not supply one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave hook for validation
func (u *User) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(u.Name) == "" {
		return gorm.ErrInvalidData
	}
	return nil
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
