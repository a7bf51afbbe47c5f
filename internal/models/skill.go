package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill is one entry on a user's teach or learn list.
type Skill struct {
	ID              string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID          string    `gorm:"type:varchar(36);not null;index:idx_skill_user_role" json:"userId"`
	User            User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Category        string    `gorm:"type:varchar(50);not null;index:idx_skill_role_category" json:"category"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	ExperienceLevel string    `gorm:"type:varchar(20)" json:"experienceLevel,omitempty"`
	Role            string    `gorm:"type:varchar(10);not null;index:idx_skill_user_role;index:idx_skill_role_category" json:"type"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Skill role tags
const (
	SkillRoleTeach = "teach"
	SkillRoleLearn = "learn"
)

// SkillCategories is the fixed matching taxonomy.
var SkillCategories = []string{
	"Programming",
	"Languages",
	"Music",
	"Arts & Crafts",
	"Cooking",
	"Sports",
	"Academic",
	"Professional",
	"Lifestyle",
	"Other",
}

var ExperienceLevels = []string{
	"Beginner",
	"Intermediate",
	"Advanced",
	"Expert",
}

func IsValidCategory(category string) bool {
	return contains(SkillCategories, category)
}

func IsValidExperienceLevel(level string) bool {
	return level == "" || contains(ExperienceLevels, level)
}

func IsValidSkillRole(role string) bool {
	return role == SkillRoleTeach || role == SkillRoleLearn
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave hook for validation
func (s *Skill) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(s.Name) == "" || s.UserID == "" {
		return gorm.ErrInvalidData
	}
	if !IsValidSkillRole(s.Role) || !IsValidCategory(s.Category) || !IsValidExperienceLevel(s.ExperienceLevel) {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Skill) TableName() string {
	return "skills"
}
