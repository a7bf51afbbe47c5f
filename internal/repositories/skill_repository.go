package repositories

import (
	"context"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"gorm.io/gorm"
)

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

// CreateSkill stores a skill entry for its owner
func (r *SkillRepository) CreateSkill(ctx context.Context, skill *models.Skill) error {
	return translate(r.db.WithContext(ctx).Create(skill).Error, "skill not found", "failed to create skill")
}

// GetSkillsByUser returns a user's skills with the given role, oldest first
func (r *SkillRepository) GetSkillsByUser(ctx context.Context, userID, role string) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Order("created_at ASC").
		Find(&skills).Error
	if err != nil {
		return nil, translate(err, "skills not found", "failed to get skills")
	}
	return skills, nil
}

// ListUsersTeaching returns distinct users (other than excludeUserID) teaching any of the categories
func (r *SkillRepository) ListUsersTeaching(ctx context.Context, categories []string, excludeUserID string) ([]string, error) {
	return r.listUsersByRole(ctx, models.SkillRoleTeach, categories, excludeUserID)
}

// ListUsersLearning returns distinct users (other than excludeUserID) learning any of the categories
func (r *SkillRepository) ListUsersLearning(ctx context.Context, categories []string, excludeUserID string) ([]string, error) {
	return r.listUsersByRole(ctx, models.SkillRoleLearn, categories, excludeUserID)
}

func (r *SkillRepository) listUsersByRole(ctx context.Context, role string, categories []string, excludeUserID string) ([]string, error) {
	if len(categories) == 0 {
		return nil, nil
	}

	var userIDs []string
	err := r.db.WithContext(ctx).
		Model(&models.Skill{}).
		Distinct("user_id").
		Where("role = ? AND category IN ? AND user_id <> ?", role, categories, excludeUserID).
		Order("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, translate(err, "skills not found", "failed to list users by skill")
	}
	return userIDs, nil
}
