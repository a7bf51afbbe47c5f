package repositories

import (
	"context"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Create(user)
	return translate(result.Error, "user not found", "failed to create user")
}

// GetUser retrieves a user by ID
func (r *UserRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	if result.Error != nil {
		return nil, translate(result.Error, "user not found", "failed to get user")
	}
	return &user, nil
}

// GetUsers retrieves every user whose id is in ids. Missing ids are skipped.
func (r *UserRepository) GetUsers(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, translate(err, "users not found", "failed to get users")
	}
	return users, nil
}

// LinkTelegramChat records the Telegram chat offline notices go to.
func (r *UserRepository) LinkTelegramChat(ctx context.Context, userID string, chatID int64) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("telegram_chat_id", chatID)
	if result.Error != nil {
		return translate(result.Error, "user not found", "failed to link telegram chat")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "user not found", "failed to link telegram chat")
	}
	return nil
}
