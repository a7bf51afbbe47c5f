package repositories

import (
	"context"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// CreateMatch inserts a match; the pair key keeps it unique per user pair
func (r *MatchRepository) CreateMatch(ctx context.Context, match *models.Match) error {
	return translate(r.db.WithContext(ctx).Create(match).Error, "match not found", "failed to create match")
}

// FindMatch returns the match between a and b, or nil
func (r *MatchRepository) FindMatch(ctx context.Context, a, b string) (*models.Match, error) {
	var match models.Match
	result := r.db.WithContext(ctx).Where("pair_key = ?", models.PairKey(a, b)).Limit(1).Find(&match)
	if result.Error != nil {
		return nil, translate(result.Error, "match not found", "failed to find match")
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &match, nil
}

// ListMatchesFor returns every match involving userID, newest first
func (r *MatchRepository) ListMatchesFor(ctx context.Context, userID string) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, translate(err, "matches not found", "failed to list matches")
	}
	return matches, nil
}

// ListAllMatches returns every match with both users preloaded, oldest first
func (r *MatchRepository) ListAllMatches(ctx context.Context) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.WithContext(ctx).
		Preload("User1").
		Preload("User2").
		Order("created_at ASC").
		Find(&matches).Error
	if err != nil {
		return nil, translate(err, "matches not found", "failed to list matches")
	}
	return matches, nil
}
