package repositories

import (
	"context"

	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
	"gorm.io/gorm"
)

type SwapRequestRepository struct {
	db *gorm.DB
}

func NewSwapRequestRepository(db *gorm.DB) *SwapRequestRepository {
	return &SwapRequestRepository{db: db}
}

// CreateSwapRequest inserts a request. A second pending request for the same
// pair trips the partial unique index and surfaces as INVALID_STATE.
func (r *SwapRequestRepository) CreateSwapRequest(ctx context.Context, req *models.SwapRequest) error {
	return translate(r.db.WithContext(ctx).Create(req).Error, "swap request not found", "failed to create swap request")
}

// GetSwapRequest retrieves a request by ID
func (r *SwapRequestRepository) GetSwapRequest(ctx context.Context, id string) (*models.SwapRequest, error) {
	var req models.SwapRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, translate(err, "swap request not found", "failed to get swap request")
	}
	return &req, nil
}

// UpdateSwapRequestStatus moves a request from one status to another.
// It is a compare-and-set: no row in status from means NOT_FOUND.
func (r *SwapRequestRepository) UpdateSwapRequestStatus(ctx context.Context, id, from, to string) error {
	result := r.db.WithContext(ctx).Model(&models.SwapRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)

	if result.Error != nil {
		return translate(result.Error, "swap request not found", "failed to update swap request")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "swap request not found or already processed")
	}
	return nil
}

// DeleteSwapRequest removes a pending request owned by senderID
func (r *SwapRequestRepository) DeleteSwapRequest(ctx context.Context, id, senderID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND sender_id = ? AND status = ?", id, senderID, models.SwapRequestStatusPending).
		Delete(&models.SwapRequest{})

	if result.Error != nil {
		return translate(result.Error, "swap request not found", "failed to delete swap request")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "swap request not found or already processed")
	}
	return nil
}

// AcceptSwapRequest flips a pending request addressed to recipientID to
// accepted and inserts match in the same transaction.
func (r *SwapRequestRepository) AcceptSwapRequest(ctx context.Context, id, recipientID string, match *models.Match) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SwapRequest{}).
			Where("id = ? AND recipient_id = ? AND status = ?", id, recipientID, models.SwapRequestStatusPending).
			Update("status", models.SwapRequestStatusAccepted)
		if result.Error != nil {
			return translate(result.Error, "swap request not found", "failed to accept swap request")
		}
		if result.RowsAffected == 0 {
			return errors.New(errors.ErrCodeNotFound, "swap request not found or already processed")
		}

		if err := tx.Create(match).Error; err != nil {
			return translate(err, "match not found", "failed to create match")
		}
		return nil
	})
}

// FindPendingBetween returns the pending request between a and b in either direction, or nil
func (r *SwapRequestRepository) FindPendingBetween(ctx context.Context, a, b string) (*models.SwapRequest, error) {
	var req models.SwapRequest
	result := r.db.WithContext(ctx).Where(
		"((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)) AND status = ?",
		a, b, b, a, models.SwapRequestStatusPending,
	).Limit(1).Find(&req)

	if result.Error != nil {
		return nil, translate(result.Error, "swap request not found", "failed to check pending requests")
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &req, nil
}

// FindPendingFrom returns the pending request sent by sender to recipient, or nil
func (r *SwapRequestRepository) FindPendingFrom(ctx context.Context, sender, recipient string) (*models.SwapRequest, error) {
	var req models.SwapRequest
	result := r.db.WithContext(ctx).
		Where("sender_id = ? AND recipient_id = ? AND status = ?", sender, recipient, models.SwapRequestStatusPending).
		Limit(1).Find(&req)

	if result.Error != nil {
		return nil, translate(result.Error, "swap request not found", "failed to check pending request")
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &req, nil
}

// ListPendingIncoming returns pending requests addressed to userID, newest first
func (r *SwapRequestRepository) ListPendingIncoming(ctx context.Context, userID string) ([]models.SwapRequest, error) {
	return r.listPending(ctx, "recipient_id = ?", userID)
}

// ListPendingOutgoing returns pending requests sent by userID, newest first
func (r *SwapRequestRepository) ListPendingOutgoing(ctx context.Context, userID string) ([]models.SwapRequest, error) {
	return r.listPending(ctx, "sender_id = ?", userID)
}

func (r *SwapRequestRepository) listPending(ctx context.Context, cond, userID string) ([]models.SwapRequest, error) {
	var requests []models.SwapRequest
	err := r.db.WithContext(ctx).
		Where(cond, userID).
		Where("status = ?", models.SwapRequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, translate(err, "swap requests not found", "failed to get pending requests")
	}
	return requests, nil
}
