package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/fixitnow/fixitnow/internal/db/models"
)

// NotificationRepository provides access to notification-related database operations
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository instance
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a new notification record
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// ListByRecipient returns a page of notifications for an account, newest first
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID uint, role models.ActorRole, opts *models.ListOptions) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND recipient_role = ?", recipientID, role).
		Limit(opts.Limit).Offset(opts.Offset).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flags a notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
