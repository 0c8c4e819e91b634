package services

import (
	"context"
	"encoding/json"

	"github.com/fixitnow/fixitnow/internal/db/models"
	"github.com/fixitnow/fixitnow/internal/db/repos"
	"github.com/fixitnow/fixitnow/internal/logger"
)

// Notifier creates best-effort notification records. Failures are
// logged and swallowed so they never block the operation that fired
// them.
type Notifier struct {
	repo *repos.NotificationRepository
}

// NewNotifier creates a new notifier instance
func NewNotifier(repo *repos.NotificationRepository) *Notifier {
	return &Notifier{repo: repo}
}

// Notify records a notification for the recipient. It never returns an
// error; a nil notifier is a no-op so tests can skip wiring it.
func (n *Notifier) Notify(ctx context.Context, recipientID uint, role models.ActorRole, typ models.NotificationType, payload interface{}) {
	if n == nil || n.repo == nil {
		return
	}

	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			logger.Warnf("failed to marshal notification payload: %v", err)
			return
		}
		raw = data
	}

	notification := &models.Notification{
		RecipientID:   recipientID,
		RecipientRole: role,
		Type:          typ,
		Payload:       raw,
	}
	if err := n.repo.Create(ctx, notification); err != nil {
		logger.WarnWithFields("failed to create notification", map[string]interface{}{
			"recipient_id": recipientID,
			"type":         typ,
			"error":        err.Error(),
		})
	}
}

// ListForRecipient returns a page of notifications for an account
func (n *Notifier) ListForRecipient(ctx context.Context, recipientID uint, role models.ActorRole, opts *models.ListOptions) ([]models.Notification, error) {
	return n.repo.ListByRecipient(ctx, recipientID, role, opts)
}

// MarkRead flags a notification as read
func (n *Notifier) MarkRead(ctx context.Context, id uint) error {
	err := n.repo.MarkRead(ctx, id)
	if err == nil {
		return nil
	}
	return mapNotFound(err, "notification %d", id)
}
