package postgres

import (
	"context"
	"errors"

	notificationDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/notification"
	"github.com/frahmantamala/smart-recruiter/internal/notification"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.RepositoryAPI {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notificationDatamodel.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, email string) ([]*notificationDatamodel.Notification, error) {
	var rows []*notificationDatamodel.Notification
	err := r.db.WithContext(ctx).
		Where("LOWER(recipient_email) = LOWER(?)", email).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *NotificationRepository) CountUnread(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notificationDatamodel.Notification{}).
		Where("LOWER(recipient_email) = LOWER(?) AND is_read = ?", email, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*notificationDatamodel.Notification, error) {
	var n notificationDatamodel.Notification
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&notificationDatamodel.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&notificationDatamodel.Notification{}).Error
}

func (r *NotificationRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&notificationDatamodel.Notification{})
	return res.RowsAffected, res.Error
}
