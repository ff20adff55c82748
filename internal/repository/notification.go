package repository

import (
	"context"

	"github.com/kolstage/backend/internal/entity"
	"github.com/kolstage/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(context.Context, *entity.Notification) error
	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.Notification, error)
	CountUnreadByUserID(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID string, id int64) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationRepository struct{}

func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(ctx context.Context, data *entity.Notification) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *notificationRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Notification, error) {
	var result []entity.Notification
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *notificationRepository) CountUnreadByUserID(
	ctx context.Context, userID string,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Notification{}).
		Where("user_id=? AND is_read=?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID string, id int64) error {
	tx := xcontext.DB(ctx).Model(&entity.Notification{}).
		Where("id=? AND user_id=?", id, userID).
		Update("is_read", true)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Model(&entity.Notification{}).
		Where("user_id=? AND is_read=?", userID, false).
		Update("is_read", true).Error
}
