package domain

import (
	"context"
	"errors"

	"github.com/kolstage/backend/internal/model"
	"github.com/kolstage/backend/internal/repository"
	"github.com/kolstage/backend/pkg/errorx"
	"github.com/kolstage/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NotificationDomain interface {
	GetList(context.Context, *model.GetNotificationsRequest) (*model.GetNotificationsResponse, error)
	Read(context.Context, *model.ReadNotificationRequest) (*model.ReadNotificationResponse, error)
	ReadAll(context.Context, *model.ReadAllNotificationsRequest) (*model.ReadAllNotificationsResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationDomain(notificationRepo repository.NotificationRepository) NotificationDomain {
	return &notificationDomain{notificationRepo: notificationRepo}
}

func (d *notificationDomain) GetList(
	ctx context.Context, req *model.GetNotificationsRequest,
) (*model.GetNotificationsResponse, error) {
	limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	notifications, err := d.notificationRepo.GetListByUserID(ctx, userID, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	unread, err := d.notificationRepo.CountUnreadByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread notifications: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Notification{}
	for i := range notifications {
		result = append(result, model.ConvertNotification(&notifications[i]))
	}

	return &model.GetNotificationsResponse{
		Notifications: result,
		UnreadCount:   unread,
	}, nil
}

func (d *notificationDomain) Read(
	ctx context.Context, req *model.ReadNotificationRequest,
) (*model.ReadNotificationResponse, error) {
	err := d.notificationRepo.MarkRead(ctx, xcontext.RequestUserID(ctx), req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found notification")
		}

		xcontext.Logger(ctx).Errorf("Cannot mark notification as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReadNotificationResponse{}, nil
}

func (d *notificationDomain) ReadAll(
	ctx context.Context, req *model.ReadAllNotificationsRequest,
) (*model.ReadAllNotificationsResponse, error) {
	err := d.notificationRepo.MarkAllRead(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark notifications as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReadAllNotificationsResponse{}, nil
}
