package notify

import (
	"context"
	"encoding/json"

	"github.com/kolstage/backend/internal/entity"
	"github.com/kolstage/backend/internal/model"
	"github.com/kolstage/backend/internal/repository"
	"github.com/kolstage/backend/pkg/pubsub"
	"github.com/kolstage/backend/pkg/xcontext"
)

const Topic = "notifications"

type event struct {
	UserID       string             `json:"user_id"`
	Notification model.Notification `json:"notification"`
}

// Emitter delivers in-app notifications. Delivery is best effort, a failed
// notification never fails the operation that produced it.
type Emitter interface {
	Emit(ctx context.Context, userID string, typ entity.NotificationType, title, message string)
}

type emitter struct {
	notificationRepo repository.NotificationRepository
	publisher        pubsub.Publisher
}

func NewEmitter(
	notificationRepo repository.NotificationRepository,
	publisher pubsub.Publisher,
) Emitter {
	return &emitter{notificationRepo: notificationRepo, publisher: publisher}
}

func (e *emitter) Emit(
	ctx context.Context, userID string, typ entity.NotificationType, title, message string,
) {
	notification := &entity.Notification{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		UserID:        userID,
		Type:          typ,
		Title:         title,
		Message:       message,
	}

	if err := e.notificationRepo.Create(ctx, notification); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot create notification: %v", err)
		return
	}

	if e.publisher == nil {
		return
	}

	b, err := json.Marshal(event{
		UserID:       userID,
		Notification: model.ConvertNotification(notification),
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot marshal notification event: %v", err)
		return
	}

	err = e.publisher.Publish(ctx, Topic, &pubsub.Pack{Key: []byte(userID), Msg: b})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish notification event: %v", err)
	}
}
