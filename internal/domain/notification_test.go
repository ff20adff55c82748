package domain

import (
	"testing"

	"github.com/kolstage/backend/internal/domain/notify"
	"github.com/kolstage/backend/internal/entity"
	"github.com/kolstage/backend/internal/model"
	"github.com/kolstage/backend/internal/repository"
	"github.com/kolstage/backend/pkg/errorx"
	"github.com/kolstage/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func Test_notificationDomain(t *testing.T) {
	ctx := testutil.MockContext()
	notificationRepo := repository.NewNotificationRepository()
	domain := NewNotificationDomain(notificationRepo)
	emitter := notify.NewEmitter(notificationRepo, nil)

	kol := testutil.SampleUser(ctx, nil)
	emitter.Emit(ctx, kol.ID, entity.NotificationKolApproved, "first", "")
	emitter.Emit(ctx, kol.ID, entity.NotificationMissionSelected, "second", "")

	kolCtx := testutil.MockContextWithUserID(ctx, kol.ID)
	resp, err := domain.GetList(kolCtx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 2)
	require.EqualValues(t, 2, resp.UnreadCount)

	// Newest first.
	require.Equal(t, "second", resp.Notifications[0].Title)

	_, err = domain.Read(kolCtx, &model.ReadNotificationRequest{ID: resp.Notifications[0].ID})
	require.NoError(t, err)

	resp, err = domain.GetList(kolCtx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 1, resp.UnreadCount)

	// Reading someone else's notification is not allowed.
	other := testutil.SampleUser(ctx, nil)
	_, err = domain.Read(
		testutil.MockContextWithUserID(ctx, other.ID),
		&model.ReadNotificationRequest{ID: resp.Notifications[1].ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)

	_, err = domain.ReadAll(kolCtx, &model.ReadAllNotificationsRequest{})
	require.NoError(t, err)

	resp, err = domain.GetList(kolCtx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 0, resp.UnreadCount)
}
