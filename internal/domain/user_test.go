package domain

import (
	"context"
	"database/sql"
	"testing"

	"github.com/kolstage/backend/internal/domain/notify"
	"github.com/kolstage/backend/internal/entity"
	"github.com/kolstage/backend/internal/model"
	"github.com/kolstage/backend/internal/repository"
	"github.com/kolstage/backend/pkg/errorx"
	"github.com/kolstage/backend/pkg/testutil"
	"github.com/kolstage/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func countNotifications(t *testing.T, ctx context.Context, userID string, typ entity.NotificationType) int64 {
	var count int64
	tx := xcontext.DB(ctx).Model(&entity.Notification{}).
		Where("user_id=? AND type=?", userID, typ).
		Count(&count)
	require.NoError(t, tx.Error)
	return count
}

func Test_userDomain_Approve_idempotent(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository(nil)
	notificationRepo := repository.NewNotificationRepository()
	domain := NewUserDomain(userRepo, notify.NewEmitter(notificationRepo, nil))

	kol := testutil.SampleUser(ctx, &entity.User{Status: entity.UserStatusPending})

	_, err := domain.Approve(ctx, &model.ApproveUserRequest{ID: kol.ID})
	require.NoError(t, err)

	updated, err := userRepo.GetByID(ctx, kol.ID)
	require.NoError(t, err)
	require.Equal(t, entity.UserStatusApproved, updated.Status)
	require.EqualValues(t, 1, countNotifications(t, ctx, kol.ID, entity.NotificationKolApproved))

	// A retry of the same decision is a no-op success without a second
	// notification.
	_, err = domain.Approve(ctx, &model.ApproveUserRequest{ID: kol.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, countNotifications(t, ctx, kol.ID, entity.NotificationKolApproved))

	// The opposite decision on a decided profile is a conflict.
	_, err = domain.Reject(ctx, &model.RejectUserRequest{ID: kol.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Conflict, errx.Code)

	_, err = domain.Approve(ctx, &model.ApproveUserRequest{ID: "unknown-user"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_userDomain_Reject(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository(nil)
	domain := NewUserDomain(userRepo, notify.NewEmitter(repository.NewNotificationRepository(), nil))

	kol := testutil.SampleUser(ctx, &entity.User{Status: entity.UserStatusPending})

	_, err := domain.Reject(ctx, &model.RejectUserRequest{ID: kol.ID})
	require.NoError(t, err)

	updated, err := userRepo.GetByID(ctx, kol.ID)
	require.NoError(t, err)
	require.Equal(t, entity.UserStatusRejected, updated.Status)
	require.EqualValues(t, 1, countNotifications(t, ctx, kol.ID, entity.NotificationKolRejected))
}

func Test_userDomain_Update_parsesFollowerInput(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository(nil)
	domain := NewUserDomain(userRepo, notify.NewEmitter(repository.NewNotificationRepository(), nil))

	kol := testutil.SampleUser(ctx, nil)
	kolCtx := testutil.MockContextWithUserID(ctx, kol.ID)

	resp, err := domain.Update(kolCtx, &model.UpdateUserRequest{FollowerInput: "1만"})
	require.NoError(t, err)
	require.EqualValues(t, 10000, resp.FollowerCount)
	require.Equal(t, "OPERATIVE", resp.TierBadge)

	// Unparseable input keeps the raw text but clears the count.
	resp, err = domain.Update(kolCtx, &model.UpdateUserRequest{FollowerInput: "unknown"})
	require.NoError(t, err)
	require.EqualValues(t, 0, resp.FollowerCount)
	require.Equal(t, "unknown", resp.FollowerInput)
}

func Test_userDomain_TierUpgrade(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository(nil)
	notificationRepo := repository.NewNotificationRepository()
	domain := NewUserDomain(userRepo, notify.NewEmitter(notificationRepo, nil))

	kol := testutil.SampleUser(ctx, &entity.User{
		FollowerInput: "12k",
		FollowerCount: sql.NullInt64{Valid: true, Int64: 12000},
	})
	kolCtx := testutil.MockContextWithUserID(ctx, kol.ID)

	resp, err := domain.RequestTierUpgrade(kolCtx, &model.RequestTierUpgradeRequest{})
	require.NoError(t, err)
	require.Equal(t, "OPERATIVE", resp.Tier)

	// Only one pending request at a time.
	_, err = domain.RequestTierUpgrade(kolCtx, &model.RequestTierUpgradeRequest{})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	requests, err := domain.GetTierUpgradeRequests(ctx, &model.GetTierUpgradeRequestsRequest{})
	require.NoError(t, err)
	require.Len(t, requests.Users, 1)
	require.Equal(t, "OPERATIVE", requests.Users[0].TierRequested)

	approved, err := domain.ApproveTierUpgrade(ctx, &model.ApproveTierUpgradeRequest{ID: kol.ID})
	require.NoError(t, err)
	require.Equal(t, "OPERATIVE", approved.Tier)
	require.EqualValues(t, 1, countNotifications(t, ctx, kol.ID, entity.NotificationTierApproved))

	updated, err := userRepo.GetByID(ctx, kol.ID)
	require.NoError(t, err)
	require.Equal(t, "OPERATIVE", updated.Tier.String)
	require.False(t, updated.TierRequested.Valid)
	require.False(t, updated.TierRequestedAt.Valid)

	// The granted tier does not qualify for the same tier again.
	_, err = domain.RequestTierUpgrade(kolCtx, &model.RequestTierUpgradeRequest{})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.ApproveTierUpgrade(ctx, &model.ApproveTierUpgradeRequest{ID: kol.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_userDomain_RejectTierUpgrade(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository(nil)
	domain := NewUserDomain(userRepo, notify.NewEmitter(repository.NewNotificationRepository(), nil))

	kol := testutil.SampleUser(ctx, &entity.User{
		FollowerCount: sql.NullInt64{Valid: true, Int64: 50000},
	})
	kolCtx := testutil.MockContextWithUserID(ctx, kol.ID)

	resp, err := domain.RequestTierUpgrade(kolCtx, &model.RequestTierUpgradeRequest{})
	require.NoError(t, err)
	require.Equal(t, "PRESTIGE", resp.Tier)

	_, err = domain.RejectTierUpgrade(ctx, &model.RejectTierUpgradeRequest{ID: kol.ID})
	require.NoError(t, err)

	updated, err := userRepo.GetByID(ctx, kol.ID)
	require.NoError(t, err)
	require.False(t, updated.Tier.Valid)
	require.False(t, updated.TierRequested.Valid)
	require.EqualValues(t, 0, countNotifications(t, ctx, kol.ID, entity.NotificationTierApproved))
}
