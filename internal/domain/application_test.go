package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kolstage/backend/internal/domain/notify"
	"github.com/kolstage/backend/internal/entity"
	"github.com/kolstage/backend/internal/model"
	"github.com/kolstage/backend/internal/repository"
	"github.com/kolstage/backend/pkg/errorx"
	"github.com/kolstage/backend/pkg/testutil"
	"github.com/kolstage/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newApplicationDomain() (ApplicationDomain, repository.ApplicationRepository) {
	applicationRepo := repository.NewApplicationRepository()
	domain := NewApplicationDomain(
		applicationRepo,
		repository.NewCampaignRepository(),
		repository.NewUserRepository(nil),
		notify.NewEmitter(repository.NewNotificationRepository(), nil),
	)

	return domain, applicationRepo
}

func Test_applicationDomain_Apply(t *testing.T) {
	ctx := testutil.MockContext()
	domain, _ := newApplicationDomain()

	kol := testutil.SampleUser(ctx, nil) // 12000 followers
	campaign := testutil.SampleCampaign(ctx, &entity.Campaign{
		FollowerTiers: entity.Array[entity.FollowerTier]{entity.FollowerTierUnder10K},
	})

	kolCtx := testutil.MockContextWithUserID(ctx, kol.ID)

	// A count above the largest allowed ceiling still qualifies.
	resp, err := domain.Apply(kolCtx, &model.ApplyCampaignRequest{CampaignID: campaign.ID})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	_, err = domain.Apply(kolCtx, &model.ApplyCampaignRequest{CampaignID: campaign.ID})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_applicationDomain_Apply_requirements(t *testing.T) {
	ctx := testutil.MockContext()
	domain, _ := newApplicationDomain()

	campaign := testutil.SampleCampaign(ctx, &entity.Campaign{
		FollowerTiers: entity.Array[entity.FollowerTier]{entity.FollowerTier30K50K},
	})

	var errx errorx.Error

	// Pending profiles cannot apply.
	pending := testutil.SampleUser(ctx, &entity.User{Status: entity.UserStatusPending})
	_, err := domain.Apply(
		testutil.MockContextWithUserID(ctx, pending.ID),
		&model.ApplyCampaignRequest{CampaignID: campaign.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	// A count inside a lower bucket does not match a higher-tier campaign.
	small := testutil.SampleUser(ctx, &entity.User{
		FollowerInput: "15k",
		FollowerCount: sql.NullInt64{Valid: true, Int64: 15000},
	})
	_, err = domain.Apply(
		testutil.MockContextWithUserID(ctx, small.ID),
		&model.ApplyCampaignRequest{CampaignID: campaign.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	// No follower count means no restricted campaign at all.
	unknown := &entity.User{
		Base:          entity.Base{ID: uuid.NewString()},
		Email:         uuid.NewString() + "@example.com",
		Role:          entity.RoleUser,
		Status:        entity.UserStatusApproved,
		FollowerInput: "unknown",
	}
	require.NoError(t, repository.NewUserRepository(nil).Create(ctx, unknown))
	_, err = domain.Apply(
		testutil.MockContextWithUserID(ctx, unknown.ID),
		&model.ApplyCampaignRequest{CampaignID: campaign.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	// Closed campaigns do not accept applications.
	closed := testutil.SampleCampaign(ctx, &entity.Campaign{Status: entity.CampaignClosed})
	eligible := testutil.SampleUser(ctx, nil)
	_, err = domain.Apply(
		testutil.MockContextWithUserID(ctx, eligible.ID),
		&model.ApplyCampaignRequest{CampaignID: closed.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)

	// Neither do campaigns whose deadline has passed.
	expired := testutil.SampleCampaign(ctx, &entity.Campaign{
		Deadline: sql.NullTime{Valid: true, Time: time.Now().Add(-time.Hour)},
	})
	_, err = domain.Apply(
		testutil.MockContextWithUserID(ctx, eligible.ID),
		&model.ApplyCampaignRequest{CampaignID: expired.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)
}

func Test_applicationDomain_Apply_databaseFailure(t *testing.T) {
	ctx := testutil.MockContext()
	domain, _ := newApplicationDomain()

	kol := testutil.SampleUser(ctx, nil)
	campaign := testutil.SampleCampaign(ctx, nil)

	// A database failure must not masquerade as a duplicate application.
	require.NoError(t, xcontext.DB(ctx).Migrator().DropTable(&entity.Application{}))

	_, err := domain.Apply(
		testutil.MockContextWithUserID(ctx, kol.ID),
		&model.ApplyCampaignRequest{CampaignID: campaign.ID})
	require.Equal(t, errorx.Unknown, err)
}

func Test_applicationDomain_Lifecycle(t *testing.T) {
	ctx := testutil.MockContext()
	domain, applicationRepo := newApplicationDomain()

	kol := testutil.SampleUser(ctx, nil)
	campaign := testutil.SampleCampaign(ctx, nil)
	kolCtx := testutil.MockContextWithUserID(ctx, kol.ID)

	applied, err := domain.Apply(kolCtx, &model.ApplyCampaignRequest{CampaignID: campaign.ID})
	require.NoError(t, err)

	var errx errorx.Error

	// Cannot skip steps in the lifecycle.
	_, err = domain.Confirm(ctx, &model.ConfirmApplicationRequest{ID: applied.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Conflict, errx.Code)

	_, err = domain.MarkPaid(ctx, &model.MarkApplicationPaidRequest{ID: applied.ID})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Conflict, errx.Code)

	// Results can only be submitted after selection.
	_, err = domain.SubmitResult(kolCtx, &model.SubmitResultRequest{
		ID:        applied.ID,
		ResultURL: "https://youtube.com/watch?v=result",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)

	_, err = domain.Select(ctx, &model.SelectApplicationRequest{ID: applied.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, countNotifications(t, ctx, kol.ID, entity.NotificationMissionSelected))

	// A retried selection succeeds without a second notification.
	_, err = domain.Select(ctx, &model.SelectApplicationRequest{ID: applied.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, countNotifications(t, ctx, kol.ID, entity.NotificationMissionSelected))

	// Only the owner can submit the result.
	other := testutil.SampleUser(ctx, nil)
	_, err = domain.SubmitResult(
		testutil.MockContextWithUserID(ctx, other.ID),
		&model.SubmitResultRequest{ID: applied.ID, ResultURL: "https://youtube.com/other"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	_, err = domain.SubmitResult(kolCtx, &model.SubmitResultRequest{
		ID:        applied.ID,
		ResultURL: "not a url",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.SubmitResult(kolCtx, &model.SubmitResultRequest{
		ID:        applied.ID,
		ResultURL: "https://youtube.com/watch?v=result",
	})
	require.NoError(t, err)

	application, err := applicationRepo.GetByID(ctx, applied.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ApplicationCompleted, application.Status)
	require.Equal(t, "https://youtube.com/watch?v=result", application.ResultURL.String)

	// The result url is immutable once set.
	_, err = domain.SubmitResult(kolCtx, &model.SubmitResultRequest{
		ID:        applied.ID,
		ResultURL: "https://youtube.com/watch?v=changed",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	_, err = domain.Confirm(ctx, &model.ConfirmApplicationRequest{ID: applied.ID})
	require.NoError(t, err)

	_, err = domain.MarkPaid(ctx, &model.MarkApplicationPaidRequest{ID: applied.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, countNotifications(t, ctx, kol.ID, entity.NotificationPayoutCompleted))

	// Paid is final and retryable.
	_, err = domain.MarkPaid(ctx, &model.MarkApplicationPaidRequest{ID: applied.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, countNotifications(t, ctx, kol.ID, entity.NotificationPayoutCompleted))

	application, err = applicationRepo.GetByID(ctx, applied.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ApplicationPaid, application.Status)

	// The lifecycle never goes backward.
	_, err = domain.Select(ctx, &model.SelectApplicationRequest{ID: applied.ID})
	require.NoError(t, err)
	application, err = applicationRepo.GetByID(ctx, applied.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ApplicationPaid, application.Status)
}

func Test_applicationDomain_GetPayoutHistory(t *testing.T) {
	ctx := testutil.MockContext()
	domain, _ := newApplicationDomain()

	kol := testutil.SampleUser(ctx, nil)
	paidCampaign := testutil.SampleCampaign(ctx, &entity.Campaign{PayoutAmount: 250000})
	otherCampaign := testutil.SampleCampaign(ctx, nil)

	testutil.SampleApplication(ctx, &entity.Application{
		KolID:      kol.ID,
		CampaignID: paidCampaign.ID,
		Status:     entity.ApplicationPaid,
	})
	testutil.SampleApplication(ctx, &entity.Application{
		KolID:      kol.ID,
		CampaignID: otherCampaign.ID,
		Status:     entity.ApplicationSelected,
	})

	kolCtx := testutil.MockContextWithUserID(ctx, kol.ID)

	resp, err := domain.GetPayoutHistory(kolCtx, &model.GetPayoutHistoryRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Applications, 1)
	require.Equal(t, string(entity.ApplicationPaid), resp.Applications[0].Status)
	require.EqualValues(t, 250000, resp.TotalAmount)

	mine, err := domain.GetMyApplications(kolCtx, &model.GetMyApplicationsRequest{})
	require.NoError(t, err)
	require.Len(t, mine.Applications, 2)
}
