package domain

import (
	"database/sql"
	"testing"

	"github.com/kolstage/backend/internal/entity"
	"github.com/kolstage/backend/internal/model"
	"github.com/kolstage/backend/internal/repository"
	"github.com/kolstage/backend/pkg/errorx"
	"github.com/kolstage/backend/pkg/testutil"
	"github.com/kolstage/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newCampaignDomain() CampaignDomain {
	return NewCampaignDomain(
		repository.NewCampaignRepository(),
		repository.NewApplicationRepository(),
		repository.NewUserRepository(nil),
	)
}

func Test_campaignDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newCampaignDomain()

	admin := testutil.SampleAdmin(ctx, nil)
	adminCtx := testutil.MockContextWithUserID(ctx, admin.ID)

	resp, err := domain.Create(adminCtx, &model.CreateCampaignRequest{
		Title:            "Summer lookbook",
		BrandName:        "Acme",
		PayoutAmount:     300000,
		RecruitmentQuota: 5,
		FollowerTiers:    []string{"10k_30k", "30k_50k"},
		Deadline:         "2026-10-01",
	})
	require.NoError(t, err)

	var result entity.Campaign
	tx := xcontext.DB(ctx).Take(&result, "id=?", resp.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, "Summer lookbook", result.Title)
	require.Equal(t, entity.CampaignActive, result.Status)
	require.Equal(t, admin.ID, result.CreatedBy)
	require.Len(t, result.FollowerTiers, 2)
	require.True(t, result.Deadline.Valid)

	var errx errorx.Error
	_, err = domain.Create(adminCtx, &model.CreateCampaignRequest{BrandName: "Acme"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	// The error of an invalid tier lists the accepted values.
	_, err = domain.Create(adminCtx, &model.CreateCampaignRequest{
		Title:         "bad tiers",
		BrandName:     "Acme",
		FollowerTiers: []string{"mega"},
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
	require.Contains(t, errx.Message, "under_10k")

	_, err = domain.Create(adminCtx, &model.CreateCampaignRequest{
		Title:     "bad deadline",
		BrandName: "Acme",
		Deadline:  "01-10-2026",
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_campaignDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newCampaignDomain()

	kol := testutil.SampleUser(ctx, nil) // 12000 followers
	open := testutil.SampleCampaign(ctx, &entity.Campaign{
		Title:         "Open for everyone",
		FollowerTiers: entity.Array[entity.FollowerTier]{entity.FollowerTier10K30K},
	})
	restricted := testutil.SampleCampaign(ctx, &entity.Campaign{
		Title:         "Big accounts only",
		FollowerTiers: entity.Array[entity.FollowerTier]{entity.FollowerTier100KPlus},
	})

	other := testutil.SampleUser(ctx, nil)
	testutil.SampleApplication(ctx, &entity.Application{
		KolID:      other.ID,
		CampaignID: open.ID,
		Status:     entity.ApplicationSelected,
	})
	testutil.SampleApplication(ctx, &entity.Application{
		KolID:      kol.ID,
		CampaignID: restricted.ID,
		Status:     entity.ApplicationApplied,
	})

	kolCtx := testutil.MockContextWithUserID(ctx, kol.ID)
	resp, err := domain.GetList(kolCtx, &model.GetCampaignsRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Campaigns, 2)

	byTitle := map[string]model.Campaign{}
	for _, campaign := range resp.Campaigns {
		byTitle[campaign.Title] = campaign
	}

	// Derived counters are recomputed from the applications.
	require.EqualValues(t, 1, byTitle["Open for everyone"].ApplicantsCount)
	require.EqualValues(t, 1, byTitle["Open for everyone"].SelectedCount)
	require.True(t, byTitle["Open for everyone"].CanApply)

	// An already applied campaign is never applicable again.
	require.EqualValues(t, 1, byTitle["Big accounts only"].ApplicantsCount)
	require.EqualValues(t, 0, byTitle["Big accounts only"].SelectedCount)
	require.False(t, byTitle["Big accounts only"].CanApply)
	require.Equal(t, "applied", byTitle["Big accounts only"].MyApplicationStatus)
}

func Test_campaignDomain_Get_filtersByTier(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newCampaignDomain()

	kol := testutil.SampleUser(ctx, &entity.User{
		FollowerInput: "80k",
		FollowerCount: sql.NullInt64{Valid: true, Int64: 80000},
	})
	campaign := testutil.SampleCampaign(ctx, &entity.Campaign{
		FollowerTiers: entity.Array[entity.FollowerTier]{entity.FollowerTier50K70K},
	})

	// Counts in the bucket gap still map to the 50k_70k bucket.
	resp, err := domain.Get(
		testutil.MockContextWithUserID(ctx, kol.ID),
		&model.GetCampaignRequest{ID: campaign.ID})
	require.NoError(t, err)
	require.True(t, resp.CanApply)

	var errx errorx.Error
	_, err = domain.Get(ctx, &model.GetCampaignRequest{ID: "missing"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_campaignDomain_CloseAndExtend(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newCampaignDomain()
	campaignRepo := repository.NewCampaignRepository()

	campaign := testutil.SampleCampaign(ctx, nil)

	_, err := domain.ExtendDeadline(ctx, &model.ExtendCampaignDeadlineRequest{
		ID:       campaign.ID,
		Deadline: "2026-12-31",
	})
	require.NoError(t, err)

	updated, err := campaignRepo.GetByID(ctx, campaign.ID)
	require.NoError(t, err)
	require.True(t, updated.Deadline.Valid)

	_, err = domain.Close(ctx, &model.CloseCampaignRequest{ID: campaign.ID})
	require.NoError(t, err)

	updated, err = campaignRepo.GetByID(ctx, campaign.ID)
	require.NoError(t, err)
	require.Equal(t, entity.CampaignClosed, updated.Status)

	// Re-closing an already closed campaign is a no-op success.
	_, err = domain.Close(ctx, &model.CloseCampaignRequest{ID: campaign.ID})
	require.NoError(t, err)

	updated, err = campaignRepo.GetByID(ctx, campaign.ID)
	require.NoError(t, err)
	require.Equal(t, entity.CampaignClosed, updated.Status)

	var errx errorx.Error
	_, err = domain.Close(ctx, &model.CloseCampaignRequest{ID: "missing"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}
