package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kolstage/backend/internal/domain/tier"
	"github.com/kolstage/backend/internal/entity"
	"github.com/kolstage/backend/internal/model"
	"github.com/kolstage/backend/internal/repository"
	"github.com/kolstage/backend/pkg/enum"
	"github.com/kolstage/backend/pkg/errorx"
	"github.com/kolstage/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CampaignDomain interface {
	Create(context.Context, *model.CreateCampaignRequest) (*model.CreateCampaignResponse, error)
	Update(context.Context, *model.UpdateCampaignRequest) (*model.UpdateCampaignResponse, error)
	ExtendDeadline(context.Context, *model.ExtendCampaignDeadlineRequest) (*model.ExtendCampaignDeadlineResponse, error)
	Close(context.Context, *model.CloseCampaignRequest) (*model.CloseCampaignResponse, error)
	GetList(context.Context, *model.GetCampaignsRequest) (*model.GetCampaignsResponse, error)
	Get(context.Context, *model.GetCampaignRequest) (*model.GetCampaignResponse, error)
}

type campaignDomain struct {
	campaignRepo    repository.CampaignRepository
	applicationRepo repository.ApplicationRepository
	userRepo        repository.UserRepository
}

func NewCampaignDomain(
	campaignRepo repository.CampaignRepository,
	applicationRepo repository.ApplicationRepository,
	userRepo repository.UserRepository,
) CampaignDomain {
	return &campaignDomain{
		campaignRepo:    campaignRepo,
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
	}
}

func (d *campaignDomain) Create(
	ctx context.Context, req *model.CreateCampaignRequest,
) (*model.CreateCampaignResponse, error) {
	if req.Title == "" || req.BrandName == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title or brand name")
	}

	if req.PayoutAmount < 0 {
		return nil, errorx.New(errorx.BadRequest, "Payout amount must not be negative")
	}

	followerTiers, err := parseFollowerTiers(req.FollowerTiers)
	if err != nil {
		return nil, err
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}

	campaign := &entity.Campaign{
		Base:          entity.Base{ID: uuid.NewString()},
		Title:         req.Title,
		BrandName:     req.BrandName,
		GuideContent:  req.GuideContent,
		GuideURL:      req.GuideURL,
		LineID:        req.LineID,
		KakaoID:       req.KakaoID,
		PayoutAmount:  req.PayoutAmount,
		BrandImageURL: req.BrandImageURL,
		FollowerTiers: followerTiers,
		Deadline:      deadline,
		Status:        entity.CampaignActive,
		CreatedBy:     xcontext.RequestUserID(ctx),
	}

	if req.RecruitmentQuota > 0 {
		campaign.RecruitmentQuota = sql.NullInt64{Valid: true, Int64: req.RecruitmentQuota}
	}

	if err := d.campaignRepo.Create(ctx, campaign); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create campaign: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCampaignResponse{ID: campaign.ID}, nil
}

func (d *campaignDomain) Update(
	ctx context.Context, req *model.UpdateCampaignRequest,
) (*model.UpdateCampaignResponse, error) {
	followerTiers, err := parseFollowerTiers(req.FollowerTiers)
	if err != nil {
		return nil, err
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}

	data := &entity.Campaign{
		Title:         req.Title,
		BrandName:     req.BrandName,
		GuideContent:  req.GuideContent,
		GuideURL:      req.GuideURL,
		LineID:        req.LineID,
		KakaoID:       req.KakaoID,
		PayoutAmount:  req.PayoutAmount,
		BrandImageURL: req.BrandImageURL,
		FollowerTiers: followerTiers,
		Deadline:      deadline,
	}

	if req.RecruitmentQuota > 0 {
		data.RecruitmentQuota = sql.NullInt64{Valid: true, Int64: req.RecruitmentQuota}
	}

	if err := d.campaignRepo.UpdateByID(ctx, req.ID, data); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot update campaign: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateCampaignResponse{}, nil
}

func (d *campaignDomain) ExtendDeadline(
	ctx context.Context, req *model.ExtendCampaignDeadlineRequest,
) (*model.ExtendCampaignDeadlineResponse, error) {
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}

	if !deadline.Valid {
		return nil, errorx.New(errorx.BadRequest, "Please provide a deadline")
	}

	if err := d.campaignRepo.ExtendDeadlineByID(ctx, req.ID, deadline.Time); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot extend campaign deadline: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ExtendCampaignDeadlineResponse{}, nil
}

func (d *campaignDomain) Close(
	ctx context.Context, req *model.CloseCampaignRequest,
) (*model.CloseCampaignResponse, error) {
	updated, err := d.campaignRepo.UpdateStatusByID(ctx, req.ID, entity.CampaignClosed)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot close campaign: %v", err)
		return nil, errorx.Unknown
	}

	// Closing an already closed campaign is a no-op success.
	if !updated {
		if _, err := d.campaignRepo.GetByID(ctx, req.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found campaign")
			}

			xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.CloseCampaignResponse{}, nil
}

func (d *campaignDomain) GetList(
	ctx context.Context, req *model.GetCampaignsRequest,
) (*model.GetCampaignsResponse, error) {
	limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.CampaignFilter{Q: req.Q}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.CampaignStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		filter.Status = status
	}

	campaigns, err := d.campaignRepo.GetList(ctx, &filter, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaign list: %v", err)
		return nil, errorx.Unknown
	}

	campaignIDs := make([]string, 0, len(campaigns))
	for i := range campaigns {
		campaignIDs = append(campaignIDs, campaigns[i].ID)
	}

	counts, myApplications, err := d.loadCampaignContext(ctx, campaignIDs)
	if err != nil {
		return nil, err
	}

	viewer, _ := d.loadViewer(ctx)

	result := []model.Campaign{}
	for i := range campaigns {
		result = append(result, d.enrichCampaign(&campaigns[i], counts, myApplications, viewer))
	}

	return &model.GetCampaignsResponse{Campaigns: result}, nil
}

func (d *campaignDomain) Get(
	ctx context.Context, req *model.GetCampaignRequest,
) (*model.GetCampaignResponse, error) {
	campaign, err := d.campaignRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
		return nil, errorx.Unknown
	}

	counts, myApplications, err := d.loadCampaignContext(ctx, []string{campaign.ID})
	if err != nil {
		return nil, err
	}

	viewer, _ := d.loadViewer(ctx)

	resp := model.GetCampaignResponse(d.enrichCampaign(campaign, counts, myApplications, viewer))
	return &resp, nil
}

// loadCampaignContext gathers the derived counters and the viewer's own
// applications for a set of campaigns in two queries.
func (d *campaignDomain) loadCampaignContext(
	ctx context.Context, campaignIDs []string,
) (map[string]repository.ApplicationCount, map[string]entity.ApplicationStatus, error) {
	counts, err := d.applicationRepo.CountByCampaignIDs(ctx, campaignIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count applications: %v", err)
		return nil, nil, errorx.Unknown
	}

	countMap := map[string]repository.ApplicationCount{}
	for _, count := range counts {
		countMap[count.CampaignID] = count
	}

	myApplications := map[string]entity.ApplicationStatus{}
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		applications, err := d.applicationRepo.GetList(
			ctx, &repository.ApplicationFilter{KolID: userID}, 0, -1)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get applications of user: %v", err)
			return nil, nil, errorx.Unknown
		}

		for i := range applications {
			myApplications[applications[i].CampaignID] = applications[i].Status
		}
	}

	return countMap, myApplications, nil
}

func (d *campaignDomain) loadViewer(ctx context.Context) (*entity.User, bool) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, false
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get viewer: %v", err)
		return nil, false
	}

	return user, true
}

func (d *campaignDomain) enrichCampaign(
	campaign *entity.Campaign,
	counts map[string]repository.ApplicationCount,
	myApplications map[string]entity.ApplicationStatus,
	viewer *entity.User,
) model.Campaign {
	count := counts[campaign.ID]
	result := model.ConvertCampaign(campaign, count.Total, count.Selected)

	if status, ok := myApplications[campaign.ID]; ok {
		result.MyApplicationStatus = string(status)
	}

	if viewer != nil && viewer.Status == entity.UserStatusApproved {
		result.CanApply = campaign.Status == entity.CampaignActive &&
			result.MyApplicationStatus == "" &&
			tier.CanApply(
				viewer.FollowerCount.Int64,
				viewer.FollowerCount.Valid,
				campaign.FollowerTiers,
			)
	}

	return result
}

func parseFollowerTiers(values []string) (entity.Array[entity.FollowerTier], error) {
	var result entity.Array[entity.FollowerTier]
	for _, value := range values {
		followerTier, err := enum.ToEnum[entity.FollowerTier](value)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest,
				"Invalid follower tier %s, expected one of %v",
				value, enum.Values[entity.FollowerTier]())
		}

		result = append(result, followerTier)
	}

	return result, nil
}

func parseDeadline(value string) (sql.NullTime, error) {
	if value == "" {
		return sql.NullTime{}, nil
	}

	deadline, err := time.Parse(model.DefaultDateLayout, value)
	if err != nil {
		return sql.NullTime{}, errorx.New(errorx.BadRequest, "Invalid deadline %s", value)
	}

	// The deadline is inclusive, applications close at the end of that day.
	return sql.NullTime{Valid: true, Time: deadline.Add(24*time.Hour - time.Nanosecond)}, nil
}
