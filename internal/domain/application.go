package domain

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/kolstage/backend/internal/common"
	"github.com/kolstage/backend/internal/domain/notify"
	"github.com/kolstage/backend/internal/domain/tier"
	"github.com/kolstage/backend/internal/entity"
	"github.com/kolstage/backend/internal/model"
	"github.com/kolstage/backend/internal/repository"
	"github.com/kolstage/backend/pkg/enum"
	"github.com/kolstage/backend/pkg/errorx"
	"github.com/kolstage/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ApplicationDomain interface {
	Apply(context.Context, *model.ApplyCampaignRequest) (*model.ApplyCampaignResponse, error)
	SubmitResult(context.Context, *model.SubmitResultRequest) (*model.SubmitResultResponse, error)
	GetList(context.Context, *model.GetApplicationsRequest) (*model.GetApplicationsResponse, error)
	Select(context.Context, *model.SelectApplicationRequest) (*model.SelectApplicationResponse, error)
	Confirm(context.Context, *model.ConfirmApplicationRequest) (*model.ConfirmApplicationResponse, error)
	MarkPaid(context.Context, *model.MarkApplicationPaidRequest) (*model.MarkApplicationPaidResponse, error)
	GetMyApplications(context.Context, *model.GetMyApplicationsRequest) (*model.GetMyApplicationsResponse, error)
	GetPayoutHistory(context.Context, *model.GetPayoutHistoryRequest) (*model.GetPayoutHistoryResponse, error)
}

type applicationDomain struct {
	applicationRepo repository.ApplicationRepository
	campaignRepo    repository.CampaignRepository
	userRepo        repository.UserRepository
	emitter         notify.Emitter
}

func NewApplicationDomain(
	applicationRepo repository.ApplicationRepository,
	campaignRepo repository.CampaignRepository,
	userRepo repository.UserRepository,
	emitter notify.Emitter,
) ApplicationDomain {
	return &applicationDomain{
		applicationRepo: applicationRepo,
		campaignRepo:    campaignRepo,
		userRepo:        userRepo,
		emitter:         emitter,
	}
}

func (d *applicationDomain) Apply(
	ctx context.Context, req *model.ApplyCampaignRequest,
) (*model.ApplyCampaignResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if common.ResolveAccessState(user) != common.AccessApproved {
		return nil, errorx.New(errorx.PermissionDenied,
			"Your profile must be approved before applying")
	}

	campaign, err := d.campaignRepo.GetByID(ctx, req.CampaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign: %v", err)
		return nil, errorx.Unknown
	}

	if campaign.Status != entity.CampaignActive {
		return nil, errorx.New(errorx.Unavailable, "This campaign is closed")
	}

	if campaign.Deadline.Valid && time.Now().After(campaign.Deadline.Time) {
		return nil, errorx.New(errorx.Unavailable, "The campaign deadline has passed")
	}

	ok := tier.CanApply(user.FollowerCount.Int64, user.FollowerCount.Valid, campaign.FollowerTiers)
	if !ok {
		return nil, errorx.New(errorx.PermissionDenied,
			"Your follower count does not match this campaign")
	}

	_, err = d.applicationRepo.GetByUserAndCampaign(ctx, user.ID, campaign.ID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already applied to this campaign")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
		return nil, errorx.Unknown
	}

	application := &entity.Application{
		Base:       entity.Base{ID: uuid.NewString()},
		KolID:      user.ID,
		CampaignID: campaign.ID,
		Status:     entity.ApplicationApplied,
	}

	// The unique (kol, campaign) index is the final arbiter under races.
	if err := d.applicationRepo.Create(ctx, application); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "You already applied to this campaign")
		}

		xcontext.Logger(ctx).Errorf("Cannot create application: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ApplyCampaignResponse{ID: application.ID}, nil
}

func (d *applicationDomain) SubmitResult(
	ctx context.Context, req *model.SubmitResultRequest,
) (*model.SubmitResultResponse, error) {
	resultURL, err := url.ParseRequestURI(req.ResultURL)
	if err != nil || resultURL.Host == "" {
		return nil, errorx.New(errorx.BadRequest, "Please provide a valid result url")
	}

	application, err := d.getApplication(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if application.KolID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "This application is not yours")
	}

	updated, err := d.applicationRepo.SubmitResultByID(ctx, application.ID, req.ResultURL)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot submit result: %v", err)
		return nil, errorx.Unknown
	}

	if !updated {
		if application.ResultURL.Valid {
			return nil, errorx.New(errorx.AlreadyExists, "The result url was already submitted")
		}

		return nil, errorx.New(errorx.Unavailable,
			"Only selected applications can submit a result")
	}

	return &model.SubmitResultResponse{}, nil
}

func (d *applicationDomain) GetList(
	ctx context.Context, req *model.GetApplicationsRequest,
) (*model.GetApplicationsResponse, error) {
	limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.ApplicationFilter{CampaignID: req.CampaignID}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.ApplicationStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		filter.Status = []entity.ApplicationStatus{status}
	}

	applications, err := d.applicationRepo.GetList(ctx, &filter, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get application list: %v", err)
		return nil, errorx.Unknown
	}

	kolIDs := make([]string, 0, len(applications))
	for i := range applications {
		kolIDs = append(kolIDs, applications[i].KolID)
	}

	kols, err := d.userRepo.GetByIDs(ctx, kolIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get kols: %v", err)
		return nil, errorx.Unknown
	}

	kolMap := map[string]model.User{}
	for i := range kols {
		kolMap[kols[i].ID] = model.ConvertUser(&kols[i], true)
	}

	result := []model.Application{}
	for i := range applications {
		result = append(result, model.ConvertApplication(
			&applications[i], model.Campaign{}, kolMap[applications[i].KolID]))
	}

	return &model.GetApplicationsResponse{Applications: result}, nil
}

func (d *applicationDomain) Select(
	ctx context.Context, req *model.SelectApplicationRequest,
) (*model.SelectApplicationResponse, error) {
	application, err := d.getApplication(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated, err := d.transit(ctx, application, entity.ApplicationApplied, entity.ApplicationSelected)
	if err != nil {
		return nil, err
	}

	if updated {
		campaign := d.getCampaignQuiet(ctx, application.CampaignID)
		d.emitter.Emit(ctx, application.KolID, entity.NotificationMissionSelected,
			"You have been selected",
			fmt.Sprintf("You were selected for the %s campaign of %s",
				campaign.Title, campaign.BrandName))
	}

	return &model.SelectApplicationResponse{}, nil
}

func (d *applicationDomain) Confirm(
	ctx context.Context, req *model.ConfirmApplicationRequest,
) (*model.ConfirmApplicationResponse, error) {
	application, err := d.getApplication(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	_, err = d.transit(ctx, application, entity.ApplicationCompleted, entity.ApplicationConfirmed)
	if err != nil {
		return nil, err
	}

	return &model.ConfirmApplicationResponse{}, nil
}

func (d *applicationDomain) MarkPaid(
	ctx context.Context, req *model.MarkApplicationPaidRequest,
) (*model.MarkApplicationPaidResponse, error) {
	application, err := d.getApplication(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated, err := d.transit(ctx, application, entity.ApplicationConfirmed, entity.ApplicationPaid)
	if err != nil {
		return nil, err
	}

	if updated {
		campaign := d.getCampaignQuiet(ctx, application.CampaignID)
		d.emitter.Emit(ctx, application.KolID, entity.NotificationPayoutCompleted,
			"Your payout has been completed",
			fmt.Sprintf("The payout of %v from %s has been completed",
				campaign.PayoutAmount, campaign.BrandName))
	}

	return &model.MarkApplicationPaidResponse{}, nil
}

func (d *applicationDomain) GetMyApplications(
	ctx context.Context, req *model.GetMyApplicationsRequest,
) (*model.GetMyApplicationsResponse, error) {
	applications, err := d.getMyApplications(ctx, req.Offset, req.Limit, nil)
	if err != nil {
		return nil, err
	}

	return &model.GetMyApplicationsResponse{Applications: applications}, nil
}

func (d *applicationDomain) GetPayoutHistory(
	ctx context.Context, req *model.GetPayoutHistoryRequest,
) (*model.GetPayoutHistoryResponse, error) {
	applications, err := d.getMyApplications(
		ctx, req.Offset, req.Limit, []entity.ApplicationStatus{entity.ApplicationPaid})
	if err != nil {
		return nil, err
	}

	var total float64
	for i := range applications {
		total += applications[i].Campaign.PayoutAmount
	}

	return &model.GetPayoutHistoryResponse{
		Applications: applications,
		TotalAmount:  total,
	}, nil
}

func (d *applicationDomain) getMyApplications(
	ctx context.Context, offset, limit int, statuses []entity.ApplicationStatus,
) ([]model.Application, error) {
	limit, err := checkPagination(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	filter := repository.ApplicationFilter{
		KolID:  xcontext.RequestUserID(ctx),
		Status: statuses,
	}

	applications, err := d.applicationRepo.GetList(ctx, &filter, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get application list: %v", err)
		return nil, errorx.Unknown
	}

	campaignIDs := make([]string, 0, len(applications))
	for i := range applications {
		campaignIDs = append(campaignIDs, applications[i].CampaignID)
	}

	campaigns, err := d.campaignRepo.GetByIDs(ctx, campaignIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get campaigns: %v", err)
		return nil, errorx.Unknown
	}

	campaignMap := map[string]model.Campaign{}
	for i := range campaigns {
		campaignMap[campaigns[i].ID] = model.ConvertCampaign(&campaigns[i], 0, 0)
	}

	result := []model.Application{}
	for i := range applications {
		result = append(result, model.ConvertApplication(
			&applications[i], campaignMap[applications[i].CampaignID], model.User{}))
	}

	return result, nil
}

func (d *applicationDomain) getApplication(
	ctx context.Context, id string,
) (*entity.Application, error) {
	application, err := d.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found application")
		}

		xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
		return nil, errorx.Unknown
	}

	return application, nil
}

// transit moves an application one step forward in its lifecycle. A retry of
// an already performed step is a no-op success, so the caller never notifies
// the KOL twice for the same transition.
func (d *applicationDomain) transit(
	ctx context.Context, application *entity.Application, from, to entity.ApplicationStatus,
) (bool, error) {
	updated, err := d.applicationRepo.UpdateStatusByID(ctx, application.ID, from, to)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update application status: %v", err)
		return false, errorx.Unknown
	}

	if updated {
		return true, nil
	}

	current, err := d.getApplication(ctx, application.ID)
	if err != nil {
		return false, err
	}

	if atOrBeyond(current.Status, to) {
		return false, nil
	}

	return false, errorx.New(errorx.Conflict,
		"Cannot move an application from %s to %s", current.Status, to)
}

func atOrBeyond(current, target entity.ApplicationStatus) bool {
	order := []entity.ApplicationStatus{
		entity.ApplicationApplied,
		entity.ApplicationSelected,
		entity.ApplicationCompleted,
		entity.ApplicationConfirmed,
		entity.ApplicationPaid,
	}

	currentIdx, targetIdx := -1, -1
	for i, status := range order {
		if status == current {
			currentIdx = i
		}

		if status == target {
			targetIdx = i
		}
	}

	return currentIdx >= targetIdx && targetIdx != -1
}

func (d *applicationDomain) getCampaignQuiet(ctx context.Context, id string) *entity.Campaign {
	campaign, err := d.campaignRepo.GetByID(ctx, id)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get campaign of application: %v", err)
		return &entity.Campaign{}
	}

	return campaign
}
