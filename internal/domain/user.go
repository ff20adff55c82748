package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kolstage/backend/internal/domain/notify"
	"github.com/kolstage/backend/internal/domain/tier"
	"github.com/kolstage/backend/internal/entity"
	"github.com/kolstage/backend/internal/model"
	"github.com/kolstage/backend/internal/repository"
	"github.com/kolstage/backend/pkg/errorx"
	"github.com/kolstage/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	Update(context.Context, *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
	RequestTierUpgrade(context.Context, *model.RequestTierUpgradeRequest) (*model.RequestTierUpgradeResponse, error)
	GetPendingUsers(context.Context, *model.GetPendingUsersRequest) (*model.GetPendingUsersResponse, error)
	Approve(context.Context, *model.ApproveUserRequest) (*model.ApproveUserResponse, error)
	Reject(context.Context, *model.RejectUserRequest) (*model.RejectUserResponse, error)
	GetTierUpgradeRequests(context.Context, *model.GetTierUpgradeRequestsRequest) (*model.GetTierUpgradeRequestsResponse, error)
	ApproveTierUpgrade(context.Context, *model.ApproveTierUpgradeRequest) (*model.ApproveTierUpgradeResponse, error)
	RejectTierUpgrade(context.Context, *model.RejectTierUpgradeRequest) (*model.RejectTierUpgradeResponse, error)
}

type userDomain struct {
	userRepo repository.UserRepository
	emitter  notify.Emitter
}

func NewUserDomain(userRepo repository.UserRepository, emitter notify.Emitter) UserDomain {
	return &userDomain{userRepo: userRepo, emitter: emitter}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertUser(user, true))
	return &resp, nil
}

func (d *userDomain) Update(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	data := &entity.User{
		Name:    req.Name,
		LineID:  req.LineID,
		KakaoID: req.KakaoID,
	}

	if req.SnsLinks != nil {
		data.SnsLinks = entity.Array[string](req.SnsLinks)
	}

	if req.BankInfo != nil {
		data.BankInfo = entity.Map(req.BankInfo)
	}

	if req.FollowerInput != "" {
		count, ok := tier.ParseFollowerCount(req.FollowerInput)
		data.FollowerInput = req.FollowerInput
		data.FollowerCount = sql.NullInt64{Valid: ok, Int64: count}
	}

	if err := d.userRepo.UpdateByID(ctx, userID, data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.UpdateUserResponse(model.ConvertUser(user, true))
	return &resp, nil
}

func (d *userDomain) RequestTierUpgrade(
	ctx context.Context, req *model.RequestTierUpgradeRequest,
) (*model.RequestTierUpgradeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if !user.FollowerCount.Valid {
		return nil, errorx.New(errorx.BadRequest, "Please provide your follower count first")
	}

	if user.TierRequested.Valid {
		return nil, errorx.New(errorx.AlreadyExists, "You already have a pending tier request")
	}

	eligible, ok := tier.UpgradeEligible(
		entity.ProgramTier(user.Tier.String), user.Tier.Valid,
		user.FollowerCount.Int64, user.TierRequested.Valid,
	)
	if !ok {
		return nil, errorx.New(errorx.BadRequest,
			"Your follower count does not qualify for a higher tier")
	}

	updated, err := d.userRepo.RequestTierByID(ctx, user.ID, eligible)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot request tier upgrade: %v", err)
		return nil, errorx.Unknown
	}

	if !updated {
		return nil, errorx.New(errorx.AlreadyExists, "You already have a pending tier request")
	}

	return &model.RequestTierUpgradeResponse{Tier: string(eligible)}, nil
}

func (d *userDomain) GetPendingUsers(
	ctx context.Context, req *model.GetPendingUsersRequest,
) (*model.GetPendingUsersResponse, error) {
	limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	users, err := d.userRepo.GetByStatus(ctx, entity.UserStatusPending, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pending users: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.User{}
	for i := range users {
		result = append(result, model.ConvertUser(&users[i], true))
	}

	return &model.GetPendingUsersResponse{Users: result}, nil
}

func (d *userDomain) Approve(
	ctx context.Context, req *model.ApproveUserRequest,
) (*model.ApproveUserResponse, error) {
	if err := d.decideUser(ctx, req.ID, entity.UserStatusApproved); err != nil {
		return nil, err
	}

	return &model.ApproveUserResponse{}, nil
}

func (d *userDomain) Reject(
	ctx context.Context, req *model.RejectUserRequest,
) (*model.RejectUserResponse, error) {
	if err := d.decideUser(ctx, req.ID, entity.UserStatusRejected); err != nil {
		return nil, err
	}

	return &model.RejectUserResponse{}, nil
}

// decideUser moves a pending profile to its final status. A retry of the same
// decision is a no-op success and must not notify the KOL twice.
func (d *userDomain) decideUser(ctx context.Context, userID string, to entity.UserStatus) error {
	updated, err := d.userRepo.UpdateStatusByID(ctx, userID, entity.UserStatusPending, to)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user status: %v", err)
		return errorx.Unknown
	}

	if !updated {
		user, err := d.userRepo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorx.New(errorx.NotFound, "Not found user")
			}

			xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
			return errorx.Unknown
		}

		if user.Status == to {
			return nil
		}

		return errorx.New(errorx.Conflict, "This profile was already decided as %s", user.Status)
	}

	if to == entity.UserStatusApproved {
		d.emitter.Emit(ctx, userID, entity.NotificationKolApproved,
			"Your KOL profile has been approved",
			"You can now browse campaigns and apply to them")
	} else {
		d.emitter.Emit(ctx, userID, entity.NotificationKolRejected,
			"Your KOL profile has been rejected",
			"Please review your profile information and contact support")
	}

	return nil
}

func (d *userDomain) GetTierUpgradeRequests(
	ctx context.Context, req *model.GetTierUpgradeRequestsRequest,
) (*model.GetTierUpgradeRequestsResponse, error) {
	limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	users, err := d.userRepo.GetTierUpgradeRequests(ctx, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tier upgrade requests: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.User{}
	for i := range users {
		result = append(result, model.ConvertUser(&users[i], true))
	}

	return &model.GetTierUpgradeRequestsResponse{Users: result}, nil
}

func (d *userDomain) ApproveTierUpgrade(
	ctx context.Context, req *model.ApproveTierUpgradeRequest,
) (*model.ApproveTierUpgradeResponse, error) {
	granted, err := d.userRepo.ApproveTierByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "This user has no pending tier request")
		}

		xcontext.Logger(ctx).Errorf("Cannot approve tier upgrade: %v", err)
		return nil, errorx.Unknown
	}

	d.emitter.Emit(ctx, req.ID, entity.NotificationTierApproved,
		"Your tier upgrade has been approved",
		fmt.Sprintf("You are now a member of the %s tier", granted))

	return &model.ApproveTierUpgradeResponse{Tier: string(granted)}, nil
}

func (d *userDomain) RejectTierUpgrade(
	ctx context.Context, req *model.RejectTierUpgradeRequest,
) (*model.RejectTierUpgradeResponse, error) {
	if err := d.userRepo.RejectTierByID(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reject tier upgrade: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RejectTierUpgradeResponse{}, nil
}
