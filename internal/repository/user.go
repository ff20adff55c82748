package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/kolstage/backend/internal/entity"
	"github.com/kolstage/backend/pkg/xcontext"
	"github.com/kolstage/backend/pkg/xredis"
	"gorm.io/gorm"
)

const cacheUserTTL = 5 * time.Minute

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	GetByStatus(ctx context.Context, status entity.UserStatus, offset, limit int) ([]entity.User, error)
	GetTierUpgradeRequests(ctx context.Context, offset, limit int) ([]entity.User, error)
	UpdateByID(ctx context.Context, id string, data *entity.User) error
	UpdateStatusByID(ctx context.Context, id string, from, to entity.UserStatus) (bool, error)
	RequestTierByID(ctx context.Context, id string, tier entity.ProgramTier) (bool, error)
	ApproveTierByID(ctx context.Context, id string) (entity.ProgramTier, error)
	RejectTierByID(ctx context.Context, id string) error
}

type userRepository struct {
	redisClient xredis.Client
}

func NewUserRepository(redisClient xredis.Client) UserRepository {
	return &userRepository{redisClient: redisClient}
}

func (r *userRepository) cacheKey(id string) string {
	return fmt.Sprintf("users:%s", id)
}

func (r *userRepository) invalidateCache(ctx context.Context, id string) {
	if r.redisClient == nil {
		return
	}

	if err := r.redisClient.Del(ctx, r.cacheKey(id)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate user cache: %v", err)
	}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if r.redisClient != nil {
		var record entity.User
		if err := r.redisClient.GetObj(ctx, r.cacheKey(id), &record); err == nil {
			return &record, nil
		}
	}

	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	if r.redisClient != nil {
		if err := r.redisClient.SetObj(ctx, r.cacheKey(id), record, cacheUserTTL); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache user: %v", err)
		}
	}

	return &record, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.User
	if err := xcontext.DB(ctx).Find(&records, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) GetByStatus(
	ctx context.Context, status entity.UserStatus, offset, limit int,
) ([]entity.User, error) {
	var records []entity.User
	err := xcontext.DB(ctx).
		Where("status=?", status).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) GetTierUpgradeRequests(
	ctx context.Context, offset, limit int,
) ([]entity.User, error) {
	var records []entity.User
	err := xcontext.DB(ctx).
		Where("tier_requested IS NOT NULL").
		Order("tier_requested_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, data *entity.User) error {
	updateMap := map[string]any{}
	if data.Name != "" {
		updateMap["name"] = data.Name
	}

	if data.FollowerInput != "" {
		updateMap["follower_input"] = data.FollowerInput
		updateMap["follower_count"] = data.FollowerCount
	}

	if data.SnsLinks != nil {
		updateMap["sns_links"] = data.SnsLinks
	}

	if data.BankInfo != nil {
		updateMap["bank_info"] = data.BankInfo
	}

	if data.LineID != "" {
		updateMap["line_id"] = data.LineID
	}

	if data.KakaoID != "" {
		updateMap["kakao_id"] = data.KakaoID
	}

	if len(updateMap) == 0 {
		return nil
	}

	err := xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(updateMap).Error
	if err != nil {
		return err
	}

	r.invalidateCache(ctx, id)
	return nil
}

// UpdateStatusByID only moves the status if the row still holds the expected
// one. It reports whether a row changed.
func (r *userRepository) UpdateStatusByID(
	ctx context.Context, id string, from, to entity.UserStatus,
) (bool, error) {
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=? AND status=?", id, from).
		Update("status", to)
	if tx.Error != nil {
		return false, tx.Error
	}

	r.invalidateCache(ctx, id)
	return tx.RowsAffected > 0, nil
}

// RequestTierByID records a pending upgrade request. It fails closed when a
// request is already pending.
func (r *userRepository) RequestTierByID(
	ctx context.Context, id string, tier entity.ProgramTier,
) (bool, error) {
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=? AND tier_requested IS NULL", id).
		Updates(map[string]any{
			"tier_requested":    string(tier),
			"tier_requested_at": time.Now(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	r.invalidateCache(ctx, id)
	return tx.RowsAffected > 0, nil
}

// ApproveTierByID grants the requested tier and clears the request in a
// single update, returning the granted tier.
func (r *userRepository) ApproveTierByID(ctx context.Context, id string) (entity.ProgramTier, error) {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if !record.TierRequested.Valid {
		return "", gorm.ErrRecordNotFound
	}

	granted := entity.ProgramTier(record.TierRequested.String)
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=? AND tier_requested=?", id, record.TierRequested.String).
		Updates(map[string]any{
			"tier":              string(granted),
			"tier_requested":    nil,
			"tier_requested_at": nil,
		})
	if tx.Error != nil {
		return "", tx.Error
	}

	if tx.RowsAffected == 0 {
		return "", gorm.ErrRecordNotFound
	}

	r.invalidateCache(ctx, id)
	return granted, nil
}

// RejectTierByID clears the request and leaves the granted tier untouched.
func (r *userRepository) RejectTierByID(ctx context.Context, id string) error {
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", id).
		Updates(map[string]any{
			"tier_requested":    nil,
			"tier_requested_at": nil,
		}).Error
	if err != nil {
		return err
	}

	r.invalidateCache(ctx, id)
	return nil
}
