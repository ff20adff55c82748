package repository

import (
	"context"
	"time"

	"github.com/kolstage/backend/internal/entity"
	"github.com/kolstage/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CampaignFilter struct {
	Status entity.CampaignStatus
	Q      string
}

type CampaignRepository interface {
	Create(context.Context, *entity.Campaign) error
	GetByID(ctx context.Context, id string) (*entity.Campaign, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Campaign, error)
	GetList(ctx context.Context, filter *CampaignFilter, offset, limit int) ([]entity.Campaign, error)
	UpdateByID(ctx context.Context, id string, data *entity.Campaign) error
	UpdateStatusByID(ctx context.Context, id string, status entity.CampaignStatus) (bool, error)
	ExtendDeadlineByID(ctx context.Context, id string, deadline time.Time) error
}

type campaignRepository struct{}

func NewCampaignRepository() CampaignRepository {
	return &campaignRepository{}
}

func (r *campaignRepository) Create(ctx context.Context, data *entity.Campaign) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*entity.Campaign, error) {
	var result entity.Campaign
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *campaignRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Campaign, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var result []entity.Campaign
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *campaignRepository) GetList(
	ctx context.Context, filter *CampaignFilter, offset, limit int,
) ([]entity.Campaign, error) {
	var result []entity.Campaign
	tx := xcontext.DB(ctx).
		Offset(offset).
		Limit(limit).
		Order("created_at DESC")

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if filter.Q != "" {
		tx = tx.Where("title LIKE ?", "%"+filter.Q+"%")
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *campaignRepository) UpdateByID(ctx context.Context, id string, data *entity.Campaign) error {
	updateMap := map[string]any{}
	if data.Title != "" {
		updateMap["title"] = data.Title
	}

	if data.BrandName != "" {
		updateMap["brand_name"] = data.BrandName
	}

	if data.GuideContent != "" {
		updateMap["guide_content"] = data.GuideContent
	}

	if data.GuideURL != "" {
		updateMap["guide_url"] = data.GuideURL
	}

	if data.LineID != "" {
		updateMap["line_id"] = data.LineID
	}

	if data.KakaoID != "" {
		updateMap["kakao_id"] = data.KakaoID
	}

	if data.PayoutAmount > 0 {
		updateMap["payout_amount"] = data.PayoutAmount
	}

	if data.RecruitmentQuota.Valid {
		updateMap["recruitment_quota"] = data.RecruitmentQuota
	}

	if data.BrandImageURL != "" {
		updateMap["brand_image_url"] = data.BrandImageURL
	}

	if data.FollowerTiers != nil {
		updateMap["follower_tiers"] = data.FollowerTiers
	}

	if data.Deadline.Valid {
		updateMap["deadline"] = data.Deadline
	}

	if len(updateMap) == 0 {
		return nil
	}

	tx := xcontext.DB(ctx).Model(&entity.Campaign{}).Where("id=?", id).Updates(updateMap)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdateStatusByID reports whether any row changed. A campaign already at the
// target status is left untouched and reported as not updated.
func (r *campaignRepository) UpdateStatusByID(
	ctx context.Context, id string, status entity.CampaignStatus,
) (bool, error) {
	tx := xcontext.DB(ctx).Model(&entity.Campaign{}).
		Where("id=? AND status<>?", id, status).
		Update("status", status)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *campaignRepository) ExtendDeadlineByID(
	ctx context.Context, id string, deadline time.Time,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Campaign{}).
		Where("id=?", id).
		Update("deadline", deadline)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
