package repository

import (
	"context"

	"github.com/kolstage/backend/internal/entity"
	"github.com/kolstage/backend/pkg/xcontext"
)

type ApplicationFilter struct {
	CampaignID string
	KolID      string
	Status     []entity.ApplicationStatus
}

// ApplicationCount carries the derived per-campaign counters. They are
// recomputed on every read, never stored.
type ApplicationCount struct {
	CampaignID string
	Total      int64
	Selected   int64
}

type ApplicationRepository interface {
	Create(context.Context, *entity.Application) error
	GetByID(ctx context.Context, id string) (*entity.Application, error)
	GetByUserAndCampaign(ctx context.Context, kolID, campaignID string) (*entity.Application, error)
	GetList(ctx context.Context, filter *ApplicationFilter, offset, limit int) ([]entity.Application, error)
	UpdateStatusByID(ctx context.Context, id string, from, to entity.ApplicationStatus) (bool, error)
	SubmitResultByID(ctx context.Context, id, resultURL string) (bool, error)
	CountByCampaignIDs(ctx context.Context, campaignIDs []string) ([]ApplicationCount, error)
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(ctx context.Context, data *entity.Application) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*entity.Application, error) {
	var result entity.Application
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *applicationRepository) GetByUserAndCampaign(
	ctx context.Context, kolID, campaignID string,
) (*entity.Application, error) {
	var result entity.Application
	err := xcontext.DB(ctx).
		Take(&result, "kol_id=? AND campaign_id=?", kolID, campaignID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *applicationRepository) GetList(
	ctx context.Context, filter *ApplicationFilter, offset, limit int,
) ([]entity.Application, error) {
	var result []entity.Application
	tx := xcontext.DB(ctx).
		Offset(offset).
		Limit(limit).
		Order("created_at ASC")

	if filter.CampaignID != "" {
		tx = tx.Where("campaign_id=?", filter.CampaignID)
	}

	if filter.KolID != "" {
		tx = tx.Where("kol_id=?", filter.KolID)
	}

	if len(filter.Status) > 0 {
		tx = tx.Where("status IN (?)", filter.Status)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateStatusByID moves the status only when the row still holds the
// expected one. It reports whether a row changed, letting the caller
// distinguish a lost race from a missing row.
func (r *applicationRepository) UpdateStatusByID(
	ctx context.Context, id string, from, to entity.ApplicationStatus,
) (bool, error) {
	tx := xcontext.DB(ctx).Model(&entity.Application{}).
		Where("id=? AND status=?", id, from).
		Update("status", to)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

// SubmitResultByID persists the proof url and completes the application in
// one conditional update. The result url is immutable once set.
func (r *applicationRepository) SubmitResultByID(
	ctx context.Context, id, resultURL string,
) (bool, error) {
	tx := xcontext.DB(ctx).Model(&entity.Application{}).
		Where("id=? AND status=? AND result_url IS NULL", id, entity.ApplicationSelected).
		Updates(map[string]any{
			"status":     entity.ApplicationCompleted,
			"result_url": resultURL,
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *applicationRepository) CountByCampaignIDs(
	ctx context.Context, campaignIDs []string,
) ([]ApplicationCount, error) {
	if len(campaignIDs) == 0 {
		return nil, nil
	}

	var result []ApplicationCount
	err := xcontext.DB(ctx).Model(&entity.Application{}).
		Select(
			"campaign_id, count(*) as total, "+
				"sum(case when status IN (?) then 1 else 0 end) as selected",
			entity.SelectedOrLaterStatuses,
		).
		Where("campaign_id IN (?)", campaignIDs).
		Group("campaign_id").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
