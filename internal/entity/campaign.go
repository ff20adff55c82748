package entity

import (
	"database/sql"

	"github.com/kolstage/backend/pkg/enum"
)

type CampaignStatus string

var (
	CampaignActive = enum.New(CampaignStatus("active"))
	CampaignClosed = enum.New(CampaignStatus("closed"))
)

type Campaign struct {
	Base
	Title     string
	BrandName string

	GuideContent string
	GuideURL     string
	LineID       string
	KakaoID      string

	PayoutAmount     float64
	RecruitmentQuota sql.NullInt64
	BrandImageURL    string

	// Empty set means the campaign is unrestricted.
	FollowerTiers Array[FollowerTier] `gorm:"type:text"`

	Deadline sql.NullTime
	Status   CampaignStatus `gorm:"default:active"`

	CreatedBy string
	Creator   User `gorm:"foreignKey:CreatedBy"`
}
