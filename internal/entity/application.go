package entity

import (
	"database/sql"

	"github.com/kolstage/backend/pkg/enum"
	"golang.org/x/exp/slices"
)

type ApplicationStatus string

var (
	ApplicationApplied   = enum.New(ApplicationStatus("applied"))
	ApplicationSelected  = enum.New(ApplicationStatus("selected"))
	ApplicationCompleted = enum.New(ApplicationStatus("completed"))
	ApplicationConfirmed = enum.New(ApplicationStatus("confirmed"))
	ApplicationPaid      = enum.New(ApplicationStatus("paid"))
)

// SelectedOrLaterStatuses is the canonical set used by every seat-filled and
// is-selected computation.
var SelectedOrLaterStatuses = []ApplicationStatus{
	ApplicationSelected,
	ApplicationCompleted,
	ApplicationConfirmed,
	ApplicationPaid,
}

func IsSelectedOrLater(status ApplicationStatus) bool {
	return slices.Contains(SelectedOrLaterStatuses, status)
}

type Application struct {
	Base

	KolID string `gorm:"uniqueIndex:idx_applications_kol_campaign"`
	Kol   User   `gorm:"foreignKey:KolID"`

	CampaignID string   `gorm:"uniqueIndex:idx_applications_kol_campaign"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID"`

	Status    ApplicationStatus `gorm:"default:applied"`
	ResultURL sql.NullString
}
