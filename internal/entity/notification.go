package entity

import "github.com/kolstage/backend/pkg/enum"

type NotificationType string

var (
	NotificationKolApproved     = enum.New(NotificationType("kol_approved"))
	NotificationKolRejected     = enum.New(NotificationType("kol_rejected"))
	NotificationMissionSelected = enum.New(NotificationType("mission_selected"))
	NotificationPayoutCompleted = enum.New(NotificationType("payout_completed"))
	NotificationTierApproved    = enum.New(NotificationType("tier_approved"))
)

type Notification struct {
	SnowFlakeBase

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Type    NotificationType
	Title   string
	Message string
	IsRead  bool `gorm:"default:false"`
}
