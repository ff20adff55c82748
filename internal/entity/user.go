package entity

import (
	"database/sql"

	"github.com/kolstage/backend/pkg/enum"
)

type GlobalRole string

var (
	RoleSuperAdmin = enum.New(GlobalRole("super_admin"))
	RoleAdmin      = enum.New(GlobalRole("admin"))
	RoleUser       = enum.New(GlobalRole("user"))
)

var GlobalAdminRoles = []GlobalRole{RoleSuperAdmin, RoleAdmin}

// UserStatus is the admin approval state of a KOL profile.
type UserStatus string

var (
	UserStatusPending  = enum.New(UserStatus("pending"))
	UserStatusApproved = enum.New(UserStatus("approved"))
	UserStatusRejected = enum.New(UserStatus("rejected"))
)

type User struct {
	Base
	Email          string `gorm:"unique"`
	HashedPassword string
	Name           string
	Role           GlobalRole `gorm:"default:user"`
	Status         UserStatus `gorm:"default:pending"`

	// Self-reported follower count. The raw text the KOL typed is kept so
	// the profile form can re-render it unchanged.
	FollowerInput string
	FollowerCount sql.NullInt64

	Tier            sql.NullString
	TierRequested   sql.NullString
	TierRequestedAt sql.NullTime

	SnsLinks Array[string] `gorm:"type:text"`
	BankInfo Map           `gorm:"type:text"`
	LineID   string
	KakaoID  string
}
