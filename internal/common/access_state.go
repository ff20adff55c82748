package common

import (
	"github.com/kolstage/backend/internal/entity"
	"golang.org/x/exp/slices"
)

// AccessState is the effective capability level of a logged-in user. Admins
// bypass the profile approval gate entirely.
type AccessState string

const (
	AccessAdmin    AccessState = "admin"
	AccessPending  AccessState = "pending"
	AccessApproved AccessState = "approved"
	AccessRejected AccessState = "rejected"
)

func ResolveAccessState(user *entity.User) AccessState {
	if slices.Contains(entity.GlobalAdminRoles, user.Role) {
		return AccessAdmin
	}

	switch user.Status {
	case entity.UserStatusApproved:
		return AccessApproved
	case entity.UserStatusRejected:
		return AccessRejected
	default:
		return AccessPending
	}
}
