package domain

import (
	"testing"

	"github.com/kolstage/backend/internal/entity"
	"github.com/kolstage/backend/internal/model"
	"github.com/kolstage/backend/internal/repository"
	"github.com/kolstage/backend/pkg/errorx"
	"github.com/kolstage/backend/pkg/testutil"
	"github.com/kolstage/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func Test_authDomain_Register(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository(nil)
	domain := NewAuthDomain(userRepo, repository.NewRefreshTokenRepository())

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "Admin@example.com",
		Password: "password123",
		Name:     "admin",
	})
	require.NoError(t, err)

	// The very first account bootstraps the super admin.
	admin, err := userRepo.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.Equal(t, entity.RoleSuperAdmin, admin.Role)
	require.Equal(t, entity.UserStatusApproved, admin.Status)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Email:    "kol@example.com",
		Password: "password123",
		Name:     "kol",
	})
	require.NoError(t, err)

	kol, err := userRepo.GetByEmail(ctx, "kol@example.com")
	require.NoError(t, err)
	require.Equal(t, entity.RoleUser, kol.Role)
	require.Equal(t, entity.UserStatusPending, kol.Status)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Email:    "kol@example.com",
		Password: "password123",
		Name:     "dup",
	})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.AlreadyExists, "This email was already registered"), err)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Email:    "short@example.com",
		Password: "short",
		Name:     "short",
	})
	require.Error(t, err)
}

func Test_authDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()
	userRepo := repository.NewUserRepository(nil)
	domain := NewAuthDomain(userRepo, repository.NewRefreshTokenRepository())

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "kol@example.com",
		Password: "password123",
		Name:     "kol",
	})
	require.NoError(t, err)

	_, err = domain.Login(ctx, &model.LoginRequest{
		Email:    "kol@example.com",
		Password: "wrong-password",
	})
	require.Equal(t, errorx.New(errorx.Unauthenticated, "Invalid email or password"), err)

	resp, err := domain.Login(ctx, &model.LoginRequest{
		Email:    "kol@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	user, err := userRepo.GetByEmail(ctx, "kol@example.com")
	require.NoError(t, err)

	var accessToken model.AccessToken
	err = xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &accessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, accessToken.ID)
}

func Test_authDomain_Refresh(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewAuthDomain(
		repository.NewUserRepository(nil), repository.NewRefreshTokenRepository())

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "kol@example.com",
		Password: "password123",
		Name:     "kol",
	})
	require.NoError(t, err)

	login, err := domain.Login(ctx, &model.LoginRequest{
		Email:    "kol@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := domain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)
	require.NotEmpty(t, refreshed.RefreshToken)

	// Reusing the rotated token reveals a stolen token and revokes the family.
	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.StolenDectected, errx.Code)

	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: refreshed.RefreshToken,
	})
	require.Error(t, err)
}
