package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/kolstage/backend/internal/model"
	"github.com/kolstage/backend/pkg/errorx"
	"github.com/kolstage/backend/pkg/router"
	"github.com/kolstage/backend/pkg/xcontext"
)

type AuthVerifier struct {
	useAccessToken bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.useAccessToken = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if a.useAccessToken {
			token := getAccessToken(ctx)
			if token != "" {
				var accessToken model.AccessToken
				err := xcontext.TokenEngine(ctx).Verify(token, &accessToken)
				if err != nil {
					if errors.Is(err, jwt.ErrTokenExpired) {
						return nil, errorx.New(errorx.TokenExpired, "Your session is expired")
					}

					return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
				}

				return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
			}
		}

		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
}

func getAccessToken(ctx context.Context) string {
	authorization := xcontext.HTTPRequest(ctx).Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found && auth == "Bearer" {
		return token
	}

	cookie, err := xcontext.HTTPRequest(ctx).Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil && !errors.Is(err, http.ErrNoCookie) {
		return ""
	}

	if cookie != nil {
		return cookie.Value
	}

	return ""
}
