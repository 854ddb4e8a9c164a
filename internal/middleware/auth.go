package middleware

import (
	"context"
	"strings"

	"github.com/giftgroup/backend/internal/model"
	"github.com/giftgroup/backend/pkg/errorx"
	"github.com/giftgroup/backend/pkg/jwt"
	"github.com/giftgroup/backend/pkg/router"
	"github.com/giftgroup/backend/pkg/xcontext"
)

// Authenticate resolves the acting user from the bearer access token issued
// by the auth service.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := accessToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		verifier := jwt.NewVerifier[model.AccessToken](xcontext.Configs(ctx).Auth.TokenSecret)
		info, err := verifier.Verify(token)
		if err != nil || info.ID == "" {
			xcontext.Logger(ctx).Debugf("Invalid access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

func accessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	auth, token, found := strings.Cut(req.Header.Get("Authorization"), " ")
	if !found || auth != "Bearer" {
		return ""
	}

	return token
}
