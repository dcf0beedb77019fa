package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hearthhq/hearth/internal/home/domain"
	"github.com/hearthhq/hearth/internal/home/service"
	"github.com/hearthhq/hearth/pkg/homesdk"
	"github.com/hearthhq/hearth/pkg/httpx"
	"github.com/hearthhq/hearth/pkg/slogx"
)

type ctxKeyUser struct{}

func withUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser{}, u)
}

// userFromContext returns the user resolved by Authenticate.
func userFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKeyUser{}).(domain.User)
	return u, ok
}

// Authenticate admits requests carrying a valid bearer access token and
// stores the resolved user in the request context.
//
// A missing, malformed, tampered or expired credential is a 401; a token
// for a user that no longer exists is a 404.
func Authenticate(tokens *service.TokenService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, ok := httpx.BearerToken(r)
			if !ok {
				httpx.WriteBearerError(w, http.StatusUnauthorized, homesdk.ErrorCodeInvalidToken, "missing bearer credential")
				return
			}

			user, err := tokens.ValidateAccessToken(ctx, raw)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrMissingCredential):
					httpx.WriteBearerError(w, http.StatusUnauthorized, homesdk.ErrorCodeInvalidToken, "missing bearer credential")
				case errors.Is(err, service.ErrExpiredCredential):
					httpx.WriteBearerError(w, http.StatusUnauthorized, homesdk.ErrorCodeInvalidToken, "access token expired")
				case errors.Is(err, service.ErrInvalidCredential):
					slogx.FromContext(ctx).Info("bearer token rejected", slog.Any("err", err))
					httpx.WriteBearerError(w, http.StatusUnauthorized, homesdk.ErrorCodeInvalidToken, "access token invalid")
				case errors.Is(err, service.ErrUnknownSubject):
					httpx.WriteJSON(w, http.StatusNotFound, homesdk.ErrorResponse{
						Error:            homesdk.ErrorCodeUnknownSubject,
						ErrorDescription: "user no longer exists",
					})
				default:
					slogx.FromContext(ctx).Error("token validation failed", slog.Any("err", err))
					httpx.WriteJSON(w, http.StatusInternalServerError, homesdk.ErrorResponse{
						Error:            homesdk.ErrorCodeServerError,
						ErrorDescription: "failed to validate credential",
					})
				}
				return
			}

			ctx = withUser(ctx, user)
			ctx = httpx.WithUserID(ctx, user.Subject())
			ctx = slogx.With(ctx, slog.Int64("user_id", user.ID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireBuildingMember rejects callers that do not belong to the building
// named by the path parameter param. It must run after Authenticate.
func RequireBuildingMember(param string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseInt(r.PathValue(param), 10, 64)
			if err != nil || id <= 0 {
				httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
					Error:            homesdk.ErrorCodeInvalidRequest,
					ErrorDescription: "building id must be a positive integer",
				})
				return
			}

			user, ok := userFromContext(r.Context())
			if !ok || service.Authorize(user, id) != nil {
				httpx.WriteJSON(w, http.StatusForbidden, homesdk.ErrorResponse{
					Error:            homesdk.ErrorCodeForbidden,
					ErrorDescription: "not a member of this building",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
