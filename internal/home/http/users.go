package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hearthhq/hearth/internal/home/domain"
	"github.com/hearthhq/hearth/internal/home/service"
	"github.com/hearthhq/hearth/pkg/homesdk"
	"github.com/hearthhq/hearth/pkg/httpx"
	"github.com/hearthhq/hearth/pkg/slogx"
)

type UsersHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Create an account. An invitation token issued for the same email joins the new account to its building.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		homesdk.RegisterRequest	true	"name, email, password, invitation_token"
//	@Success		201		{object}	homesdk.UserResponse
//	@Failure		400		{object}	homesdk.ErrorResponse	"invalid_request, invalid_grant"
//	@Failure		409		{object}	homesdk.ErrorResponse	"email already registered"
//	@Failure		429		{object}	homesdk.ErrorResponse
//	@Router			/users/register [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req homesdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeInvalidRequest,
			ErrorDescription: err.Error(),
		})
		return
	}

	user, err := h.UserService.Register(ctx, service.RegisterParams{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		InvitationToken: req.InvitationToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeInvalidRequest,
				ErrorDescription: err.Error(),
			})
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteJSON(w, http.StatusConflict, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeConflict,
				ErrorDescription: "email is already registered",
			})
		case errors.Is(err, service.ErrInvitationRejected):
			httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeInvalidGrant,
				ErrorDescription: "invitation is invalid or expired",
			})
		case errors.Is(err, service.ErrInvitationEmailMismatch):
			httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeInvalidGrant,
				ErrorDescription: "invitation was issued for a different email",
			})
		default:
			slogx.FromContext(ctx).Error("failed to register user", slog.Any("err", err))
			httpx.WriteJSON(w, http.StatusInternalServerError, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeServerError,
				ErrorDescription: "failed to register user",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userResponse(user))
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Exchange email and password for an access token
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		homesdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	homesdk.TokenResponse
//	@Failure		400		{object}	homesdk.ErrorResponse
//	@Failure		401		{object}	homesdk.ErrorResponse	"invalid_login"
//	@Failure		429		{object}	homesdk.ErrorResponse
//	@Router			/users/login [post].
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req homesdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeInvalidRequest,
			ErrorDescription: err.Error(),
		})
		return
	}

	user, tok, err := h.UserService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLogin) {
			httpx.WriteJSON(w, http.StatusUnauthorized, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeInvalidLogin,
				ErrorDescription: "email or password is incorrect",
			})
			return
		}
		slogx.FromContext(ctx).Error("login failed", slog.Any("err", err))
		httpx.WriteJSON(w, http.StatusInternalServerError, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeServerError,
			ErrorDescription: "failed to log in",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(user, tok))
}

// HandleRefresh godoc
//
//	@Summary		Refresh access token
//	@Description	Issue a new access token for the authenticated user
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	homesdk.TokenResponse
//	@Failure		401	{object}	homesdk.ErrorResponse	"missing, invalid or expired token"
//	@Failure		404	{object}	homesdk.ErrorResponse	"user no longer exists"
//	@Router			/users/refresh [get].
func (h *UsersHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	tok, err := h.TokenService.IssueAccessToken(user)
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to issue access token", slog.Any("err", err))
		httpx.WriteJSON(w, http.StatusInternalServerError, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeServerError,
			ErrorDescription: "failed to issue token",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(user, tok))
}

// HandleMe godoc
//
//	@Summary		Current user
//	@Description	Return the authenticated user and the buildings it belongs to
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	homesdk.UserResponse
//	@Failure		401	{object}	homesdk.ErrorResponse
//	@Failure		404	{object}	homesdk.ErrorResponse
//	@Router			/users/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	httpx.WriteJSON(w, http.StatusOK, userResponse(user))
}

func userResponse(u domain.User) homesdk.UserResponse {
	ids := u.BuildingIDs
	if ids == nil {
		ids = []int64{}
	}
	return homesdk.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		BuildingIDs: ids,
	}
}

func tokenResponse(u domain.User, tok domain.AccessToken) homesdk.TokenResponse {
	return homesdk.TokenResponse{
		AccessToken: tok.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(tok.ExpiresAt).Round(time.Second).Seconds()),
		UserID:      u.ID,
	}
}
