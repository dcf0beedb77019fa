package http

import (
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

type BuildingsHandler struct {
	BuildingService *service.BuildingService
}

// HandleCreate godoc
//
//	@Summary		Create building
//	@Description	Create a building; the caller becomes its first member
//	@Tags			Buildings
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		homesdk.CreateBuildingRequest	true	"name, address"
//	@Success		201		{object}	homesdk.BuildingResponse
//	@Failure		400		{object}	homesdk.ErrorResponse
//	@Failure		401		{object}	homesdk.ErrorResponse
//	@Router			/buildings [post].
func (h *BuildingsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := userFromContext(ctx)

	var req homesdk.CreateBuildingRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeInvalidRequest,
			ErrorDescription: err.Error(),
		})
		return
	}

	b, err := h.BuildingService.Create(ctx, user.ID, req.Name, req.Address)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeInvalidRequest,
				ErrorDescription: err.Error(),
			})
			return
		}
		slogx.FromContext(ctx).Error("failed to create building", slog.Any("err", err))
		httpx.WriteJSON(w, http.StatusInternalServerError, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeServerError,
			ErrorDescription: "failed to create building",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, buildingResponse(b))
}

// HandleList godoc
//
//	@Summary		List buildings
//	@Description	List the buildings the caller belongs to
//	@Tags			Buildings
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	homesdk.BuildingListResponse
//	@Failure		401	{object}	homesdk.ErrorResponse
//	@Router			/buildings [get].
func (h *BuildingsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := userFromContext(ctx)

	list, err := h.BuildingService.ListForUser(ctx, user.ID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list buildings", slog.Any("err", err))
		httpx.WriteJSON(w, http.StatusInternalServerError, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeServerError,
			ErrorDescription: "failed to list buildings",
		})
		return
	}

	resp := homesdk.BuildingListResponse{Buildings: make([]homesdk.BuildingResponse, 0, len(list))}
	for _, b := range list {
		resp.Buildings = append(resp.Buildings, buildingResponse(b))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleInvite godoc
//
//	@Summary		Invite to building
//	@Description	Issue an invitation token for an email address. The token is returned to the caller; nothing is sent.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int						true	"Building ID"
//	@Param			request	body		homesdk.InviteRequest	true	"email"
//	@Success		201		{object}	homesdk.InvitationResponse
//	@Failure		400		{object}	homesdk.ErrorResponse
//	@Failure		401		{object}	homesdk.ErrorResponse
//	@Failure		403		{object}	homesdk.ErrorResponse	"not a member"
//	@Failure		404		{object}	homesdk.ErrorResponse	"building not found"
//	@Router			/buildings/{id}/invitations [post].
func (h *BuildingsHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := userFromContext(ctx)
	buildingID, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	var req homesdk.InviteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeInvalidRequest,
			ErrorDescription: err.Error(),
		})
		return
	}

	inv, err := h.BuildingService.Invite(ctx, user, buildingID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeInvalidRequest,
				ErrorDescription: err.Error(),
			})
		case errors.Is(err, service.ErrBuildingNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeNotFound,
				ErrorDescription: "building not found",
			})
		case errors.Is(err, service.ErrUnauthorized):
			httpx.WriteJSON(w, http.StatusForbidden, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeForbidden,
				ErrorDescription: "not a member of this building",
			})
		default:
			slogx.FromContext(ctx).Error("failed to issue invitation", slog.Any("err", err))
			httpx.WriteJSON(w, http.StatusInternalServerError, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeServerError,
				ErrorDescription: "failed to issue invitation",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, homesdk.InvitationResponse{
		InvitationToken: inv.Token,
		Email:           inv.Email,
		BuildingID:      inv.BuildingID,
		ExpiresAt:       inv.ExpiresAt.UTC(),
	})
}

// HandleAcceptInvitation godoc
//
//	@Summary		Accept invitation
//	@Description	Join the account registered under the invited email to the building. Accepting twice has no further effect.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		homesdk.AcceptInvitationRequest	true	"invitation_token"
//	@Success		200		{object}	homesdk.AcceptInvitationResponse
//	@Failure		400		{object}	homesdk.ErrorResponse	"invalid_grant"
//	@Failure		404		{object}	homesdk.ErrorResponse	"no account for the invited email"
//	@Failure		429		{object}	homesdk.ErrorResponse
//	@Router			/invitations/accept [post].
func (h *BuildingsHandler) HandleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req homesdk.AcceptInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
			Error:            homesdk.ErrorCodeInvalidRequest,
			ErrorDescription: err.Error(),
		})
		return
	}

	inv, user, err := h.BuildingService.AcceptInvitation(ctx, req.InvitationToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationRejected):
			httpx.WriteJSON(w, http.StatusBadRequest, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeInvalidGrant,
				ErrorDescription: "invitation is invalid or expired",
			})
		case errors.Is(err, service.ErrAccountRequired):
			httpx.WriteJSON(w, http.StatusNotFound, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeNotFound,
				ErrorDescription: "no account exists for the invited email; register with the invitation instead",
			})
		default:
			slogx.FromContext(ctx).Error("failed to accept invitation", slog.Any("err", err))
			httpx.WriteJSON(w, http.StatusInternalServerError, homesdk.ErrorResponse{
				Error:            homesdk.ErrorCodeServerError,
				ErrorDescription: "failed to accept invitation",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, homesdk.AcceptInvitationResponse{
		UserID:     user.ID,
		BuildingID: inv.BuildingID,
	})
}

func buildingResponse(b domain.Building) homesdk.BuildingResponse {
	return homesdk.BuildingResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		CreatedAt: b.CreatedAt.UTC(),
	}
}
