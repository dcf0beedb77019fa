package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/hearthhq/hearth/internal/home/domain"
	"github.com/hearthhq/hearth/internal/home/store"
	"github.com/hearthhq/hearth/pkg/slogx"
)

const maxBuildingNameLength = 100

type BuildingService struct {
	Store  store.Store
	Tokens *TokenService
}

// Create inserts a building and makes creatorID its first member.
func (s *BuildingService) Create(ctx context.Context, creatorID int64, name, address string) (domain.Building, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxBuildingNameLength {
		return domain.Building{}, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, maxBuildingNameLength)
	}

	b := domain.Building{Name: name, Address: strings.TrimSpace(address)}
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		id, err := tx.Buildings().CreateBuilding(ctx, b)
		if err != nil {
			return err
		}
		b.ID = id
		return tx.Buildings().AddMember(ctx, id, creatorID)
	})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to create building", slog.Any("error", err))
		return domain.Building{}, err
	}

	created, err := s.Store.Buildings().GetBuildingByID(ctx, b.ID)
	if err != nil {
		return domain.Building{}, err
	}

	slogx.FromContext(ctx).Info("building created",
		slog.Int64("building_id", created.ID),
		slog.Int64("user_id", creatorID),
	)
	return created, nil
}

// ListForUser returns the buildings userID belongs to.
func (s *BuildingService) ListForUser(ctx context.Context, userID int64) ([]domain.Building, error) {
	return s.Store.Buildings().ListBuildingsForUser(ctx, userID)
}

// Authorize reports ErrUnauthorized unless u is a member of buildingID.
// Memberships are those loaded with the user at admission time.
func Authorize(u domain.User, buildingID int64) error {
	if !u.IsMemberOf(buildingID) {
		return ErrUnauthorized
	}
	return nil
}

// Invite issues an invitation into buildingID on behalf of inviter, who must
// already be a member.
func (s *BuildingService) Invite(ctx context.Context, inviter domain.User, buildingID int64, email string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	email, err := NormalizeEmail(email)
	if err != nil {
		return domain.Invitation{}, err
	}

	if _, err := s.Store.Buildings().GetBuildingByID(ctx, buildingID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrBuildingNotFound
		}
		return domain.Invitation{}, err
	}
	if err := Authorize(inviter, buildingID); err != nil {
		log.Warn("non-member attempted to invite",
			slog.Int64("user_id", inviter.ID),
			slog.Int64("building_id", buildingID),
		)
		return domain.Invitation{}, err
	}

	inv, err := s.Tokens.IssueInvitationToken(email, buildingID)
	if err != nil {
		log.Error("failed to issue invitation", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	log.Info("invitation issued",
		slog.Int64("building_id", buildingID),
		slog.Int64("inviter_id", inviter.ID),
		slog.Time("expires_at", inv.ExpiresAt),
	)
	return inv, nil
}

// AcceptInvitation adds the account registered under the invited email to
// the building. Accepting twice is harmless.
func (s *BuildingService) AcceptInvitation(ctx context.Context, token string) (domain.Invitation, domain.User, error) {
	inv, err := s.Tokens.ValidateInvitationToken(ctx, token)
	if err != nil {
		return domain.Invitation{}, domain.User{}, err
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, strings.ToLower(inv.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, domain.User{}, ErrAccountRequired
		}
		return domain.Invitation{}, domain.User{}, err
	}

	if err := s.Store.Buildings().AddMember(ctx, inv.BuildingID, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, domain.User{}, ErrInvitationRejected
		}
		return domain.Invitation{}, domain.User{}, err
	}
	if !user.IsMemberOf(inv.BuildingID) {
		user.BuildingIDs = append(user.BuildingIDs, inv.BuildingID)
	}

	slogx.FromContext(ctx).Info("invitation accepted",
		slog.Int64("building_id", inv.BuildingID),
		slog.Int64("user_id", user.ID),
	)
	return inv, user, nil
}
