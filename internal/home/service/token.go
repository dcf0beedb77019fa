package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hearthhq/hearth/internal/home/domain"
	"github.com/hearthhq/hearth/internal/home/store"
	"github.com/hearthhq/hearth/pkg/jwtx"
	"github.com/hearthhq/hearth/pkg/slogx"
)

// TokenService mints and validates the HS256 access and invitation tokens.
// ValidateAccessToken is the single admission routine used by every entry
// point, HTTP or relay.
type TokenService struct {
	KeyManager    *jwtx.KeyManager
	Store         store.Store
	Issuer        string
	Audience      []string
	AccessTTL     time.Duration
	InvitationTTL time.Duration

	// Now overrides the issuing clock; validation uses the KeyManager's.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *TokenService) invitationTTL() time.Duration {
	if s.InvitationTTL > 0 {
		return s.InvitationTTL
	}
	return jwtx.DefaultInvitationTTL
}

// IssueAccessToken signs a short-lived token whose subject is the user id.
func (s *TokenService) IssueAccessToken(u domain.User) (domain.AccessToken, error) {
	claims := jwtx.NewAccessClaims(u.Subject(), s.accessTTL(), s.Issuer, s.Audience, u.Name, u.Email, s.now())

	tok, err := s.KeyManager.Signer().Sign(claims)
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("sign access token: %w", err)
	}
	return domain.AccessToken{Token: tok, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// ValidateAccessToken decodes raw, checks expiry, signature, issuer and
// audience, then resolves the subject to a user with its memberships.
//
// An expired token yields ErrExpiredCredential even when its signature is
// not valid.
func (s *TokenService) ValidateAccessToken(ctx context.Context, raw string) (domain.User, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.User{}, ErrMissingCredential
	}

	var claims jwtx.Claims
	if err := s.KeyManager.Verifier.Verify(raw, &claims); err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.User{}, ErrExpiredCredential
		}
		return domain.User{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return domain.User{}, fmt.Errorf("%w: subject %q is not a user id", ErrInvalidCredential, claims.Subject)
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUnknownSubject
		}
		return domain.User{}, err
	}
	return u, nil
}

// IssueInvitationToken signs an invitation of email into buildingID.
func (s *TokenService) IssueInvitationToken(email string, buildingID int64) (domain.Invitation, error) {
	claims := jwtx.NewInvitationClaims(email, buildingID, s.invitationTTL(), s.Issuer, s.Audience, s.now())

	tok, err := s.KeyManager.Signer().Sign(claims)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("sign invitation: %w", err)
	}
	return domain.Invitation{
		Token:      tok,
		Email:      email,
		BuildingID: buildingID,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

// ValidateInvitationToken fully validates an invitation with zero clock
// skew. Every failure is reported as ErrInvitationRejected.
func (s *TokenService) ValidateInvitationToken(ctx context.Context, raw string) (domain.Invitation, error) {
	var claims jwtx.InvitationClaims
	if err := s.KeyManager.Verifier.Verify(strings.TrimSpace(raw), &claims); err != nil {
		slogx.FromContext(ctx).Info("invitation rejected", slog.Any("err", err))
		return domain.Invitation{}, ErrInvitationRejected
	}
	if claims.Email == "" || claims.BuildingID <= 0 {
		return domain.Invitation{}, ErrInvitationRejected
	}

	return domain.Invitation{
		Token:      raw,
		Email:      claims.Email,
		BuildingID: claims.BuildingID,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}
