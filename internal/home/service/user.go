package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/hearthhq/hearth/internal/home/domain"
	"github.com/hearthhq/hearth/internal/home/store"
	"github.com/hearthhq/hearth/pkg/cryptox"
	"github.com/hearthhq/hearth/pkg/slogx"
)

const (
	maxNameLength     = 50
	minPasswordLength = 8
	maxPasswordLength = 128
)

type UserService struct {
	Store  store.Store
	Tokens *TokenService
	Hasher *cryptox.PasswordHasher
}

// RegisterParams carries the fields of a sign-up request.
type RegisterParams struct {
	Name            string
	Email           string
	Password        string
	InvitationToken string
}

// Register creates an account. When an invitation token for the same email
// is supplied, the building membership is created in the same transaction.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	name := strings.TrimSpace(p.Name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return domain.User{}, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, maxNameLength)
	}
	email, err := NormalizeEmail(p.Email)
	if err != nil {
		return domain.User{}, err
	}
	if n := len(p.Password); n < minPasswordLength || n > maxPasswordLength {
		return domain.User{}, fmt.Errorf("%w: password must be %d-%d characters",
			ErrInvalidInput, minPasswordLength, maxPasswordLength)
	}

	// 2. Check the invitation up front so a bad token never creates a user
	var inv *domain.Invitation
	if p.InvitationToken != "" {
		claims, err := s.Tokens.ValidateInvitationToken(ctx, p.InvitationToken)
		if err != nil {
			return domain.User{}, err
		}
		if !strings.EqualFold(claims.Email, email) {
			log.Warn("invitation presented for a different email",
				slog.Int64("building_id", claims.BuildingID),
			)
			return domain.User{}, ErrInvitationEmailMismatch
		}
		inv = &claims
	}

	// 3. Hash the password outside the transaction
	hash, err := s.Hasher.Hash(p.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	user := domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	// 4. Create the user and any membership atomically
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		id, err := tx.Users().CreateUser(ctx, user)
		if err != nil {
			return err
		}
		user.ID = id

		if inv != nil {
			if err := tx.Buildings().AddMember(ctx, inv.BuildingID, id); err != nil {
				return err
			}
			user.BuildingIDs = []int64{inv.BuildingID}
		}
		return nil
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.User{}, ErrEmailTaken
	case inv != nil && errors.Is(err, store.ErrNotFound):
		// The invited building has since been removed.
		return domain.User{}, ErrInvitationRejected
	case err != nil:
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.Bool("invited", inv != nil),
	)
	return user, nil
}

// Login checks the password for email and issues an access token.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, domain.AccessToken, error) {
	log := slogx.FromContext(ctx)

	email, err := NormalizeEmail(email)
	if err != nil || password == "" {
		return domain.User{}, domain.AccessToken{}, ErrInvalidLogin
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.AccessToken{}, ErrInvalidLogin
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, domain.AccessToken{}, err
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("login failed", slog.Int64("user_id", user.ID))
			return domain.User{}, domain.AccessToken{}, ErrInvalidLogin
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return domain.User{}, domain.AccessToken{}, err
	}

	tok, err := s.Tokens.IssueAccessToken(user)
	if err != nil {
		return domain.User{}, domain.AccessToken{}, err
	}
	return user, tok, nil
}

// NormalizeEmail parses a bare address and lowercases it.
func NormalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	return strings.ToLower(addr.Address), nil
}
