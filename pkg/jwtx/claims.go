package jwtx

import (
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hearthhq/hearth/pkg/idx"
)

const (
	// DefaultAccessTokenTTL is the lifetime of an access token.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultInvitationTTL is the lifetime of a building invitation.
	DefaultInvitationTTL = 72 * time.Hour
)

// Claims are access-token claims. The subject is the decimal user id.
type Claims struct {
	jwt.RegisteredClaims

	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// InvitationClaims bind an email address to a building.
type InvitationClaims struct {
	jwt.RegisteredClaims

	Email      string `json:"email"`
	BuildingID int64  `json:"buildingId"`
}

// NewAccessClaims builds minimally-correct access claims.
func NewAccessClaims(
	subject string,
	ttl time.Duration,
	issuer string,
	audience []string,
	name, email string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: registered(subject, ttl, issuer, audience, now),
		Name:             name,
		Email:            email,
	}
}

// NewInvitationClaims builds claims for an invitation into buildingID.
func NewInvitationClaims(
	email string,
	buildingID int64,
	ttl time.Duration,
	issuer string,
	audience []string,
	now time.Time,
) InvitationClaims {
	return InvitationClaims{
		RegisteredClaims: registered(email, ttl, issuer, audience, now),
		Email:            email,
		BuildingID:       buildingID,
	}
}

func registered(subject string, ttl time.Duration, issuer string, audience []string, now time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		Audience:  jwt.ClaimStrings(audience),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        NewJTI(),
	}
}

// NewJTI returns a unique identifier for the "jti" claim.
func NewJTI() string {
	return idx.New().String()
}

// ValidateIssuer checks iss against expected. Empty expected skips the check.
func ValidateIssuer(c jwt.Claims, expected string) error {
	if expected == "" {
		return nil
	}

	iss, err := c.GetIssuer()
	if err != nil || iss != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks that at least one expected audience is present.
func ValidateAudience(c jwt.Claims, expected []string) error {
	if len(expected) == 0 {
		return nil
	}

	aud, err := c.GetAudience()
	if err != nil {
		return ErrAudience
	}
	for _, want := range expected {
		if slices.Contains(aud, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry requires an exp claim and treats a token as expired from
// the instant now reaches exp (plus leeway). nbf is honoured when present.
func ValidateExpiry(c jwt.Claims, now time.Time, leeway time.Duration) error {
	exp, err := c.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("%w: exp: %w", ErrInvalidClaim, err)
	}
	if exp == nil {
		return fmt.Errorf("%w: missing exp", ErrInvalidClaim)
	}
	if !now.Before(exp.Add(leeway)) {
		return ErrExpired
	}

	nbf, err := c.GetNotBefore()
	if err != nil {
		return fmt.Errorf("%w: nbf: %w", ErrInvalidClaim, err)
	}
	if nbf != nil && now.Add(leeway).Before(nbf.Time) {
		return ErrNotYetValid
	}
	return nil
}
