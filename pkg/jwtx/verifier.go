package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks a compact JWT and decodes it into claims.
type Verifier interface {
	Verify(token string, claims jwt.Claims) error
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Audience values the token must contain (claims.aud). Empty means "don't care".
	Audience []string

	// Leeway allows clock skew when validating exp/nbf. Zero by default.
	Leeway time.Duration

	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// HS256Verifier validates HS256 tokens against the secrets in a KeySet.
//
// Expiry is checked on the decoded claims before the signature, so an
// expired token is reported as ErrExpired whoever signed it.
type HS256Verifier struct {
	keys   *KeySet
	opts   VerifyOptions
	parser *jwt.Parser
}

// NewVerifierHS256 creates a verifier over keys.
func NewVerifierHS256(keys *KeySet, opts VerifyOptions) *HS256Verifier {
	return &HS256Verifier{
		keys:   keys,
		opts:   opts,
		parser: jwt.NewParser(jwt.WithoutClaimsValidation()),
	}
}

func (v *HS256Verifier) now() time.Time {
	if v.opts.Now != nil {
		return v.opts.Now()
	}
	return time.Now()
}

// Verify decodes tokenStr into claims and validates it.
func (v *HS256Verifier) Verify(tokenStr string, claims jwt.Claims) error {
	if strings.TrimSpace(tokenStr) == "" {
		return ErrMalformed
	}

	if _, _, err := v.parser.ParseUnverified(tokenStr, claims); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := ValidateExpiry(claims, v.now(), v.opts.Leeway); err != nil {
		return err
	}

	if _, err := v.parser.ParseWithClaims(tokenStr, claims, v.keyFunc); err != nil {
		switch {
		case errors.Is(err, ErrAlgMismatch):
			return ErrAlgMismatch
		case errors.Is(err, ErrUnknownKID):
			return ErrUnknownKID
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return ErrInvalidSig
		default:
			return fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	if err := ValidateIssuer(claims, v.opts.Issuer); err != nil {
		return err
	}
	return ValidateAudience(claims, v.opts.Audience)
}

func (v *HS256Verifier) keyFunc(t *jwt.Token) (any, error) {
	if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, ErrAlgMismatch
	}

	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return nil, fmt.Errorf("%w: missing kid", ErrUnknownKID)
	}

	secret, err := v.keys.Get(kid)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
	}
	return secret, nil
}
