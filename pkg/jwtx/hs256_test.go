package jwtx_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/hearthhq/hearth/pkg/jwtx"
)

var (
	secretA = []byte("0123456789abcdef0123456789abcdef")
	secretB = []byte("fedcba9876543210fedcba9876543210")
)

func newVerifier(t *testing.T, now time.Time, secrets ...[]byte) *jwtx.HS256Verifier {
	t.Helper()
	ks := jwtx.NewKeySet()
	for _, s := range secrets {
		ks.Add(jwtx.KeyID(s), s)
	}
	return jwtx.NewVerifierHS256(ks, jwtx.VerifyOptions{
		Issuer:   "hearth",
		Audience: []string{"hearth-clients"},
		Now:      func() time.Time { return now },
	})
}

func sign(t *testing.T, secret []byte, claims jwt.Claims) string {
	t.Helper()
	s, err := jwtx.NewSignerHS256(jwtx.KeyID(secret), secret)
	require.NoError(t, err)
	tok, err := s.Sign(claims)
	require.NoError(t, err)
	return tok
}

func TestHS256_RoundTrip(t *testing.T) {
	now := time.Now()
	v := newVerifier(t, now, secretA)

	tok := sign(t, secretA, jwtx.NewAccessClaims("42", time.Minute, "hearth", []string{"hearth-clients"}, "Ada", "ada@example.com", now))

	var got jwtx.Claims
	require.NoError(t, v.Verify(tok, &got))
	require.Equal(t, "42", got.Subject)
	require.Equal(t, "Ada", got.Name)
	require.Equal(t, "ada@example.com", got.Email)
}

func TestHS256_InvitationRoundTrip(t *testing.T) {
	now := time.Now()
	v := newVerifier(t, now, secretA)

	tok := sign(t, secretA, jwtx.NewInvitationClaims("guest@example.com", 9, time.Hour, "hearth", []string{"hearth-clients"}, now))

	var got jwtx.InvitationClaims
	require.NoError(t, v.Verify(tok, &got))
	require.Equal(t, "guest@example.com", got.Email)
	require.Equal(t, int64(9), got.BuildingID)
}

func TestHS256_ExpiredRegardlessOfSignature(t *testing.T) {
	now := time.Now()
	v := newVerifier(t, now, secretA)

	expired := jwtx.NewAccessClaims("42", time.Minute, "hearth", []string{"hearth-clients"}, "", "", now.Add(-2*time.Minute))

	t.Run("signed with a trusted secret", func(t *testing.T) {
		var c jwtx.Claims
		require.ErrorIs(t, v.Verify(sign(t, secretA, expired), &c), jwtx.ErrExpired)
	})

	t.Run("signed with an unknown secret", func(t *testing.T) {
		var c jwtx.Claims
		require.ErrorIs(t, v.Verify(sign(t, secretB, expired), &c), jwtx.ErrExpired)
	})

	t.Run("signature garbled", func(t *testing.T) {
		tok := sign(t, secretA, expired)
		tok = tok[:strings.LastIndex(tok, ".")+1] + "AAAA"
		var c jwtx.Claims
		require.ErrorIs(t, v.Verify(tok, &c), jwtx.ErrExpired)
	})
}

func TestHS256_Rejections(t *testing.T) {
	now := time.Now()
	v := newVerifier(t, now, secretA)
	valid := jwtx.NewAccessClaims("42", time.Minute, "hearth", []string{"hearth-clients"}, "", "", now)

	t.Run("unknown kid", func(t *testing.T) {
		var c jwtx.Claims
		require.ErrorIs(t, v.Verify(sign(t, secretB, valid), &c), jwtx.ErrUnknownKID)
	})

	t.Run("wrong secret under trusted kid", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, valid)
		tok.Header["kid"] = jwtx.KeyID(secretA)
		s, err := tok.SignedString(secretB)
		require.NoError(t, err)

		var c jwtx.Claims
		require.ErrorIs(t, v.Verify(s, &c), jwtx.ErrInvalidSig)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(sign(t, secretA, valid), ".")
		forged := valid
		forged.Subject = "1"
		payload, err := jwt.NewWithClaims(jwt.SigningMethodHS256, forged).SigningString()
		require.NoError(t, err)
		parts[1] = strings.Split(payload, ".")[1]

		var c jwtx.Claims
		require.ErrorIs(t, v.Verify(strings.Join(parts, "."), &c), jwtx.ErrInvalidSig)
	})

	t.Run("algorithm mismatch", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS384, valid)
		tok.Header["kid"] = jwtx.KeyID(secretA)
		s, err := tok.SignedString(secretA)
		require.NoError(t, err)

		var c jwtx.Claims
		require.ErrorIs(t, v.Verify(s, &c), jwtx.ErrAlgMismatch)
	})

	t.Run("missing kid", func(t *testing.T) {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, valid).SignedString(secretA)
		require.NoError(t, err)

		var c jwtx.Claims
		require.ErrorIs(t, v.Verify(s, &c), jwtx.ErrUnknownKID)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		other := valid
		other.Issuer = "elsewhere"
		var c jwtx.Claims
		require.ErrorIs(t, v.Verify(sign(t, secretA, other), &c), jwtx.ErrIssuer)
	})

	t.Run("audience mismatch", func(t *testing.T) {
		other := valid
		other.Audience = jwt.ClaimStrings{"someone-else"}
		var c jwtx.Claims
		require.ErrorIs(t, v.Verify(sign(t, secretA, other), &c), jwtx.ErrAudience)
	})

	t.Run("missing exp", func(t *testing.T) {
		other := valid
		other.ExpiresAt = nil
		var c jwtx.Claims
		require.ErrorIs(t, v.Verify(sign(t, secretA, other), &c), jwtx.ErrInvalidClaim)
	})

	t.Run("malformed", func(t *testing.T) {
		garbage := base64.RawURLEncoding.EncodeToString([]byte("{not json"))
		for _, tok := range []string{"", "   ", "abc", "a.b", "a.b.c", garbage + "." + garbage + ".sig"} {
			var c jwtx.Claims
			require.ErrorIs(t, v.Verify(tok, &c), jwtx.ErrMalformed, tok)
		}
	})
}

func TestNewSignerHS256_Validation(t *testing.T) {
	_, err := jwtx.NewSignerHS256("kid", []byte("short"))
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)

	_, err = jwtx.NewSignerHS256("", secretA)
	require.Error(t, err)

	s, err := jwtx.NewSignerHS256("kid", secretA)
	require.NoError(t, err)
	require.Equal(t, "HS256", s.Alg())
	require.Equal(t, "kid", s.KID())
}
