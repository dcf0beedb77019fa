package jwtx_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/hearthhq/hearth/pkg/jwtx"
)

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "hearth"}}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, jwtx.ValidateIssuer(c, "hearth"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, jwtx.ValidateIssuer(c, ""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		require.ErrorIs(t, jwtx.ValidateIssuer(c, "someone-else"), jwtx.ErrIssuer)
	})
}

func TestValidateAudience(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Audience: []string{"web", "cameras"}}}

	t.Run("contains match", func(t *testing.T) {
		require.NoError(t, jwtx.ValidateAudience(c, []string{"web"}))
	})

	t.Run("multiple match", func(t *testing.T) {
		require.NoError(t, jwtx.ValidateAudience(c, []string{"foo", "cameras"}))
	})

	t.Run("no match", func(t *testing.T) {
		require.ErrorIs(t, jwtx.ValidateAudience(c, []string{"admin"}), jwtx.ErrAudience)
	})

	t.Run("empty expected list", func(t *testing.T) {
		require.NoError(t, jwtx.ValidateAudience(c, nil))
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()

	at := func(exp, nbf time.Duration) *jwtx.Claims {
		c := &jwtx.Claims{}
		c.ExpiresAt = jwt.NewNumericDate(now.Add(exp))
		if nbf != 0 {
			c.NotBefore = jwt.NewNumericDate(now.Add(nbf))
		}
		return c
	}

	t.Run("valid token", func(t *testing.T) {
		require.NoError(t, jwtx.ValidateExpiry(at(time.Minute, 0), now, 0))
	})

	t.Run("expired token", func(t *testing.T) {
		require.ErrorIs(t, jwtx.ValidateExpiry(at(-time.Minute, 0), now, 0), jwtx.ErrExpired)
	})

	t.Run("expires exactly now", func(t *testing.T) {
		require.ErrorIs(t, jwtx.ValidateExpiry(at(0, 0), now, 0), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		require.ErrorIs(t, jwtx.ValidateExpiry(at(time.Hour, time.Minute), now, 0), jwtx.ErrNotYetValid)
	})

	t.Run("missing exp", func(t *testing.T) {
		require.ErrorIs(t, jwtx.ValidateExpiry(&jwtx.Claims{}, now, 0), jwtx.ErrInvalidClaim)
	})

	t.Run("valid with leeway", func(t *testing.T) {
		require.NoError(t, jwtx.ValidateExpiry(at(-10*time.Second, 0), now, 30*time.Second))
	})

	t.Run("expired beyond leeway", func(t *testing.T) {
		require.ErrorIs(t, jwtx.ValidateExpiry(at(-2*time.Minute, 0), now, 30*time.Second), jwtx.ErrExpired)
	})
}

func TestNewAccessClaims(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()
	c := jwtx.NewAccessClaims("42", jwtx.DefaultAccessTokenTTL, "hearth", []string{"web"}, "Ada", "ada@example.com", now)

	require.Equal(t, "42", c.Subject)
	require.Equal(t, "hearth", c.Issuer)
	require.Equal(t, jwt.ClaimStrings{"web"}, c.Audience)
	require.Equal(t, now.Add(15*time.Minute), c.ExpiresAt.Time)
	require.Equal(t, now, c.IssuedAt.Time)
	require.NotEmpty(t, c.ID)

	other := jwtx.NewAccessClaims("42", time.Minute, "hearth", nil, "", "", now)
	require.NotEqual(t, c.ID, other.ID, "jti must be unique")
}

func TestNewInvitationClaims(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()
	c := jwtx.NewInvitationClaims("guest@example.com", 7, jwtx.DefaultInvitationTTL, "hearth", nil, now)

	require.Equal(t, "guest@example.com", c.Email)
	require.Equal(t, int64(7), c.BuildingID)
	require.Equal(t, now.Add(72*time.Hour), c.ExpiresAt.Time)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Equal(t, "guest@example.com", raw["email"])
	require.Equal(t, 7.0, raw["buildingId"])
	require.NotContains(t, raw, "building_id")
}
