package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hearthhq/hearth/internal/home/domain"
	"github.com/hearthhq/hearth/internal/home/store"
	"github.com/hearthhq/hearth/internal/home/store/drivers/sqlite"
	"github.com/hearthhq/hearth/pkg/cryptox"
	"github.com/hearthhq/hearth/pkg/jwtx"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fixture struct {
	store     store.Store
	tokens    *TokenService
	users     *UserService
	buildings *BuildingService
	rooms     *RoomService
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	km, err := jwtx.NewHMACKeyManager(jwtx.KeyManagerOptions{
		Secret:   testSecret,
		Issuer:   "hearth",
		Audience: []string{"hearth-clients"},
	})
	require.NoError(t, err)

	tokens := &TokenService{
		KeyManager: km,
		Store:      s,
		Issuer:     "hearth",
		Audience:   []string{"hearth-clients"},
	}
	return fixture{
		store:     s,
		tokens:    tokens,
		users:     &UserService{Store: s, Tokens: tokens, Hasher: cryptox.NewPasswordHasher("pepper")},
		buildings: &BuildingService{Store: s, Tokens: tokens},
		rooms:     &RoomService{Store: s},
	}
}

func (f fixture) register(t *testing.T, name, email string) domain.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), RegisterParams{
		Name:     name,
		Email:    email,
		Password: "correct horse",
	})
	require.NoError(t, err)
	return u
}
