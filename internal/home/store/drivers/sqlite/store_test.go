package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hearthhq/hearth/internal/home/domain"
	"github.com/hearthhq/hearth/internal/home/store"
	"github.com/hearthhq/hearth/internal/home/store/drivers/sqlite"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUsers_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	id, err := s.Users().CreateUser(ctx, domain.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	require.Positive(t, id)

	u, err := s.Users().GetUserByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Ada", u.Name)
	require.Equal(t, "ada@example.com", u.Email)
	require.Equal(t, "hash", u.PasswordHash)
	require.Empty(t, u.BuildingIDs)
	require.False(t, u.CreatedAt.IsZero())

	byEmail, err := s.Users().GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, id, byEmail.ID)
}

func TestUsers_NotFound(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Users().GetUserByID(ctx, 404)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Users().CreateUser(ctx, domain.User{Name: "A", Email: "dup@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = s.Users().CreateUser(ctx, domain.User{Name: "B", Email: "dup@example.com", PasswordHash: "y"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestBuildings_Membership(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	userID, err := s.Users().CreateUser(ctx, domain.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	home, err := s.Buildings().CreateBuilding(ctx, domain.Building{Name: "Home", Address: "1 Main St"})
	require.NoError(t, err)
	office, err := s.Buildings().CreateBuilding(ctx, domain.Building{Name: "Office"})
	require.NoError(t, err)

	u, err := s.Users().GetUserByID(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, u.BuildingIDs)

	require.NoError(t, s.Buildings().AddMember(ctx, home, userID))
	require.NoError(t, s.Buildings().AddMember(ctx, home, userID), "adding twice is a no-op")
	require.NoError(t, s.Buildings().AddMember(ctx, office, userID))

	u, err = s.Users().GetUserByID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, []int64{home, office}, u.BuildingIDs)
	require.True(t, u.IsMemberOf(office))

	list, err := s.Buildings().ListBuildingsForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Home", list[0].Name)
	require.Equal(t, "1 Main St", list[0].Address)

	b, err := s.Buildings().GetBuildingByID(ctx, office)
	require.NoError(t, err)
	require.Equal(t, "Office", b.Name)
}

func TestBuildings_AddMemberUnknown(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	userID, err := s.Users().CreateUser(ctx, domain.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	require.ErrorIs(t, s.Buildings().AddMember(ctx, 999, userID), store.ErrNotFound)

	_, err = s.Buildings().GetBuildingByID(ctx, 999)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRooms_ScopedToBuilding(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	home, err := s.Buildings().CreateBuilding(ctx, domain.Building{Name: "Home"})
	require.NoError(t, err)
	office, err := s.Buildings().CreateBuilding(ctx, domain.Building{Name: "Office"})
	require.NoError(t, err)

	kitchen, err := s.Rooms().CreateRoom(ctx, domain.Room{BuildingID: home, Name: "Kitchen"})
	require.NoError(t, err)
	_, err = s.Rooms().CreateRoom(ctx, domain.Room{BuildingID: home, Name: "Hall"})
	require.NoError(t, err)

	r, err := s.Rooms().GetRoom(ctx, home, kitchen)
	require.NoError(t, err)
	require.Equal(t, "Kitchen", r.Name)
	require.Equal(t, home, r.BuildingID)

	_, err = s.Rooms().GetRoom(ctx, office, kitchen)
	require.ErrorIs(t, err, store.ErrNotFound)

	rooms, err := s.Rooms().ListRooms(ctx, home)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	require.Equal(t, "Kitchen", rooms[0].Name)

	rooms, err = s.Rooms().ListRooms(ctx, office)
	require.NoError(t, err)
	require.Empty(t, rooms)

	_, err = s.Rooms().CreateRoom(ctx, domain.Room{BuildingID: 999, Name: "Ghost"})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDevices_Readings(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	building, err := s.Buildings().CreateBuilding(ctx, domain.Building{Name: "Home"})
	require.NoError(t, err)
	room, err := s.Rooms().CreateRoom(ctx, domain.Room{BuildingID: building, Name: "Kitchen"})
	require.NoError(t, err)
	other, err := s.Rooms().CreateRoom(ctx, domain.Room{BuildingID: building, Name: "Hall"})
	require.NoError(t, err)

	deviceID, err := s.Devices().CreateDevice(ctx, domain.Device{RoomID: room, Name: "Thermostat", Type: "thermostat"})
	require.NoError(t, err)

	d, err := s.Devices().GetDevice(ctx, room, deviceID)
	require.NoError(t, err)
	require.Equal(t, "thermostat", d.Type)

	_, err = s.Devices().GetDevice(ctx, other, deviceID)
	require.ErrorIs(t, err, store.ErrNotFound)

	devices, err := s.Devices().ListDevices(ctx, room)
	require.NoError(t, err)
	require.Len(t, devices, 1)

	_, err = s.Devices().CreateDevice(ctx, domain.Device{RoomID: 999, Name: "Ghost", Type: "camera"})
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Devices().LatestReading(ctx, deviceID)
	require.ErrorIs(t, err, store.ErrNotFound)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, data := range []string{`{"c":20}`, `{"c":21}`, `{"c":22}`} {
		_, err := s.Devices().AddReading(ctx, domain.DeviceReading{
			DeviceID:   deviceID,
			Data:       data,
			RecordedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	latest, err := s.Devices().LatestReading(ctx, deviceID)
	require.NoError(t, err)
	require.Equal(t, `{"c":22}`, latest.Data)

	readings, err := s.Devices().ListReadings(ctx, deviceID, 2)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	require.Equal(t, `{"c":22}`, readings[0].Data)
	require.Equal(t, `{"c":21}`, readings[1].Data)

	_, err = s.Devices().AddReading(ctx, domain.DeviceReading{DeviceID: 999, Data: "x"})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().CreateUser(ctx, domain.User{Name: "Tmp", Email: "tmp@example.com", PasswordHash: "x"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByEmail(ctx, "tmp@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx_Commit(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	var userID, buildingID int64
	err := s.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if userID, err = tx.Users().CreateUser(ctx, domain.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}); err != nil {
			return err
		}
		if buildingID, err = tx.Buildings().CreateBuilding(ctx, domain.Building{Name: "Home"}); err != nil {
			return err
		}
		return tx.Buildings().AddMember(ctx, buildingID, userID)
	})
	require.NoError(t, err)

	u, err := s.Users().GetUserByID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, []int64{buildingID}, u.BuildingIDs)
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "home.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}
