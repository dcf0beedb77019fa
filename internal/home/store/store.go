package store

import (
	"context"
	"errors"

	"github.com/hearthhq/hearth/internal/home/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement it and expose sub-repositories so transactional code
// cannot reach the outer connection by accident.
type Store interface {
	Users() Users
	Buildings() Buildings
	Rooms() Rooms
	Devices() Devices

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user together with its building memberships.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail looks up a user by normalised email address.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts u and returns its generated id. A duplicate email
	// yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (int64, error)
}

type Buildings interface {
	CreateBuilding(ctx context.Context, b domain.Building) (int64, error)
	GetBuildingByID(ctx context.Context, id int64) (domain.Building, error)

	// ListBuildingsForUser returns the buildings userID belongs to, by id.
	ListBuildingsForUser(ctx context.Context, userID int64) ([]domain.Building, error)

	// AddMember links userID to buildingID. Adding an existing member is a
	// no-op; an unknown building or user yields ErrNotFound.
	AddMember(ctx context.Context, buildingID, userID int64) error
}

// Rooms are always looked up within their building so a room id from one
// building never resolves in another.
type Rooms interface {
	// CreateRoom inserts r. An unknown building yields ErrNotFound.
	CreateRoom(ctx context.Context, r domain.Room) (int64, error)
	GetRoom(ctx context.Context, buildingID, roomID int64) (domain.Room, error)
	ListRooms(ctx context.Context, buildingID int64) ([]domain.Room, error)
}

type Devices interface {
	// CreateDevice inserts d. An unknown room yields ErrNotFound.
	CreateDevice(ctx context.Context, d domain.Device) (int64, error)
	GetDevice(ctx context.Context, roomID, deviceID int64) (domain.Device, error)
	ListDevices(ctx context.Context, roomID int64) ([]domain.Device, error)

	// AddReading appends a reading. An unknown device yields ErrNotFound.
	AddReading(ctx context.Context, r domain.DeviceReading) (int64, error)

	// ListReadings returns at most limit readings, newest first.
	ListReadings(ctx context.Context, deviceID int64, limit int) ([]domain.DeviceReading, error)

	// LatestReading returns ErrNotFound when the device has reported nothing.
	LatestReading(ctx context.Context, deviceID int64) (domain.DeviceReading, error)
}
