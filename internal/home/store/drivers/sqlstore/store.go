package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hearthhq/hearth/internal/home/domain"
	"github.com/hearthhq/hearth/internal/home/store"
)

// Migrator applies the driver's embedded migrations to db.
type Migrator func(db *sql.DB) error

type Store struct {
	db      *sql.DB
	d       Dialect
	q       *Queries
	migrate Migrator
}

var _ store.Store = (*Store)(nil)

// New wraps an open database.
func New(db *sql.DB, d Dialect, migrate Migrator) *Store {
	return &Store{db: db, d: d, q: newQueries(db, d), migrate: migrate}
}

// DB exposes the underlying pool, for tests and health checks.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) ApplyMigrations() error {
	if s.migrate == nil {
		return nil
	}
	return s.migrate(s.db)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx, d: s.d, q: newQueries(tx, s.d)}, nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users         { return &usersRepo{q: s.q, d: s.d} }
func (s *Store) Buildings() store.Buildings { return &buildingsRepo{q: s.q, d: s.d} }
func (s *Store) Rooms() store.Rooms         { return &roomsRepo{q: s.q, d: s.d} }
func (s *Store) Devices() store.Devices     { return &devicesRepo{q: s.q, d: s.d} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func now() time.Time { return time.Now().UTC() }

func mapUser(row userRow, buildingIDs []int64) domain.User {
	return domain.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		BuildingIDs:  buildingIDs,
		CreatedAt:    row.CreatedAt,
	}
}

func mapBuilding(row buildingRow) domain.Building {
	return domain.Building{
		ID:        row.ID,
		Name:      row.Name,
		Address:   row.Address,
		CreatedAt: row.CreatedAt,
	}
}

func mapRoom(row roomRow) domain.Room {
	return domain.Room{
		ID:         row.ID,
		BuildingID: row.BuildingID,
		Name:       row.Name,
		CreatedAt:  row.CreatedAt,
	}
}

func mapDevice(row deviceRow) domain.Device {
	return domain.Device{
		ID:        row.ID,
		RoomID:    row.RoomID,
		Name:      row.Name,
		Type:      row.Type,
		CreatedAt: row.CreatedAt,
	}
}

func mapReading(row readingRow) domain.DeviceReading {
	return domain.DeviceReading{
		ID:         row.ID,
		DeviceID:   row.DeviceID,
		Data:       row.Data,
		RecordedAt: row.RecordedAt,
	}
}
