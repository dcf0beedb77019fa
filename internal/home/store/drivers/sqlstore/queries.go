package sqlstore

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries holds every statement the repositories run.
type Queries struct {
	db DBTX
	d  Dialect
}

func newQueries(db DBTX, d Dialect) *Queries {
	return &Queries{db: db, d: d}
}

const createUser = `INSERT INTO users (name, email, password_hash, created_at)
VALUES (?, ?, ?, ?)
RETURNING id`

func (q *Queries) CreateUser(ctx context.Context, name, email, passwordHash string, createdAt time.Time) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, q.d.rebind(createUser), name, email, passwordHash, createdAt).Scan(&id)
	return id, err
}

type userRow struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

const getUserByID = `SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (userRow, error) {
	var r userRow
	err := q.db.QueryRowContext(ctx, q.d.rebind(getUserByID), id).
		Scan(&r.ID, &r.Name, &r.Email, &r.PasswordHash, &r.CreatedAt)
	return r, err
}

const getUserByEmail = `SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (userRow, error) {
	var r userRow
	err := q.db.QueryRowContext(ctx, q.d.rebind(getUserByEmail), email).
		Scan(&r.ID, &r.Name, &r.Email, &r.PasswordHash, &r.CreatedAt)
	return r, err
}

const listBuildingIDsForUser = `SELECT building_id FROM building_users WHERE user_id = ? ORDER BY building_id`

func (q *Queries) ListBuildingIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, q.d.rebind(listBuildingIDsForUser), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const createBuilding = `INSERT INTO buildings (name, address, created_at)
VALUES (?, ?, ?)
RETURNING id`

func (q *Queries) CreateBuilding(ctx context.Context, name, address string, createdAt time.Time) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, q.d.rebind(createBuilding), name, address, createdAt).Scan(&id)
	return id, err
}

type buildingRow struct {
	ID        int64
	Name      string
	Address   string
	CreatedAt time.Time
}

const getBuildingByID = `SELECT id, name, address, created_at FROM buildings WHERE id = ?`

func (q *Queries) GetBuildingByID(ctx context.Context, id int64) (buildingRow, error) {
	var r buildingRow
	err := q.db.QueryRowContext(ctx, q.d.rebind(getBuildingByID), id).
		Scan(&r.ID, &r.Name, &r.Address, &r.CreatedAt)
	return r, err
}

const listBuildingsForUser = `SELECT b.id, b.name, b.address, b.created_at
FROM buildings b
JOIN building_users bu ON bu.building_id = b.id
WHERE bu.user_id = ?
ORDER BY b.id`

func (q *Queries) ListBuildingsForUser(ctx context.Context, userID int64) ([]buildingRow, error) {
	rows, err := q.db.QueryContext(ctx, q.d.rebind(listBuildingsForUser), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []buildingRow
	for rows.Next() {
		var r buildingRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Address, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const addMember = `INSERT INTO building_users (building_id, user_id, created_at)
VALUES (?, ?, ?)
ON CONFLICT (building_id, user_id) DO NOTHING`

func (q *Queries) AddMember(ctx context.Context, buildingID, userID int64, createdAt time.Time) error {
	_, err := q.db.ExecContext(ctx, q.d.rebind(addMember), buildingID, userID, createdAt)
	return err
}

const createRoom = `INSERT INTO rooms (building_id, name, created_at)
VALUES (?, ?, ?)
RETURNING id`

func (q *Queries) CreateRoom(ctx context.Context, buildingID int64, name string, createdAt time.Time) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, q.d.rebind(createRoom), buildingID, name, createdAt).Scan(&id)
	return id, err
}

type roomRow struct {
	ID         int64
	BuildingID int64
	Name       string
	CreatedAt  time.Time
}

const getRoom = `SELECT id, building_id, name, created_at FROM rooms WHERE building_id = ? AND id = ?`

func (q *Queries) GetRoom(ctx context.Context, buildingID, roomID int64) (roomRow, error) {
	var r roomRow
	err := q.db.QueryRowContext(ctx, q.d.rebind(getRoom), buildingID, roomID).
		Scan(&r.ID, &r.BuildingID, &r.Name, &r.CreatedAt)
	return r, err
}

const listRooms = `SELECT id, building_id, name, created_at FROM rooms WHERE building_id = ? ORDER BY id`

func (q *Queries) ListRooms(ctx context.Context, buildingID int64) ([]roomRow, error) {
	rows, err := q.db.QueryContext(ctx, q.d.rebind(listRooms), buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []roomRow
	for rows.Next() {
		var r roomRow
		if err := rows.Scan(&r.ID, &r.BuildingID, &r.Name, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const createDevice = `INSERT INTO devices (room_id, name, type, created_at)
VALUES (?, ?, ?, ?)
RETURNING id`

func (q *Queries) CreateDevice(ctx context.Context, roomID int64, name, typ string, createdAt time.Time) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, q.d.rebind(createDevice), roomID, name, typ, createdAt).Scan(&id)
	return id, err
}

type deviceRow struct {
	ID        int64
	RoomID    int64
	Name      string
	Type      string
	CreatedAt time.Time
}

const getDevice = `SELECT id, room_id, name, type, created_at FROM devices WHERE room_id = ? AND id = ?`

func (q *Queries) GetDevice(ctx context.Context, roomID, deviceID int64) (deviceRow, error) {
	var r deviceRow
	err := q.db.QueryRowContext(ctx, q.d.rebind(getDevice), roomID, deviceID).
		Scan(&r.ID, &r.RoomID, &r.Name, &r.Type, &r.CreatedAt)
	return r, err
}

const listDevices = `SELECT id, room_id, name, type, created_at FROM devices WHERE room_id = ? ORDER BY id`

func (q *Queries) ListDevices(ctx context.Context, roomID int64) ([]deviceRow, error) {
	rows, err := q.db.QueryContext(ctx, q.d.rebind(listDevices), roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []deviceRow
	for rows.Next() {
		var r deviceRow
		if err := rows.Scan(&r.ID, &r.RoomID, &r.Name, &r.Type, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const addReading = `INSERT INTO device_readings (device_id, data, recorded_at)
VALUES (?, ?, ?)
RETURNING id`

func (q *Queries) AddReading(ctx context.Context, deviceID int64, data string, recordedAt time.Time) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, q.d.rebind(addReading), deviceID, data, recordedAt).Scan(&id)
	return id, err
}

type readingRow struct {
	ID         int64
	DeviceID   int64
	Data       string
	RecordedAt time.Time
}

const listReadings = `SELECT id, device_id, data, recorded_at FROM device_readings
WHERE device_id = ?
ORDER BY recorded_at DESC, id DESC
LIMIT ?`

func (q *Queries) ListReadings(ctx context.Context, deviceID int64, limit int) ([]readingRow, error) {
	rows, err := q.db.QueryContext(ctx, q.d.rebind(listReadings), deviceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []readingRow
	for rows.Next() {
		var r readingRow
		if err := rows.Scan(&r.ID, &r.DeviceID, &r.Data, &r.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
