package sqlstore

import (
	"context"

	"github.com/hearthhq/hearth/internal/home/domain"
	"github.com/hearthhq/hearth/internal/home/store"
)

type roomsRepo struct {
	q *Queries
	d Dialect
}

func (r *roomsRepo) CreateRoom(ctx context.Context, room domain.Room) (int64, error) {
	createdAt := room.CreatedAt
	if createdAt.IsZero() {
		createdAt = now()
	}
	id, err := r.q.CreateRoom(ctx, room.BuildingID, room.Name, createdAt)
	if r.d.foreignKeyViolation(err) {
		return 0, store.ErrNotFound
	}
	return id, err
}

func (r *roomsRepo) GetRoom(ctx context.Context, buildingID, roomID int64) (domain.Room, error) {
	row, err := r.q.GetRoom(ctx, buildingID, roomID)
	if err != nil {
		return domain.Room{}, mapNotFound(err)
	}
	return mapRoom(row), nil
}

func (r *roomsRepo) ListRooms(ctx context.Context, buildingID int64) ([]domain.Room, error) {
	rows, err := r.q.ListRooms(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Room, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapRoom(row))
	}
	return out, nil
}

type devicesRepo struct {
	q *Queries
	d Dialect
}

func (r *devicesRepo) CreateDevice(ctx context.Context, d domain.Device) (int64, error) {
	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = now()
	}
	id, err := r.q.CreateDevice(ctx, d.RoomID, d.Name, d.Type, createdAt)
	if r.d.foreignKeyViolation(err) {
		return 0, store.ErrNotFound
	}
	return id, err
}

func (r *devicesRepo) GetDevice(ctx context.Context, roomID, deviceID int64) (domain.Device, error) {
	row, err := r.q.GetDevice(ctx, roomID, deviceID)
	if err != nil {
		return domain.Device{}, mapNotFound(err)
	}
	return mapDevice(row), nil
}

func (r *devicesRepo) ListDevices(ctx context.Context, roomID int64) ([]domain.Device, error) {
	rows, err := r.q.ListDevices(ctx, roomID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Device, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapDevice(row))
	}
	return out, nil
}

func (r *devicesRepo) AddReading(ctx context.Context, reading domain.DeviceReading) (int64, error) {
	recordedAt := reading.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = now()
	}
	id, err := r.q.AddReading(ctx, reading.DeviceID, reading.Data, recordedAt)
	if r.d.foreignKeyViolation(err) {
		return 0, store.ErrNotFound
	}
	return id, err
}

func (r *devicesRepo) ListReadings(ctx context.Context, deviceID int64, limit int) ([]domain.DeviceReading, error) {
	rows, err := r.q.ListReadings(ctx, deviceID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.DeviceReading, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapReading(row))
	}
	return out, nil
}

func (r *devicesRepo) LatestReading(ctx context.Context, deviceID int64) (domain.DeviceReading, error) {
	rows, err := r.q.ListReadings(ctx, deviceID, 1)
	if err != nil {
		return domain.DeviceReading{}, err
	}
	if len(rows) == 0 {
		return domain.DeviceReading{}, store.ErrNotFound
	}
	return mapReading(rows[0]), nil
}
