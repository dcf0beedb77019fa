package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hearthhq/hearth/internal/home/domain"
	"github.com/hearthhq/hearth/internal/home/store"
	"github.com/hearthhq/hearth/pkg/slogx"
)

const (
	maxRoomNameLength   = 50
	maxDeviceNameLength = 50
	maxDeviceTypeLength = 50
	maxReadingBytes     = 64 << 10

	DefaultReadingLimit = 50
	MaxReadingLimit     = 500
)

// RoomService manages the rooms of a building and the devices inside them.
// Callers have already checked building membership; every lookup is scoped
// to the building so ids from elsewhere resolve as not found.
type RoomService struct {
	Store store.Store
}

func checkLength(field, value string, limit int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || utf8.RuneCountInString(value) > limit {
		return "", fmt.Errorf("%w: %s must be 1-%d characters", ErrInvalidInput, field, limit)
	}
	return value, nil
}

func (s *RoomService) CreateRoom(ctx context.Context, buildingID int64, name string) (domain.Room, error) {
	name, err := checkLength("name", name, maxRoomNameLength)
	if err != nil {
		return domain.Room{}, err
	}

	id, err := s.Store.Rooms().CreateRoom(ctx, domain.Room{BuildingID: buildingID, Name: name})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Room{}, ErrBuildingNotFound
		}
		slogx.FromContext(ctx).Error("failed to create room", slog.Any("error", err))
		return domain.Room{}, err
	}

	room, err := s.Store.Rooms().GetRoom(ctx, buildingID, id)
	if err != nil {
		return domain.Room{}, err
	}

	slogx.FromContext(ctx).Info("room created",
		slog.Int64("building_id", buildingID),
		slog.Int64("room_id", id),
	)
	return room, nil
}

func (s *RoomService) ListRooms(ctx context.Context, buildingID int64) ([]domain.Room, error) {
	return s.Store.Rooms().ListRooms(ctx, buildingID)
}

func (s *RoomService) GetRoom(ctx context.Context, buildingID, roomID int64) (domain.Room, error) {
	room, err := s.Store.Rooms().GetRoom(ctx, buildingID, roomID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Room{}, ErrRoomNotFound
	}
	return room, err
}

func (s *RoomService) CreateDevice(ctx context.Context, buildingID, roomID int64, name, typ string) (domain.Device, error) {
	name, err := checkLength("name", name, maxDeviceNameLength)
	if err != nil {
		return domain.Device{}, err
	}
	typ, err = checkLength("type", typ, maxDeviceTypeLength)
	if err != nil {
		return domain.Device{}, err
	}

	if _, err := s.GetRoom(ctx, buildingID, roomID); err != nil {
		return domain.Device{}, err
	}

	id, err := s.Store.Devices().CreateDevice(ctx, domain.Device{RoomID: roomID, Name: name, Type: typ})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Device{}, ErrRoomNotFound
		}
		slogx.FromContext(ctx).Error("failed to create device", slog.Any("error", err))
		return domain.Device{}, err
	}

	device, err := s.Store.Devices().GetDevice(ctx, roomID, id)
	if err != nil {
		return domain.Device{}, err
	}

	slogx.FromContext(ctx).Info("device created",
		slog.Int64("building_id", buildingID),
		slog.Int64("room_id", roomID),
		slog.Int64("device_id", id),
	)
	return device, nil
}

func (s *RoomService) ListDevices(ctx context.Context, buildingID, roomID int64) ([]domain.Device, error) {
	if _, err := s.GetRoom(ctx, buildingID, roomID); err != nil {
		return nil, err
	}
	return s.Store.Devices().ListDevices(ctx, roomID)
}

// GetDevice resolves a device through its room, so a device id reached
// through the wrong room or building reports ErrRoomNotFound or
// ErrDeviceNotFound.
func (s *RoomService) GetDevice(ctx context.Context, buildingID, roomID, deviceID int64) (domain.Device, error) {
	if _, err := s.GetRoom(ctx, buildingID, roomID); err != nil {
		return domain.Device{}, err
	}

	device, err := s.Store.Devices().GetDevice(ctx, roomID, deviceID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Device{}, ErrDeviceNotFound
	}
	return device, err
}

// RecordReading stores data as the device's newest reading. The payload is
// opaque to the server.
func (s *RoomService) RecordReading(ctx context.Context, buildingID, roomID, deviceID int64, data string) (domain.DeviceReading, error) {
	if data == "" || len(data) > maxReadingBytes {
		return domain.DeviceReading{}, fmt.Errorf("%w: data must be 1-%d bytes", ErrInvalidInput, maxReadingBytes)
	}
	if _, err := s.GetDevice(ctx, buildingID, roomID, deviceID); err != nil {
		return domain.DeviceReading{}, err
	}

	reading := domain.DeviceReading{DeviceID: deviceID, Data: data, RecordedAt: time.Now().UTC()}
	id, err := s.Store.Devices().AddReading(ctx, reading)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.DeviceReading{}, ErrDeviceNotFound
		}
		slogx.FromContext(ctx).Error("failed to record reading", slog.Any("error", err))
		return domain.DeviceReading{}, err
	}
	reading.ID = id
	return reading, nil
}

// ListReadings returns the newest readings first. limit is clamped to
// 1..MaxReadingLimit, with DefaultReadingLimit for zero or negative values.
func (s *RoomService) ListReadings(ctx context.Context, buildingID, roomID, deviceID int64, limit int) ([]domain.DeviceReading, error) {
	if _, err := s.GetDevice(ctx, buildingID, roomID, deviceID); err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = DefaultReadingLimit
	case limit > MaxReadingLimit:
		limit = MaxReadingLimit
	}
	return s.Store.Devices().ListReadings(ctx, deviceID, limit)
}

func (s *RoomService) LatestReading(ctx context.Context, buildingID, roomID, deviceID int64) (domain.DeviceReading, error) {
	if _, err := s.GetDevice(ctx, buildingID, roomID, deviceID); err != nil {
		return domain.DeviceReading{}, err
	}

	reading, err := s.Store.Devices().LatestReading(ctx, deviceID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.DeviceReading{}, ErrNoReadings
	}
	return reading, err
}
