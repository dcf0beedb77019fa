package domain

import "time"

// Room belongs to exactly one building. Cameras streaming through the relay
// are addressed by room id.
type Room struct {
	ID         int64
	BuildingID int64
	Name       string
	CreatedAt  time.Time
}

type Device struct {
	ID        int64
	RoomID    int64
	Name      string
	Type      string // free-form kind, e.g. "thermostat", "camera"
	CreatedAt time.Time
}

// DeviceReading is one opaque payload reported by a device.
type DeviceReading struct {
	ID         int64
	DeviceID   int64
	Data       string
	RecordedAt time.Time
}
