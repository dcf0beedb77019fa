package relay

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedHandshake = errors.New("malformed handshake")

// Handshake is the first text message of every relay connection.
type Handshake struct {
	Token string
	Key
}

type handshakeJSON struct {
	Token      *string `json:"token"`
	BuildingID *int64  `json:"building_id"`
	RoomID     *int64  `json:"room_id"`
	CameraID   *int64  `json:"camera_id"`
}

// ParseHandshake decodes a handshake message. Every field must be present
// and ids must not be negative. An empty token is accepted here and refused
// at admission.
func ParseHandshake(data []byte) (Handshake, error) {
	var h handshakeJSON
	if err := json.Unmarshal(data, &h); err != nil {
		return Handshake{}, fmt.Errorf("%w: %w", ErrMalformedHandshake, err)
	}

	switch {
	case h.Token == nil:
		return Handshake{}, fmt.Errorf("%w: token is required", ErrMalformedHandshake)
	case h.BuildingID == nil || h.RoomID == nil || h.CameraID == nil:
		return Handshake{}, fmt.Errorf("%w: building_id, room_id and camera_id are required", ErrMalformedHandshake)
	case *h.BuildingID < 0 || *h.RoomID < 0 || *h.CameraID < 0:
		return Handshake{}, fmt.Errorf("%w: ids must not be negative", ErrMalformedHandshake)
	}

	return Handshake{
		Token: *h.Token,
		Key: Key{
			BuildingID: *h.BuildingID,
			RoomID:     *h.RoomID,
			CameraID:   *h.CameraID,
		},
	}, nil
}

// MarshalJSON renders the wire form of h, used by clients.
func (h Handshake) MarshalJSON() ([]byte, error) {
	return json.Marshal(handshakeJSON{
		Token:      &h.Token,
		BuildingID: &h.BuildingID,
		RoomID:     &h.RoomID,
		CameraID:   &h.CameraID,
	})
}
