package relay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHandshake(t *testing.T) {
	t.Parallel()

	h, err := ParseHandshake([]byte(`{"token":"abc","building_id":1,"room_id":2,"camera_id":3,"extra":true}`))
	require.NoError(t, err)
	require.Equal(t, "abc", h.Token)
	require.Equal(t, Key{BuildingID: 1, RoomID: 2, CameraID: 3}, h.Key)

	h, err = ParseHandshake([]byte(`{"token":"","building_id":0,"room_id":0,"camera_id":0}`))
	require.NoError(t, err)
	require.Empty(t, h.Token)
}

func TestParseHandshake_Malformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not json":         `{not json`,
		"array":            `[1,2,3]`,
		"missing token":    `{"building_id":1,"room_id":2,"camera_id":3}`,
		"missing building": `{"token":"t","room_id":2,"camera_id":3}`,
		"missing camera":   `{"token":"t","building_id":1,"room_id":2}`,
		"string id":        `{"token":"t","building_id":"1","room_id":2,"camera_id":3}`,
		"fractional id":    `{"token":"t","building_id":1.5,"room_id":2,"camera_id":3}`,
		"negative id":      `{"token":"t","building_id":1,"room_id":-2,"camera_id":3}`,
		"null token":       `{"token":null,"building_id":1,"room_id":2,"camera_id":3}`,
		"empty":            ``,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseHandshake([]byte(raw))
			require.ErrorIs(t, err, ErrMalformedHandshake)
		})
	}
}

func TestHandshakeMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	in := Handshake{Token: "tok", Key: Key{BuildingID: 4, RoomID: 5, CameraID: 6}}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.JSONEq(t, `{"token":"tok","building_id":4,"room_id":5,"camera_id":6}`, string(data))

	out, err := ParseHandshake(data)
	require.NoError(t, err)
	require.Equal(t, in, out)
}
