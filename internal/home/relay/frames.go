package relay

import (
	"bytes"
	"sync"
	"time"
)

// Key identifies one camera stream.
type Key struct {
	BuildingID int64
	RoomID     int64
	CameraID   int64
}

// Frame is the latest payload received for a key. Frames are never mutated
// after being stored.
type Frame struct {
	Key
	Payload    []byte
	ReceivedAt time.Time
}

// FrameStore keeps the most recent frame per key. Writers replace the whole
// entry in one step so readers never observe a partially written payload.
type FrameStore struct {
	m   sync.Map // Key -> *Frame
	now func() time.Time
}

func NewFrameStore() *FrameStore {
	return &FrameStore{now: time.Now}
}

// Put stores a copy of payload as the current frame for key.
func (s *FrameStore) Put(key Key, payload []byte) {
	s.m.Store(key, &Frame{
		Key:        key,
		Payload:    bytes.Clone(payload),
		ReceivedAt: s.now(),
	})
}

// Get returns the current frame for key. Callers must not modify the
// returned payload.
func (s *FrameStore) Get(key Key) (*Frame, bool) {
	v, ok := s.m.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*Frame), true
}

// Len counts the keys that have received at least one frame.
func (s *FrameStore) Len() int {
	n := 0
	s.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
