package relay

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameStore_LastWriteWins(t *testing.T) {
	s := NewFrameStore()
	key := Key{BuildingID: 1, RoomID: 2, CameraID: 3}

	_, ok := s.Get(key)
	require.False(t, ok)

	s.Put(key, []byte("one"))
	s.Put(key, []byte("two"))

	f, ok := s.Get(key)
	require.True(t, ok)
	require.Equal(t, []byte("two"), f.Payload)
	require.Equal(t, key, f.Key)
	require.False(t, f.ReceivedAt.IsZero())
	require.Equal(t, 1, s.Len())
}

func TestFrameStore_CopiesPayload(t *testing.T) {
	s := NewFrameStore()
	key := Key{BuildingID: 1}

	buf := []byte("frame")
	s.Put(key, buf)
	buf[0] = 'X'

	f, _ := s.Get(key)
	require.Equal(t, []byte("frame"), f.Payload)
}

func TestFrameStore_KeyIsolation(t *testing.T) {
	s := NewFrameStore()
	a := Key{BuildingID: 1, RoomID: 1, CameraID: 1}
	b := Key{BuildingID: 1, RoomID: 1, CameraID: 2}
	c := Key{BuildingID: 2, RoomID: 1, CameraID: 1}

	s.Put(a, []byte("a"))
	s.Put(b, []byte("b"))

	fa, _ := s.Get(a)
	fb, _ := s.Get(b)
	require.Equal(t, []byte("a"), fa.Payload)
	require.Equal(t, []byte("b"), fb.Payload)

	_, ok := s.Get(c)
	require.False(t, ok)
}

func TestFrameStore_ConcurrentWritersNeverTear(t *testing.T) {
	s := NewFrameStore()
	key := Key{BuildingID: 9, RoomID: 9, CameraID: 9}

	const (
		writers = 8
		rounds  = 500
		size    = 4096
	)

	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)
		go func(fill byte) {
			defer wg.Done()
			payload := bytes.Repeat([]byte{fill}, size)
			for range rounds {
				s.Put(key, payload)
			}
		}(byte('a' + w))
	}

	done := make(chan struct{})
	var readErr error
	go func() {
		defer close(done)
		for range writers * rounds {
			f, ok := s.Get(key)
			if !ok {
				continue
			}
			if len(f.Payload) != size || bytes.Count(f.Payload, f.Payload[:1]) != size {
				readErr = errTorn
				return
			}
		}
	}()

	wg.Wait()
	<-done
	require.NoError(t, readErr)

	f, ok := s.Get(key)
	require.True(t, ok)
	require.Len(t, f.Payload, size)
}

var errTorn = errors.New("observed a partially written frame")
