package homesdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/require"
)

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/login":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorCodeInvalidLogin, ErrorDescription: "bad"})
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL + "/")
	_, err := c.Login(context.Background(), "a@example.com", "pw")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrorCodeInvalidLogin, apiErr.Code)
	require.True(t, IsStatus(err, http.StatusUnauthorized))

	_, err = c.GetLiveness(context.Background())
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestSessionRenewsNearExpiry(t *testing.T) {
	t.Parallel()

	var refreshes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/refresh":
			if r.Header.Get("Authorization") != "Bearer old" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			refreshes.Add(1)
			_ = json.NewEncoder(w).Encode(TokenResponse{AccessToken: "new", TokenType: "Bearer", ExpiresIn: 900, UserID: 7})
		case "/users/me":
			if r.Header.Get("Authorization") != "Bearer new" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(UserResponse{ID: 7, Name: "Ada"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	s := c.NewSession("old", 10) // inside the renewal window

	me, err := s.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(7), me.ID)
	require.Equal(t, "new", s.AccessToken())
	require.Equal(t, int32(1), refreshes.Load())

	_, err = s.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), refreshes.Load())
}

func TestSessionExpired(t *testing.T) {
	t.Parallel()

	s := NewClient("http://127.0.0.1:0").NewSession("tok", 1)
	s.expiresAt = time.Now().Add(-time.Second)

	_, err := s.Me(context.Background())
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestConsumeWithRetry(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/receive" {
			http.NotFound(w, r)
			return
		}
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		ctx := r.Context()

		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var hs handshake
		if err := json.Unmarshal(data, &hs); err != nil || hs.Token != "tok" || hs.CameraID != 3 {
			_ = conn.Close(websocket.StatusInvalidFramePayloadData, "malformed handshake")
			return
		}

		// Refuse the first attempt to force a reconnect.
		if attempts.Add(1) == 1 {
			_ = conn.Close(websocket.StatusInvalidFramePayloadData, "unauthorized")
			return
		}
		_ = conn.Write(ctx, websocket.MessageBinary, []byte("frame"))
		_ = conn.Write(ctx, websocket.MessageBinary, []byte("frame"))
		<-conn.CloseRead(ctx).Done()
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	c.RetryDelay = 10 * time.Millisecond
	s := c.NewSession("tok", 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var frames int
	err := s.ConsumeWithRetry(ctx, StreamKey{BuildingID: 1, RoomID: 2, CameraID: 3}, func(frame []byte) error {
		require.Equal(t, []byte("frame"), frame)
		frames++
		if frames == 2 {
			return errStop
		}
		return nil
	})
	require.ErrorIs(t, err, errStop)
	require.Equal(t, int32(2), attempts.Load())
}

func TestRejectedError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		_, _, _ = conn.Read(r.Context())
		_ = conn.Close(websocket.StatusInvalidFramePayloadData, "expired credential")
	}))
	t.Cleanup(srv.Close)

	s := NewClient(srv.URL).NewSession("tok", 0)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := s.Consumer(ctx, StreamKey{BuildingID: 1})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Next(ctx)
	var rej *RejectedError
	require.ErrorAs(t, err, &rej)
	require.Equal(t, "expired credential", rej.Reason)
}

var errStop = errors.New("stop")
