package homesdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

// StreamKey names one camera.
type StreamKey struct {
	BuildingID int64 `json:"building_id"`
	RoomID     int64 `json:"room_id"`
	CameraID   int64 `json:"camera_id"`
}

type handshake struct {
	Token string `json:"token"`
	StreamKey
}

// RejectedError is returned when the server refuses a relay handshake.
// Reason names the failure, for example "unauthorized" or
// "expired credential".
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string { return "relay rejected: " + e.Reason }

// maxFrameBytes bounds frames read by a Consumer.
const maxFrameBytes = 16 << 20

// relayConn opens path and sends the handshake.
func (s *Session) relayConn(ctx context.Context, path string, key StreamKey) (*websocket.Conn, error) {
	tok, err := s.token(ctx)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.Dial(ctx, s.client.url(path), &websocket.DialOptions{
		HTTPClient: s.client.relayHTTPClient(),
	})
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", path, err)
	}

	msg, err := json.Marshal(handshake{Token: tok, StreamKey: key})
	if err != nil {
		_ = conn.CloseNow()
		return nil, err
	}
	if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
		_ = conn.CloseNow()
		return nil, fmt.Errorf("send handshake: %w", err)
	}
	return conn, nil
}

// relayHTTPClient drops the request timeout, which would otherwise cut off
// long-lived relay connections.
func (c *Client) relayHTTPClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	hc := *c.HTTPClient
	hc.Timeout = 0
	return &hc
}

// relayErr turns a close frame into a RejectedError where appropriate.
func relayErr(err error) error {
	var ce websocket.CloseError
	if errors.As(err, &ce) && ce.Code == websocket.StatusInvalidFramePayloadData {
		return &RejectedError{Reason: ce.Reason}
	}
	return err
}

// Producer streams frames for one camera.
type Producer struct {
	conn *websocket.Conn
}

// Producer connects to /send for key.
func (s *Session) Producer(ctx context.Context, key StreamKey) (*Producer, error) {
	conn, err := s.relayConn(ctx, "/send", key)
	if err != nil {
		return nil, err
	}
	return &Producer{conn: conn}, nil
}

// Send publishes frame as the camera's latest image. A rejected handshake
// surfaces here or on Close as a *RejectedError.
func (p *Producer) Send(ctx context.Context, frame []byte) error {
	if err := p.conn.Write(ctx, websocket.MessageBinary, frame); err != nil {
		return relayErr(err)
	}
	return nil
}

// Close ends the stream normally.
func (p *Producer) Close() error {
	return relayErr(p.conn.Close(websocket.StatusNormalClosure, ""))
}

// Consumer receives the latest frame for one camera at the server's cadence.
type Consumer struct {
	conn *websocket.Conn
}

// Consumer connects to /receive for key.
func (s *Session) Consumer(ctx context.Context, key StreamKey) (*Consumer, error) {
	conn, err := s.relayConn(ctx, "/receive", key)
	if err != nil {
		return nil, err
	}
	conn.SetReadLimit(maxFrameBytes)
	return &Consumer{conn: conn}, nil
}

// Next blocks for the next frame. Cancelling ctx closes the connection.
func (c *Consumer) Next(ctx context.Context) ([]byte, error) {
	for {
		typ, data, err := c.conn.Read(ctx)
		if err != nil {
			return nil, relayErr(err)
		}
		if typ == websocket.MessageBinary {
			return data, nil
		}
	}
}

func (c *Consumer) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}

// ConsumeWithRetry calls fn for every frame of key, reconnecting after
// Client.RetryDelay whenever the connection drops or is refused. It only
// returns when ctx ends or fn returns an error.
func (s *Session) ConsumeWithRetry(ctx context.Context, key StreamKey, fn func(frame []byte) error) error {
	delay := s.client.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}

	for {
		err := s.consumeOnce(ctx, key, fn)
		var fnErr *callbackError
		if errors.As(err, &fnErr) {
			return fnErr.err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

type callbackError struct{ err error }

func (e *callbackError) Error() string { return e.err.Error() }

func (s *Session) consumeOnce(ctx context.Context, key StreamKey, fn func([]byte) error) error {
	c, err := s.Consumer(ctx, key)
	if err != nil {
		return err
	}
	defer c.conn.CloseNow()

	for {
		frame, err := c.Next(ctx)
		if err != nil {
			return err
		}
		if err := fn(frame); err != nil {
			_ = c.Close()
			return &callbackError{err: err}
		}
	}
}
