// Package relay forwards camera frames from producer WebSocket connections to
// consumer WebSocket connections through a shared latest-frame store.
//
// Both endpoints start with a JSON text handshake carrying an access token
// and the (building, room, camera) key. A rejected handshake is closed with
// status 1007 and a reason naming the failure.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/hearthhq/hearth/internal/home/domain"
	"github.com/hearthhq/hearth/internal/home/service"
	"github.com/hearthhq/hearth/pkg/slogx"
)

const (
	DefaultInterval         = 50 * time.Millisecond
	DefaultMaxFrameBytes    = 4 << 20
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultWriteTimeout     = 5 * time.Second

	maxHandshakeBytes = 4 << 10
)

// Close reasons sent to rejected peers.
const (
	ReasonMalformedHandshake = "malformed handshake"
	ReasonHandshakeTimeout   = "handshake timeout"
	ReasonMissingCredential  = "missing credential"
	ReasonInvalidCredential  = "invalid credential"
	ReasonExpiredCredential  = "expired credential"
	ReasonUnknownSubject     = "unknown subject"
	ReasonUnauthorized       = "unauthorized"
)

// Authenticator resolves an access token to a user with memberships.
type Authenticator interface {
	ValidateAccessToken(ctx context.Context, token string) (domain.User, error)
}

// Options tune a Relay. Zero values take the package defaults.
type Options struct {
	Interval         time.Duration
	MaxFrameBytes    int64
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	OriginPatterns   []string
	Metrics          Metrics
}

type Relay struct {
	frames *FrameStore
	auth   Authenticator
	opts   Options

	base     context.Context
	shutdown context.CancelFunc
}

func New(frames *FrameStore, auth Authenticator, opts Options) *Relay {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxFrameBytes <= 0 {
		opts.MaxFrameBytes = DefaultMaxFrameBytes
	}
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = DefaultWriteTimeout
	}
	if opts.Metrics == nil {
		opts.Metrics = nopMetrics{}
	}

	base, cancel := context.WithCancel(context.Background())
	return &Relay{
		frames:   frames,
		auth:     auth,
		opts:     opts,
		base:     base,
		shutdown: cancel,
	}
}

// Shutdown closes every open relay connection with status 1001.
// It is intended for http.Server.RegisterOnShutdown.
func (rl *Relay) Shutdown() { rl.shutdown() }

// Frames exposes the store shared by both endpoints.
func (rl *Relay) Frames() *FrameStore { return rl.frames }

// session guarantees a connection is closed exactly once.
type session struct {
	conn *websocket.Conn
	once sync.Once
}

func (s *session) close(code websocket.StatusCode, reason string) {
	s.once.Do(func() {
		_ = s.conn.Close(code, reason)
	})
}

type rejection struct {
	reason string
	err    error
}

func (r *rejection) Error() string { return r.reason + ": " + r.err.Error() }
func (r *rejection) Unwrap() error { return r.err }

// ServeProducer handles GET /send. After admission every binary message
// replaces the frame for the handshake key; any other message ends the
// stream.
func (rl *Relay) ServeProducer(w http.ResponseWriter, r *http.Request) {
	rl.serve(w, r, RoleProducer, rl.produce)
}

// ServeConsumer handles GET /receive. After admission the current frame for
// the handshake key is written every interval, starting once a first frame
// exists.
func (rl *Relay) ServeConsumer(w http.ResponseWriter, r *http.Request) {
	rl.serve(w, r, RoleConsumer, rl.consume)
}

type streamFunc func(ctx context.Context, s *session, key Key) error

func (rl *Relay) serve(w http.ResponseWriter, r *http.Request, role Role, stream streamFunc) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: rl.opts.OriginPatterns,
	})
	if err != nil {
		// Accept has already written an HTTP error response.
		slogx.FromContext(r.Context()).Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	ctx := slogx.With(r.Context(),
		slog.String("conn_id", uuid.NewString()),
		slog.String("role", string(role)),
	)
	log := slogx.FromContext(ctx)
	s := &session{conn: conn}

	rl.opts.Metrics.ConnOpened(role)
	defer rl.opts.Metrics.ConnClosed(role)

	defer func() {
		if p := recover(); p != nil {
			log.Error("relay connection panicked", slog.Any("panic", p))
			s.close(websocket.StatusInternalError, "internal error")
		}
		if rl.base.Err() != nil {
			s.close(websocket.StatusGoingAway, "server shutting down")
		}
		s.close(websocket.StatusNormalClosure, "")
	}()

	stop := context.AfterFunc(rl.base, func() {
		s.close(websocket.StatusGoingAway, "server shutting down")
	})
	defer stop()

	h, err := rl.admit(ctx, s, role)
	if err != nil {
		var rej *rejection
		if errors.As(err, &rej) {
			log.Info("relay handshake rejected",
				slog.String("reason", rej.reason),
				slog.Any("error", rej.err),
			)
			rl.opts.Metrics.Rejected(role, rej.reason)
			s.close(websocket.StatusInvalidFramePayloadData, rej.reason)
			return
		}
		log.Error("relay admission failed", slog.Any("error", err))
		s.close(websocket.StatusInternalError, "internal error")
		return
	}

	ctx = slogx.With(ctx,
		slog.Int64("building_id", h.BuildingID),
		slog.Int64("room_id", h.RoomID),
		slog.Int64("camera_id", h.CameraID),
	)
	log = slogx.FromContext(ctx)
	log.Info("relay connection admitted")

	if err := stream(ctx, s, h.Key); err != nil && rl.base.Err() == nil {
		log.Warn("relay connection ended", slog.Any("error", err))
		s.close(websocket.StatusInternalError, "internal error")
		return
	}
	log.Info("relay connection closed")
}

// admit reads the handshake, validates the token and checks membership of
// the requested building.
func (rl *Relay) admit(ctx context.Context, s *session, role Role) (Handshake, error) {
	conn := s.conn
	conn.SetReadLimit(maxHandshakeBytes)

	// An expired read context tears the connection down without a close
	// frame, so the deadline closes the session instead.
	deadline := time.AfterFunc(rl.opts.HandshakeTimeout, func() {
		s.close(websocket.StatusInvalidFramePayloadData, ReasonHandshakeTimeout)
	})
	typ, data, err := conn.Read(ctx)
	if !deadline.Stop() {
		return Handshake{}, &rejection{
			reason: ReasonHandshakeTimeout,
			err:    fmt.Errorf("no handshake within %s", rl.opts.HandshakeTimeout),
		}
	}
	if err != nil {
		return Handshake{}, &rejection{reason: ReasonMalformedHandshake, err: err}
	}
	if typ != websocket.MessageText {
		return Handshake{}, &rejection{
			reason: ReasonMalformedHandshake,
			err:    fmt.Errorf("%w: first message must be text", ErrMalformedHandshake),
		}
	}

	h, err := ParseHandshake(data)
	if err != nil {
		return Handshake{}, &rejection{reason: ReasonMalformedHandshake, err: err}
	}

	user, err := rl.auth.ValidateAccessToken(ctx, h.Token)
	if err != nil {
		reason, ok := credentialReason(err)
		if !ok {
			return Handshake{}, err
		}
		return Handshake{}, &rejection{reason: reason, err: err}
	}

	if err := service.Authorize(user, h.BuildingID); err != nil {
		return Handshake{}, &rejection{
			reason: ReasonUnauthorized,
			err:    fmt.Errorf("user %d is not a member of building %d: %w", user.ID, h.BuildingID, err),
		}
	}

	if role == RoleProducer {
		conn.SetReadLimit(rl.opts.MaxFrameBytes)
	}
	return h, nil
}

func credentialReason(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrMissingCredential):
		return ReasonMissingCredential, true
	case errors.Is(err, service.ErrExpiredCredential):
		return ReasonExpiredCredential, true
	case errors.Is(err, service.ErrInvalidCredential):
		return ReasonInvalidCredential, true
	case errors.Is(err, service.ErrUnknownSubject):
		return ReasonUnknownSubject, true
	default:
		return "", false
	}
}

func (rl *Relay) produce(ctx context.Context, s *session, key Key) error {
	for {
		typ, data, err := s.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 || rl.base.Err() != nil {
				return nil
			}
			return fmt.Errorf("read frame: %w", err)
		}
		if typ != websocket.MessageBinary {
			return nil
		}

		rl.frames.Put(key, data)
		rl.opts.Metrics.FrameReceived()
	}
}

func (rl *Relay) consume(ctx context.Context, s *session, key Key) error {
	// The consumer never sends after the handshake; readCtx ends when the
	// peer closes.
	readCtx := s.conn.CloseRead(ctx)

	ticker := time.NewTicker(rl.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-readCtx.Done():
			return nil
		case <-rl.base.Done():
			return nil
		case <-ticker.C:
		}

		f, ok := rl.frames.Get(key)
		if !ok {
			continue
		}

		wctx, cancel := context.WithTimeout(ctx, rl.opts.WriteTimeout)
		err := s.conn.Write(wctx, websocket.MessageBinary, f.Payload)
		cancel()
		if err != nil {
			if readCtx.Err() != nil || rl.base.Err() != nil {
				return nil
			}
			return fmt.Errorf("write frame: %w", err)
		}
		rl.opts.Metrics.FrameRelayed(time.Since(f.ReceivedAt))
	}
}
