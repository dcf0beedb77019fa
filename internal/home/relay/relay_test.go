package relay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/require"

	"github.com/hearthhq/hearth/internal/home/domain"
	"github.com/hearthhq/hearth/internal/home/relay"
	"github.com/hearthhq/hearth/internal/home/service"
	"github.com/hearthhq/hearth/internal/home/store/drivers/sqlite"
	"github.com/hearthhq/hearth/pkg/cryptox"
	"github.com/hearthhq/hearth/pkg/jwtx"
)

type recordingMetrics struct {
	mu       sync.Mutex
	rejected []string
	relayed  int
	received int
	ages     []time.Duration
}

func (m *recordingMetrics) ConnOpened(relay.Role) {}
func (m *recordingMetrics) ConnClosed(relay.Role) {}
func (m *recordingMetrics) FrameReceived() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.received++
}
func (m *recordingMetrics) FrameRelayed(age time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.relayed++
	m.ages = append(m.ages, age)
}
func (m *recordingMetrics) Rejected(_ relay.Role, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, reason)
}

type harness struct {
	url      string
	relay    *relay.Relay
	tokens   *service.TokenService
	metrics  *recordingMetrics
	member   domain.User
	outsider domain.User
	building domain.Building
}

func newHarness(t *testing.T, configure ...func(*relay.Options)) *harness {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	km, err := jwtx.NewHMACKeyManager(jwtx.KeyManagerOptions{
		Secret:   []byte("relay-test-secret-relay-test-secret"),
		Issuer:   "hearth",
		Audience: []string{"hearth-clients"},
	})
	require.NoError(t, err)

	tokens := &service.TokenService{
		KeyManager: km,
		Store:      st,
		Issuer:     "hearth",
		Audience:   []string{"hearth-clients"},
	}
	users := &service.UserService{Store: st, Tokens: tokens, Hasher: cryptox.NewPasswordHasher("")}
	buildings := &service.BuildingService{Store: st, Tokens: tokens}

	member, err := users.Register(ctx, service.RegisterParams{Name: "Ada", Email: "ada@example.com", Password: "password1"})
	require.NoError(t, err)
	outsider, err := users.Register(ctx, service.RegisterParams{Name: "Eve", Email: "eve@example.com", Password: "password1"})
	require.NoError(t, err)
	b, err := buildings.Create(ctx, member.ID, "Home", "")
	require.NoError(t, err)
	member.BuildingIDs = []int64{b.ID}

	m := &recordingMetrics{}
	opts := relay.Options{
		Interval:         10 * time.Millisecond,
		HandshakeTimeout: time.Second,
		Metrics:          m,
	}
	for _, fn := range configure {
		fn(&opts)
	}
	rl := relay.New(relay.NewFrameStore(), tokens, opts)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /send", rl.ServeProducer)
	mux.HandleFunc("GET /receive", rl.ServeConsumer)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Cleanup(rl.Shutdown)

	return &harness{
		url:      srv.URL,
		relay:    rl,
		tokens:   tokens,
		metrics:  m,
		member:   member,
		outsider: outsider,
		building: b,
	}
}

func (h *harness) token(t *testing.T, u domain.User) string {
	t.Helper()
	tok, err := h.tokens.IssueAccessToken(u)
	require.NoError(t, err)
	return tok.Token
}

func (h *harness) dial(t *testing.T, path string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, h.url+path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.CloseNow() })
	return conn
}

func handshake(t *testing.T, conn *websocket.Conn, hs relay.Handshake) {
	t.Helper()
	data, err := json.Marshal(hs)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, conn.Write(ctx, websocket.MessageText, data))
}

func requireClosed(t *testing.T, conn *websocket.Conn, code websocket.StatusCode, reason string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, _, err := conn.Read(ctx)
	var ce websocket.CloseError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, code, ce.Code)
	require.Equal(t, reason, ce.Reason)
}

func readFrame(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	typ, data, err := conn.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, websocket.MessageBinary, typ)
	return data
}

func TestRelay_FrameReachesConsumer(t *testing.T) {
	h := newHarness(t)
	tok := h.token(t, h.member)
	key := relay.Key{BuildingID: h.building.ID, RoomID: 1, CameraID: 1}

	consumer := h.dial(t, "/receive")
	handshake(t, consumer, relay.Handshake{Token: tok, Key: key})

	// Nothing exists yet; the first message must be the real frame.
	time.Sleep(50 * time.Millisecond)

	producer := h.dial(t, "/send")
	handshake(t, producer, relay.Handshake{Token: tok, Key: key})

	ctx := context.Background()
	require.NoError(t, producer.Write(ctx, websocket.MessageBinary, []byte("frame-1")))
	require.Equal(t, []byte("frame-1"), readFrame(t, consumer))

	// The current frame is repeated every tick.
	require.Equal(t, []byte("frame-1"), readFrame(t, consumer))

	require.NoError(t, producer.Write(ctx, websocket.MessageBinary, []byte("frame-2")))
	deadline := time.Now().Add(2 * time.Second)
	for string(readFrame(t, consumer)) != "frame-2" {
		require.True(t, time.Now().Before(deadline), "consumer never saw the replacement frame")
	}

	require.NoError(t, consumer.Close(websocket.StatusNormalClosure, ""))

	h.metrics.mu.Lock()
	defer h.metrics.mu.Unlock()
	require.NotEmpty(t, h.metrics.ages)
	require.Equal(t, h.metrics.relayed, len(h.metrics.ages))
	for _, age := range h.metrics.ages {
		require.GreaterOrEqual(t, age, time.Duration(0))
	}
}

func TestRelay_KeysAreIsolated(t *testing.T) {
	h := newHarness(t)
	tok := h.token(t, h.member)
	camA := relay.Key{BuildingID: h.building.ID, RoomID: 1, CameraID: 1}
	camB := relay.Key{BuildingID: h.building.ID, RoomID: 1, CameraID: 2}

	producer := h.dial(t, "/send")
	handshake(t, producer, relay.Handshake{Token: tok, Key: camA})
	require.NoError(t, producer.Write(context.Background(), websocket.MessageBinary, []byte("a")))

	require.Eventually(t, func() bool {
		_, ok := h.relay.Frames().Get(camA)
		return ok
	}, 2*time.Second, 5*time.Millisecond)

	_, ok := h.relay.Frames().Get(camB)
	require.False(t, ok)
}

func TestRelay_MalformedHandshake(t *testing.T) {
	h := newHarness(t)

	t.Run("invalid json", func(t *testing.T) {
		conn := h.dial(t, "/receive")
		ctx := context.Background()
		require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(`{"token":`)))
		requireClosed(t, conn, websocket.StatusInvalidFramePayloadData, relay.ReasonMalformedHandshake)
	})

	t.Run("missing field", func(t *testing.T) {
		conn := h.dial(t, "/send")
		ctx := context.Background()
		require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(`{"token":"x","building_id":1}`)))
		requireClosed(t, conn, websocket.StatusInvalidFramePayloadData, relay.ReasonMalformedHandshake)
	})

	t.Run("binary first message", func(t *testing.T) {
		conn := h.dial(t, "/send")
		ctx := context.Background()
		require.NoError(t, conn.Write(ctx, websocket.MessageBinary, []byte{0xff, 0xd8}))
		requireClosed(t, conn, websocket.StatusInvalidFramePayloadData, relay.ReasonMalformedHandshake)
	})
}

func TestRelay_AdmissionFailures(t *testing.T) {
	h := newHarness(t)
	key := relay.Key{BuildingID: h.building.ID, RoomID: 1, CameraID: 1}

	expiredTokens := *h.tokens
	expiredTokens.Now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := expiredTokens.IssueAccessToken(h.member)
	require.NoError(t, err)

	ghost, err := h.tokens.IssueAccessToken(domain.User{ID: 424242})
	require.NoError(t, err)

	cases := []struct {
		name   string
		path   string
		token  string
		reason string
	}{
		{"non-member consumer", "/receive", h.token(t, h.outsider), relay.ReasonUnauthorized},
		{"non-member producer", "/send", h.token(t, h.outsider), relay.ReasonUnauthorized},
		{"expired token", "/receive", expired.Token, relay.ReasonExpiredCredential},
		{"empty token", "/send", "", relay.ReasonMissingCredential},
		{"garbage token", "/receive", "a.b.c", relay.ReasonInvalidCredential},
		{"unknown subject", "/receive", ghost.Token, relay.ReasonUnknownSubject},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conn := h.dial(t, tc.path)
			handshake(t, conn, relay.Handshake{Token: tc.token, Key: key})
			requireClosed(t, conn, websocket.StatusInvalidFramePayloadData, tc.reason)
		})
	}

	_, ok := h.relay.Frames().Get(key)
	require.False(t, ok, "rejected producers never store a frame")
	require.Zero(t, h.relay.Frames().Len())

	h.metrics.mu.Lock()
	defer h.metrics.mu.Unlock()
	require.Len(t, h.metrics.rejected, len(cases))
}

func TestRelay_HandshakeTimeout(t *testing.T) {
	h := newHarness(t, func(o *relay.Options) { o.HandshakeTimeout = 100 * time.Millisecond })

	for _, path := range []string{"/receive", "/send"} {
		conn := h.dial(t, path)
		requireClosed(t, conn, websocket.StatusInvalidFramePayloadData, relay.ReasonHandshakeTimeout)
	}

	require.Eventually(t, func() bool {
		h.metrics.mu.Lock()
		defer h.metrics.mu.Unlock()
		return len(h.metrics.rejected) == 2
	}, 2*time.Second, 5*time.Millisecond)

	h.metrics.mu.Lock()
	defer h.metrics.mu.Unlock()
	require.Equal(t, []string{relay.ReasonHandshakeTimeout, relay.ReasonHandshakeTimeout}, h.metrics.rejected)
}

func TestRelay_ProducerTextMessageEndsStream(t *testing.T) {
	h := newHarness(t)
	key := relay.Key{BuildingID: h.building.ID, RoomID: 1, CameraID: 1}

	producer := h.dial(t, "/send")
	handshake(t, producer, relay.Handshake{Token: h.token(t, h.member), Key: key})

	ctx := context.Background()
	require.NoError(t, producer.Write(ctx, websocket.MessageBinary, []byte("frame")))
	require.NoError(t, producer.Write(ctx, websocket.MessageText, []byte("bye")))
	requireClosed(t, producer, websocket.StatusNormalClosure, "")

	f, ok := h.relay.Frames().Get(key)
	require.True(t, ok)
	require.Equal(t, []byte("frame"), f.Payload)
}

func TestRelay_FailureIsolated(t *testing.T) {
	h := newHarness(t)
	tok := h.token(t, h.member)
	key := relay.Key{BuildingID: h.building.ID, RoomID: 3, CameraID: 3}

	consumer := h.dial(t, "/receive")
	handshake(t, consumer, relay.Handshake{Token: tok, Key: key})

	// A second connection failing its handshake leaves the first untouched.
	bad := h.dial(t, "/receive")
	require.NoError(t, bad.Write(context.Background(), websocket.MessageText, []byte("nope")))
	requireClosed(t, bad, websocket.StatusInvalidFramePayloadData, relay.ReasonMalformedHandshake)

	h.relay.Frames().Put(key, []byte("still here"))
	require.Equal(t, []byte("still here"), readFrame(t, consumer))
}

func TestRelay_ShutdownClosesConnections(t *testing.T) {
	h := newHarness(t)
	key := relay.Key{BuildingID: h.building.ID, RoomID: 1, CameraID: 1}

	consumer := h.dial(t, "/receive")
	handshake(t, consumer, relay.Handshake{Token: h.token(t, h.member), Key: key})

	// Wait until the consumer has been admitted and is relaying.
	h.relay.Frames().Put(key, []byte("x"))
	readFrame(t, consumer)

	h.relay.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		_, _, err := consumer.Read(ctx)
		if err != nil {
			require.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))
			return
		}
	}
}
