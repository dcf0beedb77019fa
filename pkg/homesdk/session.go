package homesdk

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// renewBefore is how long before expiry a session renews its token.
const renewBefore = 30 * time.Second

// Session is an authenticated client. Its methods renew the access token
// through /users/refresh once it is close to expiring.
type Session struct {
	client *Client

	mu          sync.RWMutex
	accessToken string
	userID      int64
	expiresAt   time.Time
}

func newSession(c *Client, tok *TokenResponse) *Session {
	return &Session{
		client:      c,
		accessToken: tok.AccessToken,
		userID:      tok.UserID,
		expiresAt:   time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
	}
}

// NewSession wraps an existing access token. A zero expiresIn disables
// renewal.
func (c *Client) NewSession(accessToken string, expiresIn int) *Session {
	s := &Session{client: c, accessToken: accessToken}
	if expiresIn > 0 {
		s.expiresAt = time.Now().Add(time.Duration(expiresIn) * time.Second)
	}
	return s
}

// AccessToken returns the current token without renewing it.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// UserID is the account the session was opened for, when known.
func (s *Session) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// token returns a usable access token, renewing it when it is about to
// expire.
func (s *Session) token(ctx context.Context) (string, error) {
	s.mu.RLock()
	tok, exp := s.accessToken, s.expiresAt
	s.mu.RUnlock()

	if exp.IsZero() || time.Until(exp) > renewBefore {
		return tok, nil
	}
	if !time.Now().Before(exp) {
		return "", ErrSessionExpired
	}

	if _, err := s.Refresh(ctx); err != nil {
		return "", fmt.Errorf("renew access token: %w", err)
	}
	return s.AccessToken(), nil
}

// Refresh exchanges the current, still valid, token for a new one.
func (s *Session) Refresh(ctx context.Context) (*TokenResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.client.doRequest(ctx, http.MethodGet, "/users/refresh", s.accessToken, nil)
	if err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := decodeJSON(resp, &tok, http.StatusOK); err != nil {
		return nil, err
	}

	s.accessToken = tok.AccessToken
	s.userID = tok.UserID
	s.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return &tok, nil
}

func (s *Session) do(ctx context.Context, method, path string, body, target any, expectedStatus int) error {
	tok, err := s.token(ctx)
	if err != nil {
		return err
	}

	resp, err := s.client.doRequest(ctx, method, path, tok, body)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expectedStatus)
}

// Me returns the session's account and memberships.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	var out UserResponse
	if err := s.do(ctx, http.MethodGet, "/users/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBuilding creates a building with the session's user as its first
// member.
func (s *Session) CreateBuilding(ctx context.Context, name, address string) (*BuildingResponse, error) {
	var out BuildingResponse
	req := CreateBuildingRequest{Name: name, Address: address}
	if err := s.do(ctx, http.MethodPost, "/buildings", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBuildings returns the buildings the session's user belongs to.
func (s *Session) ListBuildings(ctx context.Context) ([]BuildingResponse, error) {
	var out BuildingListResponse
	if err := s.do(ctx, http.MethodGet, "/buildings", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Buildings, nil
}

// Invite issues an invitation for email into buildingID.
func (s *Session) Invite(ctx context.Context, buildingID int64, email string) (*InvitationResponse, error) {
	var out InvitationResponse
	path := "/buildings/" + strconv.FormatInt(buildingID, 10) + "/invitations"
	if err := s.do(ctx, http.MethodPost, path, InviteRequest{Email: email}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func roomsPath(buildingID int64) string {
	return "/buildings/" + strconv.FormatInt(buildingID, 10) + "/rooms"
}

func devicesPath(buildingID, roomID int64) string {
	return roomsPath(buildingID) + "/" + strconv.FormatInt(roomID, 10) + "/devices"
}

func readingsPath(buildingID, roomID, deviceID int64) string {
	return devicesPath(buildingID, roomID) + "/" + strconv.FormatInt(deviceID, 10) + "/readings"
}

func (s *Session) CreateRoom(ctx context.Context, buildingID int64, name string) (*RoomResponse, error) {
	var out RoomResponse
	if err := s.do(ctx, http.MethodPost, roomsPath(buildingID), CreateRoomRequest{Name: name}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListRooms(ctx context.Context, buildingID int64) ([]RoomResponse, error) {
	var out RoomListResponse
	if err := s.do(ctx, http.MethodGet, roomsPath(buildingID), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Rooms, nil
}

func (s *Session) CreateDevice(ctx context.Context, buildingID, roomID int64, name, typ string) (*DeviceResponse, error) {
	var out DeviceResponse
	req := CreateDeviceRequest{Name: name, Type: typ}
	if err := s.do(ctx, http.MethodPost, devicesPath(buildingID, roomID), req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListDevices(ctx context.Context, buildingID, roomID int64) ([]DeviceResponse, error) {
	var out DeviceListResponse
	if err := s.do(ctx, http.MethodGet, devicesPath(buildingID, roomID), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Devices, nil
}

// RecordReading stores data as the device's newest reading.
func (s *Session) RecordReading(ctx context.Context, buildingID, roomID, deviceID int64, data string) (*ReadingResponse, error) {
	var out ReadingResponse
	path := readingsPath(buildingID, roomID, deviceID)
	if err := s.do(ctx, http.MethodPost, path, RecordReadingRequest{Data: data}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// LatestReading returns a 404 APIError when the device has reported nothing.
func (s *Session) LatestReading(ctx context.Context, buildingID, roomID, deviceID int64) (*ReadingResponse, error) {
	var out ReadingResponse
	path := readingsPath(buildingID, roomID, deviceID) + "/latest"
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
