package homesdk

import (
	"time"

	"github.com/hearthhq/hearth/pkg/httpx"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse = httpx.ErrorBody

// ============================================================================
// Accounts
// ============================================================================

// RegisterRequest creates an account. InvitationToken optionally joins the
// new account to the building it was issued for.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	InvitationToken string `json:"invitation_token,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime of AccessToken in seconds
	ExpiresIn int   `json:"expires_in"`
	UserID    int64 `json:"user_id"`
}

// UserResponse describes an account and the buildings it belongs to.
type UserResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	BuildingIDs []int64 `json:"building_ids"`
}

// ============================================================================
// Buildings
// ============================================================================

type CreateBuildingRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

type BuildingResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type BuildingListResponse struct {
	Buildings []BuildingResponse `json:"buildings"`
}

// ============================================================================
// Rooms and devices
// ============================================================================

type CreateRoomRequest struct {
	Name string `json:"name"`
}

type RoomResponse struct {
	ID         int64     `json:"id"`
	BuildingID int64     `json:"building_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

type CreateDeviceRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type DeviceResponse struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

type DeviceListResponse struct {
	Devices []DeviceResponse `json:"devices"`
}

// RecordReadingRequest carries an opaque device payload, usually JSON
// encoded by the device itself.
type RecordReadingRequest struct {
	Data string `json:"data"`
}

type ReadingResponse struct {
	ID         int64     `json:"id"`
	DeviceID   int64     `json:"device_id"`
	Data       string    `json:"data"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ReadingListResponse lists readings newest first.
type ReadingListResponse struct {
	Readings []ReadingResponse `json:"readings"`
}

// ============================================================================
// Invitations
// ============================================================================

type InviteRequest struct {
	Email string `json:"email"`
}

type InvitationResponse struct {
	InvitationToken string    `json:"invitation_token"`
	Email           string    `json:"email"`
	BuildingID      int64     `json:"building_id"`
	ExpiresAt       time.Time `json:"expires_at"`
}

type AcceptInvitationRequest struct {
	InvitationToken string `json:"invitation_token"`
}

type AcceptInvitationResponse struct {
	UserID     int64 `json:"user_id"`
	BuildingID int64 `json:"building_id"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz. Checks is only set by
// /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
