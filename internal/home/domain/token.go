package domain

import "time"

// AccessToken is a signed bearer credential for a user.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// Invitation grants whoever owns Email membership of BuildingID.
type Invitation struct {
	Token      string
	Email      string
	BuildingID int64
	ExpiresAt  time.Time
}
