package domain

import (
	"slices"
	"strconv"
	"time"
)

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // argon2 encoded
	BuildingIDs  []int64
	CreatedAt    time.Time
}

// Subject is the value carried in the "sub" claim of the user's tokens.
func (u User) Subject() string { return strconv.FormatInt(u.ID, 10) }

// IsMemberOf reports whether the user belongs to buildingID.
func (u User) IsMemberOf(buildingID int64) bool {
	return slices.Contains(u.BuildingIDs, buildingID)
}
