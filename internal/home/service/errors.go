package service

import "errors"

// Admission failures, shared by the HTTP middleware and the frame relay.
var (
	ErrMissingCredential = errors.New("missing_credential")
	ErrInvalidCredential = errors.New("invalid_credential")
	ErrExpiredCredential = errors.New("expired_credential")
	ErrUnknownSubject    = errors.New("unknown_subject")
	ErrUnauthorized      = errors.New("unauthorized")
)

var (
	ErrInvitationRejected      = errors.New("invitation_rejected")
	ErrInvitationEmailMismatch = errors.New("invitation_email_mismatch")
	ErrAccountRequired         = errors.New("account_required")
	ErrBuildingNotFound        = errors.New("building_not_found")
	ErrRoomNotFound            = errors.New("room_not_found")
	ErrDeviceNotFound          = errors.New("device_not_found")
	ErrNoReadings              = errors.New("no_readings")

	ErrInvalidInput = errors.New("invalid_input")
	ErrEmailTaken   = errors.New("email_taken")
	ErrInvalidLogin = errors.New("invalid_login")
)
