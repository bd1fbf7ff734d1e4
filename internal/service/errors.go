package service

import "errors"

// Validation failures, rejected before any lock is taken.
var (
	ErrInvalidReason = errors.New("invalid rejection reason")
	ErrInvalidRating = errors.New("rating out of range")
	ErrInvalidID     = errors.New("invalid id")
)

// Expected absences and conflicts. These are outcomes, not crashes; handlers
// map them to 4xx responses with distinct codes.
var (
	ErrRequestNotFound      = errors.New("request not found")
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrRatingNotFound       = errors.New("rating not found")
	ErrSettlementNotFound   = errors.New("settlement not found")
	ErrAlreadyRated         = errors.New("already rated")
	ErrMeetingNotEnded      = errors.New("meeting has not ended yet")
	ErrNotParticipant       = errors.New("not a participant of this consultation")
	ErrOutsideMeetingWindow = errors.New("outside the permitted meeting window")
)

// Internal configuration errors. Fatal to the request, never user-facing.
var (
	ErrInvalidFeeRate  = errors.New("platform fee rate is not a valid decimal")
	ErrRoomTokenConfig = errors.New("room token lifetime misconfigured")
)
