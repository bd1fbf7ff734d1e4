package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"consulto/config"
	"consulto/internal/auth"
	"consulto/internal/domain"
	"consulto/internal/repository"

	"gorm.io/gorm"
)

// RoomService issues time-windowed, room- and member-scoped tokens gating the
// realtime consultation room.
type RoomService struct {
	jwt           *config.JWTConfig
	consultations repository.ConsultationStore
}

func NewRoomService(jwt *config.JWTConfig, consultations repository.ConsultationStore) *RoomService {
	return &RoomService{jwt: jwt, consultations: consultations}
}

// AccessPermitted reports whether the meeting room may be entered at now.
// Both boundaries are inclusive: entry opens exactly at meeting start minus
// leeway and closes exactly at meeting end.
func AccessPermitted(now, meetingAt time.Time) bool {
	opens := meetingAt.Add(-domain.RoomLeewayInMinutes * time.Minute)
	closes := meetingAt.Add(domain.MeetingLengthInMinutes * time.Minute)
	return !now.Before(opens) && !now.After(closes)
}

// IssueToken validates the caller is a participant inside the permitted
// window and mints the room capability token. The token outlives the window
// by a fixed margin; a non-positive lifetime or one beyond the external
// service ceiling is a configuration fault, not a user error.
func (s *RoomService) IssueToken(ctx context.Context, consultationID, memberID uint, role string, now time.Time) (string, error) {
	c, err := s.consultations.GetByID(ctx, consultationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrConsultationNotFound
		}
		return "", err
	}
	if memberID != c.UserAccountID && memberID != c.ConsultantID {
		return "", ErrNotParticipant
	}
	if !AccessPermitted(now, c.MeetingAt) {
		return "", ErrOutsideMeetingWindow
	}
	issuedAt := now
	expiresAt := c.MeetingAt.
		Add(domain.MeetingLengthInMinutes * time.Minute).
		Add(domain.RoomTokenMarginInMinutes * time.Minute)
	if !expiresAt.After(issuedAt) {
		return "", fmt.Errorf("%w: issued_at %v >= expires_at %v", ErrRoomTokenConfig, issuedAt, expiresAt)
	}
	if expiresAt.Sub(issuedAt) > domain.RoomTokenMaxLifetime {
		return "", fmt.Errorf("%w: lifetime %v exceeds ceiling", ErrRoomTokenConfig, expiresAt.Sub(issuedAt))
	}
	return auth.GenerateRoomToken(s.jwt, c.RoomName, memberID, role, issuedAt, expiresAt)
}

// MarkEntered stamps the participant's entered-at timestamp the first time
// they join the room. Later joins leave the original timestamp untouched.
func (s *RoomService) MarkEntered(ctx context.Context, claims *auth.RoomClaims, now time.Time) error {
	c, err := s.consultations.GetByRoomName(ctx, claims.RoomName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConsultationNotFound
		}
		return err
	}
	switch claims.MemberID {
	case c.UserAccountID:
		return s.consultations.SetUserEnteredAt(ctx, c.ID, now)
	case c.ConsultantID:
		return s.consultations.SetConsultantEnteredAt(ctx, c.ID, now)
	default:
		return ErrNotParticipant
	}
}
