package service

import (
	"context"
	"errors"
	"time"

	"consulto/config"
	"consulto/internal/models"
	"consulto/internal/repository"
	"consulto/pkg/id"

	"gorm.io/gorm"
)

var (
	ErrConsultantNotFound    = errors.New("consultant not found")
	ErrConsultantUnavailable = errors.New("consultant unavailable")
	ErrMeetingInPast         = errors.New("meeting time already passed")
)

// ConsultationService books meetings. Booking creates the consultation, its
// awaiting-payment settlement row and the two empty rating rows in one
// transaction, so settlement and rating always find their rows later. The
// hourly fee and the platform fee rate are both snapshotted here; only the
// transfer fee is read from configuration at settlement time.
type ConsultationService struct {
	tx  repository.TxManager
	fee config.FeeConfig
}

func NewConsultationService(tx repository.TxManager, fee config.FeeConfig) *ConsultationService {
	return &ConsultationService{tx: tx, fee: fee}
}

func (s *ConsultationService) Book(ctx context.Context, userID, consultantID uint, meetingAt, now time.Time) (*models.Consultation, error) {
	if !meetingAt.After(now) {
		return nil, ErrMeetingInPast
	}
	var consultation *models.Consultation
	err := s.tx.WithinTx(ctx, func(r repository.Repos) error {
		consultant, err := r.Users.GetByID(ctx, consultantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrConsultantNotFound
			}
			return err
		}
		if !consultant.IsConsultant() || consultant.IsDisabled() {
			return ErrConsultantUnavailable
		}
		c := &models.Consultation{
			UserAccountID:               userID,
			ConsultantID:                consultantID,
			MeetingAt:                   meetingAt,
			RoomName:                    id.New32(),
			FeePerHourInYen:             consultant.FeePerHourInYen,
			PlatformFeeRateInPercentage: s.fee.PlatformFeeRateInPercentage,
		}
		if err := r.Consultations.Create(ctx, c); err != nil {
			return err
		}
		awaiting := &models.AwaitingPayment{
			ConsultationID:              c.ID,
			ConsultantID:                consultantID,
			MeetingAt:                   meetingAt,
			FeePerHourInYen:             c.FeePerHourInYen,
			PlatformFeeRateInPercentage: c.PlatformFeeRateInPercentage,
		}
		if err := r.Settlements.CreateAwaitingPayment(ctx, awaiting); err != nil {
			return err
		}
		if err := r.Ratings.CreateConsultantRating(ctx, &models.ConsultantRating{
			ConsultationID: c.ID,
			ConsultantID:   consultantID,
		}); err != nil {
			return err
		}
		if err := r.Ratings.CreateUserRating(ctx, &models.UserRating{
			ConsultationID: c.ID,
			UserAccountID:  userID,
		}); err != nil {
			return err
		}
		consultation = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return consultation, nil
}
