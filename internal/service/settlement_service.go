package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"consulto/config"
	"consulto/internal/domain"
	"consulto/internal/models"
	"consulto/internal/repository"

	"gorm.io/gorm"
)

// SettlementService drives the financial lifecycle of a completed
// consultation: awaiting payment or withdrawal, then exactly one of paid,
// neglected or stopped. Every transition locks the awaiting row exclusively
// and writes the terminal record and the delete in the same transaction.
type SettlementService struct {
	tx  repository.TxManager
	fee config.FeeConfig
}

func NewSettlementService(tx repository.TxManager, fee config.FeeConfig) *SettlementService {
	return &SettlementService{tx: tx, fee: fee}
}

// SettlePayment records the payment as received and pays the consultation
// out in one step, producing the receipt directly from the payment queue.
func (s *SettlementService) SettlePayment(ctx context.Context, consultationID uint, adminEmail string, now time.Time) error {
	return s.tx.WithinTx(ctx, func(r repository.Repos) error {
		a, err := r.Settlements.LockAwaitingPaymentByConsultationID(ctx, consultationID)
		if err != nil {
			return asSettlementNotFound(err)
		}
		receipt, err := s.buildReceipt(ctx, r, a.ConsultationID, a.ConsultantID, a.MeetingAt, a.FeePerHourInYen, a.PlatformFeeRateInPercentage, adminEmail, now)
		if err != nil {
			return err
		}
		if err := r.Settlements.CreateReceipt(ctx, receipt); err != nil {
			return err
		}
		return r.Settlements.DeleteAwaitingPayment(ctx, a.ID)
	})
}

// ConfirmPayment moves a consultation from the payment queue to the
// withdrawal queue once the user's payment has been verified. Exactly one
// awaiting row exists per consultation at any time.
func (s *SettlementService) ConfirmPayment(ctx context.Context, consultationID uint, adminEmail string, now time.Time) error {
	return s.tx.WithinTx(ctx, func(r repository.Repos) error {
		a, err := r.Settlements.LockAwaitingPaymentByConsultationID(ctx, consultationID)
		if err != nil {
			return asSettlementNotFound(err)
		}
		w := &models.AwaitingWithdrawal{
			ConsultationID:              a.ConsultationID,
			ConsultantID:                a.ConsultantID,
			MeetingAt:                   a.MeetingAt,
			FeePerHourInYen:             a.FeePerHourInYen,
			PlatformFeeRateInPercentage: a.PlatformFeeRateInPercentage,
			PaymentConfirmedBy:          adminEmail,
			CreatedAt:                   now,
		}
		if err := r.Settlements.CreateAwaitingWithdrawal(ctx, w); err != nil {
			return err
		}
		return r.Settlements.DeleteAwaitingPayment(ctx, a.ID)
	})
}

// NeglectPayment closes an unpaid consultation without a reward.
func (s *SettlementService) NeglectPayment(ctx context.Context, consultationID uint, adminEmail string, now time.Time) error {
	return s.tx.WithinTx(ctx, func(r repository.Repos) error {
		a, err := r.Settlements.LockAwaitingPaymentByConsultationID(ctx, consultationID)
		if err != nil {
			return asSettlementNotFound(err)
		}
		n := &models.NeglectedPayment{
			ConsultationID:  a.ConsultationID,
			ConsultantID:    a.ConsultantID,
			MeetingAt:       a.MeetingAt,
			FeePerHourInYen: a.FeePerHourInYen,
			NeglectedAt:     now,
			NeglectedBy:     adminEmail,
		}
		if err := r.Settlements.CreateNeglectedPayment(ctx, n); err != nil {
			return err
		}
		return r.Settlements.DeleteAwaitingPayment(ctx, a.ID)
	})
}

// SettleWithdrawal records the bank transfer to the consultant as done.
func (s *SettlementService) SettleWithdrawal(ctx context.Context, consultationID uint, adminEmail string, now time.Time) error {
	return s.tx.WithinTx(ctx, func(r repository.Repos) error {
		w, err := r.Settlements.LockAwaitingWithdrawalByConsultationID(ctx, consultationID)
		if err != nil {
			return asSettlementNotFound(err)
		}
		receipt, err := s.buildReceipt(ctx, r, w.ConsultationID, w.ConsultantID, w.MeetingAt, w.FeePerHourInYen, w.PlatformFeeRateInPercentage, adminEmail, now)
		if err != nil {
			return err
		}
		if err := r.Settlements.CreateReceipt(ctx, receipt); err != nil {
			return err
		}
		return r.Settlements.DeleteAwaitingWithdrawal(ctx, w.ID)
	})
}

// StopWithdrawal halts a payout. No reward is computed.
func (s *SettlementService) StopWithdrawal(ctx context.Context, consultationID uint, adminEmail string, now time.Time) error {
	return s.tx.WithinTx(ctx, func(r repository.Repos) error {
		w, err := r.Settlements.LockAwaitingWithdrawalByConsultationID(ctx, consultationID)
		if err != nil {
			return asSettlementNotFound(err)
		}
		stopped := &models.StoppedSettlement{
			ConsultationID:  w.ConsultationID,
			ConsultantID:    w.ConsultantID,
			MeetingAt:       w.MeetingAt,
			FeePerHourInYen: w.FeePerHourInYen,
			StoppedAt:       now,
			StoppedBy:       adminEmail,
		}
		if err := r.Settlements.CreateStoppedSettlement(ctx, stopped); err != nil {
			return err
		}
		return r.Settlements.DeleteAwaitingWithdrawal(ctx, w.ID)
	})
}

// buildReceipt computes the reward from the awaiting row's snapshotted fee
// inputs. Only the transfer fee comes from live configuration.
func (s *SettlementService) buildReceipt(ctx context.Context, r repository.Repos, consultationID, consultantID uint, meetingAt time.Time, feePerHourInYen int, platformFeeRate string, adminEmail string, now time.Time) (*models.ReceiptOfConsultation, error) {
	consultant, err := r.Users.GetByID(ctx, consultantID)
	if err != nil {
		return nil, fmt.Errorf("load consultant %d: %w", consultantID, err)
	}
	reward, err := CalculateReward(feePerHourInYen, platformFeeRate, s.fee.TransferFeeInYen)
	if err != nil {
		return nil, err
	}
	return &models.ReceiptOfConsultation{
		ConsultationID:              consultationID,
		ConsultantID:                consultantID,
		MeetingAt:                   meetingAt,
		FeePerHourInYen:             feePerHourInYen,
		PlatformFeeRateInPercentage: platformFeeRate,
		TransferFeeInYen:            s.fee.TransferFeeInYen,
		RewardInYen:                 reward,
		SenderName:                  SenderName(consultant.LastNameFurigana, consultant.FirstNameFurigana, meetingAt),
		SettledAt:                   now,
		SettledBy:                   adminEmail,
	}, nil
}

func asSettlementNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSettlementNotFound
	}
	return err
}

// SenderName derives the deterministic bank-transfer sender name: the
// consultant's name reading plus a full-width MMDDHH suffix of the meeting
// time in JST, all joined by full-width spaces.
func SenderName(lastNameFurigana, firstNameFurigana string, meetingAt time.Time) string {
	m := meetingAt.In(domain.JST)
	suffix := toFullWidthDigits(fmt.Sprintf("%02d%02d%02d", int(m.Month()), m.Day(), m.Hour()))
	return lastNameFurigana + "　" + firstNameFurigana + "　" + suffix
}

// toFullWidthDigits maps ASCII digits to their full-width forms.
func toFullWidthDigits(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			r += 0xFEE0
		}
		out = append(out, r)
	}
	return string(out)
}

// PaymentExpiryCriteria is the read-side cutoff for the "expired" payment
// queue: a row qualifies once meeting length, waiting period and buffer have
// all passed since the meeting started.
func PaymentExpiryCriteria(now time.Time) time.Time {
	days := domain.WaitingPeriodBeforeWithdrawalToConsultantInDays + domain.SettlementBufferInDays
	return now.AddDate(0, 0, -days).Add(-domain.MeetingLengthInMinutes * time.Minute)
}

// WithdrawalLeftCriteria is the cutoff for the "left" withdrawal queue,
// measured from the row's creation rather than the meeting.
func WithdrawalLeftCriteria(now time.Time) time.Time {
	days := domain.WaitingPeriodBeforeWithdrawalToConsultantInDays + domain.SettlementBufferInDays
	return now.AddDate(0, 0, -days)
}
