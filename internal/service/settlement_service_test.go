package service

import (
	"context"
	"testing"
	"time"

	"consulto/config"
	"consulto/internal/domain"
	"consulto/internal/models"
	"consulto/internal/repository"
	"consulto/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testFee = config.FeeConfig{
	TransferFeeInYen:            250,
	PlatformFeeRateInPercentage: "50.0",
}

func TestSenderName(t *testing.T) {
	meetingAt := time.Date(2023, 11, 15, 18, 0, 0, 0, domain.JST)
	got := SenderName("ヤマダ", "タロウ", meetingAt)
	assert.Equal(t, "ヤマダ　タロウ　１１１５１８", got)
}

func TestSenderNameConvertsToJST(t *testing.T) {
	// 09:00 UTC is 18:00 in JST.
	meetingAt := time.Date(2023, 11, 15, 9, 0, 0, 0, time.UTC)
	got := SenderName("サトウ", "ハナコ", meetingAt)
	assert.Equal(t, "サトウ　ハナコ　１１１５１８", got)
}

func TestSettlePayment(t *testing.T) {
	meetingAt := time.Date(2024, 3, 1, 10, 0, 0, 0, domain.JST)
	now := time.Date(2024, 3, 12, 9, 0, 0, 0, domain.JST)

	var (
		receipt   *models.ReceiptOfConsultation
		deletedID uint
	)
	settlements := &testutil.SettlementStoreMock{
		LockAwaitingPaymentByConsultationIDFn: func(ctx context.Context, consultationID uint) (*models.AwaitingPayment, error) {
			require.Equal(t, uint(1), consultationID)
			return &models.AwaitingPayment{ID: 7, ConsultationID: 1, ConsultantID: 2, MeetingAt: meetingAt, FeePerHourInYen: 3000, PlatformFeeRateInPercentage: "50.0"}, nil
		},
		CreateReceiptFn: func(ctx context.Context, r *models.ReceiptOfConsultation) error {
			receipt = r
			return nil
		},
		DeleteAwaitingPaymentFn: func(ctx context.Context, id uint) error {
			deletedID = id
			return nil
		},
	}
	users := &testutil.UserStoreMock{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 2, LastNameFurigana: "ヤマダ", FirstNameFurigana: "タロウ"}, nil
		},
	}
	tx := &testutil.TxMock{Repos: repository.Repos{Settlements: settlements, Users: users}}
	svc := NewSettlementService(tx, testFee)

	err := svc.SettlePayment(context.Background(), 1, "admin@example.com", now)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, uint(1), receipt.ConsultationID)
	assert.Equal(t, 1250, receipt.RewardInYen)
	assert.Equal(t, "50.0", receipt.PlatformFeeRateInPercentage)
	assert.Equal(t, 250, receipt.TransferFeeInYen)
	assert.Equal(t, "ヤマダ　タロウ　０３０１１０", receipt.SenderName)
	assert.Equal(t, "admin@example.com", receipt.SettledBy)
	assert.Equal(t, now, receipt.SettledAt)
	assert.Equal(t, uint(7), deletedID)
}

func TestSettlePaymentUsesBookedFeeRate(t *testing.T) {
	meetingAt := time.Date(2024, 3, 1, 10, 0, 0, 0, domain.JST)
	now := time.Date(2024, 3, 12, 9, 0, 0, 0, domain.JST)

	var receipt *models.ReceiptOfConsultation
	settlements := &testutil.SettlementStoreMock{
		LockAwaitingPaymentByConsultationIDFn: func(ctx context.Context, consultationID uint) (*models.AwaitingPayment, error) {
			return &models.AwaitingPayment{ID: 7, ConsultationID: 1, ConsultantID: 2, MeetingAt: meetingAt, FeePerHourInYen: 3000, PlatformFeeRateInPercentage: "50.0"}, nil
		},
		CreateReceiptFn: func(ctx context.Context, r *models.ReceiptOfConsultation) error {
			receipt = r
			return nil
		},
		DeleteAwaitingPaymentFn: func(ctx context.Context, id uint) error { return nil },
	}
	users := &testutil.UserStoreMock{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 2, LastNameFurigana: "ヤマダ", FirstNameFurigana: "タロウ"}, nil
		},
	}
	tx := &testutil.TxMock{Repos: repository.Repos{Settlements: settlements, Users: users}}

	// The configured rate changed after booking. The receipt must still use
	// the rate snapshotted on the awaiting row.
	svc := NewSettlementService(tx, config.FeeConfig{TransferFeeInYen: 250, PlatformFeeRateInPercentage: "60.0"})

	err := svc.SettlePayment(context.Background(), 1, "admin@example.com", now)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, "50.0", receipt.PlatformFeeRateInPercentage)
	assert.Equal(t, 1250, receipt.RewardInYen)
}

func TestSettlePaymentNotFound(t *testing.T) {
	settlements := &testutil.SettlementStoreMock{
		LockAwaitingPaymentByConsultationIDFn: func(ctx context.Context, consultationID uint) (*models.AwaitingPayment, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	tx := &testutil.TxMock{Repos: repository.Repos{Settlements: settlements}}
	svc := NewSettlementService(tx, testFee)

	err := svc.SettlePayment(context.Background(), 99, "admin@example.com", time.Now())
	assert.ErrorIs(t, err, ErrSettlementNotFound)
}

func TestConfirmPaymentMovesToWithdrawalQueue(t *testing.T) {
	meetingAt := time.Date(2024, 3, 1, 10, 0, 0, 0, domain.JST)
	now := time.Date(2024, 3, 2, 9, 0, 0, 0, domain.JST)

	var (
		created   *models.AwaitingWithdrawal
		deletedID uint
	)
	settlements := &testutil.SettlementStoreMock{
		LockAwaitingPaymentByConsultationIDFn: func(ctx context.Context, consultationID uint) (*models.AwaitingPayment, error) {
			return &models.AwaitingPayment{ID: 7, ConsultationID: 1, ConsultantID: 2, MeetingAt: meetingAt, FeePerHourInYen: 3000, PlatformFeeRateInPercentage: "50.0"}, nil
		},
		CreateAwaitingWithdrawalFn: func(ctx context.Context, a *models.AwaitingWithdrawal) error {
			created = a
			return nil
		},
		DeleteAwaitingPaymentFn: func(ctx context.Context, id uint) error {
			deletedID = id
			return nil
		},
	}
	tx := &testutil.TxMock{Repos: repository.Repos{Settlements: settlements}}
	svc := NewSettlementService(tx, testFee)

	err := svc.ConfirmPayment(context.Background(), 1, "admin@example.com", now)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint(1), created.ConsultationID)
	assert.Equal(t, 3000, created.FeePerHourInYen)
	assert.Equal(t, "50.0", created.PlatformFeeRateInPercentage)
	assert.Equal(t, "admin@example.com", created.PaymentConfirmedBy)
	assert.Equal(t, now, created.CreatedAt)
	assert.Equal(t, uint(7), deletedID)
}

func TestNeglectPayment(t *testing.T) {
	now := time.Date(2024, 3, 12, 9, 0, 0, 0, domain.JST)
	var neglected *models.NeglectedPayment
	settlements := &testutil.SettlementStoreMock{
		LockAwaitingPaymentByConsultationIDFn: func(ctx context.Context, consultationID uint) (*models.AwaitingPayment, error) {
			return &models.AwaitingPayment{ID: 7, ConsultationID: 1, ConsultantID: 2, FeePerHourInYen: 3000}, nil
		},
		CreateNeglectedPaymentFn: func(ctx context.Context, n *models.NeglectedPayment) error {
			neglected = n
			return nil
		},
		DeleteAwaitingPaymentFn: func(ctx context.Context, id uint) error { return nil },
	}
	tx := &testutil.TxMock{Repos: repository.Repos{Settlements: settlements}}
	svc := NewSettlementService(tx, testFee)

	err := svc.NeglectPayment(context.Background(), 1, "admin@example.com", now)
	require.NoError(t, err)
	require.NotNil(t, neglected)
	assert.Equal(t, "admin@example.com", neglected.NeglectedBy)
	assert.Equal(t, now, neglected.NeglectedAt)
}

func TestSettleWithdrawal(t *testing.T) {
	meetingAt := time.Date(2024, 3, 1, 10, 0, 0, 0, domain.JST)
	now := time.Date(2024, 3, 12, 9, 0, 0, 0, domain.JST)

	var (
		receipt   *models.ReceiptOfConsultation
		deletedID uint
	)
	settlements := &testutil.SettlementStoreMock{
		LockAwaitingWithdrawalByConsultationIDFn: func(ctx context.Context, consultationID uint) (*models.AwaitingWithdrawal, error) {
			return &models.AwaitingWithdrawal{ID: 8, ConsultationID: 1, ConsultantID: 2, MeetingAt: meetingAt, FeePerHourInYen: 3001, PlatformFeeRateInPercentage: "50.0"}, nil
		},
		CreateReceiptFn: func(ctx context.Context, r *models.ReceiptOfConsultation) error {
			receipt = r
			return nil
		},
		DeleteAwaitingWithdrawalFn: func(ctx context.Context, id uint) error {
			deletedID = id
			return nil
		},
	}
	users := &testutil.UserStoreMock{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 2, LastNameFurigana: "ヤマダ", FirstNameFurigana: "タロウ"}, nil
		},
	}
	tx := &testutil.TxMock{Repos: repository.Repos{Settlements: settlements, Users: users}}
	svc := NewSettlementService(tx, testFee)

	err := svc.SettleWithdrawal(context.Background(), 1, "admin@example.com", now)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, 1251, receipt.RewardInYen)
	assert.Equal(t, uint(8), deletedID)
}

func TestStopWithdrawal(t *testing.T) {
	now := time.Date(2024, 3, 12, 9, 0, 0, 0, domain.JST)
	var stopped *models.StoppedSettlement
	settlements := &testutil.SettlementStoreMock{
		LockAwaitingWithdrawalByConsultationIDFn: func(ctx context.Context, consultationID uint) (*models.AwaitingWithdrawal, error) {
			return &models.AwaitingWithdrawal{ID: 8, ConsultationID: 1, ConsultantID: 2, FeePerHourInYen: 3000}, nil
		},
		CreateStoppedSettlementFn: func(ctx context.Context, s *models.StoppedSettlement) error {
			stopped = s
			return nil
		},
		DeleteAwaitingWithdrawalFn: func(ctx context.Context, id uint) error { return nil },
	}
	tx := &testutil.TxMock{Repos: repository.Repos{Settlements: settlements}}
	svc := NewSettlementService(tx, testFee)

	err := svc.StopWithdrawal(context.Background(), 1, "admin@example.com", now)
	require.NoError(t, err)
	require.NotNil(t, stopped)
	assert.Equal(t, "admin@example.com", stopped.StoppedBy)
}

func TestSettlementCriteria(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, domain.JST)

	expiry := PaymentExpiryCriteria(now)
	assert.Equal(t, now.AddDate(0, 0, -9).Add(-60*time.Minute), expiry)

	left := WithdrawalLeftCriteria(now)
	assert.Equal(t, now.AddDate(0, 0, -9), left)
}
