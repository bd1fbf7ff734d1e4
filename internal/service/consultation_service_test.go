package service

import (
	"context"
	"testing"
	"time"

	"consulto/internal/domain"
	"consulto/internal/models"
	"consulto/internal/repository"
	"consulto/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBook(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, domain.JST)
	meetingAt := now.Add(48 * time.Hour)

	var (
		awaiting         *models.AwaitingPayment
		consultantRating *models.ConsultantRating
		userRating       *models.UserRating
	)
	users := &testutil.UserStoreMock{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 5, Role: domain.RoleConsultant, FeePerHourInYen: 4000}, nil
		},
	}
	consultations := &testutil.ConsultationStoreMock{
		CreateFn: func(ctx context.Context, c *models.Consultation) error {
			c.ID = 11
			return nil
		},
	}
	settlements := &testutil.SettlementStoreMock{
		CreateAwaitingPaymentFn: func(ctx context.Context, a *models.AwaitingPayment) error {
			awaiting = a
			return nil
		},
	}
	ratings := &testutil.RatingStoreMock{
		CreateConsultantRatingFn: func(ctx context.Context, r *models.ConsultantRating) error {
			consultantRating = r
			return nil
		},
		CreateUserRatingFn: func(ctx context.Context, r *models.UserRating) error {
			userRating = r
			return nil
		},
	}
	tx := &testutil.TxMock{Repos: repository.Repos{
		Users: users, Consultations: consultations, Settlements: settlements, Ratings: ratings,
	}}
	svc := NewConsultationService(tx, testFee)

	c, err := svc.Book(context.Background(), 3, 5, meetingAt, now)
	require.NoError(t, err)
	assert.Equal(t, uint(11), c.ID)
	assert.Equal(t, 4000, c.FeePerHourInYen)
	assert.Equal(t, "50.0", c.PlatformFeeRateInPercentage)
	assert.Len(t, c.RoomName, 32)

	require.NotNil(t, awaiting)
	assert.Equal(t, uint(11), awaiting.ConsultationID)
	assert.Equal(t, 4000, awaiting.FeePerHourInYen)
	assert.Equal(t, "50.0", awaiting.PlatformFeeRateInPercentage)

	require.NotNil(t, consultantRating)
	assert.Nil(t, consultantRating.Rating)
	require.NotNil(t, userRating)
	assert.Nil(t, userRating.Rating)
}

func TestBookMeetingInPast(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, domain.JST)
	svc := NewConsultationService(&testutil.TxMock{}, testFee)

	_, err := svc.Book(context.Background(), 3, 5, now.Add(-time.Minute), now)
	assert.ErrorIs(t, err, ErrMeetingInPast)

	_, err = svc.Book(context.Background(), 3, 5, now, now)
	assert.ErrorIs(t, err, ErrMeetingInPast)
}

func TestBookConsultantChecks(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, domain.JST)
	meetingAt := now.Add(time.Hour)
	disabledAt := now

	cases := []struct {
		name    string
		user    *models.User
		userErr error
		want    error
	}{
		{"gone", nil, gorm.ErrRecordNotFound, ErrConsultantNotFound},
		{"not a consultant", &models.User{ID: 5, Role: domain.RoleUser}, nil, ErrConsultantUnavailable},
		{"disabled", &models.User{ID: 5, Role: domain.RoleConsultant, DisabledAt: &disabledAt}, nil, ErrConsultantUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := &testutil.UserStoreMock{
				GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
					return tc.user, tc.userErr
				},
			}
			tx := &testutil.TxMock{Repos: repository.Repos{Users: users}}
			svc := NewConsultationService(tx, testFee)

			_, err := svc.Book(context.Background(), 3, 5, meetingAt, now)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
