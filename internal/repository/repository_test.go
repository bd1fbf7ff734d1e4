package repository

import (
	"context"
	"testing"
	"time"

	"consulto/internal/domain"
	"consulto/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives every test its own in-memory database. Locking clauses are
// not exercised here; sqlite does not speak FOR UPDATE.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.IdentityRequest{},
		&models.CareerRequest{},
		&models.ApprovedIdentityRequest{},
		&models.RejectedIdentityRequest{},
		&models.ApprovedCareerRequest{},
		&models.RejectedCareerRequest{},
		&models.Identity{},
		&models.Career{},
		&models.Consultation{},
		&models.AwaitingPayment{},
		&models.AwaitingWithdrawal{},
		&models.ReceiptOfConsultation{},
		&models.NeglectedPayment{},
		&models.StoppedSettlement{},
		&models.ConsultantRating{},
		&models.UserRating{},
		&models.Document{},
	))
	return db
}

func TestRequestRepositoryListOrdering(t *testing.T) {
	db := openTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 2, 1, 9, 0, 0, 0, domain.JST)
	// Insert out of order; the list must come back oldest first.
	for i, offset := range []int{2, 0, 1} {
		req := &models.CareerRequest{
			UserAccountID: uint(i + 1),
			CareerDetail:  models.CareerDetail{CompanyName: "Acme", ContractType: "FULL_TIME", CareerStartDate: base},
			Image1Key:     "k",
			RequestedAt:   base.Add(time.Duration(offset) * time.Hour),
		}
		require.NoError(t, repo.CreateCareerRequest(ctx, req))
	}

	list, total, err := repo.ListCareerRequests(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, list, 2)
	assert.True(t, list[0].RequestedAt.Before(list[1].RequestedAt))

	page2, _, err := repo.ListCareerRequests(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, base.Add(2*time.Hour).Unix(), page2[0].RequestedAt.Unix())
}

func TestRequestRepositoryDeleteThenGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	req := &models.IdentityRequest{
		UserAccountID:  1,
		Kind:           domain.IdentityKindCreate,
		IdentityDetail: models.IdentityDetail{LastName: "山田", FirstName: "太郎", DateOfBirth: time.Now()},
		Image1Key:      "1/a.png",
		RequestedAt:    time.Now(),
	}
	require.NoError(t, repo.CreateIdentityRequest(ctx, req))
	require.NoError(t, repo.DeleteIdentityRequest(ctx, req.ID))

	_, err := repo.GetIdentityRequestByID(ctx, req.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestIdentityRepositoryUpsert(t *testing.T) {
	db := openTestDB(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()

	first := &models.Identity{UserAccountID: 7, IdentityDetail: models.IdentityDetail{LastName: "山田", DateOfBirth: time.Now()}}
	require.NoError(t, repo.Upsert(ctx, first))

	// A second upsert for the same actor replaces, never duplicates.
	second := &models.Identity{UserAccountID: 7, IdentityDetail: models.IdentityDetail{LastName: "田中", DateOfBirth: time.Now()}}
	require.NoError(t, repo.Upsert(ctx, second))

	got, err := repo.GetByUserAccountID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "田中", got.LastName)

	var count int64
	require.NoError(t, db.Model(&models.Identity{}).Where("user_account_id = ?", 7).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSettlementRepositoryExpiredFilter(t *testing.T) {
	db := openTestDB(t)
	repo := NewSettlementRepository(db)
	ctx := context.Background()

	criteria := time.Date(2024, 3, 10, 12, 0, 0, 0, domain.JST)
	rows := []models.AwaitingPayment{
		{ConsultationID: 1, ConsultantID: 1, MeetingAt: criteria.Add(-time.Hour), FeePerHourInYen: 3000},
		{ConsultationID: 2, ConsultantID: 1, MeetingAt: criteria, FeePerHourInYen: 3000},
		{ConsultationID: 3, ConsultantID: 1, MeetingAt: criteria.Add(time.Second), FeePerHourInYen: 3000},
	}
	for i := range rows {
		require.NoError(t, repo.CreateAwaitingPayment(ctx, &rows[i]))
	}

	expired, total, err := repo.ListExpiredAwaitingPayments(ctx, criteria, 1, 10)
	require.NoError(t, err)
	// The boundary row at exactly the criteria instant is included.
	assert.Equal(t, int64(2), total)
	require.Len(t, expired, 2)
	assert.Equal(t, uint(1), expired[0].ConsultationID)
	assert.Equal(t, uint(2), expired[1].ConsultationID)
}

func TestSettlementRepositoryLeftWithdrawals(t *testing.T) {
	db := openTestDB(t)
	repo := NewSettlementRepository(db)
	ctx := context.Background()

	criteria := time.Date(2024, 3, 10, 12, 0, 0, 0, domain.JST)
	old := models.AwaitingWithdrawal{ConsultationID: 1, ConsultantID: 1, MeetingAt: criteria, FeePerHourInYen: 3000, PaymentConfirmedBy: "a@b", CreatedAt: criteria.Add(-time.Hour)}
	fresh := models.AwaitingWithdrawal{ConsultationID: 2, ConsultantID: 1, MeetingAt: criteria, FeePerHourInYen: 3000, PaymentConfirmedBy: "a@b", CreatedAt: criteria.Add(time.Hour)}
	require.NoError(t, repo.CreateAwaitingWithdrawal(ctx, &old))
	require.NoError(t, repo.CreateAwaitingWithdrawal(ctx, &fresh))

	left, total, err := repo.ListLeftAwaitingWithdrawals(ctx, criteria, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, left, 1)
	assert.Equal(t, uint(1), left[0].ConsultationID)
}

func TestSettlementRepositoryUniquePerConsultation(t *testing.T) {
	db := openTestDB(t)
	repo := NewSettlementRepository(db)
	ctx := context.Background()

	a := models.AwaitingPayment{ConsultationID: 1, ConsultantID: 1, MeetingAt: time.Now(), FeePerHourInYen: 3000}
	require.NoError(t, repo.CreateAwaitingPayment(ctx, &a))
	dup := models.AwaitingPayment{ConsultationID: 1, ConsultantID: 1, MeetingAt: time.Now(), FeePerHourInYen: 3000}
	assert.Error(t, repo.CreateAwaitingPayment(ctx, &dup))
}

func TestRatingRepositoryPluckSkipsNulls(t *testing.T) {
	db := openTestDB(t)
	repo := NewRatingRepository(db)
	ctx := context.Background()

	five, two := 5, 2
	now := time.Now()
	rows := []models.ConsultantRating{
		{ConsultationID: 1, ConsultantID: 9, Rating: &five, RatedAt: &now},
		{ConsultationID: 2, ConsultantID: 9, Rating: &two, RatedAt: &now},
		{ConsultationID: 3, ConsultantID: 9}, // unrated
		{ConsultationID: 4, ConsultantID: 8, Rating: &five, RatedAt: &now},
	}
	for i := range rows {
		require.NoError(t, repo.CreateConsultantRating(ctx, &rows[i]))
	}

	values, err := repo.ListConsultantRatingValues(ctx, 9)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{5, 2}, values)
}

func TestConsultationRepositoryEnteredAt(t *testing.T) {
	db := openTestDB(t)
	repo := NewConsultationRepository(db)
	ctx := context.Background()

	c := &models.Consultation{
		UserAccountID:   3,
		ConsultantID:    5,
		MeetingAt:       time.Now().Add(time.Hour),
		RoomName:        "deadbeefdeadbeefdeadbeefdeadbeef",
		FeePerHourInYen: 3000,
	}
	require.NoError(t, repo.Create(ctx, c))

	byRoom, err := repo.GetByRoomName(ctx, c.RoomName)
	require.NoError(t, err)
	assert.Equal(t, c.ID, byRoom.ID)

	entered := time.Now()
	require.NoError(t, repo.SetUserEnteredAt(ctx, c.ID, entered))
	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.UserEnteredAt)
	assert.Nil(t, got.ConsultantEnteredAt)
}

func TestDocumentRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	d := &models.Document{UserAccountID: 7, DocumentID: "cafebabecafebabecafebabecafebabe"}
	require.NoError(t, repo.Create(ctx, d))

	got, err := repo.GetByUserAccountID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, d.DocumentID, got.DocumentID)

	_, err = repo.GetByUserAccountID(ctx, 8)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	tx := NewTxManager(db)
	ctx := context.Background()

	err := tx.WithinTx(ctx, func(r Repos) error {
		if err := r.Settlements.CreateAwaitingPayment(ctx, &models.AwaitingPayment{
			ConsultationID: 1, ConsultantID: 1, MeetingAt: time.Now(), FeePerHourInYen: 3000,
		}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.AwaitingPayment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
