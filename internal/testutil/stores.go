package testutil

import (
	"context"
	"errors"
	"time"

	"consulto/internal/models"
	"consulto/internal/repository"
)

// Function-backed mocks satisfying the repository store interfaces. Fill in
// the fields a test needs; unfilled ones return ErrUnimplemented so a test
// touching an unexpected method fails loudly.

var ErrUnimplemented = errors.New("testutil: method not implemented")

var (
	_ repository.UserStore         = (*UserStoreMock)(nil)
	_ repository.RequestStore      = (*RequestStoreMock)(nil)
	_ repository.IdentityStore     = (*IdentityStoreMock)(nil)
	_ repository.CareerStore       = (*CareerStoreMock)(nil)
	_ repository.ConsultationStore = (*ConsultationStoreMock)(nil)
	_ repository.SettlementStore   = (*SettlementStoreMock)(nil)
	_ repository.RatingStore       = (*RatingStoreMock)(nil)
	_ repository.DocumentStore     = (*DocumentStoreMock)(nil)
)

type UserStoreMock struct {
	CreateFn        func(ctx context.Context, u *models.User) error
	UpdateFn        func(ctx context.Context, u *models.User) error
	GetByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	GetByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	LockByIDShareFn func(ctx context.Context, id uint) (*models.User, error)
	LockByIDFn      func(ctx context.Context, id uint) (*models.User, error)
}

func (m *UserStoreMock) Create(ctx context.Context, u *models.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return ErrUnimplemented
}
func (m *UserStoreMock) Update(ctx context.Context, u *models.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, u)
	}
	return ErrUnimplemented
}
func (m *UserStoreMock) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ErrUnimplemented
}
func (m *UserStoreMock) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, ErrUnimplemented
}
func (m *UserStoreMock) LockByIDShare(ctx context.Context, id uint) (*models.User, error) {
	if m.LockByIDShareFn != nil {
		return m.LockByIDShareFn(ctx, id)
	}
	return nil, ErrUnimplemented
}
func (m *UserStoreMock) LockByID(ctx context.Context, id uint) (*models.User, error) {
	if m.LockByIDFn != nil {
		return m.LockByIDFn(ctx, id)
	}
	return nil, ErrUnimplemented
}

type RequestStoreMock struct {
	CreateIdentityRequestFn         func(ctx context.Context, r *models.IdentityRequest) error
	CreateCareerRequestFn           func(ctx context.Context, r *models.CareerRequest) error
	GetIdentityRequestByIDFn        func(ctx context.Context, id uint) (*models.IdentityRequest, error)
	GetCareerRequestByIDFn          func(ctx context.Context, id uint) (*models.CareerRequest, error)
	LockIdentityRequestByIDFn       func(ctx context.Context, id uint) (*models.IdentityRequest, error)
	LockCareerRequestByIDFn         func(ctx context.Context, id uint) (*models.CareerRequest, error)
	DeleteIdentityRequestFn         func(ctx context.Context, id uint) error
	DeleteCareerRequestFn           func(ctx context.Context, id uint) error
	CreateApprovedIdentityRequestFn func(ctx context.Context, rec *models.ApprovedIdentityRequest) error
	CreateRejectedIdentityRequestFn func(ctx context.Context, rec *models.RejectedIdentityRequest) error
	CreateApprovedCareerRequestFn   func(ctx context.Context, rec *models.ApprovedCareerRequest) error
	CreateRejectedCareerRequestFn   func(ctx context.Context, rec *models.RejectedCareerRequest) error
	ListIdentityRequestsFn          func(ctx context.Context, page, limit int) ([]models.IdentityRequest, int64, error)
	ListCareerRequestsFn            func(ctx context.Context, page, limit int) ([]models.CareerRequest, int64, error)
}

func (m *RequestStoreMock) CreateIdentityRequest(ctx context.Context, r *models.IdentityRequest) error {
	if m.CreateIdentityRequestFn != nil {
		return m.CreateIdentityRequestFn(ctx, r)
	}
	return ErrUnimplemented
}
func (m *RequestStoreMock) CreateCareerRequest(ctx context.Context, r *models.CareerRequest) error {
	if m.CreateCareerRequestFn != nil {
		return m.CreateCareerRequestFn(ctx, r)
	}
	return ErrUnimplemented
}
func (m *RequestStoreMock) GetIdentityRequestByID(ctx context.Context, id uint) (*models.IdentityRequest, error) {
	if m.GetIdentityRequestByIDFn != nil {
		return m.GetIdentityRequestByIDFn(ctx, id)
	}
	return nil, ErrUnimplemented
}
func (m *RequestStoreMock) GetCareerRequestByID(ctx context.Context, id uint) (*models.CareerRequest, error) {
	if m.GetCareerRequestByIDFn != nil {
		return m.GetCareerRequestByIDFn(ctx, id)
	}
	return nil, ErrUnimplemented
}
func (m *RequestStoreMock) LockIdentityRequestByID(ctx context.Context, id uint) (*models.IdentityRequest, error) {
	if m.LockIdentityRequestByIDFn != nil {
		return m.LockIdentityRequestByIDFn(ctx, id)
	}
	return nil, ErrUnimplemented
}
func (m *RequestStoreMock) LockCareerRequestByID(ctx context.Context, id uint) (*models.CareerRequest, error) {
	if m.LockCareerRequestByIDFn != nil {
		return m.LockCareerRequestByIDFn(ctx, id)
	}
	return nil, ErrUnimplemented
}
func (m *RequestStoreMock) DeleteIdentityRequest(ctx context.Context, id uint) error {
	if m.DeleteIdentityRequestFn != nil {
		return m.DeleteIdentityRequestFn(ctx, id)
	}
	return ErrUnimplemented
}
func (m *RequestStoreMock) DeleteCareerRequest(ctx context.Context, id uint) error {
	if m.DeleteCareerRequestFn != nil {
		return m.DeleteCareerRequestFn(ctx, id)
	}
	return ErrUnimplemented
}
func (m *RequestStoreMock) CreateApprovedIdentityRequest(ctx context.Context, rec *models.ApprovedIdentityRequest) error {
	if m.CreateApprovedIdentityRequestFn != nil {
		return m.CreateApprovedIdentityRequestFn(ctx, rec)
	}
	return ErrUnimplemented
}
func (m *RequestStoreMock) CreateRejectedIdentityRequest(ctx context.Context, rec *models.RejectedIdentityRequest) error {
	if m.CreateRejectedIdentityRequestFn != nil {
		return m.CreateRejectedIdentityRequestFn(ctx, rec)
	}
	return ErrUnimplemented
}
func (m *RequestStoreMock) CreateApprovedCareerRequest(ctx context.Context, rec *models.ApprovedCareerRequest) error {
	if m.CreateApprovedCareerRequestFn != nil {
		return m.CreateApprovedCareerRequestFn(ctx, rec)
	}
	return ErrUnimplemented
}
func (m *RequestStoreMock) CreateRejectedCareerRequest(ctx context.Context, rec *models.RejectedCareerRequest) error {
	if m.CreateRejectedCareerRequestFn != nil {
		return m.CreateRejectedCareerRequestFn(ctx, rec)
	}
	return ErrUnimplemented
}
func (m *RequestStoreMock) ListIdentityRequests(ctx context.Context, page, limit int) ([]models.IdentityRequest, int64, error) {
	if m.ListIdentityRequestsFn != nil {
		return m.ListIdentityRequestsFn(ctx, page, limit)
	}
	return nil, 0, ErrUnimplemented
}
func (m *RequestStoreMock) ListCareerRequests(ctx context.Context, page, limit int) ([]models.CareerRequest, int64, error) {
	if m.ListCareerRequestsFn != nil {
		return m.ListCareerRequestsFn(ctx, page, limit)
	}
	return nil, 0, ErrUnimplemented
}

type IdentityStoreMock struct {
	UpsertFn             func(ctx context.Context, identity *models.Identity) error
	GetByUserAccountIDFn func(ctx context.Context, userAccountID uint) (*models.Identity, error)
}

func (m *IdentityStoreMock) Upsert(ctx context.Context, identity *models.Identity) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, identity)
	}
	return ErrUnimplemented
}
func (m *IdentityStoreMock) GetByUserAccountID(ctx context.Context, userAccountID uint) (*models.Identity, error) {
	if m.GetByUserAccountIDFn != nil {
		return m.GetByUserAccountIDFn(ctx, userAccountID)
	}
	return nil, ErrUnimplemented
}

type CareerStoreMock struct {
	CreateFn               func(ctx context.Context, c *models.Career) error
	ListByUserAccountIDFn  func(ctx context.Context, userAccountID uint) ([]models.Career, error)
	CountByUserAccountIDFn func(ctx context.Context, userAccountID uint) (int64, error)
}

func (m *CareerStoreMock) Create(ctx context.Context, c *models.Career) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return ErrUnimplemented
}
func (m *CareerStoreMock) ListByUserAccountID(ctx context.Context, userAccountID uint) ([]models.Career, error) {
	if m.ListByUserAccountIDFn != nil {
		return m.ListByUserAccountIDFn(ctx, userAccountID)
	}
	return nil, ErrUnimplemented
}
func (m *CareerStoreMock) CountByUserAccountID(ctx context.Context, userAccountID uint) (int64, error) {
	if m.CountByUserAccountIDFn != nil {
		return m.CountByUserAccountIDFn(ctx, userAccountID)
	}
	return 0, ErrUnimplemented
}

type ConsultationStoreMock struct {
	CreateFn                 func(ctx context.Context, c *models.Consultation) error
	GetByIDFn                func(ctx context.Context, id uint) (*models.Consultation, error)
	GetByRoomNameFn          func(ctx context.Context, roomName string) (*models.Consultation, error)
	SetUserEnteredAtFn       func(ctx context.Context, id uint, t time.Time) error
	SetConsultantEnteredAtFn func(ctx context.Context, id uint, t time.Time) error
}

func (m *ConsultationStoreMock) Create(ctx context.Context, c *models.Consultation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return ErrUnimplemented
}
func (m *ConsultationStoreMock) GetByID(ctx context.Context, id uint) (*models.Consultation, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, ErrUnimplemented
}
func (m *ConsultationStoreMock) GetByRoomName(ctx context.Context, roomName string) (*models.Consultation, error) {
	if m.GetByRoomNameFn != nil {
		return m.GetByRoomNameFn(ctx, roomName)
	}
	return nil, ErrUnimplemented
}
func (m *ConsultationStoreMock) SetUserEnteredAt(ctx context.Context, id uint, t time.Time) error {
	if m.SetUserEnteredAtFn != nil {
		return m.SetUserEnteredAtFn(ctx, id, t)
	}
	return ErrUnimplemented
}
func (m *ConsultationStoreMock) SetConsultantEnteredAt(ctx context.Context, id uint, t time.Time) error {
	if m.SetConsultantEnteredAtFn != nil {
		return m.SetConsultantEnteredAtFn(ctx, id, t)
	}
	return ErrUnimplemented
}

type SettlementStoreMock struct {
	CreateAwaitingPaymentFn                  func(ctx context.Context, a *models.AwaitingPayment) error
	CreateAwaitingWithdrawalFn               func(ctx context.Context, a *models.AwaitingWithdrawal) error
	LockAwaitingPaymentByConsultationIDFn    func(ctx context.Context, consultationID uint) (*models.AwaitingPayment, error)
	LockAwaitingWithdrawalByConsultationIDFn func(ctx context.Context, consultationID uint) (*models.AwaitingWithdrawal, error)
	DeleteAwaitingPaymentFn                  func(ctx context.Context, id uint) error
	DeleteAwaitingWithdrawalFn               func(ctx context.Context, id uint) error
	CreateReceiptFn                          func(ctx context.Context, r *models.ReceiptOfConsultation) error
	CreateNeglectedPaymentFn                 func(ctx context.Context, n *models.NeglectedPayment) error
	CreateStoppedSettlementFn                func(ctx context.Context, s *models.StoppedSettlement) error
	ListAwaitingPaymentsFn                   func(ctx context.Context, page, limit int) ([]models.AwaitingPayment, int64, error)
	ListExpiredAwaitingPaymentsFn            func(ctx context.Context, criteria time.Time, page, limit int) ([]models.AwaitingPayment, int64, error)
	ListAwaitingWithdrawalsFn                func(ctx context.Context, page, limit int) ([]models.AwaitingWithdrawal, int64, error)
	ListLeftAwaitingWithdrawalsFn            func(ctx context.Context, criteria time.Time, page, limit int) ([]models.AwaitingWithdrawal, int64, error)
}

func (m *SettlementStoreMock) CreateAwaitingPayment(ctx context.Context, a *models.AwaitingPayment) error {
	if m.CreateAwaitingPaymentFn != nil {
		return m.CreateAwaitingPaymentFn(ctx, a)
	}
	return ErrUnimplemented
}
func (m *SettlementStoreMock) CreateAwaitingWithdrawal(ctx context.Context, a *models.AwaitingWithdrawal) error {
	if m.CreateAwaitingWithdrawalFn != nil {
		return m.CreateAwaitingWithdrawalFn(ctx, a)
	}
	return ErrUnimplemented
}
func (m *SettlementStoreMock) LockAwaitingPaymentByConsultationID(ctx context.Context, consultationID uint) (*models.AwaitingPayment, error) {
	if m.LockAwaitingPaymentByConsultationIDFn != nil {
		return m.LockAwaitingPaymentByConsultationIDFn(ctx, consultationID)
	}
	return nil, ErrUnimplemented
}
func (m *SettlementStoreMock) LockAwaitingWithdrawalByConsultationID(ctx context.Context, consultationID uint) (*models.AwaitingWithdrawal, error) {
	if m.LockAwaitingWithdrawalByConsultationIDFn != nil {
		return m.LockAwaitingWithdrawalByConsultationIDFn(ctx, consultationID)
	}
	return nil, ErrUnimplemented
}
func (m *SettlementStoreMock) DeleteAwaitingPayment(ctx context.Context, id uint) error {
	if m.DeleteAwaitingPaymentFn != nil {
		return m.DeleteAwaitingPaymentFn(ctx, id)
	}
	return ErrUnimplemented
}
func (m *SettlementStoreMock) DeleteAwaitingWithdrawal(ctx context.Context, id uint) error {
	if m.DeleteAwaitingWithdrawalFn != nil {
		return m.DeleteAwaitingWithdrawalFn(ctx, id)
	}
	return ErrUnimplemented
}
func (m *SettlementStoreMock) CreateReceipt(ctx context.Context, r *models.ReceiptOfConsultation) error {
	if m.CreateReceiptFn != nil {
		return m.CreateReceiptFn(ctx, r)
	}
	return ErrUnimplemented
}
func (m *SettlementStoreMock) CreateNeglectedPayment(ctx context.Context, n *models.NeglectedPayment) error {
	if m.CreateNeglectedPaymentFn != nil {
		return m.CreateNeglectedPaymentFn(ctx, n)
	}
	return ErrUnimplemented
}
func (m *SettlementStoreMock) CreateStoppedSettlement(ctx context.Context, s *models.StoppedSettlement) error {
	if m.CreateStoppedSettlementFn != nil {
		return m.CreateStoppedSettlementFn(ctx, s)
	}
	return ErrUnimplemented
}
func (m *SettlementStoreMock) ListAwaitingPayments(ctx context.Context, page, limit int) ([]models.AwaitingPayment, int64, error) {
	if m.ListAwaitingPaymentsFn != nil {
		return m.ListAwaitingPaymentsFn(ctx, page, limit)
	}
	return nil, 0, ErrUnimplemented
}
func (m *SettlementStoreMock) ListExpiredAwaitingPayments(ctx context.Context, criteria time.Time, page, limit int) ([]models.AwaitingPayment, int64, error) {
	if m.ListExpiredAwaitingPaymentsFn != nil {
		return m.ListExpiredAwaitingPaymentsFn(ctx, criteria, page, limit)
	}
	return nil, 0, ErrUnimplemented
}
func (m *SettlementStoreMock) ListAwaitingWithdrawals(ctx context.Context, page, limit int) ([]models.AwaitingWithdrawal, int64, error) {
	if m.ListAwaitingWithdrawalsFn != nil {
		return m.ListAwaitingWithdrawalsFn(ctx, page, limit)
	}
	return nil, 0, ErrUnimplemented
}
func (m *SettlementStoreMock) ListLeftAwaitingWithdrawals(ctx context.Context, criteria time.Time, page, limit int) ([]models.AwaitingWithdrawal, int64, error) {
	if m.ListLeftAwaitingWithdrawalsFn != nil {
		return m.ListLeftAwaitingWithdrawalsFn(ctx, criteria, page, limit)
	}
	return nil, 0, ErrUnimplemented
}

type RatingStoreMock struct {
	CreateConsultantRatingFn              func(ctx context.Context, r *models.ConsultantRating) error
	CreateUserRatingFn                    func(ctx context.Context, r *models.UserRating) error
	GetConsultantRatingByConsultationIDFn func(ctx context.Context, consultationID uint) (*models.ConsultantRating, error)
	GetUserRatingByConsultationIDFn       func(ctx context.Context, consultationID uint) (*models.UserRating, error)
	SaveConsultantRatingFn                func(ctx context.Context, r *models.ConsultantRating) error
	SaveUserRatingFn                      func(ctx context.Context, r *models.UserRating) error
	ListConsultantRatingValuesFn          func(ctx context.Context, consultantID uint) ([]int, error)
	ListUserRatingValuesFn                func(ctx context.Context, userAccountID uint) ([]int, error)
}

func (m *RatingStoreMock) CreateConsultantRating(ctx context.Context, r *models.ConsultantRating) error {
	if m.CreateConsultantRatingFn != nil {
		return m.CreateConsultantRatingFn(ctx, r)
	}
	return ErrUnimplemented
}
func (m *RatingStoreMock) CreateUserRating(ctx context.Context, r *models.UserRating) error {
	if m.CreateUserRatingFn != nil {
		return m.CreateUserRatingFn(ctx, r)
	}
	return ErrUnimplemented
}
func (m *RatingStoreMock) GetConsultantRatingByConsultationID(ctx context.Context, consultationID uint) (*models.ConsultantRating, error) {
	if m.GetConsultantRatingByConsultationIDFn != nil {
		return m.GetConsultantRatingByConsultationIDFn(ctx, consultationID)
	}
	return nil, ErrUnimplemented
}
func (m *RatingStoreMock) GetUserRatingByConsultationID(ctx context.Context, consultationID uint) (*models.UserRating, error) {
	if m.GetUserRatingByConsultationIDFn != nil {
		return m.GetUserRatingByConsultationIDFn(ctx, consultationID)
	}
	return nil, ErrUnimplemented
}
func (m *RatingStoreMock) SaveConsultantRating(ctx context.Context, r *models.ConsultantRating) error {
	if m.SaveConsultantRatingFn != nil {
		return m.SaveConsultantRatingFn(ctx, r)
	}
	return ErrUnimplemented
}
func (m *RatingStoreMock) SaveUserRating(ctx context.Context, r *models.UserRating) error {
	if m.SaveUserRatingFn != nil {
		return m.SaveUserRatingFn(ctx, r)
	}
	return ErrUnimplemented
}
func (m *RatingStoreMock) ListConsultantRatingValues(ctx context.Context, consultantID uint) ([]int, error) {
	if m.ListConsultantRatingValuesFn != nil {
		return m.ListConsultantRatingValuesFn(ctx, consultantID)
	}
	return nil, ErrUnimplemented
}
func (m *RatingStoreMock) ListUserRatingValues(ctx context.Context, userAccountID uint) ([]int, error) {
	if m.ListUserRatingValuesFn != nil {
		return m.ListUserRatingValuesFn(ctx, userAccountID)
	}
	return nil, ErrUnimplemented
}

type DocumentStoreMock struct {
	CreateFn             func(ctx context.Context, d *models.Document) error
	GetByUserAccountIDFn func(ctx context.Context, userAccountID uint) (*models.Document, error)
}

func (m *DocumentStoreMock) Create(ctx context.Context, d *models.Document) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return ErrUnimplemented
}
func (m *DocumentStoreMock) GetByUserAccountID(ctx context.Context, userAccountID uint) (*models.Document, error) {
	if m.GetByUserAccountIDFn != nil {
		return m.GetByUserAccountIDFn(ctx, userAccountID)
	}
	return nil, ErrUnimplemented
}
