package repository

import (
	"context"
	"time"

	"consulto/internal/models"
)

// Store interfaces are the seam between services and gorm. Every method that
// participates in a review or settlement transition has a Lock* variant; the
// fixed acquisition order is always actor row first, then the request or
// settlement row, then dependent inserts.

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// LockByIDShare takes a shared lock: blocks concurrent deletion of the
	// actor without serializing unrelated reviews for the same actor.
	LockByIDShare(ctx context.Context, id uint) (*models.User, error)
	// LockByID takes an exclusive lock on the actor row.
	LockByID(ctx context.Context, id uint) (*models.User, error)
}

type RequestStore interface {
	CreateIdentityRequest(ctx context.Context, r *models.IdentityRequest) error
	CreateCareerRequest(ctx context.Context, r *models.CareerRequest) error
	GetIdentityRequestByID(ctx context.Context, id uint) (*models.IdentityRequest, error)
	GetCareerRequestByID(ctx context.Context, id uint) (*models.CareerRequest, error)
	LockIdentityRequestByID(ctx context.Context, id uint) (*models.IdentityRequest, error)
	LockCareerRequestByID(ctx context.Context, id uint) (*models.CareerRequest, error)
	DeleteIdentityRequest(ctx context.Context, id uint) error
	DeleteCareerRequest(ctx context.Context, id uint) error
	CreateApprovedIdentityRequest(ctx context.Context, rec *models.ApprovedIdentityRequest) error
	CreateRejectedIdentityRequest(ctx context.Context, rec *models.RejectedIdentityRequest) error
	CreateApprovedCareerRequest(ctx context.Context, rec *models.ApprovedCareerRequest) error
	CreateRejectedCareerRequest(ctx context.Context, rec *models.RejectedCareerRequest) error
	ListIdentityRequests(ctx context.Context, page, limit int) ([]models.IdentityRequest, int64, error)
	ListCareerRequests(ctx context.Context, page, limit int) ([]models.CareerRequest, int64, error)
}

type IdentityStore interface {
	Upsert(ctx context.Context, identity *models.Identity) error
	GetByUserAccountID(ctx context.Context, userAccountID uint) (*models.Identity, error)
}

type CareerStore interface {
	Create(ctx context.Context, c *models.Career) error
	ListByUserAccountID(ctx context.Context, userAccountID uint) ([]models.Career, error)
	CountByUserAccountID(ctx context.Context, userAccountID uint) (int64, error)
}

type ConsultationStore interface {
	Create(ctx context.Context, c *models.Consultation) error
	GetByID(ctx context.Context, id uint) (*models.Consultation, error)
	GetByRoomName(ctx context.Context, roomName string) (*models.Consultation, error)
	SetUserEnteredAt(ctx context.Context, id uint, t time.Time) error
	SetConsultantEnteredAt(ctx context.Context, id uint, t time.Time) error
}

type SettlementStore interface {
	CreateAwaitingPayment(ctx context.Context, a *models.AwaitingPayment) error
	CreateAwaitingWithdrawal(ctx context.Context, a *models.AwaitingWithdrawal) error
	LockAwaitingPaymentByConsultationID(ctx context.Context, consultationID uint) (*models.AwaitingPayment, error)
	LockAwaitingWithdrawalByConsultationID(ctx context.Context, consultationID uint) (*models.AwaitingWithdrawal, error)
	DeleteAwaitingPayment(ctx context.Context, id uint) error
	DeleteAwaitingWithdrawal(ctx context.Context, id uint) error
	CreateReceipt(ctx context.Context, r *models.ReceiptOfConsultation) error
	CreateNeglectedPayment(ctx context.Context, n *models.NeglectedPayment) error
	CreateStoppedSettlement(ctx context.Context, s *models.StoppedSettlement) error
	ListAwaitingPayments(ctx context.Context, page, limit int) ([]models.AwaitingPayment, int64, error)
	// ListExpiredAwaitingPayments returns rows whose meeting_at is at or
	// before the criteria instant.
	ListExpiredAwaitingPayments(ctx context.Context, criteria time.Time, page, limit int) ([]models.AwaitingPayment, int64, error)
	ListAwaitingWithdrawals(ctx context.Context, page, limit int) ([]models.AwaitingWithdrawal, int64, error)
	// ListLeftAwaitingWithdrawals returns rows whose created_at is at or
	// before the criteria instant.
	ListLeftAwaitingWithdrawals(ctx context.Context, criteria time.Time, page, limit int) ([]models.AwaitingWithdrawal, int64, error)
}

type RatingStore interface {
	CreateConsultantRating(ctx context.Context, r *models.ConsultantRating) error
	CreateUserRating(ctx context.Context, r *models.UserRating) error
	GetConsultantRatingByConsultationID(ctx context.Context, consultationID uint) (*models.ConsultantRating, error)
	GetUserRatingByConsultationID(ctx context.Context, consultationID uint) (*models.UserRating, error)
	SaveConsultantRating(ctx context.Context, r *models.ConsultantRating) error
	SaveUserRating(ctx context.Context, r *models.UserRating) error
	ListConsultantRatingValues(ctx context.Context, consultantID uint) ([]int, error)
	ListUserRatingValues(ctx context.Context, userAccountID uint) ([]int, error)
}

type DocumentStore interface {
	Create(ctx context.Context, d *models.Document) error
	GetByUserAccountID(ctx context.Context, userAccountID uint) (*models.Document, error)
}
