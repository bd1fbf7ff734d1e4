package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repos bundles transaction-scoped stores.
type Repos struct {
	Users         UserStore
	Requests      RequestStore
	Identities    IdentityStore
	Careers       CareerStore
	Consultations ConsultationStore
	Settlements   SettlementStore
	Ratings       RatingStore
	Documents     DocumentStore
}

// TxManager runs a unit of work inside one database transaction. Row locks
// taken through the passed-in repos are held until the transaction ends.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}

func NewRepos(db *gorm.DB) Repos {
	return Repos{
		Users:         NewUserRepository(db),
		Requests:      NewRequestRepository(db),
		Identities:    NewIdentityRepository(db),
		Careers:       NewCareerRepository(db),
		Consultations: NewConsultationRepository(db),
		Settlements:   NewSettlementRepository(db),
		Ratings:       NewRatingRepository(db),
		Documents:     NewDocumentRepository(db),
	}
}

type GormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

func (m *GormTxManager) WithinTx(ctx context.Context, fn func(r Repos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	})
}
