package repository

import (
	"context"
	"time"

	"consulto/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettlementRepository struct {
	db *gorm.DB
}

func NewSettlementRepository(db *gorm.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

func (r *SettlementRepository) CreateAwaitingPayment(ctx context.Context, a *models.AwaitingPayment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *SettlementRepository) CreateAwaitingWithdrawal(ctx context.Context, a *models.AwaitingWithdrawal) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// LockAwaitingPaymentByConsultationID takes FOR UPDATE on the awaiting row so
// that settle/neglect transitions for the same consultation serialize.
func (r *SettlementRepository) LockAwaitingPaymentByConsultationID(ctx context.Context, consultationID uint) (*models.AwaitingPayment, error) {
	var a models.AwaitingPayment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("consultation_id = ?", consultationID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SettlementRepository) LockAwaitingWithdrawalByConsultationID(ctx context.Context, consultationID uint) (*models.AwaitingWithdrawal, error) {
	var a models.AwaitingWithdrawal
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("consultation_id = ?", consultationID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SettlementRepository) DeleteAwaitingPayment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.AwaitingPayment{}, id).Error
}

func (r *SettlementRepository) DeleteAwaitingWithdrawal(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.AwaitingWithdrawal{}, id).Error
}

func (r *SettlementRepository) CreateReceipt(ctx context.Context, receipt *models.ReceiptOfConsultation) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *SettlementRepository) CreateNeglectedPayment(ctx context.Context, n *models.NeglectedPayment) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *SettlementRepository) CreateStoppedSettlement(ctx context.Context, s *models.StoppedSettlement) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SettlementRepository) ListAwaitingPayments(ctx context.Context, page, limit int) ([]models.AwaitingPayment, int64, error) {
	var rows []models.AwaitingPayment
	var total int64
	q := r.db.WithContext(ctx).Model(&models.AwaitingPayment{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("meeting_at ASC, id ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *SettlementRepository) ListExpiredAwaitingPayments(ctx context.Context, criteria time.Time, page, limit int) ([]models.AwaitingPayment, int64, error) {
	var rows []models.AwaitingPayment
	var total int64
	q := r.db.WithContext(ctx).
		Model(&models.AwaitingPayment{}).
		Where("meeting_at <= ?", criteria)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("meeting_at ASC, id ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *SettlementRepository) ListAwaitingWithdrawals(ctx context.Context, page, limit int) ([]models.AwaitingWithdrawal, int64, error) {
	var rows []models.AwaitingWithdrawal
	var total int64
	q := r.db.WithContext(ctx).Model(&models.AwaitingWithdrawal{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at ASC, id ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *SettlementRepository) ListLeftAwaitingWithdrawals(ctx context.Context, criteria time.Time, page, limit int) ([]models.AwaitingWithdrawal, int64, error) {
	var rows []models.AwaitingWithdrawal
	var total int64
	q := r.db.WithContext(ctx).
		Model(&models.AwaitingWithdrawal{}).
		Where("created_at <= ?", criteria)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at ASC, id ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}
