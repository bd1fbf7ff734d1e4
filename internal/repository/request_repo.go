package repository

import (
	"context"

	"consulto/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) CreateIdentityRequest(ctx context.Context, req *models.IdentityRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) CreateCareerRequest(ctx context.Context, req *models.CareerRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) GetIdentityRequestByID(ctx context.Context, id uint) (*models.IdentityRequest, error) {
	var req models.IdentityRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) GetCareerRequestByID(ctx context.Context, id uint) (*models.CareerRequest, error) {
	var req models.CareerRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// LockIdentityRequestByID takes FOR UPDATE on the pending row. The second of
// two concurrent reviews blocks here, then observes the row already deleted.
func (r *RequestRepository) LockIdentityRequestByID(ctx context.Context, id uint) (*models.IdentityRequest, error) {
	var req models.IdentityRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) LockCareerRequestByID(ctx context.Context, id uint) (*models.CareerRequest, error) {
	var req models.CareerRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) DeleteIdentityRequest(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.IdentityRequest{}, id).Error
}

func (r *RequestRepository) DeleteCareerRequest(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.CareerRequest{}, id).Error
}

func (r *RequestRepository) CreateApprovedIdentityRequest(ctx context.Context, rec *models.ApprovedIdentityRequest) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RequestRepository) CreateRejectedIdentityRequest(ctx context.Context, rec *models.RejectedIdentityRequest) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RequestRepository) CreateApprovedCareerRequest(ctx context.Context, rec *models.ApprovedCareerRequest) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RequestRepository) CreateRejectedCareerRequest(ctx context.Context, rec *models.RejectedCareerRequest) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RequestRepository) ListIdentityRequests(ctx context.Context, page, limit int) ([]models.IdentityRequest, int64, error) {
	var reqs []models.IdentityRequest
	var total int64
	q := r.db.WithContext(ctx).Model(&models.IdentityRequest{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("requested_at ASC, id ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&reqs).Error
	return reqs, total, err
}

func (r *RequestRepository) ListCareerRequests(ctx context.Context, page, limit int) ([]models.CareerRequest, int64, error) {
	var reqs []models.CareerRequest
	var total int64
	q := r.db.WithContext(ctx).Model(&models.CareerRequest{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("requested_at ASC, id ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&reqs).Error
	return reqs, total, err
}
