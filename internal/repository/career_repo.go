package repository

import (
	"context"

	"consulto/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IdentityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// Upsert replaces the verified identity in place keyed by the actor id.
func (r *IdentityRepository) Upsert(ctx context.Context, identity *models.Identity) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_account_id"}},
			UpdateAll: true,
		}).
		Create(identity).Error
}

func (r *IdentityRepository) GetByUserAccountID(ctx context.Context, userAccountID uint) (*models.Identity, error) {
	var identity models.Identity
	err := r.db.WithContext(ctx).
		Where("user_account_id = ?", userAccountID).
		First(&identity).Error
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

type CareerRepository struct {
	db *gorm.DB
}

func NewCareerRepository(db *gorm.DB) *CareerRepository {
	return &CareerRepository{db: db}
}

func (r *CareerRepository) Create(ctx context.Context, c *models.Career) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CareerRepository) ListByUserAccountID(ctx context.Context, userAccountID uint) ([]models.Career, error) {
	var careers []models.Career
	err := r.db.WithContext(ctx).
		Where("user_account_id = ?", userAccountID).
		Order("id ASC").
		Find(&careers).Error
	return careers, err
}

func (r *CareerRepository) CountByUserAccountID(ctx context.Context, userAccountID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Career{}).
		Where("user_account_id = ?", userAccountID).
		Count(&count).Error
	return count, err
}
