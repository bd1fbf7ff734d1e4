package repository

import (
	"context"

	"consulto/internal/models"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, d *models.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) GetByUserAccountID(ctx context.Context, userAccountID uint) (*models.Document, error) {
	var d models.Document
	err := r.db.WithContext(ctx).
		Where("user_account_id = ?", userAccountID).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}
