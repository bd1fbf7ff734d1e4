package repository

import (
	"context"

	"consulto/internal/models"

	"gorm.io/gorm"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) CreateConsultantRating(ctx context.Context, rating *models.ConsultantRating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *RatingRepository) CreateUserRating(ctx context.Context, rating *models.UserRating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *RatingRepository) GetConsultantRatingByConsultationID(ctx context.Context, consultationID uint) (*models.ConsultantRating, error) {
	var rating models.ConsultantRating
	err := r.db.WithContext(ctx).
		Where("consultation_id = ?", consultationID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) GetUserRatingByConsultationID(ctx context.Context, consultationID uint) (*models.UserRating, error) {
	var rating models.UserRating
	err := r.db.WithContext(ctx).
		Where("consultation_id = ?", consultationID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) SaveConsultantRating(ctx context.Context, rating *models.ConsultantRating) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

func (r *RatingRepository) SaveUserRating(ctx context.Context, rating *models.UserRating) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

func (r *RatingRepository) ListConsultantRatingValues(ctx context.Context, consultantID uint) ([]int, error) {
	var values []int
	err := r.db.WithContext(ctx).
		Model(&models.ConsultantRating{}).
		Where("consultant_id = ? AND rating IS NOT NULL", consultantID).
		Pluck("rating", &values).Error
	return values, err
}

func (r *RatingRepository) ListUserRatingValues(ctx context.Context, userAccountID uint) ([]int, error) {
	var values []int
	err := r.db.WithContext(ctx).
		Model(&models.UserRating{}).
		Where("user_account_id = ? AND rating IS NOT NULL", userAccountID).
		Pluck("rating", &values).Error
	return values, err
}
