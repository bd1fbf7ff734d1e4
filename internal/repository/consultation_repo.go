package repository

import (
	"context"
	"time"

	"consulto/internal/models"

	"gorm.io/gorm"
)

type ConsultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(db *gorm.DB) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

func (r *ConsultationRepository) Create(ctx context.Context, c *models.Consultation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ConsultationRepository) GetByID(ctx context.Context, id uint) (*models.Consultation, error) {
	var c models.Consultation
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConsultationRepository) GetByRoomName(ctx context.Context, roomName string) (*models.Consultation, error) {
	var c models.Consultation
	err := r.db.WithContext(ctx).Where("room_name = ?", roomName).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConsultationRepository) SetUserEnteredAt(ctx context.Context, id uint, t time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Consultation{}).
		Where("id = ? AND user_entered_at IS NULL", id).
		Update("user_entered_at", t).Error
}

func (r *ConsultationRepository) SetConsultantEnteredAt(ctx context.Context, id uint, t time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Consultation{}).
		Where("id = ? AND consultant_entered_at IS NULL", id).
		Update("consultant_entered_at", t).Error
}
