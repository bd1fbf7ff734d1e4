package models

import "time"

// Rating rows are created alongside the consultation with a NULL rating.
// The rating moves from NULL to a fixed integer exactly once; re-rating is
// rejected, never overwritten.

// ConsultantRating is the user's rating of the consultant.
type ConsultantRating struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ConsultationID uint       `gorm:"not null;uniqueIndex" json:"consultation_id"`
	ConsultantID   uint       `gorm:"not null;index" json:"consultant_id"`
	Rating         *int       `json:"rating"`
	RatedAt        *time.Time `json:"rated_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (ConsultantRating) TableName() string { return "consultant_ratings" }

// UserRating is the consultant's rating of the user.
type UserRating struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ConsultationID uint       `gorm:"not null;uniqueIndex" json:"consultation_id"`
	UserAccountID  uint       `gorm:"not null;index" json:"user_account_id"`
	Rating         *int       `json:"rating"`
	RatedAt        *time.Time `json:"rated_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (UserRating) TableName() string { return "user_ratings" }
