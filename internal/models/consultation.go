package models

import (
	"time"

	"consulto/internal/domain"
)

// Consultation is a scheduled meeting between a user and a consultant. The
// room name correlates the realtime session with later rating and settlement.
type Consultation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserAccountID   uint      `gorm:"not null;index" json:"user_account_id"`
	ConsultantID    uint      `gorm:"not null;index" json:"consultant_id"`
	MeetingAt       time.Time `gorm:"not null;index" json:"meeting_at"`
	RoomName        string    `gorm:"size:64;uniqueIndex;not null" json:"room_name"`
	FeePerHourInYen int       `gorm:"not null" json:"fee_per_hour_in_yen"`
	// The platform fee rate is agreed at booking time. Later configuration
	// changes never touch already-booked consultations.
	PlatformFeeRateInPercentage string     `gorm:"size:8;not null" json:"platform_fee_rate_in_percentage"`
	UserEnteredAt               *time.Time `json:"user_entered_at"`
	ConsultantEnteredAt         *time.Time `json:"consultant_entered_at"`
	CreatedAt                   time.Time  `json:"created_at"`
	UpdatedAt                   time.Time  `json:"updated_at"`

	User       User `gorm:"foreignKey:UserAccountID" json:"-"`
	Consultant User `gorm:"foreignKey:ConsultantID" json:"-"`
}

func (Consultation) TableName() string { return "consultations" }

// MeetingEnd returns the instant the meeting is over.
func (c *Consultation) MeetingEnd() time.Time {
	return c.MeetingAt.Add(domain.MeetingLengthInMinutes * time.Minute)
}
