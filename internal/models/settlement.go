package models

import "time"

// Settlement rows. Exactly one of AwaitingPayment / AwaitingWithdrawal exists
// per consultation while the settlement is unresolved; the awaiting row is
// deleted in the same transaction that writes the terminal outcome.

type AwaitingPayment struct {
	ID                          uint      `gorm:"primaryKey" json:"id"`
	ConsultationID              uint      `gorm:"not null;uniqueIndex" json:"consultation_id"`
	ConsultantID                uint      `gorm:"not null;index" json:"consultant_id"`
	MeetingAt                   time.Time `gorm:"not null;index" json:"meeting_at"`
	FeePerHourInYen             int       `gorm:"not null" json:"fee_per_hour_in_yen"`
	PlatformFeeRateInPercentage string    `gorm:"size:8;not null" json:"platform_fee_rate_in_percentage"`
	CreatedAt                   time.Time `json:"created_at"`
}

func (AwaitingPayment) TableName() string { return "awaiting_payments" }

type AwaitingWithdrawal struct {
	ID                          uint      `gorm:"primaryKey" json:"id"`
	ConsultationID              uint      `gorm:"not null;uniqueIndex" json:"consultation_id"`
	ConsultantID                uint      `gorm:"not null;index" json:"consultant_id"`
	MeetingAt                   time.Time `gorm:"not null" json:"meeting_at"`
	FeePerHourInYen             int       `gorm:"not null" json:"fee_per_hour_in_yen"`
	PlatformFeeRateInPercentage string    `gorm:"size:8;not null" json:"platform_fee_rate_in_percentage"`
	PaymentConfirmedBy          string    `gorm:"size:255;not null" json:"payment_confirmed_by"`
	CreatedAt                   time.Time `gorm:"index" json:"created_at"`
}

func (AwaitingWithdrawal) TableName() string { return "awaiting_withdrawals" }

// ReceiptOfConsultation is the paid terminal outcome. It snapshots every fee
// input next to the computed reward so the payout can be audited later.
type ReceiptOfConsultation struct {
	ID                          uint      `gorm:"primaryKey" json:"id"`
	ConsultationID              uint      `gorm:"not null;uniqueIndex" json:"consultation_id"`
	ConsultantID                uint      `gorm:"not null;index" json:"consultant_id"`
	MeetingAt                   time.Time `gorm:"not null" json:"meeting_at"`
	FeePerHourInYen             int       `gorm:"not null" json:"fee_per_hour_in_yen"`
	PlatformFeeRateInPercentage string    `gorm:"size:8;not null" json:"platform_fee_rate_in_percentage"`
	TransferFeeInYen            int       `gorm:"not null" json:"transfer_fee_in_yen"`
	RewardInYen                 int       `gorm:"not null" json:"reward_in_yen"`
	SenderName                  string    `gorm:"size:128;not null" json:"sender_name"`
	SettledAt                   time.Time `gorm:"not null" json:"settled_at"`
	SettledBy                   string    `gorm:"size:255;not null" json:"settled_by"`
}

func (ReceiptOfConsultation) TableName() string { return "receipts_of_consultation" }

type NeglectedPayment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ConsultationID  uint      `gorm:"not null;uniqueIndex" json:"consultation_id"`
	ConsultantID    uint      `gorm:"not null;index" json:"consultant_id"`
	MeetingAt       time.Time `gorm:"not null" json:"meeting_at"`
	FeePerHourInYen int       `gorm:"not null" json:"fee_per_hour_in_yen"`
	NeglectedAt     time.Time `gorm:"not null" json:"neglected_at"`
	NeglectedBy     string    `gorm:"size:255;not null" json:"neglected_by"`
}

func (NeglectedPayment) TableName() string { return "neglected_payments" }

type StoppedSettlement struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ConsultationID  uint      `gorm:"not null;uniqueIndex" json:"consultation_id"`
	ConsultantID    uint      `gorm:"not null;index" json:"consultant_id"`
	MeetingAt       time.Time `gorm:"not null" json:"meeting_at"`
	FeePerHourInYen int       `gorm:"not null" json:"fee_per_hour_in_yen"`
	StoppedAt       time.Time `gorm:"not null" json:"stopped_at"`
	StoppedBy       string    `gorm:"size:255;not null" json:"stopped_by"`
}

func (StoppedSettlement) TableName() string { return "stopped_settlements" }
