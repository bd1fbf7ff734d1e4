package models

import "time"

// Terminal review records. Exactly one is written per reviewed request and
// none of them is ever updated or deleted afterwards.

type ApprovedIdentityRequest struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	UserAccountID  uint   `gorm:"not null;index" json:"user_account_id"`
	Kind           string `gorm:"size:10;not null" json:"kind"`
	IdentityDetail `gorm:"embedded"`
	Image1Key      string    `gorm:"size:128;not null" json:"-"`
	Image2Key      *string   `gorm:"size:128" json:"-"`
	RequestedAt    time.Time `gorm:"not null" json:"requested_at"`
	ApprovedAt     time.Time `gorm:"not null" json:"approved_at"`
	ApprovedBy     string    `gorm:"size:255;not null" json:"approved_by"`
}

func (ApprovedIdentityRequest) TableName() string { return "approved_identity_requests" }

type RejectedIdentityRequest struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	UserAccountID  uint   `gorm:"not null;index" json:"user_account_id"`
	Kind           string `gorm:"size:10;not null" json:"kind"`
	IdentityDetail `gorm:"embedded"`
	RequestedAt    time.Time `gorm:"not null" json:"requested_at"`
	RejectedAt     time.Time `gorm:"not null" json:"rejected_at"`
	RejectedBy     string    `gorm:"size:255;not null" json:"rejected_by"`
	Reason         string    `gorm:"size:255;not null" json:"reason"`
}

func (RejectedIdentityRequest) TableName() string { return "rejected_identity_requests" }

type ApprovedCareerRequest struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	UserAccountID uint `gorm:"not null;index" json:"user_account_id"`
	CareerDetail  `gorm:"embedded"`
	Image1Key     string    `gorm:"size:128;not null" json:"-"`
	Image2Key     *string   `gorm:"size:128" json:"-"`
	RequestedAt   time.Time `gorm:"not null" json:"requested_at"`
	ApprovedAt    time.Time `gorm:"not null" json:"approved_at"`
	ApprovedBy    string    `gorm:"size:255;not null" json:"approved_by"`
}

func (ApprovedCareerRequest) TableName() string { return "approved_career_requests" }

type RejectedCareerRequest struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	UserAccountID uint `gorm:"not null;index" json:"user_account_id"`
	CareerDetail  `gorm:"embedded"`
	RequestedAt   time.Time `gorm:"not null" json:"requested_at"`
	RejectedAt    time.Time `gorm:"not null" json:"rejected_at"`
	RejectedBy    string    `gorm:"size:255;not null" json:"rejected_by"`
	Reason        string    `gorm:"size:255;not null" json:"reason"`
}

func (RejectedCareerRequest) TableName() string { return "rejected_career_requests" }
