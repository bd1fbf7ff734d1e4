package models

import "time"

// Identity is the promoted, verified identity of an actor. Created on first
// identity approval, replaced in place on identity-update approval.
type Identity struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	UserAccountID  uint `gorm:"not null;uniqueIndex" json:"user_account_id"`
	IdentityDetail `gorm:"embedded"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Identity) TableName() string { return "identities" }

// Career is a promoted career entry, created when a career request is
// approved. It feeds the consultant's search-index document.
type Career struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	UserAccountID uint `gorm:"not null;index" json:"user_account_id"`
	CareerDetail  `gorm:"embedded"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Career) TableName() string { return "careers" }
