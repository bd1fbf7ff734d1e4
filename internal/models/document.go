package models

import "time"

// Document maps an actor to its search-index document. The pointer row is
// created inside the same transaction as the first career promotion so the
// database never believes a document exists that was never announced.
type Document struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserAccountID uint      `gorm:"not null;uniqueIndex" json:"user_account_id"`
	DocumentID    string    `gorm:"size:32;uniqueIndex;not null" json:"document_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Document) TableName() string { return "documents" }
