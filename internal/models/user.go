package models

import (
	"time"

	"consulto/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID                      uint           `gorm:"primaryKey" json:"id"`
	Email                   string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash            string         `gorm:"size:255" json:"-"`
	Role                    string         `gorm:"size:20;not null;index" json:"role"` // USER | CONSULTANT | ADMIN
	LastName                string         `gorm:"size:64" json:"last_name"`
	FirstName               string         `gorm:"size:64" json:"first_name"`
	LastNameFurigana        string         `gorm:"size:64" json:"last_name_furigana"`
	FirstNameFurigana       string         `gorm:"size:64" json:"first_name_furigana"`
	FeePerHourInYen         int            `gorm:"default:0" json:"fee_per_hour_in_yen"`
	IsBankAccountRegistered bool           `gorm:"default:false" json:"is_bank_account_registered"`
	DisabledAt              *time.Time     `json:"disabled_at"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsConsultant() bool { return u.Role == domain.RoleConsultant }
func (u *User) IsDisabled() bool   { return u.DisabledAt != nil }
