package models

import "time"

// IdentityDetail is the payload shared by pending identity requests and their
// terminal approved/rejected copies.
type IdentityDetail struct {
	LastName          string    `gorm:"size:64;not null" json:"last_name"`
	FirstName         string    `gorm:"size:64;not null" json:"first_name"`
	LastNameFurigana  string    `gorm:"size:64;not null" json:"last_name_furigana"`
	FirstNameFurigana string    `gorm:"size:64;not null" json:"first_name_furigana"`
	DateOfBirth       time.Time `gorm:"not null" json:"date_of_birth"`
	Prefecture        string    `gorm:"size:32;not null" json:"prefecture"`
	City              string    `gorm:"size:64;not null" json:"city"`
	AddressLine1      string    `gorm:"size:128;not null" json:"address_line1"`
	AddressLine2      *string   `gorm:"size:128" json:"address_line2"`
	TelephoneNumber   string    `gorm:"size:13;not null" json:"telephone_number"`
}

// IdentityRequest is a pending identity verification awaiting admin review.
// Kind CREATE is a first submission, UPDATE changes an approved identity.
type IdentityRequest struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	UserAccountID  uint    `gorm:"not null;uniqueIndex" json:"user_account_id"`
	Kind           string  `gorm:"size:10;not null" json:"kind"` // CREATE | UPDATE
	IdentityDetail `gorm:"embedded"`
	Image1Key      string    `gorm:"size:128;not null" json:"-"`
	Image2Key      *string   `gorm:"size:128" json:"-"`
	RequestedAt    time.Time `gorm:"not null;index" json:"requested_at"`
}

func (IdentityRequest) TableName() string { return "identity_requests" }

// CareerDetail is the payload shared by pending career requests, their
// terminal copies and the promoted career rows.
type CareerDetail struct {
	CompanyName          string     `gorm:"size:128;not null" json:"company_name"`
	DepartmentName       *string    `gorm:"size:128" json:"department_name"`
	Office               *string    `gorm:"size:128" json:"office"`
	CareerStartDate      time.Time  `gorm:"not null" json:"career_start_date"`
	CareerEndDate        *time.Time `json:"career_end_date"`
	ContractType         string     `gorm:"size:20;not null" json:"contract_type"`
	Profession           *string    `gorm:"size:64" json:"profession"`
	AnnualIncomeInManYen *int       `json:"annual_income_in_man_yen"`
	IsManager            bool       `gorm:"default:false" json:"is_manager"`
	PositionName         *string    `gorm:"size:64" json:"position_name"`
	IsNewGraduate        bool       `gorm:"default:false" json:"is_new_graduate"`
	Note                 *string    `gorm:"type:text" json:"note"`
}

// CareerRequest is a pending career submission awaiting admin review.
type CareerRequest struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	UserAccountID uint `gorm:"not null;index" json:"user_account_id"`
	CareerDetail  `gorm:"embedded"`
	Image1Key     string    `gorm:"size:128;not null" json:"-"`
	Image2Key     *string   `gorm:"size:128" json:"-"`
	RequestedAt   time.Time `gorm:"not null;index" json:"requested_at"`
}

func (CareerRequest) TableName() string { return "career_requests" }
