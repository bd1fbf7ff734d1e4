package database

import (
	"log"
	"time"

	"consulto/config"
	"consulto/internal/domain"
	"consulto/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.IdentityRequest{},
		&models.CareerRequest{},
		&models.ApprovedIdentityRequest{},
		&models.RejectedIdentityRequest{},
		&models.ApprovedCareerRequest{},
		&models.RejectedCareerRequest{},
		&models.Identity{},
		&models.Career{},
		&models.Consultation{},
		&models.AwaitingPayment{},
		&models.AwaitingWithdrawal{},
		&models.ReceiptOfConsultation{},
		&models.NeglectedPayment{},
		&models.StoppedSettlement{},
		&models.ConsultantRating{},
		&models.UserRating{},
		&models.Document{},
	)
}

// SeedAdmin creates the initial admin account if none exists yet.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-change-me"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[SEED] admin password hash: %v", err)
		return
	}
	admin := &models.User{
		Email:        "admin@consulto.example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("[SEED] admin account: %v", err)
		return
	}
	log.Printf("[SEED] created initial admin account %s", admin.Email)
}
