package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"medigate/domain"
	"medigate/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func GetDatabaseURL() string {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_SSLMODE"),
	)
	return dsn
}

func BootDB() (*gorm.DB, error) {
	address := GetDatabaseURL()

	// Show SQL in development only
	var gormLogger logger.Interface
	if os.Getenv("APP_ENV") == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	} else {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(address), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	// Connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.OTP{},
	); err != nil {
		return nil, err
	}

	if err := seedAdmin(db); err != nil {
		return nil, err
	}

	log.Print("Connected to ", utils.ColorText("Database", utils.Green), " successfully")
	return db, nil
}

// seedAdmin creates the initial ADMIN account from env. Registration can
// never produce an ADMIN, so this is the only way one comes to exist.
func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.User{}).Where("role = ?", domain.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPass := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPass == "" {
		log.Print("Skipping admin seeding, missing ADMIN_EMAIL or ADMIN_PASSWORD in env")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := domain.User{
		FullName:      os.Getenv("ADMIN_NAME"),
		Email:         adminEmail,
		PhoneNumber:   os.Getenv("ADMIN_PHONE"),
		Password:      string(hashed),
		Role:          domain.RoleAdmin,
		AccountStatus: domain.StatusActive,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Seeded admin user: %s", adminEmail)
	return nil
}
