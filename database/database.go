package database

import (
	"errors"
	"fmt"

	"ordergrab/config"
	"ordergrab/helpers"
	"ordergrab/logging"
	"ordergrab/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "", "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func Connect(cfg *config.Config) error {
	d, err := dialector(cfg)
	if err != nil {
		return err
	}

	db, err := gorm.Open(d, &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db
	logging.Logger.Info("✅ Connected to database", zap.String("driver", cfg.DBDriver))

	if cfg.DBAutoMigrate {
		logging.Logger.Info("🟡 Starting auto-migration...")
		if err := Migrate(DB); err != nil {
			return fmt.Errorf("failed to auto-migrate database: %w", err)
		}
		logging.Logger.Info("✅ Auto migration completed")
	}

	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Order{},
		&models.Commission{},
		&models.Transaction{},
		&models.Address{},
		&models.Bank{},
		&models.PaymentSettings{},
	)
}

// SeedAdmin creates the admin account once; an existing username is left untouched.
func SeedAdmin(db *gorm.DB, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     username,
		PasswordHash: string(hash),
		ReferralCode: helpers.GenerateReferralCode(),
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logging.Logger.Info("👤 Seeded admin account", zap.String("username", username))
	return nil
}
