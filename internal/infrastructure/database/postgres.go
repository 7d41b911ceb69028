package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sangkips/sypoint-pos/internal/config"
	"github.com/sangkips/sypoint-pos/internal/domain/entity"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
	"github.com/sangkips/sypoint-pos/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)

	slog.Info("connected to PostgreSQL", slog.String("host", cfg.Host), slog.String("database", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	slog.Info("running database migrations")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Category{},
		&entity.Product{},
		&entity.DiscountType{},
		&entity.Transaction{},
		&entity.TransactionItem{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("database migrations completed")
	return nil
}

// defaultDiscountTypes are the discounts selectable at checkout.
var defaultDiscountTypes = []entity.DiscountType{
	{TypeName: enum.DiscountSeniorCitizen.TypeName(), Rate: decimal.RequireFromString("0.20")},
	{TypeName: enum.DiscountPWD.TypeName(), Rate: decimal.RequireFromString("0.20")},
}

// SeedDefaultData seeds discount types and, when configured, the bootstrap admin.
func SeedDefaultData(db *gorm.DB, admin config.AdminConfig) error {
	slog.Info("seeding default data")

	for i := range defaultDiscountTypes {
		dt := defaultDiscountTypes[i]
		if err := db.Where("type_name = ?", dt.TypeName).FirstOrCreate(&dt).Error; err != nil {
			return fmt.Errorf("seed discount type %s: %w", dt.TypeName, err)
		}
	}

	if admin.Username == "" || admin.Password == "" {
		slog.Info("no bootstrap admin configured")
		return nil
	}

	var existing entity.User
	err := db.Where("username = ?", admin.Username).First(&existing).Error
	if err == nil {
		slog.Info("admin user already exists", slog.String("username", admin.Username))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up admin user: %w", err)
	}

	hashed, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	name := admin.Name
	if name == "" {
		name = "Store Admin"
	}
	user := entity.User{
		Username: admin.Username,
		FullName: name,
		Password: hashed,
		Role:     enum.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	slog.Info("admin user created", slog.String("username", admin.Username))
	return nil
}
