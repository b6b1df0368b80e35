package models

import (
	"fmt"

	"github.com/credboost/backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Product{},
		&Space{},
		&Form{},
		&Question{},
		&Review{},
		&Answer{},
		&SystemConfig{},
		&SystemLog{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates the default product and system config rows
// if they do not exist yet.
func SeedDefaultData() error {
	var productCount int64
	DB.Model(&Product{}).Count(&productCount)
	if productCount == 0 {
		defaultProduct := Product{
			Name:        "Default Product",
			Description: "Default product for new spaces",
		}
		if err := DB.Create(&defaultProduct).Error; err != nil {
			return err
		}
	}

	defaultConfigs := []SystemConfig{
		{Key: "plan_limit_free", Value: "2", Type: "int", Group: "plans", Label: "Spaces allowed on the free plan"},
		{Key: "plan_limit_paid", Value: "5", Type: "int", Group: "plans", Label: "Spaces allowed on the paid plan"},
		{Key: "plan_limit_ultra_premium", Value: "10", Type: "int", Group: "plans", Label: "Spaces allowed on the ultra premium plan"},
		{Key: "log_retention_days", Value: "30", Type: "int", Group: "system", Label: "System log retention days"},
	}

	for _, cfg := range defaultConfigs {
		var count int64
		DB.Model(&SystemConfig{}).Where("key = ?", cfg.Key).Count(&count)
		if count == 0 {
			if err := DB.Create(&cfg).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
