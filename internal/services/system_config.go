package services

import (
	"strconv"

	"github.com/credboost/backend/internal/models"
	"gorm.io/gorm"
)

type SystemConfigService struct {
	db *gorm.DB
}

func NewSystemConfigService(db *gorm.DB) *SystemConfigService {
	return &SystemConfigService{db: db}
}

// Get returns the value for a config key, empty string when absent.
func (s *SystemConfigService) Get(key string) string {
	var cfg models.SystemConfig
	if err := s.db.Where("key = ?", key).First(&cfg).Error; err != nil {
		return ""
	}
	return cfg.Value
}

// GetWithDefault returns the value for key, or def when the row is
// missing or empty.
func (s *SystemConfigService) GetWithDefault(key, def string) string {
	if v := s.Get(key); v != "" {
		return v
	}
	return def
}

// GetInt returns the integer value for key, or def when missing or
// unparsable.
func (s *SystemConfigService) GetInt(key string, def int) int {
	v := s.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Set upserts a config value.
func (s *SystemConfigService) Set(key, value string) error {
	var cfg models.SystemConfig
	err := s.db.Where("key = ?", key).First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		return s.db.Create(&models.SystemConfig{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	cfg.Value = value
	return s.db.Save(&cfg).Error
}
