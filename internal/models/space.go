package models

import (
	"time"

	"gorm.io/gorm"
)

// Space is a tenant-owned collection of review forms scoped to one product.
// The rollup fields (form count, review count, average rating) are never
// stored; services recompute them from child rows on every read.
type Space struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"size:500" json:"description"`
	LogoURL     string         `gorm:"size:500" json:"logo_url"`
	UserID      uint           `gorm:"index;not null" json:"user_id"`
	ProductID   uint           `gorm:"index;not null" json:"product_id"`
	NotifyURL   string         `gorm:"size:500" json:"notify_url"`              // webhook called on new reviews, empty = off
	NotifyType  string         `gorm:"size:20;default:generic" json:"notify_type"` // slack, generic
	Forms       []Form         `gorm:"foreignKey:SpaceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"forms,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Space) TableName() string { return "spaces" }
