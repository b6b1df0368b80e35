package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription levels and the spaces each one allows.
const (
	PlanFree         = "free"
	PlanPaid         = "paid"
	PlanUltraPremium = "ultra_premium"
)

// User represents an account owner. Password is empty for LDAP users.
type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Username          string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password          string         `gorm:"size:255" json:"-"`
	Email             string         `gorm:"size:255" json:"email"`
	Name              string         `gorm:"size:100" json:"name"`
	Age               *int           `json:"age"`
	Source            string         `gorm:"size:100" json:"source"` // how the user found us, from onboarding
	SubscriptionLevel string         `gorm:"size:50;default:free" json:"subscription_level"`
	Role              string         `gorm:"size:50;default:user" json:"role"`       // admin, user
	AuthType          string         `gorm:"size:20;default:local" json:"auth_type"` // local, ldap
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	OnboardedAt       *time.Time     `json:"onboarded_at"`
	LastLogin         *time.Time     `json:"last_login"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
