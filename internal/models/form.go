package models

import (
	"time"

	"gorm.io/gorm"
)

// Form question count bounds enforced at creation time.
const (
	MinQuestionsPerForm = 1
	MaxQuestionsPerForm = 5
)

// Form is a publicly linkable questionnaire owned by a space.
// PublicLink is generated once at creation and never changes.
type Form struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	SpaceID         uint           `gorm:"index;not null" json:"space_id"`
	Title           string         `gorm:"size:200;not null" json:"title"`
	Description     string         `gorm:"size:500" json:"description"`
	LogoURL         string         `gorm:"size:500" json:"logo_url"`
	ThankYouMessage string         `gorm:"size:500;not null" json:"thank_you_message"`
	OfferDiscount   bool           `gorm:"default:false" json:"offer_discount"`
	DiscountCode    string         `gorm:"size:100" json:"discount_code"`
	DiscountValue   string         `gorm:"size:100" json:"discount_value"`
	RequireAuth     bool           `gorm:"default:false" json:"require_authentication"`
	PublicLink      string         `gorm:"uniqueIndex;size:120;not null" json:"public_link"`
	Questions       []Question     `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"questions,omitempty"`
	Reviews         []Review       `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"reviews,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Form) TableName() string { return "forms" }
