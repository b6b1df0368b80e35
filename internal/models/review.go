package models

import (
	"time"

	"gorm.io/gorm"
)

// Rating bounds for a review. Zero means no rating question was answered.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is the persisted result of one public form submission. Content
// is the newline-joined "question: answer" transcript and is the
// canonical human-readable record. Reviews are created once and never
// mutated.
type Review struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	FormID      uint           `gorm:"index;not null" json:"form_id"`
	Content     string         `gorm:"type:text" json:"content"`
	Rating      int            `gorm:"default:0" json:"rating"`
	Answers     []Answer       `gorm:"foreignKey:ReviewID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"answers,omitempty"`
	SubmittedAt time.Time      `gorm:"index" json:"submitted_at"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Review) TableName() string { return "reviews" }
