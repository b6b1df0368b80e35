package models

import (
	"time"
)

// Answer is one question/value pair belonging to a review. Multi-select
// values are stored comma-joined. Answers are written atomically with
// their parent review and share its lifecycle.
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReviewID   uint      `gorm:"index;not null" json:"review_id"`
	QuestionID uint      `gorm:"index;not null" json:"question_id"`
	Value      string    `gorm:"type:text" json:"value"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Answer) TableName() string { return "answers" }
