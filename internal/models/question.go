package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Question types. Choice types carry options; rating renders a 1-5 star
// widget; the rest are free text.
const (
	QuestionTypeText     = "text"
	QuestionTypeTextarea = "textarea"
	QuestionTypeRadio    = "radio"
	QuestionTypeCheckbox = "checkbox"
	QuestionTypeRating   = "rating"
)

// ValidQuestionType reports whether t is one of the known question types.
func ValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeText, QuestionTypeTextarea, QuestionTypeRadio,
		QuestionTypeCheckbox, QuestionTypeRating:
		return true
	}
	return false
}

// IsChoiceType reports whether t requires an options list.
func IsChoiceType(t string) bool {
	return t == QuestionTypeRadio || t == QuestionTypeCheckbox
}

// Question is one field of a form. Order determines display and
// validation-key ordering and is unique within a form. Options holds
// the comma-separated choice list for radio/checkbox questions.
type Question struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FormID    uint           `gorm:"index:idx_question_form_order,unique;not null" json:"form_id"`
	Text      string         `gorm:"size:200;not null" json:"text"`
	Type      string         `gorm:"size:20;not null" json:"type"`
	Required  bool           `gorm:"default:false" json:"required"`
	Options   string         `gorm:"size:1000" json:"-"` // a,b,c
	Order     int            `gorm:"column:order_index;index:idx_question_form_order,unique;not null" json:"order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Question) TableName() string { return "questions" }

// OptionList splits the stored options into a slice, empty for
// non-choice questions.
func (q *Question) OptionList() []string {
	if q.Options == "" {
		return nil
	}
	parts := strings.Split(q.Options, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// JoinOptions renders an option slice into the stored CSV form.
func JoinOptions(options []string) string {
	trimmed := make([]string, 0, len(options))
	for _, o := range options {
		if s := strings.TrimSpace(o); s != "" {
			trimmed = append(trimmed, s)
		}
	}
	return strings.Join(trimmed, ",")
}
