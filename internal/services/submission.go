package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/credboost/backend/internal/models"
	"github.com/credboost/backend/pkg/logger"
	"github.com/credboost/backend/pkg/response"
	"gorm.io/gorm"
)

type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

type SubmitRequest struct {
	Values map[string]interface{} `json:"values" binding:"required"`
}

// SubmitResult is what the respondent sees after a successful
// submission. Discount details appear only when the form offers one.
type SubmitResult struct {
	ReviewID        uint   `json:"review_id"`
	ThankYouMessage string `json:"thank_you_message"`
	OfferDiscount   bool   `json:"offer_discount"`
	DiscountCode    string `json:"discount_code,omitempty"`
	DiscountValue   string `json:"discount_value,omitempty"`
}

// Submit validates a public submission against the form's schema and
// persists the review together with its answer rows in one
// transaction. userID is 0 for anonymous respondents.
func (s *SubmissionService) Submit(spaceID, formID, userID uint, values map[string]interface{}) (*SubmitResult, error) {
	var form models.Form
	err := s.db.Where("id = ? AND space_id = ?", formID, spaceID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		First(&form).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewNotFound("form not found")
	}
	if err != nil {
		return nil, err
	}

	if form.RequireAuth && userID == 0 {
		return nil, response.NewUnauthorized("sign in to submit this form")
	}

	schema := BuildFormSchema(form.Questions)
	if fieldErrs := schema.Validate(values); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	review := models.Review{
		FormID:      form.ID,
		Content:     buildTranscript(schema, values),
		Rating:      deriveRating(schema, values),
		SubmittedAt: time.Now(),
	}
	for _, key := range schema.Keys() {
		value, present := values[key]
		if !present {
			continue
		}
		rule, _ := schema.Rule(key)
		review.Answers = append(review.Answers, models.Answer{
			QuestionID: rule.QuestionID,
			Value:      flattenValue(value),
		})
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&review).Error
	}); err != nil {
		return nil, err
	}

	if q := GetTaskQueue(); q != nil {
		task := &ReviewSubmittedTask{
			ReviewID: review.ID,
			FormID:   form.ID,
			SpaceID:  form.SpaceID,
		}
		if err := q.Enqueue(task); err != nil {
			logger.Warnf("[Submission] Failed to enqueue notification for review %d: %v", review.ID, err)
		}
	}

	result := &SubmitResult{
		ReviewID:        review.ID,
		ThankYouMessage: form.ThankYouMessage,
		OfferDiscount:   form.OfferDiscount,
	}
	if form.OfferDiscount {
		result.DiscountCode = form.DiscountCode
		result.DiscountValue = form.DiscountValue
	}
	return result, nil
}

// deriveRating scans answers in question order and returns the first
// numeric value inside the rating bounds, or 0 when none was given.
func deriveRating(schema *FormSchema, values map[string]interface{}) int {
	for _, key := range schema.Keys() {
		value, present := values[key]
		if !present {
			continue
		}
		if n, ok := asRating(value); ok && n >= models.MinRating && n <= models.MaxRating {
			return n
		}
	}
	return 0
}

// buildTranscript renders the human-readable review body, one
// "question: answer" line per answered question, in question order.
func buildTranscript(schema *FormSchema, values map[string]interface{}) string {
	var lines []string
	for _, key := range schema.Keys() {
		value, present := values[key]
		if !present {
			continue
		}
		rule, _ := schema.Rule(key)
		lines = append(lines, rule.QuestionText+": "+flattenValue(value))
	}
	return strings.Join(lines, "\n")
}

// flattenValue renders a submitted value for storage. Multi-select
// answers are comma-joined.
func flattenValue(v interface{}) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case []string:
		return strings.Join(vv, ", ")
	case []interface{}:
		parts := make([]string, 0, len(vv))
		for _, item := range vv {
			parts = append(parts, flattenValue(item))
		}
		return strings.Join(parts, ", ")
	case int:
		return strconv.Itoa(vv)
	case float64:
		if vv == float64(int(vv)) {
			return strconv.Itoa(int(vv))
		}
		return strconv.FormatFloat(vv, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(vv)
	}
	return ""
}
