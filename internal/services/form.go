package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/credboost/backend/internal/models"
	"github.com/credboost/backend/pkg/response"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// publicLinkAttempts bounds retries when a generated link collides
// with the unique index.
const publicLinkAttempts = 3

// ValidationError carries per-field messages for a 422 response.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

type FormService struct {
	db *gorm.DB
}

func NewFormService(db *gorm.DB) *FormService {
	return &FormService{db: db}
}

type QuestionInput struct {
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
	Order    *int     `json:"order"`
}

type CreateFormRequest struct {
	Title           string          `json:"title" binding:"required"`
	Description     string          `json:"description"`
	LogoURL         string          `json:"logo_url"`
	ThankYouMessage string          `json:"thank_you_message"`
	OfferDiscount   bool            `json:"offer_discount"`
	DiscountCode    string          `json:"discount_code"`
	DiscountValue   string          `json:"discount_value"`
	RequireAuth     bool            `json:"require_authentication"`
	Questions       []QuestionInput `json:"questions"`
}

// PublicQuestion is the response-side view of a question. Key is the
// map key an answer must be submitted under.
type PublicQuestion struct {
	Key      string   `json:"key"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	Order    int      `json:"order"`
}

// PublicFormView is everything an anonymous visitor needs to render a
// response form. Discount details are withheld until after submission.
type PublicFormView struct {
	SpaceID     uint                   `json:"space_id"`
	FormID      uint                   `json:"form_id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	LogoURL     string                 `json:"logo_url"`
	RequireAuth bool                   `json:"require_authentication"`
	PublicLink  string                 `json:"public_link"`
	Questions   []PublicQuestion       `json:"questions"`
	Defaults    map[string]interface{} `json:"defaults"`
}

// Create validates and persists a form with its questions in one
// transaction. The caller must own the target space.
func (s *FormService) Create(userID, spaceID uint, req *CreateFormRequest) (*models.Form, error) {
	if err := s.requireSpaceOwnership(userID, spaceID); err != nil {
		return nil, err
	}

	if fields := validateFormRequest(req); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	thankYou := req.ThankYouMessage
	if thankYou == "" {
		thankYou = "Thank you for your feedback!"
	}

	form := &models.Form{
		SpaceID:         spaceID,
		Title:           req.Title,
		Description:     req.Description,
		LogoURL:         req.LogoURL,
		ThankYouMessage: thankYou,
		OfferDiscount:   req.OfferDiscount,
		DiscountCode:    req.DiscountCode,
		DiscountValue:   req.DiscountValue,
		RequireAuth:     req.RequireAuth,
	}
	for i, q := range req.Questions {
		order := i
		if q.Order != nil {
			order = *q.Order
		}
		form.Questions = append(form.Questions, models.Question{
			Text:     strings.TrimSpace(q.Text),
			Type:     q.Type,
			Required: q.Required,
			Options:  models.JoinOptions(q.Options),
			Order:    order,
		})
	}

	// The link carries the space id so public URLs stay routable even
	// if the unique suffix ever has to be regenerated.
	var lastErr error
	for attempt := 0; attempt < publicLinkAttempts; attempt++ {
		form.PublicLink = generatePublicLink(spaceID)
		lastErr = s.db.Create(form).Error
		if lastErr == nil {
			return form, nil
		}
		if !isDuplicateKeyError(lastErr) {
			return nil, lastErr
		}
		form.ID = 0
		for i := range form.Questions {
			form.Questions[i].ID = 0
			form.Questions[i].FormID = 0
		}
	}
	return nil, lastErr
}

// GetForOwner returns a form with its questions, scoped to the owner.
// Forms in other users' spaces are indistinguishable from missing ones.
func (s *FormService) GetForOwner(userID, formID uint) (*models.Form, error) {
	var form models.Form
	err := s.db.
		Joins("JOIN spaces ON spaces.id = forms.space_id AND spaces.deleted_at IS NULL").
		Where("forms.id = ? AND spaces.user_id = ?", formID, userID).
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
	return &form, nil
}

// ListBySpace returns the owner's forms in a space, newest first.
func (s *FormService) ListBySpace(userID, spaceID uint) ([]models.Form, error) {
	if err := s.requireSpaceOwnership(userID, spaceID); err != nil {
		return nil, err
	}
	var forms []models.Form
	err := s.db.Where("space_id = ?", spaceID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Order("created_at DESC").
		Find(&forms).Error
	if err != nil {
		return nil, err
	}
	return forms, nil
}

// GetPublic returns the anonymous view of a form addressed by space and
// form id.
func (s *FormService) GetPublic(spaceID, formID uint) (*PublicFormView, error) {
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
	return publicView(&form), nil
}

// GetPublicByLink resolves a shareable link to the anonymous form view.
func (s *FormService) GetPublicByLink(link string) (*PublicFormView, error) {
	var form models.Form
	err := s.db.Where("public_link = ?", link).
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
	return publicView(&form), nil
}

// Delete removes a form and everything hanging off it.
func (s *FormService) Delete(userID, formID uint) error {
	if _, err := s.GetForOwner(userID, formID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id IN (?)",
			tx.Model(&models.Review{}).Select("id").Where("form_id = ?", formID),
		).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id = ?", formID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id = ?", formID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Form{}, formID).Error
	})
}

type ReviewListRequest struct {
	Page     int `form:"page" binding:"min=0"`
	PageSize int `form:"page_size" binding:"min=0,max=100"`
}

type ReviewListResponse struct {
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Items    []models.Review `json:"items"`
}

// ListReviews returns a form's reviews newest first, owner scoped.
func (s *FormService) ListReviews(userID, formID uint, req *ReviewListRequest) (*ReviewListResponse, error) {
	if _, err := s.GetForOwner(userID, formID); err != nil {
		return nil, err
	}

	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var reviews []models.Review
	var total int64

	query := s.db.Model(&models.Review{}).Where("form_id = ?", formID)
	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	err := query.Preload("Answers").
		Order("submitted_at DESC").
		Offset(offset).Limit(req.PageSize).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	return &ReviewListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    reviews,
	}, nil
}

func (s *FormService) requireSpaceOwnership(userID, spaceID uint) error {
	var space models.Space
	err := s.db.Where("id = ? AND user_id = ?", spaceID, userID).First(&space).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewNotFound("space not found")
	}
	return err
}

func publicView(form *models.Form) *PublicFormView {
	schema := BuildFormSchema(form.Questions)

	questions := make([]PublicQuestion, 0, len(form.Questions))
	for _, key := range schema.Keys() {
		rule, _ := schema.Rule(key)
		questions = append(questions, PublicQuestion{
			Key:      key,
			Text:     rule.QuestionText,
			Type:     rule.Type,
			Required: rule.Required,
			Options:  rule.Options,
			Order:    rule.Order,
		})
	}

	return &PublicFormView{
		SpaceID:     form.SpaceID,
		FormID:      form.ID,
		Title:       form.Title,
		Description: form.Description,
		LogoURL:     form.LogoURL,
		RequireAuth: form.RequireAuth,
		PublicLink:  form.PublicLink,
		Questions:   questions,
		Defaults:    schema.Defaults(),
	}
}

// validateFormRequest returns per-field messages keyed the way the
// form builder names its inputs.
func validateFormRequest(req *CreateFormRequest) map[string]string {
	fields := make(map[string]string)

	title := strings.TrimSpace(req.Title)
	if n := utf8.RuneCountInString(title); n < 3 || n > 100 {
		fields["title"] = "Title must be between 3 and 100 characters"
	}
	if n := len(req.Questions); n < models.MinQuestionsPerForm || n > models.MaxQuestionsPerForm {
		fields["questions"] = fmt.Sprintf("A form must have between %d and %d questions",
			models.MinQuestionsPerForm, models.MaxQuestionsPerForm)
	}
	if req.OfferDiscount && strings.TrimSpace(req.DiscountCode) == "" {
		fields["discount_code"] = "Discount code is required when offering a discount"
	}

	seenOrders := make(map[int]bool)
	for i, q := range req.Questions {
		name := fmt.Sprintf("questions.%d", i)

		text := strings.TrimSpace(q.Text)
		if n := utf8.RuneCountInString(text); n < 3 || n > 200 {
			fields[name+".text"] = "Question text must be between 3 and 200 characters"
		}
		if !models.ValidQuestionType(q.Type) {
			fields[name+".type"] = "Unknown question type"
		}
		if models.IsChoiceType(q.Type) && len(compactOptions(q.Options)) == 0 {
			fields[name+".options"] = "Choice questions need at least one option"
		}
		if !models.IsChoiceType(q.Type) && len(compactOptions(q.Options)) > 0 {
			fields[name+".options"] = "Only choice questions may carry options"
		}

		order := i
		if q.Order != nil {
			order = *q.Order
		}
		if seenOrders[order] {
			fields[name+".order"] = "Question order must be unique within the form"
		}
		seenOrders[order] = true
	}

	return fields
}

func compactOptions(options []string) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		if s := strings.TrimSpace(o); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// generatePublicLink builds the shareable slug for a space's form.
func generatePublicLink(spaceID uint) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	return fmt.Sprintf("form-%d-%s", spaceID, suffix)
}

// isDuplicateKeyError matches unique-index violations across the
// supported drivers.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
