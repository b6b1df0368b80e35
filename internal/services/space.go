package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/credboost/backend/internal/models"
	"github.com/credboost/backend/pkg/response"
	"gorm.io/gorm"
)

type SpaceService struct {
	db     *gorm.DB
	config *SystemConfigService
}

func NewSpaceService(db *gorm.DB) *SpaceService {
	return &SpaceService{db: db, config: NewSystemConfigService(db)}
}

type CreateSpaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	ProductID   *uint  `json:"product_id"`
	NotifyURL   string `json:"notify_url"`
	NotifyType  string `json:"notify_type" binding:"omitempty,oneof=slack generic"`
}

type UpdateSpaceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
	NotifyURL   *string `json:"notify_url"`
	NotifyType  string  `json:"notify_type" binding:"omitempty,oneof=slack generic"`
}

// SpaceView is a space together with its on-read rollups. The rollups
// are computed from child rows on every request, never stored.
type SpaceView struct {
	models.Space
	FormCount     int64   `json:"form_count"`
	ReviewCount   int64   `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// planLimit returns how many spaces a subscription level allows.
func (s *SpaceService) planLimit(level string) int {
	switch level {
	case models.PlanPaid:
		return s.config.GetInt("plan_limit_paid", 5)
	case models.PlanUltraPremium:
		return s.config.GetInt("plan_limit_ultra_premium", 10)
	default:
		return s.config.GetInt("plan_limit_free", 2)
	}
}

// Create adds a space for the user, subject to the subscription's
// space limit.
func (s *SpaceService) Create(userID uint, req *CreateSpaceRequest) (*models.Space, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		return nil, &ValidationError{Fields: map[string]string{
			"name": "Space name must be between 2 and 100 characters",
		}}
	}

	var count int64
	s.db.Model(&models.Space{}).Where("user_id = ?", userID).Count(&count)
	limit := s.planLimit(user.SubscriptionLevel)
	if count >= int64(limit) {
		return nil, response.NewForbidden(fmt.Sprintf(
			"space limit reached: the %s plan allows %d spaces", user.SubscriptionLevel, limit))
	}

	productID, err := s.resolveProductID(req.ProductID)
	if err != nil {
		return nil, err
	}

	notifyType := req.NotifyType
	if notifyType == "" {
		notifyType = NotifyTypeGeneric
	}

	space := &models.Space{
		Name:        name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		UserID:      userID,
		ProductID:   productID,
		NotifyURL:   req.NotifyURL,
		NotifyType:  notifyType,
	}
	if err := s.db.Create(space).Error; err != nil {
		return nil, err
	}
	return space, nil
}

// List returns all of a user's spaces with rollups, newest first.
func (s *SpaceService) List(userID uint) ([]SpaceView, error) {
	var spaces []models.Space
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&spaces).Error; err != nil {
		return nil, err
	}

	views := make([]SpaceView, 0, len(spaces))
	for i := range spaces {
		view, err := s.withRollups(&spaces[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Get returns one space with rollups. Other users' spaces read as
// missing.
func (s *SpaceService) Get(userID, spaceID uint) (*SpaceView, error) {
	space, err := s.ownedSpace(userID, spaceID)
	if err != nil {
		return nil, err
	}
	return s.withRollups(space)
}

// Update applies partial changes to a space.
func (s *SpaceService) Update(userID, spaceID uint, req *UpdateSpaceRequest) (*models.Space, error) {
	space, err := s.ownedSpace(userID, spaceID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		name := strings.TrimSpace(req.Name)
		if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
			return nil, &ValidationError{Fields: map[string]string{
				"name": "Space name must be between 2 and 100 characters",
			}}
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}
	if req.NotifyURL != nil {
		updates["notify_url"] = *req.NotifyURL
	}
	if req.NotifyType != "" {
		updates["notify_type"] = req.NotifyType
	}

	if len(updates) > 0 {
		if err := s.db.Model(space).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return space, nil
}

// Delete removes a space and all forms, questions, reviews and answers
// under it.
func (s *SpaceService) Delete(userID, spaceID uint) error {
	if _, err := s.ownedSpace(userID, spaceID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		formIDs := tx.Model(&models.Form{}).Select("id").Where("space_id = ?", spaceID)
		reviewIDs := tx.Model(&models.Review{}).Select("id").Where("form_id IN (?)", formIDs)

		if err := tx.Where("review_id IN (?)", reviewIDs).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id IN (?)", formIDs).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id IN (?)", formIDs).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("space_id = ?", spaceID).Delete(&models.Form{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Space{}, spaceID).Error
	})
}

func (s *SpaceService) ownedSpace(userID, spaceID uint) (*models.Space, error) {
	var space models.Space
	err := s.db.Where("id = ? AND user_id = ?", spaceID, userID).First(&space).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewNotFound("space not found")
	}
	if err != nil {
		return nil, err
	}
	return &space, nil
}

// withRollups computes form count, review count and the mean over all
// review ratings for a space. Unrated reviews carry rating 0 and pull
// the mean down, so the average always divides by the review count.
func (s *SpaceService) withRollups(space *models.Space) (*SpaceView, error) {
	view := &SpaceView{Space: *space}

	if err := s.db.Model(&models.Form{}).
		Where("space_id = ?", space.ID).
		Count(&view.FormCount).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Review{}).
		Joins("JOIN forms ON forms.id = reviews.form_id AND forms.deleted_at IS NULL").
		Where("forms.space_id = ?", space.ID).
		Count(&view.ReviewCount).Error; err != nil {
		return nil, err
	}

	var avg sql.NullFloat64
	if err := s.db.Model(&models.Review{}).
		Joins("JOIN forms ON forms.id = reviews.form_id AND forms.deleted_at IS NULL").
		Where("forms.space_id = ?", space.ID).
		Select("AVG(reviews.rating)").
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg.Valid {
		view.AverageRating = avg.Float64
	}
	return view, nil
}

// resolveProductID falls back to the default seeded product.
func (s *SpaceService) resolveProductID(requested *uint) (uint, error) {
	if requested != nil {
		var product models.Product
		if err := s.db.First(&product, *requested).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, response.NewNotFound("product not found")
			}
			return 0, err
		}
		return product.ID, nil
	}

	var product models.Product
	if err := s.db.Order("id ASC").First(&product).Error; err != nil {
		return 0, err
	}
	return product.ID, nil
}
