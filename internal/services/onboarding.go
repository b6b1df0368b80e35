package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/credboost/backend/internal/models"
	"gorm.io/gorm"
)

type OnboardingService struct {
	db     *gorm.DB
	spaces *SpaceService
}

func NewOnboardingService(db *gorm.DB) *OnboardingService {
	return &OnboardingService{db: db, spaces: NewSpaceService(db)}
}

type OnboardingRequest struct {
	Name                  string `json:"name" binding:"required"`
	Age                   *int   `json:"age"`
	Source                string `json:"source"`
	FirstSpaceName        string `json:"first_space_name"`
	FirstSpaceDescription string `json:"first_space_description"`
	FirstSpaceLogo        string `json:"first_space_logo"`
}

type OnboardingResult struct {
	User       *models.User  `json:"user"`
	FirstSpace *models.Space `json:"first_space,omitempty"`
}

// Complete fills in the user's profile and optionally creates their
// first space. Running it again just updates the profile.
func (s *OnboardingService) Complete(userID uint, req *OnboardingRequest) (*OnboardingResult, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	name := strings.TrimSpace(req.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		fields["name"] = "Name must be between 2 and 100 characters"
	}
	if req.Age != nil && (*req.Age < 13 || *req.Age > 120) {
		fields["age"] = "Age must be between 13 and 120"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	updates := map[string]interface{}{
		"name":   name,
		"source": strings.TrimSpace(req.Source),
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if user.OnboardedAt == nil {
		now := time.Now()
		updates["onboarded_at"] = now
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}

	result := &OnboardingResult{User: &user}

	// First onboarding run gets a starter space when a name was given.
	if req.FirstSpaceName != "" {
		var spaceCount int64
		s.db.Model(&models.Space{}).Where("user_id = ?", userID).Count(&spaceCount)
		if spaceCount == 0 {
			space, err := s.spaces.Create(userID, &CreateSpaceRequest{
				Name:        req.FirstSpaceName,
				Description: req.FirstSpaceDescription,
				LogoURL:     req.FirstSpaceLogo,
			})
			if err != nil {
				return nil, err
			}
			result.FirstSpace = space
		}
	}

	return result, nil
}

type SubscriptionInfo struct {
	Level       string `json:"level"`
	SpaceLimit  int    `json:"space_limit"`
	SpacesUsed  int64  `json:"spaces_used"`
	IsOnboarded bool   `json:"is_onboarded"`
}

// Subscription reports the user's plan, its space allowance and usage.
func (s *OnboardingService) Subscription(userID uint) (*SubscriptionInfo, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	var used int64
	s.db.Model(&models.Space{}).Where("user_id = ?", userID).Count(&used)

	return &SubscriptionInfo{
		Level:       user.SubscriptionLevel,
		SpaceLimit:  s.spaces.planLimit(user.SubscriptionLevel),
		SpacesUsed:  used,
		IsOnboarded: user.OnboardedAt != nil,
	}, nil
}
