package services

import (
	"database/sql"
	"time"

	"github.com/credboost/backend/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStatsRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type DashboardStats struct {
	TotalSpaces   int64   `json:"total_spaces"`
	TotalForms    int64   `json:"total_forms"`
	TotalReviews  int64   `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
}

type SpaceStats struct {
	SpaceID     uint    `json:"space_id"`
	SpaceName   string  `json:"space_name"`
	FormCount   int64   `json:"form_count"`
	ReviewCount int64   `json:"review_count"`
	AvgRating   float64 `json:"avg_rating"`
}

type RecentReview struct {
	ReviewID    uint      `json:"review_id"`
	FormID      uint      `json:"form_id"`
	FormTitle   string    `json:"form_title"`
	SpaceID     uint      `json:"space_id"`
	SpaceName   string    `json:"space_name"`
	Rating      int       `json:"rating"`
	Content     string    `json:"content"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type DashboardResponse struct {
	Stats         DashboardStats `json:"stats"`
	SpaceStats    []SpaceStats   `json:"space_stats"`
	RecentReviews []RecentReview `json:"recent_reviews"`
}

// GetStats aggregates an owner's spaces, forms and reviews for the
// dashboard. The date range filters reviews only; space and form
// totals are lifetime counts.
func (s *DashboardService) GetStats(userID uint, req *DashboardStatsRequest) (*DashboardResponse, error) {
	var startDate, endDate time.Time
	var err error

	if req.StartDate != "" {
		startDate, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			startDate = time.Now().AddDate(0, 0, -30)
		}
	} else {
		startDate = time.Now().AddDate(0, 0, -30)
	}

	if req.EndDate != "" {
		endDate, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			endDate = time.Now()
		}
		endDate = endDate.Add(24*time.Hour - time.Second)
	} else {
		endDate = time.Now()
	}

	var stats DashboardStats

	s.db.Model(&models.Space{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalSpaces)

	s.db.Model(&models.Form{}).
		Joins("JOIN spaces ON spaces.id = forms.space_id AND spaces.deleted_at IS NULL").
		Where("spaces.user_id = ?", userID).
		Count(&stats.TotalForms)

	s.db.Model(&models.Review{}).
		Joins("JOIN forms ON forms.id = reviews.form_id AND forms.deleted_at IS NULL").
		Joins("JOIN spaces ON spaces.id = forms.space_id AND spaces.deleted_at IS NULL").
		Where("spaces.user_id = ? AND reviews.submitted_at BETWEEN ? AND ?", userID, startDate, endDate).
		Count(&stats.TotalReviews)

	var avg sql.NullFloat64
	s.db.Model(&models.Review{}).
		Joins("JOIN forms ON forms.id = reviews.form_id AND forms.deleted_at IS NULL").
		Joins("JOIN spaces ON spaces.id = forms.space_id AND spaces.deleted_at IS NULL").
		Where("spaces.user_id = ? AND reviews.submitted_at BETWEEN ? AND ?",
			userID, startDate, endDate).
		Select("AVG(reviews.rating)").
		Scan(&avg)
	if avg.Valid {
		stats.AverageRating = avg.Float64
	}

	spaceStats, err := s.spaceStats(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	recent, err := s.recentReviews(userID, 10)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Stats:         stats,
		SpaceStats:    spaceStats,
		RecentReviews: recent,
	}, nil
}

func (s *DashboardService) spaceStats(userID uint, startDate, endDate time.Time) ([]SpaceStats, error) {
	var spaces []models.Space
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&spaces).Error; err != nil {
		return nil, err
	}

	out := make([]SpaceStats, 0, len(spaces))
	for _, space := range spaces {
		row := SpaceStats{SpaceID: space.ID, SpaceName: space.Name}

		s.db.Model(&models.Form{}).
			Where("space_id = ?", space.ID).
			Count(&row.FormCount)

		s.db.Model(&models.Review{}).
			Joins("JOIN forms ON forms.id = reviews.form_id AND forms.deleted_at IS NULL").
			Where("forms.space_id = ? AND reviews.submitted_at BETWEEN ? AND ?", space.ID, startDate, endDate).
			Count(&row.ReviewCount)

		var avg sql.NullFloat64
		s.db.Model(&models.Review{}).
			Joins("JOIN forms ON forms.id = reviews.form_id AND forms.deleted_at IS NULL").
			Where("forms.space_id = ? AND reviews.submitted_at BETWEEN ? AND ?",
				space.ID, startDate, endDate).
			Select("AVG(reviews.rating)").
			Scan(&avg)
		if avg.Valid {
			row.AvgRating = avg.Float64
		}

		out = append(out, row)
	}
	return out, nil
}

func (s *DashboardService) recentReviews(userID uint, limit int) ([]RecentReview, error) {
	var rows []RecentReview
	err := s.db.Model(&models.Review{}).
		Select(`reviews.id AS review_id, reviews.form_id, forms.title AS form_title,
			spaces.id AS space_id, spaces.name AS space_name,
			reviews.rating, reviews.content, reviews.submitted_at`).
		Joins("JOIN forms ON forms.id = reviews.form_id AND forms.deleted_at IS NULL").
		Joins("JOIN spaces ON spaces.id = forms.space_id AND spaces.deleted_at IS NULL").
		Where("spaces.user_id = ?", userID).
		Order("reviews.submitted_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
