package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/credboost/backend/internal/models"
	"github.com/credboost/backend/pkg/logger"
	"gorm.io/gorm"
)

// Space webhook flavours.
const (
	NotifyTypeSlack   = "slack"
	NotifyTypeGeneric = "generic"
)

type NotificationService struct {
	db     *gorm.DB
	client *http.Client
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		db:     db,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// ReviewNotification is the rendered payload for a space webhook.
type ReviewNotification struct {
	SpaceName string
	FormTitle string
	Rating    int
	Content   string
	Submitted time.Time
}

// ProcessReviewTask loads a submitted review and delivers the space's
// webhook, if one is configured. Used as the queue/worker processor.
func (s *NotificationService) ProcessReviewTask(ctx context.Context, task *ReviewSubmittedTask) error {
	var space models.Space
	if err := s.db.First(&space, task.SpaceID).Error; err != nil {
		return fmt.Errorf("space not found: %w", err)
	}
	if space.NotifyURL == "" {
		logger.Infof("[Notification] No webhook configured for space %d", space.ID)
		return nil
	}

	var form models.Form
	if err := s.db.First(&form, task.FormID).Error; err != nil {
		return fmt.Errorf("form not found: %w", err)
	}
	var review models.Review
	if err := s.db.First(&review, task.ReviewID).Error; err != nil {
		return fmt.Errorf("review not found: %w", err)
	}

	n := &ReviewNotification{
		SpaceName: space.Name,
		FormTitle: form.Title,
		Rating:    review.Rating,
		Content:   review.Content,
		Submitted: review.SubmittedAt,
	}
	return s.Send(ctx, &space, n)
}

// Send delivers a new-review notification over the space's webhook.
func (s *NotificationService) Send(ctx context.Context, space *models.Space, n *ReviewNotification) error {
	logger.Infof("[Notification] Sending %s webhook for space %d", space.NotifyType, space.ID)

	var err error
	switch space.NotifyType {
	case NotifyTypeSlack:
		err = s.sendSlackNotification(ctx, space.NotifyURL, n)
	default:
		err = s.sendGenericWebhook(ctx, space.NotifyURL, n)
	}

	if err != nil {
		logger.Errorf("[Notification] Failed to send notification: %v", err)
		return err
	}

	logger.Infof("[Notification] Notification sent successfully")
	return nil
}

// truncateRunes shortens s to at most max runes, never splitting a
// UTF-8 sequence, and marks the cut with an ellipsis.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}

func (s *NotificationService) sendSlackNotification(ctx context.Context, webhookURL string, n *ReviewNotification) error {
	stars := ""
	for i := 0; i < n.Rating; i++ {
		stars += ":star:"
	}
	if stars == "" {
		stars = "unrated"
	}

	header := fmt.Sprintf("*New review in %s*\n*Form*: %s\n*Rating*: %s",
		n.SpaceName, n.FormTitle, stars)

	content := truncateRunes(n.Content, 3000)

	payload := map[string]interface{}{
		"text": header,
		"blocks": []map[string]interface{}{
			{
				"type": "section",
				"text": map[string]string{
					"type": "mrkdwn",
					"text": header,
				},
			},
			{
				"type": "section",
				"text": map[string]string{
					"type": "mrkdwn",
					"text": content,
				},
			},
		},
	}
	return s.postJSON(ctx, webhookURL, payload)
}

func (s *NotificationService) sendGenericWebhook(ctx context.Context, webhookURL string, n *ReviewNotification) error {
	payload := map[string]interface{}{
		"space":        n.SpaceName,
		"form":         n.FormTitle,
		"rating":       n.Rating,
		"content":      n.Content,
		"submitted_at": n.Submitted.UTC().Format(time.RFC3339),
	}
	return s.postJSON(ctx, webhookURL, payload)
}

func (s *NotificationService) postJSON(ctx context.Context, webhookURL string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	logger.Infof("[Notification] POST %s, payload length: %d", webhookURL, len(body))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	logger.Infof("[Notification] Response: %d - %s", resp.StatusCode, string(respBody))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
