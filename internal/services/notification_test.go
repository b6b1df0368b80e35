package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/credboost/backend/internal/models"
)

func TestSend_GenericWebhook(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewNotificationService(nil)
	space := &models.Space{Name: "My Shop", NotifyURL: server.URL, NotifyType: NotifyTypeGeneric}

	err := svc.Send(context.Background(), space, &ReviewNotification{
		SpaceName: "My Shop",
		FormTitle: "Checkout feedback",
		Rating:    4,
		Content:   "How was it?: Great",
		Submitted: time.Now(),
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if received["space"] != "My Shop" {
		t.Errorf("space = %v, expected My Shop", received["space"])
	}
	if received["form"] != "Checkout feedback" {
		t.Errorf("form = %v, expected Checkout feedback", received["form"])
	}
	if rating, ok := received["rating"].(float64); !ok || rating != 4 {
		t.Errorf("rating = %v, expected 4", received["rating"])
	}
}

func TestSend_SlackPayloadShape(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewNotificationService(nil)
	space := &models.Space{Name: "My Shop", NotifyURL: server.URL, NotifyType: NotifyTypeSlack}

	err := svc.Send(context.Background(), space, &ReviewNotification{
		SpaceName: "My Shop",
		FormTitle: "Checkout feedback",
		Rating:    5,
		Content:   "How was it?: Great",
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if _, ok := received["text"]; !ok {
		t.Error("slack payload should carry a text field")
	}
	blocks, ok := received["blocks"].([]interface{})
	if !ok || len(blocks) != 2 {
		t.Errorf("slack payload should carry two blocks, got %v", received["blocks"])
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short stays whole", "short", 10, "short"},
		{"exact length stays whole", "exact", 5, "exact"},
		{"ascii cut", "abcdef", 3, "abc..."},
		{"multibyte cut keeps whole runes", "héllo wörld", 4, "héll..."},
		{"cjk cut", "五つ星のレビュー", 3, "五つ星..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateRunes(tt.input, tt.max)
			if got != tt.expected {
				t.Errorf("truncateRunes(%q, %d) = %q, expected %q", tt.input, tt.max, got, tt.expected)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncateRunes(%q, %d) produced invalid UTF-8", tt.input, tt.max)
			}
		})
	}
}

func TestSend_SlackTruncatesLongContentOnRuneBoundary(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewNotificationService(nil)
	space := &models.Space{Name: "My Shop", NotifyURL: server.URL, NotifyType: NotifyTypeSlack}

	err := svc.Send(context.Background(), space, &ReviewNotification{
		SpaceName: "My Shop",
		FormTitle: "Checkout feedback",
		Rating:    5,
		Content:   strings.Repeat("é", 4000),
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	blocks := received["blocks"].([]interface{})
	text := blocks[1].(map[string]interface{})["text"].(map[string]interface{})["text"].(string)
	if !utf8.ValidString(text) {
		t.Error("truncated content is not valid UTF-8")
	}
	if !strings.HasSuffix(text, "...") {
		t.Error("truncated content should end with an ellipsis")
	}
	if n := utf8.RuneCountInString(strings.TrimSuffix(text, "...")); n != 3000 {
		t.Errorf("expected 3000 runes of content, got %d", n)
	}
}

func TestSend_WebhookFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewNotificationService(nil)
	space := &models.Space{Name: "My Shop", NotifyURL: server.URL, NotifyType: NotifyTypeGeneric}

	err := svc.Send(context.Background(), space, &ReviewNotification{SpaceName: "My Shop"})
	if err == nil {
		t.Error("Send() should return an error on a 5xx response")
	}
}
