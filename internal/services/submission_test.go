package services

import (
	"testing"

	"github.com/credboost/backend/internal/models"
)

func TestDeriveRating_FirstRatingWins(t *testing.T) {
	questions := []models.Question{
		{ID: 1, Text: "How was it?", Type: models.QuestionTypeText, Order: 0},
		{ID: 2, Text: "Rate support", Type: models.QuestionTypeRating, Order: 1},
		{ID: 3, Text: "Rate shipping", Type: models.QuestionTypeRating, Order: 2},
	}
	schema := BuildFormSchema(questions)

	rating := deriveRating(schema, map[string]interface{}{
		"1": "Great",
		"2": float64(4),
		"3": float64(2),
	})
	if rating != 4 {
		t.Errorf("rating = %d, expected 4 (first in question order)", rating)
	}
}

func TestDeriveRating_NoRatingAnswered(t *testing.T) {
	questions := []models.Question{
		{ID: 1, Text: "How was it?", Type: models.QuestionTypeText, Order: 0},
		{ID: 2, Text: "Rate us", Type: models.QuestionTypeRating, Order: 1},
	}
	schema := BuildFormSchema(questions)

	rating := deriveRating(schema, map[string]interface{}{
		"1": "Fine",
	})
	if rating != 0 {
		t.Errorf("rating = %d, expected 0 when no rating was given", rating)
	}
}

func TestDeriveRating_IgnoresOutOfRangeNumbers(t *testing.T) {
	questions := []models.Question{
		{ID: 1, Text: "First", Type: models.QuestionTypeRating, Order: 0},
		{ID: 2, Text: "Second", Type: models.QuestionTypeRating, Order: 1},
	}
	schema := BuildFormSchema(questions)

	rating := deriveRating(schema, map[string]interface{}{
		"1": float64(0),
		"2": float64(5),
	})
	if rating != 5 {
		t.Errorf("rating = %d, expected 5 (zero is not a rating)", rating)
	}
}

func TestBuildTranscript(t *testing.T) {
	questions := []models.Question{
		{ID: 1, Text: "How was it?", Type: models.QuestionTypeText, Order: 0},
		{ID: 2, Text: "Pick one", Type: models.QuestionTypeCheckbox, Options: "A,B,C", Order: 1},
	}
	schema := BuildFormSchema(questions)

	content := buildTranscript(schema, map[string]interface{}{
		"1": "Great",
		"2": []interface{}{"A", "B"},
	})

	expected := "How was it?: Great\nPick one: A, B"
	if content != expected {
		t.Errorf("transcript = %q, expected %q", content, expected)
	}
}

func TestBuildTranscript_SkipsUnanswered(t *testing.T) {
	questions := []models.Question{
		{ID: 1, Text: "First", Type: models.QuestionTypeText, Order: 0},
		{ID: 2, Text: "Second", Type: models.QuestionTypeText, Order: 1},
	}
	schema := BuildFormSchema(questions)

	content := buildTranscript(schema, map[string]interface{}{
		"2": "only this",
	})

	expected := "Second: only this"
	if content != expected {
		t.Errorf("transcript = %q, expected %q", content, expected)
	}
}

func TestFlattenValue(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"string", "hello", "hello"},
		{"string slice", []string{"A", "B"}, "A, B"},
		{"interface slice", []interface{}{"x", "y"}, "x, y"},
		{"int", 4, "4"},
		{"integral float", float64(5), "5"},
		{"bool", true, "true"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		if got := flattenValue(tt.value); got != tt.want {
			t.Errorf("%s: flattenValue(%v) = %q, expected %q", tt.name, tt.value, got, tt.want)
		}
	}
}
