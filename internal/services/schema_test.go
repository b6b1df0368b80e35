package services

import (
	"testing"

	"github.com/credboost/backend/internal/models"
)

func sampleQuestions() []models.Question {
	return []models.Question{
		{ID: 3, FormID: 1, Text: "Anything else?", Type: models.QuestionTypeTextarea, Required: false, Order: 2},
		{ID: 1, FormID: 1, Text: "How was it?", Type: models.QuestionTypeText, Required: true, Order: 0},
		{ID: 2, FormID: 1, Text: "Pick one", Type: models.QuestionTypeCheckbox, Required: true, Options: "A,B,C", Order: 1},
		{ID: 4, FormID: 1, Text: "Rate us", Type: models.QuestionTypeRating, Required: true, Order: 3},
	}
}

func TestBuildFormSchema_KeysInQuestionOrder(t *testing.T) {
	schema := BuildFormSchema(sampleQuestions())

	expected := []string{"1", "2", "3", "4"}
	keys := schema.Keys()

	if len(keys) != len(expected) {
		t.Fatalf("Keys() returned %d keys, expected %d", len(keys), len(expected))
	}
	for i, key := range expected {
		if keys[i] != key {
			t.Errorf("keys[%d] = %q, expected %q", i, keys[i], key)
		}
	}
}

func TestBuildFormSchema_RuleDispatch(t *testing.T) {
	schema := BuildFormSchema(sampleQuestions())

	rule, ok := schema.Rule("2")
	if !ok {
		t.Fatal("rule for key 2 should exist")
	}
	if rule.Type != models.QuestionTypeCheckbox {
		t.Errorf("Type = %q, expected checkbox", rule.Type)
	}
	if !rule.Required {
		t.Error("rule should be required")
	}
	if len(rule.Options) != 3 || rule.Options[0] != "A" {
		t.Errorf("Options = %v, expected [A B C]", rule.Options)
	}

	if _, ok := schema.Rule("99"); ok {
		t.Error("rule for unknown key should not exist")
	}
}

func TestFormSchema_Defaults(t *testing.T) {
	schema := BuildFormSchema(sampleQuestions())
	defaults := schema.Defaults()

	if v, ok := defaults["1"].(string); !ok || v != "" {
		t.Errorf("text default = %v, expected empty string", defaults["1"])
	}
	if v, ok := defaults["2"].([]string); !ok || len(v) != 0 {
		t.Errorf("checkbox default = %v, expected empty slice", defaults["2"])
	}
	if v, ok := defaults["4"].(int); !ok || v != 0 {
		t.Errorf("rating default = %v, expected 0", defaults["4"])
	}
}

func TestFormSchema_Validate_Valid(t *testing.T) {
	schema := BuildFormSchema(sampleQuestions())

	errs := schema.Validate(map[string]interface{}{
		"1": "Great",
		"2": []interface{}{"A", "B"},
		"4": float64(5),
	})

	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestFormSchema_Validate_RequiredText(t *testing.T) {
	schema := BuildFormSchema(sampleQuestions())

	errs := schema.Validate(map[string]interface{}{
		"1": "",
		"2": []interface{}{"A"},
		"4": float64(3),
	})

	if errs["1"] != MsgFieldRequired {
		t.Errorf("errs[1] = %q, expected %q", errs["1"], MsgFieldRequired)
	}
}

func TestFormSchema_Validate_RequiredCheckbox(t *testing.T) {
	schema := BuildFormSchema(sampleQuestions())

	tests := []struct {
		name  string
		value interface{}
	}{
		{"empty slice", []interface{}{}},
		{"missing", nil},
	}

	for _, tt := range tests {
		values := map[string]interface{}{
			"1": "ok",
			"4": float64(3),
		}
		if tt.value != nil {
			values["2"] = tt.value
		}

		errs := schema.Validate(values)
		if errs["2"] != MsgSelectAtLeastOne {
			t.Errorf("%s: errs[2] = %q, expected %q", tt.name, errs["2"], MsgSelectAtLeastOne)
		}
	}
}

func TestFormSchema_Validate_RatingBounds(t *testing.T) {
	schema := BuildFormSchema(sampleQuestions())

	for _, bad := range []float64{6, -1, 3.5} {
		errs := schema.Validate(map[string]interface{}{
			"1": "ok",
			"2": []interface{}{"A"},
			"4": bad,
		})
		if errs["4"] != MsgRatingOutOfRange {
			t.Errorf("rating %v: errs[4] = %q, expected %q", bad, errs["4"], MsgRatingOutOfRange)
		}
	}
}

func TestFormSchema_Validate_RequiredRatingMissing(t *testing.T) {
	schema := BuildFormSchema(sampleQuestions())

	errs := schema.Validate(map[string]interface{}{
		"1": "ok",
		"2": []interface{}{"A"},
	})
	if errs["4"] != MsgFieldRequired {
		t.Errorf("errs[4] = %q, expected %q", errs["4"], MsgFieldRequired)
	}
}

func TestFormSchema_Validate_OptionalRatingZero(t *testing.T) {
	questions := []models.Question{
		{ID: 1, Text: "Rate us", Type: models.QuestionTypeRating, Required: false, Order: 0},
	}
	schema := BuildFormSchema(questions)

	errs := schema.Validate(map[string]interface{}{"1": float64(0)})
	if len(errs) != 0 {
		t.Errorf("optional unanswered rating should be valid, got %v", errs)
	}
}

func TestFormSchema_Validate_UnknownKey(t *testing.T) {
	schema := BuildFormSchema(sampleQuestions())

	errs := schema.Validate(map[string]interface{}{
		"1":  "ok",
		"2":  []interface{}{"A"},
		"4":  float64(3),
		"77": "stray",
	})
	if errs["77"] != MsgUnknownQuestion {
		t.Errorf("errs[77] = %q, expected %q", errs["77"], MsgUnknownQuestion)
	}
}

func TestFormSchema_Validate_WrongTypes(t *testing.T) {
	schema := BuildFormSchema(sampleQuestions())

	errs := schema.Validate(map[string]interface{}{
		"1": 42,
		"2": "not-a-list",
		"4": float64(3),
	})
	if errs["1"] != MsgInvalidValue {
		t.Errorf("errs[1] = %q, expected %q", errs["1"], MsgInvalidValue)
	}
	if errs["2"] != MsgInvalidValue {
		t.Errorf("errs[2] = %q, expected %q", errs["2"], MsgInvalidValue)
	}
}

func TestAsRating(t *testing.T) {
	tests := []struct {
		value interface{}
		want  int
		ok    bool
	}{
		{3, 3, true},
		{int64(5), 5, true},
		{float64(4), 4, true},
		{float64(4.5), 0, false},
		{"4", 0, false},
		{nil, 0, false},
	}

	for _, tt := range tests {
		got, ok := asRating(tt.value)
		if got != tt.want || ok != tt.ok {
			t.Errorf("asRating(%v) = (%d, %v), expected (%d, %v)", tt.value, got, ok, tt.want, tt.ok)
		}
	}
}
