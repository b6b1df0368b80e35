package services

import (
	"strings"
	"testing"

	"github.com/credboost/backend/internal/models"
)

func intPtr(n int) *int { return &n }

func validCreateFormRequest() *CreateFormRequest {
	return &CreateFormRequest{
		Title: "Product feedback",
		Questions: []QuestionInput{
			{Text: "How was it?", Type: models.QuestionTypeText, Required: true},
			{Text: "Rate us", Type: models.QuestionTypeRating},
		},
	}
}

func TestValidateFormRequest_Valid(t *testing.T) {
	if fields := validateFormRequest(validCreateFormRequest()); len(fields) != 0 {
		t.Errorf("expected no errors, got %v", fields)
	}
}

func TestValidateFormRequest_TitleLength(t *testing.T) {
	req := validCreateFormRequest()
	req.Title = "ab"
	if fields := validateFormRequest(req); fields["title"] == "" {
		t.Error("two-character title should be rejected")
	}

	req.Title = strings.Repeat("x", 101)
	if fields := validateFormRequest(req); fields["title"] == "" {
		t.Error("101-character title should be rejected")
	}
}

func TestValidateFormRequest_QuestionCount(t *testing.T) {
	req := validCreateFormRequest()
	req.Questions = nil
	if fields := validateFormRequest(req); fields["questions"] == "" {
		t.Error("zero questions should be rejected")
	}

	req = validCreateFormRequest()
	for i := 0; i < 6; i++ {
		req.Questions = append(req.Questions, QuestionInput{
			Text: "Another question", Type: models.QuestionTypeText,
		})
	}
	if fields := validateFormRequest(req); fields["questions"] == "" {
		t.Error("more than five questions should be rejected")
	}
}

func TestValidateFormRequest_QuestionText(t *testing.T) {
	req := validCreateFormRequest()
	req.Questions[0].Text = "ab"
	if fields := validateFormRequest(req); fields["questions.0.text"] == "" {
		t.Error("two-character question text should be rejected")
	}

	req.Questions[0].Text = strings.Repeat("y", 201)
	if fields := validateFormRequest(req); fields["questions.0.text"] == "" {
		t.Error("201-character question text should be rejected")
	}
}

func TestValidateFormRequest_OptionsRequiredForChoice(t *testing.T) {
	req := validCreateFormRequest()
	req.Questions[0] = QuestionInput{Text: "Pick one", Type: models.QuestionTypeRadio}
	if fields := validateFormRequest(req); fields["questions.0.options"] == "" {
		t.Error("radio question without options should be rejected")
	}

	req.Questions[0] = QuestionInput{Text: "Pick any", Type: models.QuestionTypeCheckbox, Options: []string{" ", ""}}
	if fields := validateFormRequest(req); fields["questions.0.options"] == "" {
		t.Error("checkbox question with blank options should be rejected")
	}
}

func TestValidateFormRequest_OptionsForbiddenOtherwise(t *testing.T) {
	req := validCreateFormRequest()
	req.Questions[0].Options = []string{"A"}
	if fields := validateFormRequest(req); fields["questions.0.options"] == "" {
		t.Error("text question with options should be rejected")
	}
}

func TestValidateFormRequest_UnknownType(t *testing.T) {
	req := validCreateFormRequest()
	req.Questions[0].Type = "slider"
	if fields := validateFormRequest(req); fields["questions.0.type"] == "" {
		t.Error("unknown question type should be rejected")
	}
}

func TestValidateFormRequest_DuplicateOrder(t *testing.T) {
	req := validCreateFormRequest()
	req.Questions[0].Order = intPtr(1)
	req.Questions[1].Order = intPtr(1)
	if fields := validateFormRequest(req); fields["questions.1.order"] == "" {
		t.Error("duplicate question order should be rejected")
	}
}

func TestValidateFormRequest_DiscountCode(t *testing.T) {
	req := validCreateFormRequest()
	req.OfferDiscount = true
	if fields := validateFormRequest(req); fields["discount_code"] == "" {
		t.Error("discount offer without a code should be rejected")
	}

	req.DiscountCode = "SAVE10"
	if fields := validateFormRequest(req); fields["discount_code"] != "" {
		t.Errorf("discount offer with a code should pass, got %q", fields["discount_code"])
	}
}

func TestGeneratePublicLink_Format(t *testing.T) {
	link := generatePublicLink(7)

	if !strings.HasPrefix(link, "form-7-") {
		t.Errorf("link %q should start with form-7-", link)
	}

	suffix := strings.TrimPrefix(link, "form-7-")
	if len(suffix) != 13 {
		t.Errorf("suffix %q has length %d, expected 13", suffix, len(suffix))
	}
	if strings.Contains(suffix, "-") {
		t.Errorf("suffix %q should not contain hyphens", suffix)
	}
}

func TestGeneratePublicLink_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		link := generatePublicLink(1)
		if seen[link] {
			t.Fatalf("duplicate link generated: %q", link)
		}
		seen[link] = true
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"UNIQUE constraint failed: forms.public_link", true},
		{"Error 1062: Duplicate entry", true},
		{"connection refused", false},
	}

	for _, tt := range tests {
		err := &stringError{tt.msg}
		if got := isDuplicateKeyError(err); got != tt.want {
			t.Errorf("isDuplicateKeyError(%q) = %v, expected %v", tt.msg, got, tt.want)
		}
	}
}

type stringError struct{ s string }

func (e *stringError) Error() string { return e.s }

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"title": "too short"}}
	if err.Error() != "validation failed" {
		t.Errorf("Error() = %q", err.Error())
	}
}
