package services

import (
	"sort"
	"strconv"

	"github.com/credboost/backend/internal/models"
)

// Inline validation messages shown next to a failing field.
const (
	MsgFieldRequired    = "This field is required"
	MsgSelectAtLeastOne = "Please select at least one option"
	MsgRatingOutOfRange = "Rating must be between 1 and 5"
	MsgInvalidValue     = "Invalid value for this field"
	MsgUnknownQuestion  = "Unknown question"
)

// FieldRule is the validation contract for a single question. Rules are
// resolved by question type through a closed dispatch, never by
// inspecting submitted values.
type FieldRule struct {
	QuestionID   uint
	QuestionText string
	Type         string
	Required     bool
	Options      []string
	Order        int
}

// FormSchema is the validation schema compiled from a form's question
// list at request time. It is used both by the builder's live preview
// and by the public submission endpoint.
type FormSchema struct {
	rules map[string]*FieldRule
	keys  []string // question-order field keys
}

// FieldKey is the map key a question's answer is submitted under.
func FieldKey(questionID uint) string {
	return strconv.FormatUint(uint64(questionID), 10)
}

// BuildFormSchema compiles an ordered question list into a FormSchema.
// Build never fails; all failures surface per field at validation time.
func BuildFormSchema(questions []models.Question) *FormSchema {
	ordered := make([]models.Question, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	s := &FormSchema{rules: make(map[string]*FieldRule, len(ordered))}
	for _, q := range ordered {
		key := FieldKey(q.ID)
		s.rules[key] = &FieldRule{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			Type:         q.Type,
			Required:     q.Required,
			Options:      q.OptionList(),
			Order:        q.Order,
		}
		s.keys = append(s.keys, key)
	}
	return s
}

// Keys returns the field keys in question order.
func (s *FormSchema) Keys() []string {
	return s.keys
}

// Rule returns the rule for a field key.
func (s *FormSchema) Rule(key string) (*FieldRule, bool) {
	r, ok := s.rules[key]
	return r, ok
}

// Len returns the number of fields in the schema.
func (s *FormSchema) Len() int {
	return len(s.keys)
}

// Defaults returns the initial value map used to render an empty
// response form: empty set for checkbox, 0 for rating, empty string
// otherwise.
func (s *FormSchema) Defaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(s.keys))
	for _, key := range s.keys {
		switch s.rules[key].Type {
		case models.QuestionTypeCheckbox:
			defaults[key] = []string{}
		case models.QuestionTypeRating:
			defaults[key] = 0
		default:
			defaults[key] = ""
		}
	}
	return defaults
}

// Validate checks a submitted answer map against the schema and returns
// per-field error messages keyed by field key. An empty map means the
// submission is valid. Keys that do not belong to the form are rejected.
func (s *FormSchema) Validate(values map[string]interface{}) map[string]string {
	errs := make(map[string]string)

	for key := range values {
		if _, ok := s.rules[key]; !ok {
			errs[key] = MsgUnknownQuestion
		}
	}

	for _, key := range s.keys {
		rule := s.rules[key]
		value, present := values[key]

		switch rule.Type {
		case models.QuestionTypeCheckbox:
			selected, ok := asStringSlice(value)
			if present && !ok {
				errs[key] = MsgInvalidValue
				continue
			}
			if rule.Required && len(selected) == 0 {
				errs[key] = MsgSelectAtLeastOne
			}

		case models.QuestionTypeRating:
			if !present || isZeroRating(value) {
				if rule.Required {
					errs[key] = MsgFieldRequired
				}
				continue
			}
			rating, ok := asRating(value)
			if !ok || rating < models.MinRating || rating > models.MaxRating {
				errs[key] = MsgRatingOutOfRange
			}

		default:
			text, ok := asString(value)
			if present && !ok {
				errs[key] = MsgInvalidValue
				continue
			}
			if rule.Required && text == "" {
				errs[key] = MsgFieldRequired
			}
		}
	}

	return errs
}

// --- value coercion for JSON-decoded submissions ---

func asString(v interface{}) (string, bool) {
	if v == nil {
		return "", true
	}
	s, ok := v.(string)
	return s, ok
}

func asStringSlice(v interface{}) ([]string, bool) {
	switch vv := v.(type) {
	case nil:
		return nil, true
	case []string:
		return vv, true
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// asRating extracts an integral rating from a JSON number.
func asRating(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// isZeroRating reports whether the value is the unanswered rating
// default (0 or nil).
func isZeroRating(v interface{}) bool {
	if v == nil {
		return true
	}
	n, ok := asRating(v)
	return ok && n == 0
}
