package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes one rejected request or stimulus field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

type ValidationErrors []ValidationError

// Error names every offending field, e.g. "validation failed: rt, gender".
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return "validation failed: " + ve[0].Error()
	}
	fields := make([]string, len(ve))
	for i, e := range ve {
		fields[i] = e.Field
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// Messages of the custom tags registered by the validator package.
var ruleMessages = map[string]string{
	"required":       "is required",
	"trial_kind":     "must be one of informational, free_response, multiple_choice",
	"item_type":      "must be one of critical, attention_check",
	"export_model":   "must be one of participant, critical, attention_check",
	"export_format":  "must be one of csv, xlsx",
	"gender":         "must be one of female, male, non_binary, other, undeclared",
	"unique_item_id": "must be unique within the stimulus catalog",
	"birth_year":     "must be a plausible four-digit year",
}

// ToValidationErrors converts go-playground field errors. Other errors yield
// an empty result.
func ToValidationErrors(err error) ValidationErrors {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: ruleMessage(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	if msg, ok := ruleMessages[fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return fmt.Sprintf("failed rule '%s'", fe.Tag())
}
