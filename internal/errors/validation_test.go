package errors

import (
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("rt", "must be at least 0", -4)

	assert.Equal(t, "rt", err.Field)
	assert.Equal(t, -4, err.Value)
	assert.Equal(t, "rt must be at least 0", err.Error())
}

func TestValidationErrors_Error(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())

	errs = append(errs, *NewValidationError("rt", "must be at least 0", nil))
	assert.Equal(t, "validation failed: rt must be at least 0", errs.Error())

	errs = append(errs, *NewValidationError("gender", "is required", nil))
	assert.Equal(t, "validation failed: rt, gender", errs.Error())
}

func TestToValidationErrors(t *testing.T) {
	type request struct {
		ItemID string `validate:"required"`
		Key    string `validate:"max=2"`
		RT     int    `validate:"min=0"`
	}

	raw := validator.New().Struct(request{Key: "space", RT: -1})
	require.Error(t, raw)

	errs := ToValidationErrors(fmt.Errorf("bind: %w", raw))
	require.Len(t, errs, 3)
	assert.Equal(t, ValidationError{Field: "ItemID", Message: "is required", Value: "", Rule: "required"}, errs[0])
	assert.Equal(t, "must be at most 2", errs[1].Message)
	assert.Equal(t, "must be at least 0", errs[2].Message)

	assert.Empty(t, ToValidationErrors(fmt.Errorf("not a validation problem")))
}
