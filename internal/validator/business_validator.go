package validator

import (
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/models"
)

// Oldest birth year accepted on the demographics form.
const minBirthYear = 1900

// BusinessValidator checks rules that struct tags cannot express.
type BusinessValidator struct {
	now func() time.Time
}

func NewBusinessValidator() *BusinessValidator {
	return &BusinessValidator{now: time.Now}
}

// Validate dispatches on the type of s. Types without business rules pass.
func (v *BusinessValidator) Validate(s interface{}) ValidationErrors {
	switch value := s.(type) {
	case *models.Participant:
		return v.ValidateBirthYear(value.BirthYear)
	case models.Participant:
		return v.ValidateBirthYear(value.BirthYear)
	default:
		return nil
	}
}

// ValidateBirthYear accepts a missing year or one between 1900 and the
// current year.
func (v *BusinessValidator) ValidateBirthYear(year *int) ValidationErrors {
	if year == nil {
		return nil
	}
	if *year < minBirthYear || *year > v.now().Year() {
		return ValidationErrors{{
			Field:   "birth_year",
			Message: "must be a plausible four-digit year",
			Value:   *year,
			Rule:    "birth_year",
		}}
	}
	return nil
}
