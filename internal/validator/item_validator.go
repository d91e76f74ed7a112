package validator

import (
	"fmt"

	"github.com/SAP-F-2025/comprehension-service/internal/content"
	apperrors "github.com/SAP-F-2025/comprehension-service/internal/errors"
	"github.com/go-playground/validator/v10"
)

// ItemValidator handles stimulus item validation
type ItemValidator struct {
	structValidator *validator.Validate
}

func NewItemValidator(structValidator *validator.Validate) *ItemValidator {
	return &ItemValidator{structValidator: structValidator}
}

// ValidateItem checks one item's required fields.
func (v *ItemValidator) ValidateItem(item content.ItemContent) ValidationErrors {
	if err := v.structValidator.Struct(item); err != nil {
		return apperrors.ToValidationErrors(err)
	}
	return nil
}

// ValidateItems checks every item and that item IDs are unique. All problems
// are reported together, prefixed with the item's position.
func (v *ItemValidator) ValidateItems(items []content.ItemContent) error {
	if len(items) == 0 {
		return fmt.Errorf("item batch cannot be empty")
	}

	var errs ValidationErrors
	seen := make(map[string]int, len(items))
	for i, item := range items {
		for _, e := range v.ValidateItem(item) {
			e.Field = fmt.Sprintf("items[%d].%s", i, e.Field)
			errs = append(errs, e)
		}
		if first, dup := seen[item.ItemID]; dup && item.ItemID != "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("items[%d].item_id", i),
				Message: fmt.Sprintf("must be unique within the stimulus catalog (also at items[%d])", first),
				Value:   item.ItemID,
				Rule:    "unique_item_id",
			})
			continue
		}
		seen[item.ItemID] = i
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
