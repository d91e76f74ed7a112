package validator

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/comprehension-service/internal/content"
	apperrors "github.com/SAP-F-2025/comprehension-service/internal/errors"
	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"github.com/SAP-F-2025/comprehension-service/internal/trial"
	"github.com/go-playground/validator/v10"
)

// Field errors are shared with the rest of the service.
type (
	ValidationError  = apperrors.ValidationError
	ValidationErrors = apperrors.ValidationErrors
)

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator   *validator.Validate
	businessValidator *BusinessValidator
	itemValidator     *ItemValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		businessValidator: NewBusinessValidator(),
		itemValidator:     NewItemValidator(structValidator),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// ValidateBusiness validates business rules only
func (v *Validator) ValidateBusiness(s interface{}) ValidationErrors {
	return v.businessValidator.Validate(s)
}

// Validate performs complete validation (struct + business rules)
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}

	if errors := v.ValidateBusiness(s); len(errors) > 0 {
		return errors
	}

	return nil
}

// ValidateItems checks a stimulus catalog. It lets the Validator be passed
// straight to content.NewCatalog.
func (v *Validator) ValidateItems(items []content.ItemContent) error {
	return v.itemValidator.ValidateItems(items)
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("trial_kind", validateTrialKind)
	validate.RegisterValidation("item_type", validateItemType)
	validate.RegisterValidation("export_model", validateExportModel)
	validate.RegisterValidation("export_format", validateExportFormat)
	validate.RegisterValidation("gender", validateGender)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func oneOf(value string, valid ...string) bool {
	for _, v := range valid {
		if v == value {
			return true
		}
	}
	return false
}

func validateTrialKind(fl validator.FieldLevel) bool {
	return oneOf(fl.Field().String(),
		string(trial.KindInformational),
		string(trial.KindFreeResponse),
		string(trial.KindMultipleChoice),
	)
}

func validateItemType(fl validator.FieldLevel) bool {
	return oneOf(fl.Field().String(),
		string(trial.RoleCritical),
		string(trial.RoleAttentionCheck),
	)
}

func validateExportModel(fl validator.FieldLevel) bool {
	return oneOf(fl.Field().String(),
		models.ExportParticipant,
		models.ExportCritical,
		models.ExportAttentionCheck,
	)
}

func validateExportFormat(fl validator.FieldLevel) bool {
	return oneOf(fl.Field().String(), "csv", "xlsx")
}

func validateGender(fl validator.FieldLevel) bool {
	return oneOf(fl.Field().String(),
		string(models.GenderFemale),
		string(models.GenderMale),
		string(models.GenderNonBinary),
		string(models.GenderOther),
		string(models.GenderUndeclared),
	)
}
