package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	registerCustomValidations()
}

func registerCustomValidations() {
	// Transaction kind validation (caller-facing kinds; checklist_score rows
	// are written by the scoring engine only)
	validate.RegisterValidation("txkind", func(fl validator.FieldLevel) bool {
		kind := fl.Field().String()
		validKinds := []string{"mission_grant", "manual_grant", "manual_deduction"}
		for _, k := range validKinds {
			if kind == k {
				return true
			}
		}
		return false
	})

	// Calendar date validation (YYYY-MM-DD)
	validate.RegisterValidation("checkdate", func(fl validator.FieldLevel) bool {
		date := fl.Field().String()
		if len(date) != 10 || date[4] != '-' || date[7] != '-' {
			return false
		}
		for i, c := range date {
			if i == 4 || i == 7 {
				continue
			}
			if c < '0' || c > '9' {
				return false
			}
		}
		return true
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "uuid":
			errors[field] = "Invalid UUID format"
		case "txkind":
			errors[field] = "Invalid kind. Must be: mission_grant, manual_grant, or manual_deduction"
		case "checkdate":
			errors[field] = "Invalid date. Expected format: YYYY-MM-DD"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}
