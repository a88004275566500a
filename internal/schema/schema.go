package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phoneRegex = regexp.MustCompile(`^([+]?[\s0-9]+)?(\d{3}|[(]?[0-9]+[)])?([-]?[\s]?[0-9])+$`)
	priceRegex = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
	v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return priceRegex.MatchString(fl.Field().String())
	})
	return v
}

// FieldError is one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError enumerates every rejected field, so callers surface the
// whole list instead of the first failure. Nothing is sent to the server when
// validation fails.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.Message)
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// Validate shape-checks an input and returns a *ValidationError listing every
// violation, or nil.
func Validate(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return &ValidationError{Fields: []FieldError{{Field: "", Message: "Invalid input data"}}}
	}

	fields := make([]FieldError, 0, len(violations))
	for _, violation := range violations {
		fields = append(fields, FieldError{
			Field:   strings.ToLower(violation.Field()),
			Message: messageFor(violation),
		})
	}
	return &ValidationError{Fields: fields}
}

func messageFor(violation validator.FieldError) string {
	field := strings.ToLower(violation.Field())
	param := violation.Param()

	switch violation.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "email":
		return "Please enter a valid email"
	case "oneof":
		return field + " must be one of: " + param
	case "eqfield":
		return "Passwords do not match"
	case "uuid4", "uuid":
		return "Invalid " + field
	case "phone":
		return "Please enter a valid phone number"
	case "price":
		return "Price must be a valid number with up to 2 decimal places"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	default:
		return field + " is invalid"
	}
}
