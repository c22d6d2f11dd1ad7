package places

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/waypoint/internal/domain"
)

var requestValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON name so messages match what callers sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("placetype", func(fl validator.FieldLevel) bool {
		return IsKnownType(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// validateInput enforces the minimum length of a free-text input.
func validateInput(field, s string) error {
	trimmed := NormalizeInput(s)
	if trimmed == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	}
	if utf8.RuneCountInString(trimmed) < MinInputLength {
		return fmt.Errorf("%w: %s must be at least %d characters", domain.ErrValidation, field, MinInputLength)
	}
	return nil
}

// validateStruct runs the struct tag rules on a request and converts the
// first failure into a domain.ErrValidation with a readable message.
func validateStruct(req any) error {
	err := requestValidator.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	// Namespace is "AutocompleteRequest.bias.radius"; drop the struct name.
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s entries", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	case "placetype":
		return fmt.Sprintf("%s: %q is not a recognized place type", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

func validateAutocomplete(req AutocompleteRequest) error {
	if err := validateInput("input", req.Input); err != nil {
		return err
	}
	return validateStruct(req)
}

func validateTextSearch(req TextSearchRequest) error {
	if err := validateInput("query", req.Query); err != nil {
		return err
	}
	return validateStruct(req)
}

func validateNearby(req NearbyRequest) error {
	return validateStruct(req)
}
