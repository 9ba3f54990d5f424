package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/dto"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json field names so messages match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the validate tags of a request DTO and converts the
// first failure into a *ValidationError.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: fe.Field(), Message: ruleMessage(fe)}
	}
	return &ValidationError{Message: err.Error()}
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}

// ParseDate parses a YYYY-MM-DD date into UTC midnight.
func ParseDate(field, value string) (time.Time, error) {
	d, err := time.ParseInLocation(dto.DateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, invalid(field, "expected a date in YYYY-MM-DD format, got %q", value)
	}
	return d, nil
}

func requireNonBlank(field string, value *string) error {
	if value != nil && strings.TrimSpace(*value) == "" {
		return invalid(field, "must not be empty")
	}
	return nil
}

// uniqueIDs drops duplicates while keeping the first-seen order.
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
