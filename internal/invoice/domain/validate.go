package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError aggregates per-field failures. It blocks generation;
// preview never validates so in-progress forms stay usable.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	return "validation error"
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the invoice against the submission schema: required text
// fields, at least one line item, non-negative numeric fields.
func Validate(inv Invoice) error {
	err := validate.Struct(inv)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	ok := false
	if verrs, ok = err.(validator.ValidationErrors); !ok {
		return err
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Code:    "invalid_" + strings.ToLower(fe.Tag()),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldPath(namespace string) string {
	// Strip the leading struct name: "Invoice.Items[0].Quantity" -> "items[0].quantity".
	if idx := strings.Index(namespace, "."); idx >= 0 {
		namespace = namespace[idx+1:]
	}
	parts := strings.Split(namespace, ".")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToLower(p[:1]) + p[1:]
	}
	return strings.Join(parts, ".")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "needs at least " + fe.Param() + " entry"
	case "gte":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
