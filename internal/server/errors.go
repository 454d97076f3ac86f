package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	historydomain "github.com/smallbiznis/invoicer/internal/history/domain"
	invoicedomain "github.com/smallbiznis/invoicer/internal/invoice/domain"
	invoicetemplatedomain "github.com/smallbiznis/invoicer/internal/invoicetemplate/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if fieldErrs := asFieldValidationError(err); fieldErrs != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  fieldErrs,
		}
	}

	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, historydomain.ErrInvalidStatus),
		errors.Is(err, invoicetemplatedomain.ErrNameRequired):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{Field: validationErrorField(err.Error()), Code: err.Error(), Message: "invalid value"},
			},
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

// asFieldValidationError converts domain field validation failures into the
// wire payload shape.
func asFieldValidationError(err error) []ValidationError {
	var vErr *invoicedomain.ValidationError
	if !errors.As(err, &vErr) || vErr == nil {
		return nil
	}
	out := make([]ValidationError, 0, len(vErr.Fields))
	for _, f := range vErr.Fields {
		out = append(out, ValidationError{
			Field:   f.Field,
			Code:    f.Code,
			Message: f.Message,
		})
	}
	return out
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, invoicetemplatedomain.ErrTemplateNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	switch code {
	case "invalid_status":
		return "status"
	case "invalid_template_name":
		return "name"
	case "invalid_request":
		return "request"
	default:
		return ""
	}
}

// classifyErrorForLog tags request log lines with an error type and code
// without re-running the full response mapping.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	switch {
	case status >= 500:
		return "internal", code
	case status == http.StatusNotFound:
		return "not_found", code
	default:
		return "client", code
	}
}
