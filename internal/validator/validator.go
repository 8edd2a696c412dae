package validator

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate *validator.Validate
	strict   = bluemonday.StrictPolicy()
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func (r ValidationResult) Error() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Field + ": " + e.Message
	}
	return strings.Join(msgs, "; ")
}

// Validate checks struct tags. A failure is returned as a ValidationResult.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	result := ValidationResult{Valid: false, Errors: make([]ValidationError, 0, len(verrs))}
	for _, fe := range verrs {
		result.Errors = append(result.Errors, ValidationError{
			Field:   fieldName(fe),
			Message: message(fe),
		})
	}
	return result
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "max":
		return fmt.Sprintf("muito longo (máximo %s)", fe.Param())
	case "min":
		return fmt.Sprintf("muito curto (mínimo %s)", fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("valor fora do intervalo (%s %s)", fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("valor inválido (%s)", fe.Tag())
	}
}

// Sanitize strips all markup from user text and collapses whitespace. The
// result is plain text suitable for embedding.
func Sanitize(s string) string {
	clean := html.UnescapeString(strict.Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}

func SanitizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if c := Sanitize(v); c != "" {
			out = append(out, c)
		}
	}
	return out
}
