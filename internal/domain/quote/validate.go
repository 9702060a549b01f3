package quote

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(fmt.Sprintf("quote: register validator translations: %v", err))
	}
}

// FieldError describes one invalid field by its wire path, for example
// "customer" or "items[2].description".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists every invalid field of a form in declaration order.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Message)
	}
	return "invalid quote: " + strings.Join(parts, "; ")
}

// Fields returns the paths of the invalid fields.
func (v ValidationErrors) Fields() []string {
	out := make([]string, 0, len(v))
	for _, fe := range v {
		out = append(out, fe.Field)
	}
	return out
}

// validateValues checks the required rule on the scalar fields and on
// every line item. It returns nil when everything is filled in.
func validateValues(fields Fields, items []LineItem) error {
	var out ValidationErrors
	out = appendFieldErrors(out, "", validate.Struct(fields))
	for i, it := range items {
		out = appendFieldErrors(out, fmt.Sprintf("items[%d].", i), validate.Struct(it))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func appendFieldErrors(out ValidationErrors, prefix string, err error) ValidationErrors {
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return append(out, FieldError{Field: strings.TrimSuffix(prefix, "."), Message: err.Error()})
	}
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   prefix + fe.Field(),
			Message: prefix + fe.Translate(trans),
		})
	}
	return out
}
