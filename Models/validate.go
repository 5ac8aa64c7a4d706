package Models

import (
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
	validate = validator.New()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateInput runs struct validation and maps the first violation to the
// business error taxonomy: required failures become MissingField, numeric
// bound failures become InvalidAmount.
func validateInput(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return &OpError{Code: ErrMissingField, Message: err.Error()}
	}
	first := errs[0]
	switch first.Tag() {
	case "required":
		return missingField(first.Field())
	case "gte", "gt", "min", "max":
		return invalidAmount(first.Translate(trans))
	default:
		return &OpError{Code: ErrMissingField, Field: first.Field(), Message: first.Translate(trans)}
	}
}
