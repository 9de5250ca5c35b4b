package types

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	inputValidator *validator.Validate
	trans          ut.Translator
)

func init() {
	inputValidator = validator.New()

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	_ = enTranslations.RegisterDefaultTranslations(inputValidator, trans)

	_ = inputValidator.RegisterValidation("operator", func(fl validator.FieldLevel) bool {
		op, ok := fl.Field().Interface().(Operator)
		return ok && op.Valid()
	})

	_ = inputValidator.RegisterTranslation("required", trans, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is a required field", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		translator, _ := ut.T("required", fe.Field())
		return translator
	})

	_ = inputValidator.RegisterTranslation("operator", trans, func(ut ut.Translator) error {
		return ut.Add("operator", "{0} must be a valid filter operator", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		translator, _ := ut.T("operator", fe.Field())
		return translator
	})
}

// ValidationError is returned when a value fails its validation tags.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the validation tags of a value type (Filter, Sort, Pagination, ...)
// and returns a single readable error.
func Validate(v interface{}) error {
	if err := inputValidator.Struct(v); err != nil {
		return TranslateValidatorError(err)
	}
	return nil
}

// ValidatePageSize checks a page size on its own. The page index is left to the
// page range check, which reports a negative index as out of range.
func ValidatePageSize(size int) error {
	return Validate(struct {
		PageSize int `validate:"gt=0"`
	}{size})
}

// TranslateValidatorError converts validator.ValidationErrors into a single
// user friendly error. Any other error is returned as is.
func TranslateValidatorError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	vals := make([]string, 0, len(validationErrors))
	for _, value := range validationErrors.Translate(trans) {
		vals = append(vals, value)
	}
	// Translate returns a map
	sort.Strings(vals)
	return &ValidationError{Message: strings.Join(vals, " ")}
}
