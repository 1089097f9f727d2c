package httpd

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/RubachokBoss/tutoring-center/internal/errs"
)

const futureTag = "future"

// FieldErrors maps a JSON field name to its translated message.
type FieldErrors map[string]string

type validationError struct {
	fields FieldErrors
}

func (e *validationError) Error() string {
	names := make([]string, 0, len(e.fields))
	for name := range e.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, e.fields[name])
	}
	return strings.Join(parts, "; ")
}

type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator builds a validator whose "future" tag compares against now.
func NewValidator(now func() time.Time) (*Validator, error) {
	validate := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, found := uni.GetTranslator("en")
	if !found {
		return nil, errors.New("english translator is not registered")
	}
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, fmt.Errorf("failed to register translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := validate.RegisterValidation(futureTag, func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && t.After(now())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register %q validation: %w", futureTag, err)
	}

	err = validate.RegisterTranslation(futureTag, translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " must be in the future"
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register %q translation: %w", futureTag, err)
	}

	return &Validator{
		validate:   validate,
		translator: translator,
	}, nil
}

// Struct validates v and reports failures as an InvalidArgument error.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &errs.Error{Kind: errs.KindInternal, Message: "validation failed", Err: err}
	}

	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Translate(v.translator)
	}
	verr := &validationError{fields: fields}
	return &errs.Error{Kind: errs.KindInvalidArgument, Message: verr.Error(), Err: verr}
}
