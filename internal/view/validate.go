package view

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/hospital-admin/internal/types"
)

// draftValidator is built once; *validator.Validate caches struct metadata
// and is safe for concurrent use.
var draftValidator = newDraftValidator()

func newDraftValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON name ("id", "name", ...) so messages
	// match what the form shows.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// notblank rejects empty and whitespace-only strings.
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}

	// integer accepts what Draft.Hospital can convert, signed ids included.
	if err := v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		_, err := strconv.Atoi(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}

	return v
}

// validateDraft returns the banner text for the first blank field, in Draft
// field order. A malformed id is reported only once nothing is blank.
func validateDraft(d types.Draft) (string, bool) {
	err := draftValidator.Struct(d)
	if err == nil {
		return "", true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error(), false
	}

	for _, fe := range verrs {
		if fe.Tag() == "notblank" {
			return fillOutMessage(fe.Field()), false
		}
	}
	return msgNumericID, false
}
