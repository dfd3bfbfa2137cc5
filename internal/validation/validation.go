// Package validation wraps request-struct validation for the HTTP shell.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator validates request structs by their validate tags.
type Validator struct {
	validate *validator.Validate
	tags     map[string]tagDetails
}

// tagDetails pairs a custom tag's checker with the message reported when it
// fails.
type tagDetails struct {
	fn  validator.Func
	err error
}

// New builds a validator with the custom tags the handlers use.
func New() (*Validator, error) {
	v := &Validator{
		validate: validator.New(),
		tags: map[string]tagDetails{
			"locator": {fn: isLocator, err: errors.New("locator must be an absolute http or https URL")},
		},
	}
	v.validate.RegisterTagNameFunc(useJSONFieldNames)
	for tag, details := range v.tags {
		if err := v.validate.RegisterValidation(tag, details.fn); err != nil {
			return nil, fmt.Errorf("register %q validation: %w", tag, err)
		}
	}
	return v, nil
}

// Validate checks the struct and turns the first failure into a message fit
// for a response body.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		if details, ok := v.tags[first.Tag()]; ok {
			return details.err
		}
		switch first.Tag() {
		case "required":
			return fmt.Errorf("missing required field '%s'", first.Field())
		case "min", "max":
			return fmt.Errorf("value or length of field '%s' is not in the expected range", first.Field())
		}
	}
	return err
}

// useJSONFieldNames makes validation messages name fields the way clients
// sent them.
func useJSONFieldNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// isLocator accepts absolute http or https URLs only.
func isLocator(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
