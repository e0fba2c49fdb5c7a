// Package validation holds the field checks shared by the mutation services.
package validation

import (
	"fmt"
	"strings"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"

	"github.com/example/roombooking/internal/persistence"
)

// Messages returned to API callers.
const (
	MsgInvalidCountry  = "Not a valid country"
	MsgInvalidTimeZone = "Not a valid time zone"
	MsgInvalidURL      = "Please input a valid url"
	MsgInvalidState    = "Not a valid state"
)

// FieldError names the offending input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Validator checks single input values. It is safe for concurrent use.
type Validator struct {
	validate  *validator.Validate
	countries map[string]struct{}
}

// New returns a validator that accepts the given country names. An empty
// list falls back to DefaultCountries.
func New(countries []string) *Validator {
	if len(countries) == 0 {
		countries = DefaultCountries
	}
	known := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		if c = strings.TrimSpace(c); c != "" {
			known[strings.ToLower(c)] = struct{}{}
		}
	}

	v := &Validator{validate: validator.New(validator.WithRequiredStructEnabled()), countries: known}
	mustRegister(v.validate, "known_country", func(fl validator.FieldLevel) bool {
		_, ok := v.countries[strings.ToLower(strings.TrimSpace(fl.Field().String()))]
		return ok
	})
	return v
}

// mustRegister panics when a custom tag cannot be registered. A missing tag
// would otherwise leave Country accepting ISO codes only.
func mustRegister(validate *validator.Validate, tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Required fails for empty or whitespace-only values.
func (v *Validator) Required(field, value string) *FieldError {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Message: field + " is required"}
	}
	return nil
}

// URL fails unless value is an absolute URL.
func (v *Validator) URL(field, value string) *FieldError {
	if err := v.validate.Var(strings.TrimSpace(value), "required,url"); err != nil {
		return &FieldError{Field: field, Message: MsgInvalidURL}
	}
	return nil
}

// Country accepts a configured country name in any case or an ISO 3166
// alpha-2 or alpha-3 code.
func (v *Validator) Country(field, value string) *FieldError {
	value = strings.TrimSpace(value)
	if err := v.validate.Var(value, "required,known_country|iso3166_1_alpha2|iso3166_1_alpha3"); err != nil {
		return &FieldError{Field: field, Message: MsgInvalidCountry}
	}
	return nil
}

// TimeZone accepts IANA zone names such as "Africa/Lagos".
func (v *Validator) TimeZone(field, value string) *FieldError {
	if err := v.validate.Var(strings.TrimSpace(value), "required,timezone"); err != nil {
		return &FieldError{Field: field, Message: MsgInvalidTimeZone}
	}
	return nil
}

// State accepts active, archived or deleted.
func (v *Validator) State(field, value string) *FieldError {
	if _, err := persistence.ParseState(strings.TrimSpace(value)); err != nil {
		return &FieldError{Field: field, Message: MsgInvalidState}
	}
	return nil
}
