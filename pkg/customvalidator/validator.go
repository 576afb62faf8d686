package customvalidator

import (
	"reflect"
	"regexp"
	"unicode"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

var customIdentifierRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/\-]{0,63}$`)

// RegisterCustomValidations registers the project rules on v.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("custom_identifier", isCustomIdentifier); err != nil {
		return err
	}
	if err := v.RegisterValidation("strong_password", isStrongPassword); err != nil {
		return err
	}

	// null.String validates by its content, absent values count as empty.
	v.RegisterCustomTypeFunc(nullStringValue, null.String{})

	return nil
}

func isCustomIdentifier(fl validator.FieldLevel) bool {
	return customIdentifierRegex.MatchString(fl.Field().String())
}

// isStrongPassword wants at least 8 characters with one letter and one digit.
func isStrongPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func nullStringValue(field reflect.Value) interface{} {
	if ns, ok := field.Interface().(null.String); ok {
		if ns.Valid {
			return ns.String
		}
		return ""
	}
	return nil
}
