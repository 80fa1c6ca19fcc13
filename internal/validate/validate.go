package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Process-wide validator, configured once at init and treated as
// immutable afterwards.
var v = newValidator()

var spaceRun = regexp.MustCompile(` +`)

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())

	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := val.RegisterValidation("password", passwordRule); err != nil {
		panic(err)
	}

	return val
}

// passwordRule requires at least 8 characters, one uppercase letter, one
// lowercase letter, and one digit or non-word character.
func passwordRule(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 8 {
		return false
	}

	var upper, lower, digitOrSym bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		}
		if unicode.IsDigit(r) || (!unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_') {
			digitOrSym = true
		}
	}
	return upper && lower && digitOrSym
}

// Violations maps a request field to every rule it broke.
type Violations map[string][]string

// ValidationError carries the full set of violations so the response can
// enumerate them all, not just the first.
type ValidationError struct {
	Fields Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid field(s)", len(e.Fields))
}

// Struct validates req against its validate tags and collects every
// violation. Returns nil when the value is valid.
func Struct(req any) *ValidationError {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Fields: Violations{"": {"invalid input"}}}
	}

	fields := make(Violations, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], message(fe))
	}
	return &ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field"
	case "min":
		return fmt.Sprintf("min length is %s", fe.Param())
	case "max":
		return fmt.Sprintf("max length is %s", fe.Param())
	case "email":
		return "value is not a valid email address"
	case "password":
		return "password must be at least 8 characters with upper and lower case letters and a digit or symbol"
	default:
		return fmt.Sprintf("failed %s rule", fe.Tag())
	}
}

// FormatInput lowercases, trims, and collapses internal whitespace runs
// to single spaces.
func FormatInput(word string) string {
	s := strings.ToLower(strings.TrimSpace(word))
	return spaceRun.ReplaceAllString(s, " ")
}
