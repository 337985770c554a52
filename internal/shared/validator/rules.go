package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Korean mobile numbers: 010-1234-5678 or 01012345678
var phoneRegex = regexp.MustCompile(`^01[0-9]-?[0-9]{4}-?[0-9]{4}$`)

// ValidatePhone is registered as the "phone" tag
func ValidatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// ValidateNotBlank is registered as the "notblank" tag. Unlike "required" it
// also rejects whitespace-only strings such as a note title of "   ".
func ValidateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// rules lists the tags RegisterAll installs on gin's validator engine
var rules = map[string]validator.Func{
	"phone":    ValidatePhone,
	"notblank": ValidateNotBlank,
}
