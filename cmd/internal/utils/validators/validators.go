package validators

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const (
	PhoneMinDigits = 7
	PhoneMaxDigits = 15
)

var (
	hasSpaces     = regexp.MustCompile(`\s+`)
	phoneAllowed  = regexp.MustCompile(`^\+?[0-9 ().\-]+$`)
	registrations = map[string]validator.Func{
		"phone":    Phone,
		"nospaces": NoWhiteSpaces,
	}
)

// New returns a validator with every custom tag of the app registered.
func New() *validator.Validate {
	validate := validator.New()
	for tag, fn := range registrations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register validator %q: %v", tag, err)
		}
	}
	return validate
}

// Phone accepts international-looking numbers: an optional leading '+',
// digits and the usual separators, with 7 to 15 digits overall.
func Phone(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	if !phoneAllowed.MatchString(val) {
		return false
	}

	digits := DigitsOnly(val)
	return len(digits) >= PhoneMinDigits && len(digits) <= PhoneMaxDigits
}

// DigitsOnly strips everything but digits, the normalized form of a phone number.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NoWhiteSpaces returns false if the string contains any whitespace (rejecting the user input).
func NoWhiteSpaces(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	str := field.String()
	return !hasSpaces.MatchString(str)
}
