package rates

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize upper-cases and trims a currency code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCode checks that code is an ISO-4217 alphabetic code.
func ValidateCode(code string) error {
	if err := validate.Var(code, "required,iso4217"); err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	return nil
}

// CheckCode accepts any three upper-case ASCII letters. Live tables list
// codes outside ISO-4217 (GGP, FOK, ...), so only the shape is enforced; it
// still keeps path segments like "../x" out of request URLs.
func CheckCode(code string) error {
	if err := validate.Var(code, "required,len=3,alpha,uppercase"); err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	return nil
}

// maxSuggestDistance is the largest edit distance still offered as a suggestion.
const maxSuggestDistance = 2

// Suggest returns the known code closest to input, or "" when none is within
// two edits.
func Suggest(input string, known []string) string {
	input = Normalize(input)
	if input == "" {
		return ""
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, code := range known {
		d := levenshtein.ComputeDistance(input, code)
		if d < bestDist {
			best, bestDist = code, d
		}
	}
	return best
}
