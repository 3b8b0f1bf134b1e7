package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// NotBlank rejects strings that are empty or whitespace-only. Used for
// query names: "   " would otherwise reach the search engine and always
// resolve to an empty result.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
