package user

import (
	"strings"
	"unicode"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/daeshin/schoolhub/core"
)

var (
	noSpaceTag  = "nospace"
	noSpaceText = "{0} must not contain whitespace"
)

// InitValidators registers the user validators on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(noSpaceTag, noSpaceValidation)
	core.RegisterCustomTranslation(validate, translator, noSpaceTag, noSpaceText)
}

// Custom Validators

func noSpaceValidation(fl validator.FieldLevel) bool {
	return strings.IndexFunc(fl.Field().String(), unicode.IsSpace) < 0
}
