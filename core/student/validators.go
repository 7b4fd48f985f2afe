package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/mbizohigh/chikoro/core"
)

var (
	classCodeTag  = "classcode"
	classCodeText = "unrecognized class code"

	statusTag  = "attendancestatus"
	statusText = "must be one of: present, absent, late"
)

func init() {
	_ = core.Validate.RegisterValidation(classCodeTag, classCodeValidation)
	core.RegisterCustomTranslation(core.Validate, core.Translator, classCodeTag, classCodeText)

	_ = core.Validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(core.Validate, core.Translator, statusTag, statusText)
}

// classCodeValidation only allows recognized class codes.
func classCodeValidation(fl validator.FieldLevel) bool {
	return IsValidClass(fl.Field().String())
}

// statusValidation only allows recognized attendance statuses.
func statusValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, status := range AllStatuses {
		if val == status {
			return true
		}
	}
	return false
}
