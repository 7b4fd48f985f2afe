package user

import (
	"github.com/go-playground/validator/v10"

	"github.com/mbizohigh/chikoro/core"
)

var (
	roleTag  = "role"
	roleText = "must be one of: admin, staff, student, parent"
)

func init() {
	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(core.Validate, core.Translator, roleTag, roleText)
}

// roleValidation only allows recognized account roles.
func roleValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, role := range AllRoles {
		if val == role {
			return true
		}
	}
	return false
}
