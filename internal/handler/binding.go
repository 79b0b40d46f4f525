package handler

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Slots are on-the-hour labels like "09:00"; the minute part is fixed.
var timeSlotPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):00$`)

// RegisterValidators installs the custom binding validators on gin's
// validator engine. Call once before routes are served.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return timeSlotPattern.MatchString(fl.Field().String())
	})
}
