package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const timeOfDayLayout = "15:04"

// RegisterCustom installs the clinic's custom validation rules on gin's
// binding validator. Call once at startup.
func RegisterCustom() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("timeofday", validTimeOfDay); err != nil {
		return err
	}
	return v.RegisterValidation("dayofweek", validDayOfWeek)
}

// validTimeOfDay accepts wall-clock values like "08:00" or "16:30".
func validTimeOfDay(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(timeOfDayLayout, s)
	return err == nil
}

var dayTokens = map[string]struct{}{
	"MONDAY": {}, "TUESDAY": {}, "WEDNESDAY": {}, "THURSDAY": {},
	"FRIDAY": {}, "SATURDAY": {}, "SUNDAY": {},
}

func validDayOfWeek(fl validator.FieldLevel) bool {
	_, ok := dayTokens[fl.Field().String()]
	return ok
}
