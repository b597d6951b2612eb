package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the ISO date format used for week starts.
const DateLayout = "2006-01-02"

// ParseWeekStart parses an ISO date and checks that it falls on a Monday.
func ParseWeekStart(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("week_start must be an ISO date (YYYY-MM-DD): %w", err)
	}
	if t.Weekday() != time.Monday {
		return time.Time{}, fmt.Errorf("week_start %s is a %s, not a Monday", s, t.Weekday())
	}
	return t, nil
}

// RegisterValidators adds the custom binding tags used by the request types.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("weekstart", func(fl validator.FieldLevel) bool {
		_, err := ParseWeekStart(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("mealtype", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "breakfast", "lunch", "dinner":
			return true
		}
		return false
	}); err != nil {
		return err
	}
	return v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		d := fl.Field().Int()
		return d >= 0 && d <= 6
	})
}
