package customvalidator

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registers the house validation rules on the
// given validator instance.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("art_log", isArtLog); err != nil {
		return err
	}
	if err := v.RegisterValidation("log_type", isLogType); err != nil {
		return err
	}
	if err := v.RegisterValidation("short_date", isShortDate); err != nil {
		return err
	}
	return nil
}

var artLogRe = regexp.MustCompile(`^[A-Za-z0-9\-_]*$`)

// Art logs allow hyphens and underscores on top of alphanumerics, at most
// five characters.
func isArtLog(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return len(s) <= 5 && artLogRe.MatchString(s)
}

var logTypes = map[string]struct{}{
	"TR": {}, "DP": {}, "AA": {}, "VG": {}, "DG": {}, "GM": {}, "DTF": {}, "PP": {},
}

func isLogType(fl validator.FieldLevel) bool {
	_, ok := logTypes[fl.Field().String()]
	return ok
}

func isShortDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}
