package validators

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/studio-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/studio-booking/internal/timezone"
)

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	colorPattern    = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

	registerOnce sync.Once
)

// RegisterBindings adds the request tags used by the handlers to gin's validator:
// date (YYYY-MM-DD), clock (HH:MM or HH:MM:SS), currency, hexcolor_or_empty and
// equipment_category.
func RegisterBindings() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
			_, err := timezone.ParseDate(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			return timezone.IsClock(fl.Field().String())
		})
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return currencyPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("hexcolor_or_empty", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || colorPattern.MatchString(s)
		})
		_ = v.RegisterValidation("equipment_category", func(fl validator.FieldLevel) bool {
			return catalog.IsCategory(fl.Field().String())
		})
	})
}
