package middleware

import (
	"reflect"
	"strings"

	"github.com/erp/accounting/internal/domain/partner"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures gin's validator: errors are reported by JSON field name,
// and the digits10 and taxid rules are available to binding tags.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterValidations(v)
}

// RegisterValidations installs the custom tags and the JSON tag name function on v
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	if err := v.RegisterValidation("digits10", func(fl validator.FieldLevel) bool {
		return partner.IsValidPhone(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("taxid", func(fl validator.FieldLevel) bool {
		return partner.IsValidTaxID(fl.Field().String())
	})
}
