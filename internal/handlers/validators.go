package handlers

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// usernamePattern: 5 to 15 alphanumerics, starting with a letter.
var usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{4,14}$`)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags and makes validation errors
// report JSON field names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	})
}

// validationMessage describes one failed binding rule.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gt":
		return fe.Field() + " must be an integer and must be greater than 0"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "username":
		return fe.Field() + " must be 5-15 alphanumeric characters and start with a letter"
	default:
		return fe.Field() + " is invalid"
	}
}
