package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// oneOf accepts any of the space separated values given as parameter.
func oneOf(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, match := range strings.Fields(fl.Param()) {
		if match == value {
			return true
		}
	}
	return false
}

// RegisterValidation registers the custom validations used in binding tags with Gin's validator.
func RegisterValidation() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("error getting validation engine")
	}
	return v.RegisterValidation("oneOf", oneOf)
}
