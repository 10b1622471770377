// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("category_level", validateCategoryLevel)
		_ = v.RegisterValidation("audio_status", validateAudioStatus)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateCategoryLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "primary", "secondary":
		return true
	}
	return false
}

func validateAudioStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "draft", "published", "archived":
		return true
	}
	return false
}
