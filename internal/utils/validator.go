// internal/utils/validator.go
package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// imageDataURI matches the "data:image/<subtype>;base64," prefix of an inline image payload.
var imageDataURI = regexp.MustCompile(`^data:image/[a-zA-Z0-9.+-]+;base64,`)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonTagName)
	validate.RegisterValidation("image_data_uri", validateImageDataURI)
	validate.RegisterValidation("maxbytes", validateMaxBytes)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// IsImageDataURI reports whether s declares itself as a base64 image payload.
func IsImageDataURI(s string) bool {
	return imageDataURI.MatchString(s)
}

func validateImageDataURI(fl validator.FieldLevel) bool {
	return IsImageDataURI(fl.Field().String())
}

// validateMaxBytes limits the UTF-8 encoded length, where max= counts runes.
func validateMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   e.Field(),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "gte":
		return e.Field() + " must be greater than or equal to " + e.Param()
	case "lte":
		return e.Field() + " must be less than or equal to " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "maxbytes":
		return e.Field() + " must be at most " + e.Param() + " bytes"
	case "image_data_uri":
		return e.Field() + " must be a base64 image data payload (data:image/...;base64,...)"
	default:
		return e.Field() + " is invalid"
	}
}
