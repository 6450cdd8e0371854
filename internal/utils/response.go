// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/apperrors"
	"github.com/javajoker/storefront-backend/internal/i18n"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ResourceResponse writes a record or list as the bare JSON body.
func ResourceResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// DeletedResponse confirms a deletion with a localized message.
func DeletedResponse(c *gin.Context, messageKey string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: i18n.T(GetLangFromContext(c), messageKey),
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyInvalidRequestBody)
	}
	ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", message, details)
}

func NotFoundResponse(c *gin.Context, resource string) {
	lang := GetLangFromContext(c)
	message := i18n.T(lang, resource+".not_found")
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message, nil)
}

func ConflictResponse(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyConflict)
	}
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message, nil)
}

func ServiceUnavailableResponse(c *gin.Context) {
	message := i18n.T(GetLangFromContext(c), i18n.KeyStoreUnavailable)
	ErrorResponse(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", message, nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyInternalError)
	}
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

func ValidationErrorResponse(c *gin.Context, message string, details interface{}) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyValidationInvalid, "input")
	}
	ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", message, details)
}

// HandleServiceError maps a classified service error to its HTTP response.
func HandleServiceError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		_ = c.Error(err)
		InternalErrorResponse(c, "")
		return
	}

	switch appErr.Kind {
	case apperrors.KindValidation:
		ValidationErrorResponse(c, appErr.Message, appErr.Details)
	case apperrors.KindNotFound:
		NotFoundResponse(c, appErr.Resource)
	case apperrors.KindConflict:
		ConflictResponse(c, appErr.Message)
	case apperrors.KindStoreUnavailable:
		_ = c.Error(err)
		ServiceUnavailableResponse(c)
	default:
		_ = c.Error(err)
		InternalErrorResponse(c, "")
	}
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return "en"
}
