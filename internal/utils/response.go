package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func ValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message)
}

func NotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message)
}

func AuthError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message)
}

// ConflictError keeps status 400 for compatibility with existing clients,
// which distinguish the duplicate-email case by code.
func ConflictError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeConflict, message)
}

// Envelope is the response shape shared by every endpoint. Clients switch on
// Code for error kinds rather than parsing Message text.
type Envelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// RespondError converts err to the envelope. Anything that is not an AppError
// becomes a generic 500; internal details never reach the client.
func RespondError(c *gin.Context, err error) {
	appErr, ok := err.(*AppError)
	if !ok {
		c.JSON(http.StatusInternalServerError, Envelope{
			Success: false,
			Code:    CodeInternal,
			Message: "Server error",
		})
		return
	}

	c.JSON(appErr.Status, Envelope{
		Success: false,
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

func RespondOK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

func RespondCreated(c *gin.Context, message string) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message})
}
