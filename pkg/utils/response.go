package utils

import (
	"net/http"

	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
	"github.com/Rohan-debug788/SkillSwap/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every API reply.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{
		Code:    status,
		Message: message,
		Error:   code,
	})
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, errors.ErrCodeUnauthorized, message)
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, errors.ErrCodeValidation, message)
}

// StatusFor maps an application error code to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeNotFoundOrUnauthorized:
		return http.StatusNotFound
	case errors.ErrCodeInvalidState:
		return http.StatusConflict
	case errors.ErrCodeValidation:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case errors.ErrCodeTransientStore:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err as an error envelope. Errors without a code are logged
// and reported as a generic internal error.
func FromError(c *gin.Context, err error) {
	code := errors.CodeOf(err)
	if code == "" {
		logger.Error("Internal server error", "path", c.FullPath(), "error", err)
		Error(c, http.StatusInternalServerError, errors.ErrCodeInternalError, "Internal server error")
		return
	}

	status := StatusFor(code)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "path", c.FullPath(), "code", code, "error", err)
	}
	Error(c, status, code, errors.MessageOf(err, code))
}
