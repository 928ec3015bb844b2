package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const MessageValidationFailed = "Validation failed"

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Errors    interface{} `json:"errors,omitempty"`
	Stack     string      `json:"stack,omitempty"`
}

// Success writes a success envelope and returns it.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
	ctx.JSON(status, resp)
	return resp
}

// Error writes a failure envelope and returns it. err lands in the
// "error" field and may be nil.
func Error[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	resp := build[T](ctx, status, message)
	resp.Error = err
	ctx.JSON(resp.Status, resp)
	return resp
}

// ValidationFailed writes a 400 envelope listing the rejected fields.
func ValidationFailed(ctx *gin.Context, errs interface{}) APIResponse[any] {
	resp := build[any](ctx, http.StatusBadRequest, MessageValidationFailed)
	resp.Errors = errs
	ctx.JSON(resp.Status, resp)
	return resp
}

// Internal writes a failure envelope carrying a stack trace; stack is
// empty in production.
func Internal(ctx *gin.Context, status int, message string, err interface{}, stack string) APIResponse[any] {
	resp := build[any](ctx, status, message)
	resp.Error = err
	resp.Stack = stack
	ctx.JSON(resp.Status, resp)
	return resp
}

func build[T any](ctx *gin.Context, status int, message string) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
	}
}
