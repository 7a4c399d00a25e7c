// internal/app/features/errors/errors.go
//
// Package errors writes JSON error responses. Handlers import it as apierr.
package errors

import (
	"net/http"

	"github.com/dalemusser/familytree/internal/app/system/httpjson"
	"github.com/dalemusser/familytree/internal/app/system/httplog"
	"go.uber.org/zap"
)

// InternalMessage is the only body a client sees for a server-side failure.
const InternalMessage = "Internal server error"

// Body is the JSON shape of every error response.
type Body struct {
	Message string `json:"message"`
}

// Write sends {"message": msg} with the given status.
func Write(w http.ResponseWriter, status int, msg string) {
	httpjson.Write(w, status, Body{Message: msg})
}

// BadRequest writes a 400.
func BadRequest(w http.ResponseWriter, msg string) {
	Write(w, http.StatusBadRequest, msg)
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, msg string) {
	Write(w, http.StatusNotFound, msg)
}

// Conflict writes a 409.
func Conflict(w http.ResponseWriter, msg string) {
	Write(w, http.StatusConflict, msg)
}

// ErrorLogger logs unexpected failures and answers them with a generic 500.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs err with the request context and writes a 500 that
// carries no detail.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", httplog.RequestIDFrom(r.Context())),
	)
	e.log.Error(msg, fields...)
	Write(w, http.StatusInternalServerError, InternalMessage)
}
