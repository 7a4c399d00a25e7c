package errors_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apierr "github.com/dalemusser/familytree/internal/app/features/errors"
	"github.com/dalemusser/familytree/internal/app/system/httplog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) apierr.Body {
	t.Helper()
	var b apierr.Body
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return b
}

func TestWriters(t *testing.T) {
	tests := []struct {
		name   string
		write  func(http.ResponseWriter, string)
		status int
	}{
		{"bad request", apierr.BadRequest, http.StatusBadRequest},
		{"not found", apierr.NotFound, http.StatusNotFound},
		{"conflict", apierr.Conflict, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec, "nope")
			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if got := decode(t, rec).Message; got != "nope" {
				t.Errorf("message: got %q", got)
			}
		})
	}
}

func TestLogServerError_HidesDetail(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	el := apierr.NewErrorLogger(zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/trees", nil)
	req = req.WithContext(httplog.WithRequestID(req.Context(), "req-1"))
	rec := httptest.NewRecorder()

	el.LogServerError(rec, req, "list trees", errors.New("connection reset by peer"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d", rec.Code)
	}
	if got := decode(t, rec).Message; got != apierr.InternalMessage {
		t.Errorf("message: got %q, want %q", got, apierr.InternalMessage)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["request_id"] != "req-1" || ctx["error"] != "connection reset by peer" {
		t.Errorf("log context: %v", ctx)
	}
}
