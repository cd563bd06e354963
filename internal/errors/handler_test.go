package errors

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func TestErrorToProblem(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "context cancelled maps to timeout",
			err:        context.Canceled,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "api error unknown vendor",
			err:        ErrUnknownVendor,
			wantStatus: http.StatusBadRequest,
			wantType:   TypeUnknownVendor,
		},
		{
			name:       "api error no files",
			err:        ErrNoFilesSelected,
			wantStatus: http.StatusBadRequest,
			wantType:   TypeNoFilesGiven,
		},
		{
			name:       "app parsing error",
			err:        NewParsingError("corrupt workbook", nil),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeParsingFailed,
		},
		{
			name:       "app validation error",
			err:        NewAppValidationError("bad date"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "app not found error",
			err:        NewNotFoundError("report"),
			wantStatus: http.StatusNotFound,
			wantType:   TypeNotFound,
		},
		{
			name:       "plain not found text",
			err:        errors.New("report not found"),
			wantStatus: http.StatusNotFound,
			wantType:   TypeNotFound,
		},
		{
			name:       "unclassified error",
			err:        errors.New("something odd"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := h.ErrorToProblem(tt.err, req)
			require.NotNil(t, problem)
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, "/api/reports", problem.Instance)
		})
	}
}

func TestHandleError(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/reports/analyze", nil)
	w := httptest.NewRecorder()

	h.HandleError(w, req, ErrNoFilesSelected)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), TypeNoFilesGiven)
}

func TestMiddlewarePanicRecovery(t *testing.T) {
	h := newTestHandler()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	h.Middleware(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
