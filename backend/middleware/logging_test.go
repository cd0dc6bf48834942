// ABOUTME: Tests for request logging middleware
// ABOUTME: Verifies request id propagation, status capture, and path sanitization

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"newline injection", "/api/v1/health\nAdmin access granted", "/api/v1/healthAdmin access granted"},
		{"carriage return", "/api/test\rmalicious", "/api/testmalicious"},
		{"tab", "/api/test\tvalue", "/api/testvalue"},
		{"null byte", "/api/test\x00value", "/api/testvalue"},
		{"escape sequence", "/api/test\x1b[31mred", "/api/test[31mred"},
		{"DEL character", "/api/test\x7fvalue", "/api/testvalue"},
		{"normal path", "/api/v1/comms/analyze", "/api/v1/comms/analyze"},
		{"encoded chars", "/api/v1/parts%2Fimport", "/api/v1/parts%2Fimport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizePath(tt.input); got != tt.want {
				t.Errorf("sanitizePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLogRequest_SetsRequestIDHeader(t *testing.T) {
	var seen string
	handler := LogRequest(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	requestID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(requestID); err != nil {
		t.Errorf("X-Request-ID %q should be a UUID: %v", requestID, err)
	}
	if seen != requestID {
		t.Errorf("Context request id = %q, want %q", seen, requestID)
	}
}

func TestLogRequest_ReusesValidIncomingID(t *testing.T) {
	handler := LogRequest(func(w http.ResponseWriter, r *http.Request) {})

	incoming := "0b9c1f0e-7d7a-4d5e-9f3a-2c1b0a9e8d7c"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != incoming {
		t.Errorf("X-Request-ID = %q, want %q", got, incoming)
	}
}

func TestLogRequest_ReplacesInvalidIncomingID(t *testing.T) {
	handler := LogRequest(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "evil\nvalue")
	rec := httptest.NewRecorder()
	handler(rec, req)

	got := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(got); err != nil {
		t.Errorf("Expected a fresh UUID, got %q", got)
	}
}

func TestLogRequest_CapturesStatusCode(t *testing.T) {
	handler := LogRequest(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/test", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestRequestID_EmptyWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := RequestID(req.Context()); got != "" {
		t.Errorf("Expected empty request id, got %q", got)
	}
}
