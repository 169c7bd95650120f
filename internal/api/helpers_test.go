// Segue - Listening Transition Analytics and Next-Track Recommendation
// Copyright 2026 Segue Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/segue-fm/segue

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/segue-fm/segue/internal/models"
)

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "normal text", "normal text"},
		{"newline", "line1\nline2", "line1\\x0aline2"},
		{"carriage return", "a\rb", "a\\x0db"},
		{"tab", "a\tb", "a\\x09b"},
		{"delete", "a\x7fb", "a\\x7fb"},
		{"unicode preserved", "café", "café"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := sanitizeLogValue(tt.input); got != tt.want {
				t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte("payload-a"))
	b := generateETag([]byte("payload-b"))

	if a == "" || b == "" {
		t.Fatal("empty etag")
	}
	if a == b {
		t.Error("different payloads produced the same etag")
	}
	if again := generateETag([]byte("payload-a")); again != a {
		t.Errorf("etag not deterministic: %q vs %q", again, a)
	}
}

func TestRespondError_Envelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(rec, req, http.StatusBadRequest, "INVALID_IDENTIFIER", "song 120 outside catalog", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("missing ETag header")
	}

	var envelope models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if envelope.Status != "error" {
		t.Errorf("status = %q, want error", envelope.Status)
	}
	if envelope.Error == nil || envelope.Error.Code != "INVALID_IDENTIFIER" {
		t.Errorf("error = %+v", envelope.Error)
	}
	if envelope.Metadata.Timestamp.IsZero() {
		t.Error("metadata timestamp is zero")
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	if apiErr := validateRequest(&SimulateRequest{Steps: 5}); apiErr != nil {
		t.Errorf("unexpected error: %+v", apiErr)
	}

	apiErr := validateRequest(&SimulateRequest{Steps: 0})
	if apiErr == nil {
		t.Fatal("expected validation error")
	}
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q", apiErr.Code)
	}
	if apiErr.Details["field"] != "Steps" {
		t.Errorf("details = %v", apiErr.Details)
	}
}
