package common

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"placement-experiment/praxis/internal/models/dtos"
)

func TestRespondSuccessEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondSuccess(rr, time.Now(), "Created", map[string]string{"id": "abc"}, http.StatusCreated)

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}

	var body dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("Expected ok status, got %s", body.Status)
	}
	if body.Message != "Created" {
		t.Errorf("Expected message Created, got %s", body.Message)
	}
	if body.ResponseTime == "" {
		t.Error("Expected a response time")
	}
	if body.Data == nil {
		t.Error("Expected data in envelope")
	}
}

func TestRespondErrorEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondError(rr, time.Now(), "Something broke")

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected default 500, got %d", rr.Code)
	}

	var body dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Status != "error" {
		t.Errorf("Expected error status, got %s", body.Status)
	}
	if body.Data != nil {
		t.Error("Expected no data on error envelope")
	}
}
