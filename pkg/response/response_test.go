package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/siddharthaBojanki/greenCart/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return body
}

func TestSuccessMergesExtras(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, response.M{"products": []string{"a"}})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	body := decode(t, rec)
	if body["success"] != true {
		t.Error("success flag missing")
	}
	if body["products"] == nil {
		t.Error("extra field dropped")
	}
}

func TestFailIsHTTP200(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Fail(rec, "Invalid Credentials")

	// Handler-level failures are envelopes, not transport errors.
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	body := decode(t, rec)
	if body["success"] != false || body["message"] != "Invalid Credentials" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestUnauthorized(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Unauthorized(rec)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if body := decode(t, rec); body["success"] != false {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationError(rec, map[string]string{"email": "The email field is required"})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	body := decode(t, rec)
	if body["success"] != false {
		t.Error("success flag should be false")
	}
	if body["errors"] == nil {
		t.Error("errors map missing")
	}
}

func TestContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Message(rec, "ok")
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}
