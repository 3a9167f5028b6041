// Package response writes the storefront's JSON envelope.
//
// Every endpoint answers with a `success` flag; handler-level failures are
// reported as {"success":false,"message":...} rather than propagated, so the
// frontend can branch on data.success uniformly.
package response

import (
	"encoding/json"
	"net/http"
)

// M is the envelope payload type.
type M = map[string]interface{}

func write(w http.ResponseWriter, status int, body M) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends {"success":true} merged with any extra top-level fields:
//
//	response.Success(w, response.M{"products": products})
func Success(w http.ResponseWriter, extra M) {
	body := M{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	write(w, http.StatusOK, body)
}

// Message sends {"success":true,"message":msg}.
func Message(w http.ResponseWriter, msg string) {
	write(w, http.StatusOK, M{"success": true, "message": msg})
}

// Fail sends {"success":false,"message":msg} with HTTP 200.
// Expected-failure results (bad credentials, invalid payloads the caller
// should display) use this; the transport status stays 200 by contract.
func Fail(w http.ResponseWriter, msg string) {
	write(w, http.StatusOK, M{"success": false, "message": msg})
}

// Error sends {"success":false,"message":msg} with a non-2xx status.
// Used for transport-level failures where the client's catch path should
// fire (missing auth, malformed requests, panics).
func Error(w http.ResponseWriter, status int, msg string) {
	write(w, status, M{"success": false, "message": msg})
}

// ValidationError sends a 422 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, M{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}
