// Package response provides helpers for writing consistent JSON HTTP
// responses from the console's /api endpoints.
package response

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope returned for plain status and error replies:
//
//	{ "status": "error", "error": "unknown draft field: \"address\"" }
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data JSON-encoded with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK is the success envelope.
func OK() Response {
	return Response{Status: StatusOK}
}

// GeneralError wraps any Go error into the error envelope.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}
