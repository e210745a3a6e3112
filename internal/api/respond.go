package api

import (
	"encoding/json"
	"net/http"
	"time"

	"marketmood/pkg/errors"
)

// envelope is the uniform JSON response shape of the public API
type envelope struct {
	Success   bool           `json:"success"`
	Data      interface{}    `json:"data,omitempty"`
	Count     *int           `json:"count,omitempty"`
	Counts    map[string]int `json:"counts,omitempty"`
	Error     string         `json:"error,omitempty"`
	Timestamp string         `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	body.Timestamp = time.Now().Format(time.RFC3339)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondData writes a success envelope around a single payload
func respondData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// respondList writes a success envelope with an item count
func respondList(w http.ResponseWriter, data interface{}, count int) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

// respondCounts writes a success envelope with per-kind counts
func respondCounts(w http.ResponseWriter, data interface{}, counts map[string]int) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Counts: counts})
}

// respondError maps domain errors onto HTTP status codes.
// Validation failures become 400, everything else 500.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, errors.ErrInvalidInput) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, envelope{Success: false, Error: err.Error()})
}

// respondBadRequest reports a malformed request parameter
func respondBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: message})
}
