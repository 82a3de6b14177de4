package respond

import (
	"encoding/json"
	"net/http"
)

// Every endpoint answers with the same envelope: {"success":true,"data":...}
// on the happy path, {"success":false,"error":...} otherwise. Validation
// failures carry a per-field map instead of a single message.

type success struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type validationFailure struct {
	Success bool              `json:"success"`
	Errors  map[string]string `json:"errors"`
}

type rateLimited struct {
	Success        bool   `json:"success"`
	Error          string `json:"error"`
	RetryInSeconds int64  `json:"retry_in_seconds"`
}

func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func OK(w http.ResponseWriter, data any) {
	Write(w, http.StatusOK, success{Success: true, Data: data})
}

func Created(w http.ResponseWriter, data any) {
	Write(w, http.StatusCreated, success{Success: true, Data: data})
}

func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, failure{Success: false, Error: message})
}

func ValidationFailed(w http.ResponseWriter, fieldErrors map[string]string) {
	Write(w, http.StatusUnprocessableEntity, validationFailure{Success: false, Errors: fieldErrors})
}

func RateLimited(w http.ResponseWriter, retryInSeconds int64) {
	Write(w, http.StatusTooManyRequests, rateLimited{
		Success:        false,
		Error:          "Rate limit exceeded",
		RetryInSeconds: retryInSeconds,
	})
}
