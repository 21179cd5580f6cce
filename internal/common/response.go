package common

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every non-2xx JSON reply: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

// RespondWithDomainError picks the status from err. For 5xx replies the
// caller-supplied message is sent instead of err so file paths and parse
// details stay in the logs.
func RespondWithDomainError(w http.ResponseWriter, err error, serverMessage string) {
	code := HTTPStatusFromError(err)
	if code >= http.StatusInternalServerError {
		RespondWithError(w, code, serverMessage)
		return
	}
	RespondWithError(w, code, err.Error())
}

func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.WriteHeader(code)
	_, _ = w.Write(body)
}
