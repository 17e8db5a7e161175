package http

import (
	"net/http"

	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/internal/utils"
)

// apiResponse is the uniform JSON envelope every endpoint answers with,
// success and failure alike. Success mirrors whether StatusCode is below 400.
type apiResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

// respond writes the success envelope with the given payload.
func respond(w http.ResponseWriter, r *http.Request, statusCode int, message string, data any) {
	log := logger.FromRequest(r)

	if _, err := utils.WriteJSON(w, apiResponse{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	}, statusCode); err != nil {
		log.Err(err).Msg("writing response failed")
	}
}

// respondError maps err onto an HTTP status via statusFromError and writes
// the failure envelope. Internal errors are masked with the generic status
// text so storage details never leak to the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	statusCode := statusFromError(err)

	message := err.Error()
	if statusCode == http.StatusInternalServerError {
		message = http.StatusText(statusCode)
	}

	if _, writeErr := utils.WriteJSON(w, apiResponse{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
	}, statusCode); writeErr != nil {
		log.Err(writeErr).Msg("writing error response failed")
	}
}
