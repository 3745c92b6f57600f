// internal/server/handlers/respond.go

package handlers

import (
	"encoding/json"
	"net/http"

	"sentimentdash/internal/logger"
)

// respondWithJSON writes payload as a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError writes a JSON error body. Server errors are logged.
func respondWithError(w http.ResponseWriter, log logger.Logger, code int, message string, err error) {
	response := map[string]string{"error": message}

	if err != nil && code >= 500 {
		log.Error("HTTP error",
			logger.Int("code", code),
			logger.String("message", message),
			logger.Error(err),
		)
	}

	respondWithJSON(w, code, response)
}
