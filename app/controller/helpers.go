package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"hypewear-studio/models"
)

// writeJSON encodes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeError maps domain error types onto HTTP status codes.
// ValidationError -> 400, ConflictError -> 409, NotFoundError -> 404,
// UploadError -> 502 (checkout failed, cart preserved for retry).
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var validationErr *models.ValidationError
	var conflictErr *models.ConflictError
	var notFoundErr *models.NotFoundError
	var uploadErr *models.UploadError

	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.As(err, &conflictErr):
		status = http.StatusConflict
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.As(err, &uploadErr):
		status = http.StatusBadGateway
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeBody decodes a JSON request body into v
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
