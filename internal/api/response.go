package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperr "github.com/chilli-axe/mpc-autofill-sub000/internal/errors"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/version"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error response, mapping domain errors to HTTP status codes.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	var notFound *apperr.NotFoundError
	var notInit *apperr.NotInitializedError
	var validation *apperr.ValidationError
	var parse *apperr.ParseError
	var capacity *apperr.CapacityExceededError
	var backend *apperr.OracleError
	var schema *version.SchemaVersionError

	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &notInit):
		status = http.StatusNotFound
		message = "no project is initialized in this directory"
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.As(err, &parse):
		status = http.StatusBadRequest
	case errors.As(err, &capacity):
		status = http.StatusConflict
	case errors.As(err, &backend):
		status = http.StatusBadGateway
	case errors.As(err, &schema):
		status = http.StatusConflict
	}

	JSON(w, status, map[string]string{"error": message})
}

// BadRequest writes a 400 error with the given message.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, map[string]string{"error": message})
}
