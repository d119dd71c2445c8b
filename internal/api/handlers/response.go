package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/zatekoja/travelplanner/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/travelplanner/pkg/errors"
)

// maxBodyBytes caps request bodies; generated itineraries are the largest payload
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type messageResponse struct {
	Message string `json:"message"`
}

var statusByType = map[apperrors.ErrorType]int{
	apperrors.ErrorTypeNotFound:              http.StatusNotFound,
	apperrors.ErrorTypeValidation:            http.StatusBadRequest,
	apperrors.ErrorTypeConflict:              http.StatusConflict,
	apperrors.ErrorTypeUnauthorized:          http.StatusUnauthorized,
	apperrors.ErrorTypeForbidden:             http.StatusForbidden,
	apperrors.ErrorTypeUnsupportedTransition: http.StatusConflict,
	apperrors.ErrorTypeInternal:              http.StatusInternalServerError,
	apperrors.ErrorTypeExternal:              http.StatusBadGateway,
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, kind apperrors.ErrorType, message string) {
	respondWithJSON(w, statusCode, errorResponse{Error: message, Kind: string(kind)})
}

// respondWithAppError maps an error to its status code. Server-side failures
// are logged and answered with a generic message.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.NewInternalError("unexpected error", err)
	}

	status, ok := statusByType[appErr.Type]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := appErr.Message
	if status >= http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error().Err(err).
			Str("kind", string(appErr.Type)).
			Msg("Request failed")
		message = http.StatusText(status)
	}

	respondWithJSON(w, status, errorResponse{Error: message, Kind: string(appErr.Type)})
}

// decodeJSON reads a JSON body into dst. An empty body is a validation error.
func decodeJSON(r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewValidationError("request body is required")
		}
		return apperrors.NewValidationError("invalid request payload: " + err.Error())
	}
	return nil
}

// pathID parses a positive integer path parameter
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(name + " must be a positive integer")
	}
	return id, nil
}

// orEmpty keeps list responses as [] rather than null
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
