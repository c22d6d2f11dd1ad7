package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/pkordes/waypoint/internal/domain"
	"github.com/pkordes/waypoint/internal/places"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failure. Status carries the place provider's own
// status string when the error came from there.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// badRequest answers a request rejected before reaching the service layer
// (e.g. malformed body or parameter).
func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "bad_request", message)
}

// decodeJSON reads the request body into dst. Unknown fields are rejected.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return errors.New("malformed JSON body: " + err.Error())
	}
	return nil
}

// writeBodyError answers a decodeJSON failure.
func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large",
			"request body exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
		return
	}
	badRequest(w, err.Error())
}

// writeServiceError maps a service-layer error onto a response. notFound is
// the message for domain.ErrNotFound because the handler knows what was
// being looked up.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", notFound)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	default:
		internalError(w, r, err)
	}
}

// writePlacesError maps a gateway error. Validation failures are 400 here
// because the gateway rejects them before any provider call.
func writePlacesError(w http.ResponseWriter, r *http.Request, err error) {
	status := places.StatusOf(err)

	var pe *places.Error
	switch {
	case errors.As(err, &pe):
		code := "upstream_error"
		if errors.Is(pe.Kind, places.ErrTimeout) {
			code = "timeout"
		}
		writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: pe.Message, Status: pe.Code}})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, status, "validation_error", unwrapMessage(err))
	default:
		internalError(w, r, err)
	}
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
	writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

// unwrapMessage extracts the human-readable part from a wrapped validation error.
// e.g. "service.TripService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if _, after, ok := strings.Cut(msg, domain.ErrValidation.Error()+": "); ok {
		return after
	}
	return msg
}
