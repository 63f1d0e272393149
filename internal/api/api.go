// Package api exposes the JSON HTTP surface: authentication endpoints,
// note CRUD, and the middleware that gates protected routes.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"git.sr.ht/~mpalumbo/notevault/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type API struct {
	service  *service.Service
	validate *validator.Validate
	logger   zerolog.Logger
}

func New(svc *service.Service, logger zerolog.Logger) *API {
	return &API{
		service:  svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With().Str("component", "api").Logger(),
	}
}

// decodeRequest parses a JSON body into req and runs struct
// validation. On failure it writes the response itself and returns
// false: 400 with a generic body for bad JSON, 400 with a
// field→message map for validation errors.
func decodeRequest[T any](a *API, req *T, w http.ResponseWriter, r *http.Request) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		a.logRequestErr(r, "bad json request")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed JSON body"})
		return false
	}

	if err := a.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			a.logRequestErr(r, "validation failed")
			writeJSON(w, http.StatusBadRequest, fieldErrors(verrs))
			return false
		}
		a.logRequestErr(r, "validation error: "+err.Error())
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return false
	}

	return true
}

func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageForTag(fe)
	}
	return fields
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func returnJson(data any, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// writeError maps domain failures to HTTP responses. Credential and
// token failures share generic bodies so the response never reveals
// which check failed; anything unrecognized is a 500 with the full
// detail kept server-side.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	case errors.Is(err, service.ErrTokenInvalid):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	case errors.Is(err, service.ErrEmailExists):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email already registered"})
	case errors.Is(err, service.ErrNoteNotFound), errors.Is(err, service.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, service.ErrNotOwner):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "access denied"})
	default:
		a.logger.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Msg("unhandled error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an unexpected error occurred"})
	}
}

func (a *API) logRequestErr(r *http.Request, msg string) {
	a.logger.Warn().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg(msg)
}
