package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/myrjola/mesocycle/internal/contexthelpers"
	"github.com/myrjola/mesocycle/internal/errors"
	"github.com/myrjola/mesocycle/internal/workout"
)

// maxBodyBytes caps request bodies. A manual session with a long exercise list is the largest legitimate payload.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"traceId,omitempty"`
}

// writeJSON responds with v encoded as JSON.
func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("marshal response: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(body); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "failed to write response", errors.SlogError(err))
	}
}

// decodeJSON reads the request body into v. It rejects unknown fields and trailing data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %w", workout.ErrInvalid, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: body must contain a single JSON value", workout.ErrInvalid)
	}
	return nil
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.writeError(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func (app *application) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	body, _ := json.Marshal(errorResponse{Error: msg, TraceID: contexthelpers.TraceID(r.Context())})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// handleError maps service errors to responses. Unknown errors are server errors.
func (app *application) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, workout.ErrInvalid):
		app.writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, workout.ErrNotFound):
		app.writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, workout.ErrSessionFinished):
		app.writeError(w, r, http.StatusConflict, err.Error())
	default:
		app.serverError(w, r, err)
	}
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", workout.ErrInvalid, key)
	}
	return v, nil
}

// pathInt parses an integer path parameter.
func pathInt(r *http.Request, key string) (int, error) {
	v, err := strconv.Atoi(r.PathValue(key))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", workout.ErrInvalid, key)
	}
	return v, nil
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.writeError(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}
