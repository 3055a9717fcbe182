package main

import (
	"net/http"

	"github.com/myrjola/mesocycle/internal/workout"
)

// sessionResponse is returned when a session ends.
type sessionResponse struct {
	Session workout.Session `json:"session"`
	// NewBadges are the badges the session unlocked.
	NewBadges []workout.Badge `json:"newBadges"`
}

func newSessionResponse(sess workout.Session, fresh []workout.Badge) sessionResponse {
	if fresh == nil {
		fresh = []workout.Badge{}
	}
	return sessionResponse{Session: sess, NewBadges: fresh}
}

func (app *application) sessionsGET(w http.ResponseWriter, r *http.Request) {
	history, err := app.workoutService.History(r.Context())
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	if history == nil {
		history = []workout.Session{}
	}
	app.writeJSON(w, r, http.StatusOK, history)
}

type startSessionRequest struct {
	WorkoutID   string                  `json:"workoutId"`
	Program     *workout.ProgramLink    `json:"program"`
	Readiness   *workout.ReadinessCheck `json:"readiness"`
	ExerciseIDs []string                `json:"exerciseIds"`
}

func (app *application) sessionStartPOST(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		app.handleError(w, r, err)
		return
	}
	sess, err := app.workoutService.StartSession(r.Context(), workout.StartSessionRequest{
		WorkoutID:   req.WorkoutID,
		Program:     req.Program,
		Readiness:   req.Readiness,
		ExerciseIDs: req.ExerciseIDs,
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, sess)
}

func (app *application) sessionManualPOST(w http.ResponseWriter, r *http.Request) {
	var sess workout.Session
	if err := decodeJSON(r, &sess); err != nil {
		app.handleError(w, r, err)
		return
	}
	logged, fresh, err := app.workoutService.LogManualSession(r.Context(), sess)
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, newSessionResponse(logged, fresh))
}

type logSetRequest struct {
	ExerciseID string               `json:"exerciseId"`
	Set        workout.CompletedSet `json:"set"`
}

func (app *application) sessionSetPOST(w http.ResponseWriter, r *http.Request) {
	var req logSetRequest
	if err := decodeJSON(r, &req); err != nil {
		app.handleError(w, r, err)
		return
	}
	if err := app.workoutService.LogSet(r.Context(), r.PathValue("id"), req.ExerciseID, req.Set); err != nil {
		app.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) sessionFinishPOST(w http.ResponseWriter, r *http.Request) {
	sess, fresh, err := app.workoutService.FinishSession(r.Context(), r.PathValue("id"))
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, newSessionResponse(sess, fresh))
}

func (app *application) sessionFeedbackPUT(w http.ResponseWriter, r *http.Request) {
	var feedback workout.SessionFeedback
	if err := decodeJSON(r, &feedback); err != nil {
		app.handleError(w, r, err)
		return
	}
	if err := app.workoutService.SaveFeedback(r.Context(), r.PathValue("id"), feedback); err != nil {
		app.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) sessionDELETE(w http.ResponseWriter, r *http.Request) {
	if err := app.workoutService.DeleteSession(r.Context(), r.PathValue("id")); err != nil {
		app.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
