package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/myrjola/mesocycle/internal/workout"
)

func (app *application) profileGET(w http.ResponseWriter, r *http.Request) {
	profile, err := app.workoutService.Profile(r.Context())
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, profile)
}

func (app *application) profilePUT(w http.ResponseWriter, r *http.Request) {
	var profile workout.Profile
	if err := decodeJSON(r, &profile); err != nil {
		app.handleError(w, r, err)
		return
	}
	if err := app.workoutService.SaveProfile(r.Context(), profile); err != nil {
		app.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) settingsGET(w http.ResponseWriter, r *http.Request) {
	settings, err := app.workoutService.Settings(r.Context())
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, settings)
}

func (app *application) settingsPUT(w http.ResponseWriter, r *http.Request) {
	var settings workout.SettingsDocument
	if err := decodeJSON(r, &settings); err != nil {
		app.handleError(w, r, err)
		return
	}
	if err := app.workoutService.SaveSettings(r.Context(), settings); err != nil {
		app.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) customWorkoutsGET(w http.ResponseWriter, r *http.Request) {
	workouts, err := app.workoutService.CustomWorkouts(r.Context())
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	if workouts == nil {
		workouts = []workout.CustomWorkout{}
	}
	app.writeJSON(w, r, http.StatusOK, workouts)
}

func (app *application) customWorkoutPOST(w http.ResponseWriter, r *http.Request) {
	var cw workout.CustomWorkout
	if err := decodeJSON(r, &cw); err != nil {
		app.handleError(w, r, err)
		return
	}
	saved, err := app.workoutService.SaveCustomWorkout(r.Context(), cw)
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, saved)
}

func (app *application) customWorkoutDELETE(w http.ResponseWriter, r *http.Request) {
	if err := app.workoutService.DeleteCustomWorkout(r.Context(), r.PathValue("id")); err != nil {
		app.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type exportResponse struct {
	Path string `json:"path"`
}

// exportPOST snapshots the local stores into a standalone SQLite file.
func (app *application) exportPOST(w http.ResponseWriter, r *http.Request) {
	path, err := app.db.Export(r.Context(), app.exportDir, time.Now())
	if err != nil {
		app.serverError(w, r, fmt.Errorf("export: %w", err))
		return
	}
	app.writeJSON(w, r, http.StatusCreated, exportResponse{Path: path})
}
