package main

import (
	"net/http"

	"github.com/myrjola/mesocycle/internal/catalog"
	"github.com/myrjola/mesocycle/internal/workout"
)

func (app *application) recoveryGET(w http.ResponseWriter, r *http.Request) {
	overview, err := app.workoutService.RecoveryOverview(r.Context())
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, overview)
}

func (app *application) volumeGET(w http.ResponseWriter, r *http.Request) {
	volumes, err := app.workoutService.VolumeOverview(r.Context())
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, volumes)
}

type generateRequest struct {
	Muscles           []catalog.Muscle `json:"muscles"`
	TargetDurationMin int              `json:"targetDurationMin"`
}

func (app *application) workoutGeneratePOST(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		app.handleError(w, r, err)
		return
	}
	generated, err := app.workoutService.GenerateWorkout(r.Context(), workout.GenerateWorkoutRequest{
		Muscles:           req.Muscles,
		TargetDurationMin: req.TargetDurationMin,
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, generated)
}

// workoutPreviewPOST returns the volume zone transitions the posted workout would cause.
func (app *application) workoutPreviewPOST(w http.ResponseWriter, r *http.Request) {
	var planned workout.GeneratedWorkout
	if err := decodeJSON(r, &planned); err != nil {
		app.handleError(w, r, err)
		return
	}
	transitions, err := app.workoutService.PreviewVolume(r.Context(), planned)
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, transitions)
}
