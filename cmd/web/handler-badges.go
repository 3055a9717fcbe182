package main

import (
	"net/http"
)

func (app *application) badgesGET(w http.ResponseWriter, r *http.Request) {
	overview, err := app.workoutService.Badges(r.Context())
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, overview)
}

// badgesAcknowledgePOST marks the current point total as seen so that it no longer shows as pending.
func (app *application) badgesAcknowledgePOST(w http.ResponseWriter, r *http.Request) {
	if err := app.workoutService.AcknowledgeBadgePoints(r.Context()); err != nil {
		app.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) statsGET(w http.ResponseWriter, r *http.Request) {
	stats, err := app.workoutService.Stats(r.Context())
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, stats)
}
