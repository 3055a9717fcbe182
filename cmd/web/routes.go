package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	var (
		common = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(app.recoverPanic(secureHeaders(noCache(app.crossOriginProtection(next)))))
		}
		api = func(next http.HandlerFunc) http.Handler {
			return common(app.withUser(app.timeout(next)))
		}
	)

	mux.Handle("GET /api/healthy", common(http.HandlerFunc(app.healthy)))
	mux.Handle("GET /api/test/timeout", common(app.timeout(http.HandlerFunc(app.testTimeout))))

	mux.Handle("GET /api/recovery", api(app.recoveryGET))
	mux.Handle("GET /api/volume", api(app.volumeGET))
	mux.Handle("POST /api/workouts/generate", api(app.workoutGeneratePOST))
	mux.Handle("POST /api/workouts/preview", api(app.workoutPreviewPOST))

	mux.Handle("GET /api/sessions", api(app.sessionsGET))
	mux.Handle("POST /api/sessions", api(app.sessionStartPOST))
	mux.Handle("POST /api/sessions/manual", api(app.sessionManualPOST))
	mux.Handle("POST /api/sessions/{id}/sets", api(app.sessionSetPOST))
	mux.Handle("POST /api/sessions/{id}/finish", api(app.sessionFinishPOST))
	mux.Handle("PUT /api/sessions/{id}/feedback", api(app.sessionFeedbackPUT))
	mux.Handle("DELETE /api/sessions/{id}", api(app.sessionDELETE))

	mux.Handle("GET /api/program", api(app.programGET))
	mux.Handle("POST /api/program", api(app.programPOST))
	mux.Handle("GET /api/program/next", api(app.programNextGET))
	mux.Handle("GET /api/timeline/week", api(app.timelineWeekGET))
	mux.Handle("GET /api/timeline/month/{year}/{month}", api(app.timelineMonthGET))

	mux.Handle("GET /api/profile", api(app.profileGET))
	mux.Handle("PUT /api/profile", api(app.profilePUT))
	mux.Handle("GET /api/settings", api(app.settingsGET))
	mux.Handle("PUT /api/settings", api(app.settingsPUT))
	mux.Handle("GET /api/custom-workouts", api(app.customWorkoutsGET))
	mux.Handle("POST /api/custom-workouts", api(app.customWorkoutPOST))
	mux.Handle("DELETE /api/custom-workouts/{id}", api(app.customWorkoutDELETE))
	mux.Handle("POST /api/export", api(app.exportPOST))

	mux.Handle("GET /api/exercises/{id}", api(app.exerciseInfoGET))

	mux.Handle("GET /api/badges", api(app.badgesGET))
	mux.Handle("POST /api/badges/acknowledge", api(app.badgesAcknowledgePOST))
	mux.Handle("GET /api/stats", api(app.statsGET))

	// Login sync talks to the remote and may outlast the request timeout.
	mux.Handle("POST /api/sync/login", common(app.withUser(http.HandlerFunc(app.syncLoginPOST))))
	mux.Handle("GET /api/sync/state", api(app.syncStateGET))

	mux.Handle("GET /metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{})) //nolint:exhaustruct // defaults.

	mux.Handle("/", common(http.HandlerFunc(app.notFound)))

	return mux, nil
}
