package main

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/myrjola/mesocycle/internal/cloudsync"
	"github.com/myrjola/mesocycle/internal/flightrecorder"
	"github.com/myrjola/mesocycle/internal/sqlite"
	"github.com/myrjola/mesocycle/internal/workout"
)

const syncLoginTimeout = 30 * time.Second

type syncLoginResponse struct {
	Tables []cloudsync.TableResult `json:"tables"`
}

// syncLoginPOST pulls, merges and pushes every store. Per-table failures are reported in the body.
func (app *application) syncLoginPOST(w http.ResponseWriter, r *http.Request) {
	if app.syncEngine == nil {
		app.writeError(w, r, http.StatusServiceUnavailable, "sync is not configured")
		return
	}
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Now().Add(syncLoginTimeout + time.Second)); err != nil {
		app.serverError(w, r, fmt.Errorf("extend write deadline: %w", err))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), syncLoginTimeout)
	defer cancel()

	results := app.syncEngine.SyncOnLogin(ctx)
	if app.flightRecorder != nil && slices.ContainsFunc(results, func(res cloudsync.TableResult) bool {
		return res.Error != ""
	}) {
		app.flightRecorder.Capture(r.Context(), flightrecorder.ReasonSyncFailure)
	}
	app.writeJSON(w, r, http.StatusOK, syncLoginResponse{Tables: results})
}

type syncStateResponse struct {
	Enabled bool                         `json:"enabled"`
	Tables  []sqlite.SyncState           `json:"tables"`
	Stores  map[workout.StoreName]string `json:"stores"`
}

func (app *application) syncStateGET(w http.ResponseWriter, r *http.Request) {
	tables, err := app.db.SyncStates(r.Context())
	if err != nil {
		app.serverError(w, r, fmt.Errorf("sync states: %w", err))
		return
	}
	resp := syncStateResponse{
		Enabled: app.syncEngine != nil,
		Tables:  tables,
		Stores:  map[workout.StoreName]string{},
	}
	if resp.Tables == nil {
		resp.Tables = []sqlite.SyncState{}
	}
	if app.syncEngine != nil {
		resp.Stores = app.syncEngine.State()
	}
	app.writeJSON(w, r, http.StatusOK, resp)
}
