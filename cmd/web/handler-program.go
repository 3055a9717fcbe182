package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/myrjola/mesocycle/internal/workout"
)

func (app *application) programGET(w http.ResponseWriter, r *http.Request) {
	doc, err := app.workoutService.Program(r.Context())
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, doc)
}

type createProgramRequest struct {
	Name        string `json:"name"`
	DaysPerWeek int    `json:"daysPerWeek"`
	Weeks       int    `json:"weeks"`
	// PreferredDays are Monday-based day indices.
	PreferredDays []int `json:"preferredDays"`
	// StartDate is formatted as 2006-01-02. Empty starts today.
	StartDate string `json:"startDate"`
}

func (app *application) programPOST(w http.ResponseWriter, r *http.Request) {
	var req createProgramRequest
	if err := decodeJSON(r, &req); err != nil {
		app.handleError(w, r, err)
		return
	}
	var start time.Time
	if req.StartDate != "" {
		var err error
		if start, err = time.ParseInLocation(time.DateOnly, req.StartDate, time.Local); err != nil {
			app.handleError(w, r, fmt.Errorf("%w: start date: %w", workout.ErrInvalid, err))
			return
		}
	}
	doc, err := app.workoutService.CreateProgram(r.Context(), workout.CreateProgramRequest{
		Name:          req.Name,
		DaysPerWeek:   req.DaysPerWeek,
		Weeks:         req.Weeks,
		PreferredDays: req.PreferredDays,
		StartDate:     start,
	})
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, doc)
}

type nextDayResponse struct {
	Scheduled workout.ScheduledDay `json:"scheduled"`
	Day       workout.ProgramDay   `json:"day"`
}

func (app *application) programNextGET(w http.ResponseWriter, r *http.Request) {
	scheduled, day, err := app.workoutService.NextProgramDay(r.Context())
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, nextDayResponse{Scheduled: scheduled, Day: day})
}

// timelineWeekGET returns the week timeline. The offset query parameter selects weeks relative to the current one.
func (app *application) timelineWeekGET(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	days, err := app.workoutService.WeekTimeline(r.Context(), offset)
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, days)
}

func (app *application) timelineMonthGET(w http.ResponseWriter, r *http.Request) {
	year, err := pathInt(r, "year")
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	month, err := pathInt(r, "month")
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	days, err := app.workoutService.MonthSummary(r.Context(), year, time.Month(month))
	if err != nil {
		app.handleError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, days)
}
