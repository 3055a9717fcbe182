package main

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/myrjola/mesocycle/internal/catalog"
	"github.com/myrjola/mesocycle/internal/workout"
	"github.com/yuin/goldmark"
)

type exerciseInfoResponse struct {
	catalog.Exercise

	// InstructionsHTML is the rendered Markdown of the instructions. Raw HTML in the source is omitted.
	InstructionsHTML string           `json:"instructionsHtml,omitempty"`
	Category         catalog.Category `json:"category"`
}

func (app *application) exerciseInfoGET(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ex, ok := app.workoutService.Catalog().Exercise(id)
	if !ok {
		app.handleError(w, r, fmt.Errorf("exercise %q: %w", id, workout.ErrNotFound))
		return
	}

	resp := exerciseInfoResponse{
		Exercise:         ex,
		InstructionsHTML: "",
		Category:         catalog.CategoryOf(ex),
	}
	if ex.Instructions != "" {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(ex.Instructions), &buf); err != nil {
			app.serverError(w, r, fmt.Errorf("render instructions: %w", err))
			return
		}
		resp.InstructionsHTML = buf.String()
	}
	app.writeJSON(w, r, http.StatusOK, resp)
}
