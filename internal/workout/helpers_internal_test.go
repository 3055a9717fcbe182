package workout

import (
	"time"
)

// finished builds a finished session starting at start that lasted an hour.
func finished(id string, start time.Time, exercises ...CompletedExercise) Session {
	end := start.Add(time.Hour)
	return Session{
		ID:          id,
		WorkoutID:   "",
		Program:     nil,
		StartTime:   start,
		EndTime:     &end,
		DurationSec: int(time.Hour.Seconds()),
		Exercises:   exercises,
		Feedback:    nil,
		Readiness:   nil,
		Source:      SourceApp,
	}
}

// completed builds an exercise with one completed set per reps value.
func completed(exerciseID string, weight float64, reps ...int) CompletedExercise {
	ex := CompletedExercise{ExerciseID: exerciseID, Sets: make([]CompletedSet, 0, len(reps))}
	for _, r := range reps {
		ex.Sets = append(ex.Sets, CompletedSet{Weight: weight, Reps: r, Completed: true, RIR: nil})
	}
	return ex
}

// repeatReps returns n copies of reps.
func repeatReps(reps, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = reps
	}
	return out
}

func date(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}
