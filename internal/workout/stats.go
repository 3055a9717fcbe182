package workout

import (
	"time"
)

// Stats are derived from the history and recomputed whenever it changes.
type Stats struct {
	TotalWorkouts    int     `json:"totalWorkouts"`
	TotalSets        int     `json:"totalSets"`
	TotalVolume      float64 `json:"totalVolume"`
	TotalDurationSec int     `json:"totalDurationSec"`
	// PersonalRecords maps exercise ids to the best estimated one rep max.
	PersonalRecords    map[string]float64 `json:"personalRecords"`
	PRCount            int                `json:"prCount"`
	StreakWeeks        int                `json:"streakWeeks"`
	LongestStreakWeeks int                `json:"longestStreakWeeks"`
	LastWorkoutAt      *time.Time         `json:"lastWorkoutAt,omitempty"`
}

// bestOneRepMax returns the best estimated one rep max per exercise within a session.
func bestOneRepMax(s Session) map[string]float64 {
	best := make(map[string]float64)
	for _, ex := range s.Exercises {
		for _, set := range ex.Sets {
			if !set.Completed {
				continue
			}
			if e1rm := EstimateOneRepMax(set.Weight, set.Reps); e1rm > best[ex.ExerciseID] {
				best[ex.ExerciseID] = e1rm
			}
		}
	}
	return best
}

// personalRecords walks the history oldest first and counts, per session, the exercises whose best estimated
// one rep max beats every earlier session. The first performance of an exercise is not a record.
func personalRecords(history []Session) (map[string]int, map[string]float64) {
	perSession := make(map[string]int)
	best := make(map[string]float64)
	for _, s := range finishedOldestFirst(history) {
		for exerciseID, e1rm := range bestOneRepMax(s) {
			if e1rm <= 0 {
				continue
			}
			prev, seen := best[exerciseID]
			if seen && e1rm > prev {
				perSession[s.ID]++
			}
			if !seen || e1rm > prev {
				best[exerciseID] = e1rm
			}
		}
	}
	return perSession, best
}

// ComputeStats derives the aggregate statistics of the finished sessions.
func ComputeStats(history []Session) Stats {
	perSession, best := personalRecords(history)
	stats := Stats{
		TotalWorkouts:      0,
		TotalSets:          0,
		TotalVolume:        0,
		TotalDurationSec:   0,
		PersonalRecords:    best,
		PRCount:            0,
		StreakWeeks:        0,
		LongestStreakWeeks: 0,
		LastWorkoutAt:      nil,
	}
	for _, n := range perSession {
		stats.PRCount += n
	}

	weeks := make(map[time.Time]bool)
	for _, s := range finishedOldestFirst(history) {
		stats.TotalWorkouts++
		stats.TotalSets += sessionSets(s)
		stats.TotalVolume += sessionVolume(s)
		stats.TotalDurationSec += s.DurationSec
		weeks[weekKey(s.StartTime)] = true
		start := s.StartTime
		stats.LastWorkoutAt = &start
	}
	if stats.LastWorkoutAt == nil {
		return stats
	}

	// Current streak counts consecutive trained weeks ending in the week of the last workout.
	for w := weekKey(*stats.LastWorkoutAt); weeks[w]; w = w.AddDate(0, 0, -daysPerWeek) {
		stats.StreakWeeks++
	}
	for w := range weeks {
		if weeks[w.AddDate(0, 0, -daysPerWeek)] {
			continue
		}
		run := 0
		for d := w; weeks[d]; d = d.AddDate(0, 0, daysPerWeek) {
			run++
		}
		stats.LongestStreakWeeks = max(stats.LongestStreakWeeks, run)
	}
	return stats
}

// weekKey identifies the calendar week of t. The Monday is rebuilt in UTC so that keys compare equal
// regardless of the location the timestamp was decoded in.
func weekKey(t time.Time) time.Time {
	m := mondayOf(t)
	return time.Date(m.Year(), m.Month(), m.Day(), 0, 0, 0, 0, time.UTC)
}
