package workout

import (
	"slices"
	"time"

	"github.com/myrjola/mesocycle/internal/catalog"
)

const daysPerWeek = 7

// finishedNewestFirst returns the finished sessions sorted by start time, newest first.
func finishedNewestFirst(history []Session) []Session {
	sessions := make([]Session, 0, len(history))
	for _, s := range history {
		if s.Finished() {
			sessions = append(sessions, s)
		}
	}
	slices.SortStableFunc(sessions, func(a, b Session) int {
		return b.StartTime.Compare(a.StartTime)
	})
	return sessions
}

// finishedOldestFirst returns the finished sessions sorted by start time, oldest first.
func finishedOldestFirst(history []Session) []Session {
	sessions := finishedNewestFirst(history)
	slices.Reverse(sessions)
	return sessions
}

// muscleSets counts completed sets per target muscle in a session. Exercises missing from the catalog are ignored.
func muscleSets(cat *catalog.Catalog, s Session) map[catalog.Muscle]int {
	sets := make(map[catalog.Muscle]int)
	for _, ex := range s.Exercises {
		entry, ok := cat.Exercise(ex.ExerciseID)
		if !ok {
			continue
		}
		if n := ex.CompletedSets(); n > 0 {
			sets[entry.Target] += n
		}
	}
	return sets
}

// sessionVolume sums weight times reps over completed sets.
func sessionVolume(s Session) float64 {
	var volume float64
	for _, ex := range s.Exercises {
		for _, set := range ex.Sets {
			if set.Effective() {
				volume += set.Weight * float64(set.Reps)
			}
		}
	}
	return volume
}

// sessionSets counts completed sets.
func sessionSets(s Session) int {
	n := 0
	for _, ex := range s.Exercises {
		n += ex.CompletedSets()
	}
	return n
}

// normalizeDate strips the clock from t, keeping its location.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mondayOf returns the Monday that starts the calendar week of t.
func mondayOf(t time.Time) time.Time {
	d := normalizeDate(t)
	offset := (int(d.Weekday()) + daysPerWeek - int(time.Monday)) % daysPerWeek
	return d.AddDate(0, 0, -offset)
}

// nextMondayOnOrAfter returns t if it is a Monday, otherwise the following Monday.
func nextMondayOnOrAfter(t time.Time) time.Time {
	d := normalizeDate(t)
	if d.Weekday() == time.Monday {
		return d
	}
	return mondayOf(d).AddDate(0, 0, daysPerWeek)
}

// dateKey identifies the calendar date of t in loc.
func dateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateOnly)
}
