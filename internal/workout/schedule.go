package workout

import (
	"slices"
	"time"
)

// nextPreferredDate returns the first preferred day on or after cursor. Preferences must not be empty.
func nextPreferredDate(cursor time.Time, prefs Preferences) time.Time {
	for i := range daysPerWeek {
		d := cursor.AddDate(0, 0, i)
		if prefs.Has(d.Weekday()) {
			return d
		}
	}
	return cursor
}

// BuildSchedule places every non-rest program day on the calendar.
//
// The cursor starts at startDate and never sits before the Monday of the calendar week a program week maps to.
// Each training day takes the next preferred weekday on or after the cursor, and the cursor moves past it.
// After a program week the cursor advances to the next Monday. Empty preferences produce an empty schedule.
func BuildSchedule(program TrainingProgram, prefs Preferences, startDate time.Time) ProgramSchedule {
	start := normalizeDate(startDate)
	schedule := ProgramSchedule{
		Preferences: prefs,
		StartDate:   start,
		Days:        []ScheduledDay{},
	}
	if prefs.Empty() {
		return schedule
	}

	firstMonday := mondayOf(start)
	cursor := start
	for wi, week := range program.Weeks {
		weekMonday := firstMonday.AddDate(0, 0, wi*daysPerWeek)
		if cursor.Before(weekMonday) {
			cursor = weekMonday
		}
		for di, day := range week.Days {
			if day.Rest {
				continue
			}
			planned := nextPreferredDate(cursor, prefs)
			schedule.Days = append(schedule.Days, ScheduledDay{
				WeekNumber:    week.Number,
				DayIndex:      di,
				PlannedDate:   planned,
				CompletedDate: nil,
			})
			cursor = planned.AddDate(0, 0, 1)
		}
		cursor = nextMondayOnOrAfter(cursor)
	}
	return schedule
}

// RescheduleForward locks the completed entry and replans every later uncompleted entry starting the day after
// the completion. Completed entries keep their dates even when they sit between replanned ones.
func RescheduleForward(schedule ProgramSchedule, week, dayIndex int, completedDate time.Time) ProgramSchedule {
	out := schedule
	out.Days = slices.Clone(schedule.Days)

	idx := slices.IndexFunc(out.Days, func(d ScheduledDay) bool {
		return d.WeekNumber == week && d.DayIndex == dayIndex
	})
	if idx < 0 {
		return out
	}

	if out.Days[idx].CompletedDate == nil {
		done := normalizeDate(completedDate)
		out.Days[idx].CompletedDate = &done
	}
	if out.Preferences.Empty() {
		return out
	}

	cursor := out.Days[idx].CompletedDate.AddDate(0, 0, 1)
	currentWeek := out.Days[idx].WeekNumber
	for i := idx + 1; i < len(out.Days); i++ {
		entry := &out.Days[i]
		if entry.CompletedDate != nil {
			continue
		}
		if entry.WeekNumber != currentWeek {
			cursor = nextMondayOnOrAfter(cursor)
			currentWeek = entry.WeekNumber
		}
		entry.PlannedDate = nextPreferredDate(cursor, out.Preferences)
		cursor = entry.PlannedDate.AddDate(0, 0, 1)
	}
	return out
}

// NextScheduledDay returns the first uncompleted entry of the schedule.
func NextScheduledDay(schedule ProgramSchedule) (ScheduledDay, bool) {
	for _, d := range schedule.Days {
		if d.CompletedDate == nil {
			return d, true
		}
	}
	return ScheduledDay{}, false
}
