package workout

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/mesocycle/internal/catalog"
)

func threeDayProgram(t *testing.T) TrainingProgram {
	t.Helper()
	return GenerateProgram(catalog.Default(), ProgramRequest{
		Name:        "Full Body",
		DaysPerWeek: 3,
		Weeks:       3,
		Goal:        catalog.GoalHypertrophy,
		Equipment:   catalog.AllEquipment,
		CreatedAt:   date(2023, 12, 30, 9),
	})
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func plannedDates(s ProgramSchedule) []time.Time {
	dates := make([]time.Time, 0, len(s.Days))
	for _, d := range s.Days {
		dates = append(dates, d.PlannedDate)
	}
	return dates
}

func TestBuildSchedule_mondayWednesdayFriday(t *testing.T) {
	schedule := BuildSchedule(threeDayProgram(t), PreferencesFromDays([]int{0, 2, 4}), day(2024, 1, 1))

	want := []time.Time{
		day(2024, 1, 1), day(2024, 1, 3), day(2024, 1, 5),
		day(2024, 1, 8), day(2024, 1, 10), day(2024, 1, 12),
		day(2024, 1, 15), day(2024, 1, 17), day(2024, 1, 19),
	}
	if diff := cmp.Diff(want, plannedDates(schedule)); diff != "" {
		t.Errorf("planned dates mismatch (-want +got):\n%s", diff)
	}
	for i, d := range schedule.Days[:3] {
		if d.WeekNumber != 1 || d.DayIndex != i {
			t.Errorf("entry %d = week %d day %d, want week 1 day %d", i, d.WeekNumber, d.DayIndex, i)
		}
	}
}

func TestBuildSchedule_emptyPreferences(t *testing.T) {
	schedule := BuildSchedule(threeDayProgram(t), Preferences{}, day(2024, 1, 1))
	if schedule.Days == nil || len(schedule.Days) != 0 {
		t.Errorf("Days = %#v, want empty non-nil slice", schedule.Days)
	}
	if got := RescheduleForward(schedule, 1, 0, day(2024, 1, 2)); len(got.Days) != 0 {
		t.Errorf("RescheduleForward on an empty schedule produced %d days", len(got.Days))
	}
}

func TestRescheduleForward(t *testing.T) {
	schedule := BuildSchedule(threeDayProgram(t), PreferencesFromDays([]int{0, 2, 4}), day(2024, 1, 1))

	// Day two of week one is done late on Friday, so the rest of the week slips to the next Monday and the
	// following program week starts the Monday after.
	got := RescheduleForward(schedule, 1, 1, time.Date(2024, 1, 5, 19, 30, 0, 0, time.UTC))
	want := []time.Time{
		day(2024, 1, 1), day(2024, 1, 3), day(2024, 1, 8),
		day(2024, 1, 15), day(2024, 1, 17), day(2024, 1, 19),
		day(2024, 1, 22), day(2024, 1, 24), day(2024, 1, 26),
	}
	if diff := cmp.Diff(want, plannedDates(got)); diff != "" {
		t.Errorf("planned dates mismatch (-want +got):\n%s", diff)
	}
	if got.Days[1].CompletedDate == nil || !got.Days[1].CompletedDate.Equal(day(2024, 1, 5)) {
		t.Errorf("CompletedDate = %v, want 2024-01-05", got.Days[1].CompletedDate)
	}
	// The input is not mutated.
	if schedule.Days[1].CompletedDate != nil || !schedule.Days[2].PlannedDate.Equal(day(2024, 1, 5)) {
		t.Error("RescheduleForward mutated its input")
	}
}

func TestRescheduleForward_completedEntriesAreLocked(t *testing.T) {
	schedule := BuildSchedule(threeDayProgram(t), PreferencesFromDays([]int{1, 3, 5}), day(2024, 1, 3))

	schedule = RescheduleForward(schedule, 1, 0, day(2024, 1, 3))
	schedule = RescheduleForward(schedule, 2, 1, day(2024, 1, 6))
	locked := make(map[int]ScheduledDay)
	for i, d := range schedule.Days {
		if d.CompletedDate != nil {
			locked[i] = d
		}
	}
	if len(locked) != 2 {
		t.Fatalf("got %d completed entries, want 2", len(locked))
	}

	for _, step := range []struct {
		week, dayIndex int
		at             time.Time
	}{
		{week: 1, dayIndex: 1, at: day(2024, 1, 4)},
		{week: 1, dayIndex: 1, at: day(2024, 1, 4)},
		{week: 1, dayIndex: 0, at: day(2024, 1, 20)},
		{week: 3, dayIndex: 2, at: day(2024, 2, 1)},
	} {
		schedule = RescheduleForward(schedule, step.week, step.dayIndex, step.at)
		for i, want := range locked {
			if diff := cmp.Diff(want, schedule.Days[i]); diff != "" {
				t.Fatalf("locked entry %d changed after completing week %d day %d (-want +got):\n%s",
					i, step.week, step.dayIndex, diff)
			}
		}
	}

	once := RescheduleForward(schedule, 1, 1, day(2024, 1, 4))
	twice := RescheduleForward(once, 1, 1, day(2024, 1, 4))
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("rescheduling twice is not idempotent (-want +got):\n%s", diff)
	}
}

func TestNextScheduledDay(t *testing.T) {
	schedule := BuildSchedule(threeDayProgram(t), PreferencesFromDays([]int{0, 2, 4}), day(2024, 1, 1))
	schedule = RescheduleForward(schedule, 1, 0, day(2024, 1, 1))

	next, ok := NextScheduledDay(schedule)
	if !ok || next.WeekNumber != 1 || next.DayIndex != 1 {
		t.Errorf("NextScheduledDay = %+v, %v; want week 1 day 1", next, ok)
	}
}

func TestPreferences_Empty(t *testing.T) {
	var none Preferences
	if !none.Empty() {
		t.Error("zero Preferences should be empty")
	}
	for day := range 7 {
		prefs := PreferencesFromDays([]int{day})
		if prefs.Empty() {
			t.Errorf("Preferences with day %d should not be empty", day)
		}
		if got := prefs.Days(); len(got) != 1 || got[0] != day {
			t.Errorf("Days() = %v, want [%d]", got, day)
		}
	}
}
