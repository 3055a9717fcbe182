package workout

import (
	"time"

	"github.com/myrjola/mesocycle/internal/catalog"
)

// projectionHour is the clock time at which future recovery is projected.
const projectionHour = 12

// SessionSummary is a compact view of a session on a timeline day.
type SessionSummary struct {
	ID          string           `json:"id"`
	StartTime   time.Time        `json:"startTime"`
	DurationSec int              `json:"durationSec"`
	Sets        int              `json:"sets"`
	Volume      float64          `json:"volume"`
	Muscles     []catalog.Muscle `json:"muscles"`
	PRCount     int              `json:"prCount"`
}

// ScheduledWorkout is the program day planned for a date.
type ScheduledWorkout struct {
	WeekNumber int              `json:"weekNumber"`
	DayIndex   int              `json:"dayIndex"`
	Name       string           `json:"name"`
	Focus      Focus            `json:"focus"`
	Muscles    []catalog.Muscle `json:"muscles"`
	Completed  bool             `json:"completed"`
}

// MuscleProjection is the projected recovery of a muscle on a future date.
type MuscleProjection struct {
	Muscle     catalog.Muscle `json:"muscle"`
	Status     RecoveryStatus `json:"status"`
	HoursSince *float64       `json:"hoursSince,omitempty"`
}

// TimelineDay is one calendar day of the week view. Past days and today carry what was logged, future days
// carry the plan and a recovery projection.
type TimelineDay struct {
	Date       time.Time          `json:"date"`
	IsToday    bool               `json:"isToday"`
	IsFuture   bool               `json:"isFuture"`
	Sessions   []SessionSummary   `json:"sessions,omitempty"`
	TotalSets  int                `json:"totalSets"`
	Volume     float64            `json:"volume"`
	Muscles    []catalog.Muscle   `json:"muscles,omitempty"`
	PRCount    int                `json:"prCount"`
	Scheduled  *ScheduledWorkout  `json:"scheduled,omitempty"`
	Projection []MuscleProjection `json:"projection,omitempty"`
}

// BuildWeekTimeline returns the seven days of the week weekOffset weeks away from the week containing now,
// starting on Monday. Dates use the location of now.
//
// The recovery projection of a future day looks at logged sessions only. Workouts scheduled between now and
// the projected day are not simulated.
func BuildWeekTimeline(
	cat *catalog.Catalog,
	history []Session,
	schedule *ProgramSchedule,
	program *TrainingProgram,
	weekOffset int,
	now time.Time,
) []TimelineDay {
	loc := now.Location()
	today := normalizeDate(now)
	monday := mondayOf(now).AddDate(0, 0, weekOffset*daysPerWeek)
	prs, _ := personalRecords(history)

	byDate := make(map[string][]Session)
	for _, s := range finishedOldestFirst(history) {
		key := dateKey(s.StartTime, loc)
		byDate[key] = append(byDate[key], s)
	}
	planned := scheduledByDate(schedule, loc)

	days := make([]TimelineDay, 0, daysPerWeek)
	for i := range daysPerWeek {
		date := monday.AddDate(0, 0, i)
		key := dateKey(date, loc)
		day := TimelineDay{
			Date:       date,
			IsToday:    date.Equal(today),
			IsFuture:   date.After(today),
			Sessions:   nil,
			TotalSets:  0,
			Volume:     0,
			Muscles:    nil,
			PRCount:    0,
			Scheduled:  nil,
			Projection: nil,
		}

		if entry, ok := planned[key]; ok {
			day.Scheduled = scheduledWorkout(entry, program)
		}

		if day.IsFuture {
			target := time.Date(date.Year(), date.Month(), date.Day(), projectionHour, 0, 0, 0, loc)
			day.Projection = ProjectRecovery(cat, history, target)
			days = append(days, day)
			continue
		}

		seen := make(map[catalog.Muscle]bool)
		for _, s := range byDate[key] {
			summary := summarizeSession(cat, s, prs[s.ID])
			day.Sessions = append(day.Sessions, summary)
			day.TotalSets += summary.Sets
			day.Volume += summary.Volume
			day.PRCount += summary.PRCount
			for _, m := range summary.Muscles {
				if !seen[m] {
					seen[m] = true
					day.Muscles = append(day.Muscles, m)
				}
			}
		}
		days = append(days, day)
	}
	return days
}

// ProjectRecovery classifies every muscle at target using the fixed thresholds without the volume and
// feedback multiplier.
func ProjectRecovery(cat *catalog.Catalog, history []Session, target time.Time) []MuscleProjection {
	last := lastTrainedBefore(cat, history, target)
	projection := make([]MuscleProjection, 0, len(catalog.Muscles))
	for _, m := range catalog.Muscles {
		p := MuscleProjection{Muscle: m, Status: RecoveryUndertrained, HoursSince: nil}
		if lt, ok := last[m]; ok {
			hours := target.Sub(lt.at).Hours()
			thresholds := catalog.MuscleRecoveryHours(m)
			p.HoursSince = &hours
			p.Status = classifyRecovery(hours, thresholds.FreshMin, thresholds)
		}
		projection = append(projection, p)
	}
	return projection
}

func summarizeSession(cat *catalog.Catalog, s Session, prCount int) SessionSummary {
	summary := SessionSummary{
		ID:          s.ID,
		StartTime:   s.StartTime,
		DurationSec: s.DurationSec,
		Sets:        sessionSets(s),
		Volume:      sessionVolume(s),
		Muscles:     nil,
		PRCount:     prCount,
	}
	sets := muscleSets(cat, s)
	for _, m := range catalog.Muscles {
		if sets[m] > 0 {
			summary.Muscles = append(summary.Muscles, m)
		}
	}
	return summary
}

func scheduledByDate(schedule *ProgramSchedule, loc *time.Location) map[string]ScheduledDay {
	planned := make(map[string]ScheduledDay)
	if schedule == nil {
		return planned
	}
	for _, d := range schedule.Days {
		date := d.PlannedDate
		if d.CompletedDate != nil {
			date = *d.CompletedDate
		}
		key := dateKey(date, loc)
		if _, taken := planned[key]; !taken {
			planned[key] = d
		}
	}
	return planned
}

func scheduledWorkout(entry ScheduledDay, program *TrainingProgram) *ScheduledWorkout {
	sw := &ScheduledWorkout{
		WeekNumber: entry.WeekNumber,
		DayIndex:   entry.DayIndex,
		Name:       "",
		Focus:      "",
		Muscles:    nil,
		Completed:  entry.CompletedDate != nil,
	}
	if program != nil {
		if day, ok := program.Day(entry.WeekNumber, entry.DayIndex); ok {
			sw.Name = day.Name
			sw.Focus = day.Focus
			sw.Muscles = day.Muscles
		}
	}
	return sw
}

// DayStatus is the calendar classification of a month day.
type DayStatus string

const (
	DayToday     DayStatus = "today"
	DayTrained   DayStatus = "trained"
	DayScheduled DayStatus = "scheduled"
	DayRest      DayStatus = "rest"
)

// MonthDay is one day of the month calendar.
type MonthDay struct {
	Date   time.Time `json:"date"`
	Status DayStatus `json:"status"`
	// Trained is kept on today so the calendar can mark both.
	Trained bool `json:"trained"`
}

// BuildMonthSummary classifies each day of the month from set lookups over the history and the schedule.
// Today wins over trained, trained over scheduled, and every other day is a rest day.
func BuildMonthSummary(
	history []Session,
	schedule *ProgramSchedule,
	year int,
	month time.Month,
	now time.Time,
) []MonthDay {
	loc := now.Location()
	todayKey := dateKey(now, loc)

	trained := make(map[string]bool)
	for _, s := range history {
		if s.Finished() {
			trained[dateKey(s.StartTime, loc)] = true
		}
	}
	scheduled := make(map[string]bool)
	if schedule != nil {
		for _, d := range schedule.Days {
			if d.CompletedDate == nil {
				scheduled[dateKey(d.PlannedDate, loc)] = true
			}
		}
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	var days []MonthDay
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		key := dateKey(d, loc)
		md := MonthDay{Date: d, Status: DayRest, Trained: trained[key]}
		switch {
		case key == todayKey:
			md.Status = DayToday
		case trained[key]:
			md.Status = DayTrained
		case scheduled[key]:
			md.Status = DayScheduled
		}
		days = append(days, md)
	}
	return days
}
