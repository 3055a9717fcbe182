package workout

import (
	"time"

	"github.com/myrjola/mesocycle/internal/catalog"
)

// Source records how a session entered the history.
type Source string

const (
	SourceApp    Source = "app"
	SourceManual Source = "manual"
)

// CompletedSet is a single logged set.
type CompletedSet struct {
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	Completed bool    `json:"completed"`
	// RIR is the reported reps in reserve.
	RIR *int `json:"rir,omitempty"`
}

// Effective reports whether the set was completed with a non-zero load.
func (s CompletedSet) Effective() bool {
	return s.Completed && s.Weight*float64(s.Reps) > 0
}

// CompletedExercise groups the logged sets of one exercise within a session.
type CompletedExercise struct {
	ExerciseID string         `json:"exerciseId"`
	Sets       []CompletedSet `json:"sets"`
}

// CompletedSets returns the number of sets flagged as completed.
func (e CompletedExercise) CompletedSets() int {
	n := 0
	for _, set := range e.Sets {
		if set.Completed {
			n++
		}
	}
	return n
}

// Level is a subjective rating on a 1-3 scale.
type Level int

const (
	LevelLow      Level = 1
	LevelModerate Level = 2
	LevelHigh     Level = 3
)

// SessionFeedback is attached to a session after it ends.
type SessionFeedback struct {
	Pump        Level `json:"pump"`
	Soreness    Level `json:"soreness"`
	Performance Level `json:"performance"`
	JointPain   bool  `json:"jointPain"`
}

// ReadinessCheck is the optional pre-session self assessment.
type ReadinessCheck struct {
	Sleep  Level `json:"sleep"`
	Energy Level `json:"energy"`
	Stress Level `json:"stress"`
}

// ProgramLink ties a session to a scheduled program day.
type ProgramLink struct {
	ProgramID string `json:"programId"`
	Week      int    `json:"week"`
	DayIndex  int    `json:"dayIndex"`
}

// Session is a single training occurrence. Only sessions with an EndTime count toward stats, recovery and volume.
type Session struct {
	ID          string              `json:"id"`
	WorkoutID   string              `json:"workoutId,omitempty"`
	Program     *ProgramLink        `json:"program,omitempty"`
	StartTime   time.Time           `json:"startTime"`
	EndTime     *time.Time          `json:"endTime,omitempty"`
	DurationSec int                 `json:"durationSec"`
	Exercises   []CompletedExercise `json:"exercises"`
	Feedback    *SessionFeedback    `json:"feedback,omitempty"`
	Readiness   *ReadinessCheck     `json:"readiness,omitempty"`
	Source      Source              `json:"source"`
}

// Finished reports whether the session has ended.
func (s Session) Finished() bool {
	return s.EndTime != nil
}

// Preferences stores which days of the week a user wants to work out.
type Preferences struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`
}

// PreferencesFromDays builds Preferences from Monday-based day indices (0 = Monday, 6 = Sunday).
// Out of range indices are ignored.
func PreferencesFromDays(days []int) Preferences {
	var p Preferences
	for _, d := range days {
		switch d {
		case 0:
			p.Monday = true
		case 1:
			p.Tuesday = true
		case 2: //nolint:mnd // Wednesday
			p.Wednesday = true
		case 3: //nolint:mnd // Thursday
			p.Thursday = true
		case 4: //nolint:mnd // Friday
			p.Friday = true
		case 5: //nolint:mnd // Saturday
			p.Saturday = true
		case 6: //nolint:mnd // Sunday
			p.Sunday = true
		}
	}
	return p
}

// Has reports whether d is a preferred training day.
func (p Preferences) Has(d time.Weekday) bool {
	switch d {
	case time.Monday:
		return p.Monday
	case time.Tuesday:
		return p.Tuesday
	case time.Wednesday:
		return p.Wednesday
	case time.Thursday:
		return p.Thursday
	case time.Friday:
		return p.Friday
	case time.Saturday:
		return p.Saturday
	case time.Sunday:
		return p.Sunday
	default:
		return false
	}
}

// Days returns the preferred days as Monday-based indices.
func (p Preferences) Days() []int {
	var days []int
	for i := range 7 {
		if p.Has(time.Weekday((i + 1) % 7)) { //nolint:mnd // Monday-based to Sunday-based weekday.
			days = append(days, i)
		}
	}
	return days
}

// Empty reports whether no day is preferred.
func (p Preferences) Empty() bool {
	return !p.Monday && !p.Tuesday && !p.Wednesday && !p.Thursday && !p.Friday && !p.Saturday && !p.Sunday
}

// Profile holds the user attributes the generators need.
type Profile struct {
	Bodyweight float64            `json:"bodyweight"`
	Sex        catalog.Sex        `json:"sex"`
	Experience catalog.Experience `json:"experience"`
	Goal       catalog.Goal       `json:"goal"`
	Setup      catalog.Setup      `json:"setup"`
}

// Focus is the emphasis of a program day.
type Focus string

const (
	FocusFullBody Focus = "full_body"
	FocusUpper    Focus = "upper"
	FocusLower    Focus = "lower"
	FocusPush     Focus = "push"
	FocusPull     Focus = "pull"
	FocusLegs     Focus = "legs"
	FocusRest     Focus = "rest"
)

// ProgramExercise is an exercise prescription inside a program day or a custom workout.
type ProgramExercise struct {
	ExerciseID string         `json:"exerciseId"`
	Muscle     catalog.Muscle `json:"muscle"`
	Sets       int            `json:"sets"`
	RepMin     int            `json:"repMin"`
	RepMax     int            `json:"repMax"`
	RestSec    int            `json:"restSec"`
}

// ProgramDay is one day of a program week.
type ProgramDay struct {
	Name      string            `json:"name"`
	Focus     Focus             `json:"focus"`
	Muscles   []catalog.Muscle  `json:"muscles,omitempty"`
	Exercises []ProgramExercise `json:"exercises,omitempty"`
	Rest      bool              `json:"rest"`
}

// ProgramWeek is one week of a mesocycle.
type ProgramWeek struct {
	Number int          `json:"number"`
	Deload bool         `json:"deload"`
	Days   []ProgramDay `json:"days"`
}

// TrainingDays returns the number of non-rest days.
func (w ProgramWeek) TrainingDays() int {
	n := 0
	for _, d := range w.Days {
		if !d.Rest {
			n++
		}
	}
	return n
}

// TrainingProgram is generated once and never mutated afterwards.
type TrainingProgram struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Goal        catalog.Goal  `json:"goal"`
	DaysPerWeek int           `json:"daysPerWeek"`
	CreatedAt   time.Time     `json:"createdAt"`
	Weeks       []ProgramWeek `json:"weeks"`
}

// Day returns the program day for a 1-based week number and a day index.
func (p TrainingProgram) Day(week, dayIndex int) (ProgramDay, bool) {
	for _, w := range p.Weeks {
		if w.Number != week {
			continue
		}
		if dayIndex < 0 || dayIndex >= len(w.Days) {
			return ProgramDay{}, false
		}
		return w.Days[dayIndex], true
	}
	return ProgramDay{}, false
}

// ScheduledDay places a non-rest program day on the calendar. A CompletedDate locks the entry.
type ScheduledDay struct {
	WeekNumber    int        `json:"weekNumber"`
	DayIndex      int        `json:"dayIndex"`
	PlannedDate   time.Time  `json:"plannedDate"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
}

// ProgramSchedule maps a program onto calendar dates.
type ProgramSchedule struct {
	Preferences Preferences    `json:"preferredDays"`
	StartDate   time.Time      `json:"startDate"`
	Days        []ScheduledDay `json:"days"`
}

// CustomWorkout is a saved workout template.
type CustomWorkout struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Exercises []ProgramExercise `json:"exercises"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// WorkoutDocument is the persisted state of the workout store.
type WorkoutDocument struct {
	CustomWorkouts []CustomWorkout  `json:"customWorkouts"`
	History        []Session        `json:"history"`
	Stats          Stats            `json:"stats"`
	MuscleOrder    []catalog.Muscle `json:"muscleOrder,omitempty"`
	HomeCardOrder  []string         `json:"homeCardOrder,omitempty"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Empty reports whether the document holds neither history nor custom workouts.
func (d WorkoutDocument) Empty() bool {
	return len(d.History) == 0 && len(d.CustomWorkouts) == 0
}

// ProgramDocument is the persisted state of the program store. The program and the profile sync to
// separate remote rows and therefore carry their own modification timestamps.
type ProgramDocument struct {
	Program          *TrainingProgram `json:"program,omitempty"`
	Schedule         *ProgramSchedule `json:"schedule,omitempty"`
	ProgramUpdatedAt time.Time        `json:"programUpdatedAt"`
	Profile          *Profile         `json:"profile,omitempty"`
	ProfileUpdatedAt time.Time        `json:"profileUpdatedAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// UnlockedBadge records when a badge was first earned.
type UnlockedBadge struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// BadgeDocument is the persisted state of the badge store.
type BadgeDocument struct {
	Unlocked []UnlockedBadge `json:"unlocked"`
	// PreviousPoints is the point total the user last acknowledged.
	PreviousPoints int       `json:"previousPoints"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Units is the display unit for loads.
type Units string

const (
	UnitsKg Units = "kg"
	UnitsLb Units = "lb"
)

// SettingsDocument is the persisted state of the settings store.
type SettingsDocument struct {
	Units             Units     `json:"units"`
	RestTimerEnabled  bool      `json:"restTimerEnabled"`
	DefaultRestSec    int       `json:"defaultRestSec"`
	WeekStartsMonday  bool      `json:"weekStartsMonday"`
	TargetDurationMin int       `json:"targetDurationMin"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
