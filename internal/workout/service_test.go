package workout_test

import (
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/mesocycle/internal/catalog"
	"github.com/myrjola/mesocycle/internal/ptr"
	"github.com/myrjola/mesocycle/internal/sqlite"
	"github.com/myrjola/mesocycle/internal/testhelpers"
	"github.com/myrjola/mesocycle/internal/workout"
)

// clock is a manually advanced time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	service   *workout.Service
	clock     *clock
	published []workout.StoreName
	mu        sync.Mutex
}

func (f *fixture) Published() []workout.StoreName {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.published)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(t.Context(), ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() {
		if err = db.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})

	f := &fixture{
		service:   nil,
		clock:     &clock{mu: sync.Mutex{}, now: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)},
		published: nil,
		mu:        sync.Mutex{},
	}
	bus := workout.NewBus()
	bus.Subscribe(func(s workout.StoreName) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.published = append(f.published, s)
	})
	stores := workout.NewStores(db, bus, f.clock.Now)
	f.service = workout.NewService(stores, catalog.Default(), logger, f.clock.Now)
	return f
}

func Test_Service_Defaults(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	f := newFixture(t)

	profile, err := f.service.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.Bodyweight != 75 || profile.Setup != catalog.SetupFullGym {
		t.Errorf("default profile = %+v", profile)
	}
	settings, err := f.service.Settings(ctx)
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if settings.Units != workout.UnitsKg || settings.TargetDurationMin != 60 {
		t.Errorf("default settings = %+v", settings)
	}
	if _, err = f.service.Program(ctx); !errors.Is(err, workout.ErrNotFound) {
		t.Errorf("Program without a program: got %v, want ErrNotFound", err)
	}
	if history, _ := f.service.History(ctx); len(history) != 0 {
		t.Errorf("got %d sessions in a fresh history", len(history))
	}
	if len(f.Published()) != 0 {
		t.Errorf("reads published %v", f.Published())
	}
}

func Test_Service_ProgramLifecycle(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	f := newFixture(t)

	for _, weeks := range []int{-1, workout.MaxProgramWeeks + 1} {
		_, err := f.service.CreateProgram(ctx, workout.CreateProgramRequest{
			Name:          "Too long",
			DaysPerWeek:   3,
			Weeks:         weeks,
			PreferredDays: []int{0, 2, 4},
			StartDate:     time.Time{},
		})
		if !errors.Is(err, workout.ErrInvalid) {
			t.Errorf("CreateProgram with %d weeks: got %v, want ErrInvalid", weeks, err)
		}
	}

	doc, err := f.service.CreateProgram(ctx, workout.CreateProgramRequest{
		Name:          "Winter block",
		DaysPerWeek:   3,
		Weeks:         0,
		PreferredDays: []int{0, 2, 4},
		StartDate:     time.Time{},
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}
	if doc.Program.ID == "" || len(doc.Program.Weeks) != workout.DefaultProgramWeeks {
		t.Fatalf("program = %q with %d weeks", doc.Program.ID, len(doc.Program.Weeks))
	}
	if len(doc.Schedule.Days) != 3*workout.DefaultProgramWeeks {
		t.Fatalf("got %d scheduled days, want %d", len(doc.Schedule.Days), 3*workout.DefaultProgramWeeks)
	}

	next, day, err := f.service.NextProgramDay(ctx)
	if err != nil {
		t.Fatalf("NextProgramDay: %v", err)
	}
	if next.WeekNumber != 1 || next.DayIndex != 0 || day.Rest {
		t.Fatalf("next day = week %d day %d rest %v", next.WeekNumber, next.DayIndex, day.Rest)
	}

	exerciseIDs := make([]string, 0, len(day.Exercises))
	for _, ex := range day.Exercises {
		exerciseIDs = append(exerciseIDs, ex.ExerciseID)
	}
	sess, err := f.service.StartSession(ctx, workout.StartSessionRequest{
		WorkoutID:   "",
		Program:     &workout.ProgramLink{ProgramID: doc.Program.ID, Week: 1, DayIndex: 0},
		Readiness:   &workout.ReadinessCheck{Sleep: workout.LevelHigh, Energy: workout.LevelModerate, Stress: 1},
		ExerciseIDs: exerciseIDs,
	})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	set := workout.CompletedSet{Weight: 60, Reps: 8, Completed: true, RIR: nil}
	for range 3 {
		if err = f.service.LogSet(ctx, sess.ID, exerciseIDs[0], set); err != nil {
			t.Fatalf("LogSet: %v", err)
		}
	}

	f.clock.Advance(time.Hour)
	ended, fresh, err := f.service.FinishSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("FinishSession: %v", err)
	}
	if ended.DurationSec != 3600 || ended.EndTime == nil {
		t.Errorf("finished session = %d s, end %v", ended.DurationSec, ended.EndTime)
	}
	if len(fresh) != 1 || fresh[0].ID != "first_workout" {
		t.Errorf("fresh badges = %+v, want first_workout", fresh)
	}

	if err = f.service.LogSet(ctx, sess.ID, exerciseIDs[0], set); !errors.Is(err, workout.ErrSessionFinished) {
		t.Errorf("LogSet on a finished session: got %v, want ErrSessionFinished", err)
	}
	if _, _, err = f.service.FinishSession(ctx, sess.ID); !errors.Is(err, workout.ErrSessionFinished) {
		t.Errorf("finishing twice: got %v, want ErrSessionFinished", err)
	}

	next, _, err = f.service.NextProgramDay(ctx)
	if err != nil {
		t.Fatalf("NextProgramDay: %v", err)
	}
	if next.WeekNumber != 1 || next.DayIndex != 1 {
		t.Errorf("next day after finishing = week %d day %d, want week 1 day 1", next.WeekNumber, next.DayIndex)
	}
	doc, err = f.service.Program(ctx)
	if err != nil {
		t.Fatalf("Program: %v", err)
	}
	if completed := doc.Schedule.Days[0].CompletedDate; completed == nil ||
		!completed.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first day completed on %v, want 2024-01-01", completed)
	}

	stats, err := f.service.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalWorkouts != 1 || stats.TotalSets != 3 || stats.TotalVolume != 1440 {
		t.Errorf("stats = %+v", stats)
	}

	overview, err := f.service.Badges(ctx)
	if err != nil {
		t.Fatalf("Badges: %v", err)
	}
	if overview.TotalPoints != 10 || overview.PendingPoints != 10 {
		t.Errorf("points = %d total, %d pending; want 10 and 10", overview.TotalPoints, overview.PendingPoints)
	}
	if err = f.service.AcknowledgeBadgePoints(ctx); err != nil {
		t.Fatalf("AcknowledgeBadgePoints: %v", err)
	}
	if overview, _ = f.service.Badges(ctx); overview.PendingPoints != 0 {
		t.Errorf("PendingPoints = %d after acknowledging", overview.PendingPoints)
	}

	if err = f.service.SaveFeedback(ctx, sess.ID, workout.SessionFeedback{
		Pump: 2, Soreness: 3, Performance: 2, JointPain: false,
	}); err != nil {
		t.Fatalf("SaveFeedback: %v", err)
	}
	if err = f.service.SaveFeedback(ctx, sess.ID, workout.SessionFeedback{}); !errors.Is(err, workout.ErrInvalid) {
		t.Errorf("SaveFeedback with zero levels: got %v, want ErrInvalid", err)
	}

	if err = f.service.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if err = f.service.DeleteSession(ctx, sess.ID); !errors.Is(err, workout.ErrNotFound) {
		t.Errorf("deleting twice: got %v, want ErrNotFound", err)
	}
	if stats, _ = f.service.Stats(ctx); stats.TotalWorkouts != 0 {
		t.Errorf("TotalWorkouts = %d after deleting the only session", stats.TotalWorkouts)
	}
	if overview, _ = f.service.Badges(ctx); len(overview.Unlocked) != 1 {
		t.Errorf("got %d unlocked badges after deletion, want the badge kept", len(overview.Unlocked))
	}
	if doc, err = f.service.Program(ctx); err != nil {
		t.Fatalf("Program: %v", err)
	}
	if completed := doc.Schedule.Days[0].CompletedDate; completed != nil {
		t.Errorf("first day still completed on %v after deleting its session", completed)
	}
	if next, _, err = f.service.NextProgramDay(ctx); err != nil || next.WeekNumber != 1 || next.DayIndex != 0 {
		t.Errorf("next day after deletion = week %d day %d (%v), want week 1 day 0",
			next.WeekNumber, next.DayIndex, err)
	}

	for _, store := range []workout.StoreName{workout.StoreProgram, workout.StoreWorkout, workout.StoreBadges} {
		if !slices.Contains(f.Published(), store) {
			t.Errorf("store %s was never published", store)
		}
	}
}

func Test_Service_LogManualSession(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	f := newFixture(t)

	start := time.Date(2023, 12, 28, 18, 0, 0, 0, time.UTC)
	sess, fresh, err := f.service.LogManualSession(ctx, workout.Session{
		ID:          "gym-visit",
		StartTime:   start,
		DurationSec: 45 * 60,
		Exercises: []workout.CompletedExercise{{
			ExerciseID: "barbell_back_squat",
			Sets:       []workout.CompletedSet{{Weight: 100, Reps: 5, Completed: true, RIR: nil}},
		}},
	})
	if err != nil {
		t.Fatalf("LogManualSession: %v", err)
	}
	if sess.Source != workout.SourceManual || sess.EndTime == nil || !sess.EndTime.Equal(start.Add(45*time.Minute)) {
		t.Errorf("manual session = %+v", sess)
	}
	if len(fresh) != 1 {
		t.Errorf("got %d fresh badges, want 1", len(fresh))
	}

	tests := []struct {
		name string
		sess workout.Session
	}{
		{name: "missing start", sess: workout.Session{ID: "a"}},
		{name: "duplicate id", sess: workout.Session{ID: "gym-visit", StartTime: start}},
		{name: "unknown exercise", sess: workout.Session{ID: "b", StartTime: start, Exercises: []workout.CompletedExercise{
			{ExerciseID: "underwater_basket_weaving", Sets: nil},
		}}},
		{name: "ends before start", sess: workout.Session{ID: "c", StartTime: start, EndTime: ptr.Ref(start.Add(-time.Minute))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err = f.service.LogManualSession(ctx, tt.sess); !errors.Is(err, workout.ErrInvalid) {
				t.Errorf("got %v, want ErrInvalid", err)
			}
		})
	}

	history, err := f.service.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("got %d sessions, want 1", len(history))
	}
}

func Test_Service_GenerateWorkout(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	f := newFixture(t)

	if _, err := f.service.GenerateWorkout(ctx, workout.GenerateWorkoutRequest{
		Muscles: []catalog.Muscle{"wings"}, TargetDurationMin: 0,
	}); !errors.Is(err, workout.ErrInvalid) {
		t.Errorf("unknown muscle: got %v, want ErrInvalid", err)
	}

	w, err := f.service.GenerateWorkout(ctx, workout.GenerateWorkoutRequest{
		Muscles: []catalog.Muscle{catalog.Chest, catalog.Biceps}, TargetDurationMin: 0,
	})
	if err != nil {
		t.Fatalf("GenerateWorkout: %v", err)
	}
	if len(w.Exercises) == 0 || w.TotalSets == 0 {
		t.Fatalf("generated an empty workout: %+v", w)
	}

	transitions, err := f.service.PreviewVolume(ctx, w)
	if err != nil {
		t.Fatalf("PreviewVolume: %v", err)
	}
	if len(transitions) != len(workout.PlannedSets(w)) {
		t.Errorf("got %d transitions, want one per planned muscle", len(transitions))
	}
	for _, tr := range transitions {
		if tr.SetsBefore != 0 || tr.SetsAfter == 0 {
			t.Errorf("transition %+v on an empty history", tr)
		}
	}

	recovery, err := f.service.RecoveryOverview(ctx)
	if err != nil {
		t.Fatalf("RecoveryOverview: %v", err)
	}
	if len(recovery.Muscles) != len(catalog.Muscles) {
		t.Errorf("got %d recovery entries, want one per muscle", len(recovery.Muscles))
	}
}

func Test_Service_SettingsAndCustomWorkouts(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	f := newFixture(t)

	if err := f.service.SaveSettings(ctx, workout.SettingsDocument{Units: "stone"}); !errors.Is(err, workout.ErrInvalid) {
		t.Errorf("SaveSettings with unknown units: got %v, want ErrInvalid", err)
	}
	want := workout.SettingsDocument{
		Units:             workout.UnitsLb,
		RestTimerEnabled:  false,
		DefaultRestSec:    120,
		WeekStartsMonday:  false,
		TargetDurationMin: 45,
		UpdatedAt:         f.clock.Now(),
	}
	if err := f.service.SaveSettings(ctx, want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	got, err := f.service.Settings(ctx)
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	if _, err = f.service.SaveCustomWorkout(ctx, workout.CustomWorkout{}); !errors.Is(err, workout.ErrInvalid) {
		t.Errorf("SaveCustomWorkout without a name: got %v, want ErrInvalid", err)
	}
	saved, err := f.service.SaveCustomWorkout(ctx, workout.CustomWorkout{
		ID:   "",
		Name: "Arms",
		Exercises: []workout.ProgramExercise{
			{ExerciseID: "barbell_curl", Muscle: catalog.Biceps, Sets: 3, RepMin: 10, RepMax: 15, RestSec: 75},
		},
		UpdatedAt: time.Time{},
	})
	if err != nil {
		t.Fatalf("SaveCustomWorkout: %v", err)
	}
	if saved.ID == "" || !saved.UpdatedAt.Equal(f.clock.Now()) {
		t.Errorf("saved custom workout = %+v", saved)
	}
	saved.Name = "Guns"
	if _, err = f.service.SaveCustomWorkout(ctx, saved); err != nil {
		t.Fatalf("SaveCustomWorkout update: %v", err)
	}
	workouts, err := f.service.CustomWorkouts(ctx)
	if err != nil {
		t.Fatalf("CustomWorkouts: %v", err)
	}
	if len(workouts) != 1 || workouts[0].Name != "Guns" {
		t.Errorf("custom workouts = %+v, want the renamed one", workouts)
	}
	if err = f.service.DeleteCustomWorkout(ctx, saved.ID); err != nil {
		t.Fatalf("DeleteCustomWorkout: %v", err)
	}
	if err = f.service.DeleteCustomWorkout(ctx, saved.ID); !errors.Is(err, workout.ErrNotFound) {
		t.Errorf("deleting twice: got %v, want ErrNotFound", err)
	}

	if _, err = f.service.MonthSummary(ctx, 2024, 13); !errors.Is(err, workout.ErrInvalid) {
		t.Errorf("MonthSummary with month 13: got %v, want ErrInvalid", err)
	}
	month, err := f.service.MonthSummary(ctx, 2024, time.January)
	if err != nil {
		t.Fatalf("MonthSummary: %v", err)
	}
	if month[0].Status != workout.DayToday {
		t.Errorf("January 1st = %s, want today", month[0].Status)
	}
}
