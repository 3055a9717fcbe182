package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/mesocycle/internal/catalog"
)

var (
	// ErrInvalid is returned when the caller passes input the engines cannot work with.
	ErrInvalid = errors.New("invalid input")
	// ErrSessionFinished is returned when logging into a session that has already ended.
	ErrSessionFinished = errors.New("session finished")
)

//nolint:gochecknoglobals // defaults for users who have not completed onboarding.
var defaultProfile = Profile{
	Bodyweight: 75, //nolint:mnd // kg
	Sex:        catalog.SexMale,
	Experience: catalog.ExperienceIntermediate,
	Goal:       catalog.GoalHypertrophy,
	Setup:      catalog.SetupFullGym,
}

//nolint:gochecknoglobals // defaults for a settings store that has never been written.
var defaultSettings = SettingsDocument{
	Units:             UnitsKg,
	RestTimerEnabled:  true,
	DefaultRestSec:    90, //nolint:mnd // seconds
	WeekStartsMonday:  true,
	TargetDurationMin: 60, //nolint:mnd // minutes
	UpdatedAt:         time.Time{},
}

// Service handles the business logic for workout management. It is the only writer of the stores apart from
// the sync engine.
type Service struct {
	stores Stores
	cat    *catalog.Catalog
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new workout service.
func NewService(stores Stores, cat *catalog.Catalog, logger *slog.Logger, now func() time.Time) *Service {
	return &Service{
		stores: stores,
		cat:    cat,
		logger: logger,
		now:    now,
	}
}

// Catalog returns the exercise catalog the service generates from.
func (s *Service) Catalog() *catalog.Catalog {
	return s.cat
}

// Profile returns the saved profile or the defaults when none has been saved.
func (s *Service) Profile(ctx context.Context) (Profile, error) {
	doc, err := s.stores.Program.Get(ctx)
	if err != nil {
		return Profile{}, fmt.Errorf("get program document: %w", err)
	}
	if doc.Profile == nil {
		return defaultProfile, nil
	}
	return *doc.Profile, nil
}

// SaveProfile validates and stores the profile.
func (s *Service) SaveProfile(ctx context.Context, p Profile) error {
	if p.Bodyweight <= 0 {
		return fmt.Errorf("%w: bodyweight must be positive", ErrInvalid)
	}
	if p.Goal == "" {
		p.Goal = catalog.GoalHypertrophy
	}
	err := s.stores.Program.Update(ctx, func(doc *ProgramDocument) (bool, error) {
		doc.Profile = &p
		doc.ProfileUpdatedAt = s.now()
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Settings returns the stored settings or the defaults.
func (s *Service) Settings(ctx context.Context) (SettingsDocument, error) {
	doc, err := s.stores.Settings.Get(ctx)
	if err != nil {
		return SettingsDocument{}, fmt.Errorf("get settings: %w", err)
	}
	if doc.UpdatedAt.IsZero() {
		return defaultSettings, nil
	}
	return doc, nil
}

// SaveSettings replaces the settings.
func (s *Service) SaveSettings(ctx context.Context, settings SettingsDocument) error {
	if settings.Units != UnitsKg && settings.Units != UnitsLb {
		return fmt.Errorf("%w: unknown units %q", ErrInvalid, settings.Units)
	}
	err := s.stores.Settings.Update(ctx, func(doc *SettingsDocument) (bool, error) {
		*doc = settings
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// History returns the session history, newest first.
func (s *Service) History(ctx context.Context) ([]Session, error) {
	doc, err := s.stores.Workout.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get workout document: %w", err)
	}
	history := slices.Clone(doc.History)
	slices.SortStableFunc(history, func(a, b Session) int {
		return b.StartTime.Compare(a.StartTime)
	})
	return history, nil
}

// StartSessionRequest describes a session the user starts in the app.
type StartSessionRequest struct {
	WorkoutID string
	Program   *ProgramLink
	Readiness *ReadinessCheck
	// ExerciseIDs pre-populates the session with the planned exercises.
	ExerciseIDs []string
}

// StartSession begins a new session at the current time.
func (s *Service) StartSession(ctx context.Context, req StartSessionRequest) (Session, error) {
	exercises := make([]CompletedExercise, 0, len(req.ExerciseIDs))
	for _, id := range req.ExerciseIDs {
		if _, ok := s.cat.Exercise(id); !ok {
			return Session{}, fmt.Errorf("%w: unknown exercise %q", ErrInvalid, id)
		}
		exercises = append(exercises, CompletedExercise{ExerciseID: id, Sets: []CompletedSet{}})
	}
	sess := Session{
		ID:          uuid.NewString(),
		WorkoutID:   req.WorkoutID,
		Program:     req.Program,
		StartTime:   s.now(),
		EndTime:     nil,
		DurationSec: 0,
		Exercises:   exercises,
		Feedback:    nil,
		Readiness:   req.Readiness,
		Source:      SourceApp,
	}
	err := s.stores.Workout.Update(ctx, func(doc *WorkoutDocument) (bool, error) {
		doc.History = append(doc.History, sess)
		return true, nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("start session: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "started session", slog.String("session_id", sess.ID))
	return sess, nil
}

// LogSet appends a set to an exercise of an unfinished session.
func (s *Service) LogSet(ctx context.Context, sessionID, exerciseID string, set CompletedSet) error {
	if _, ok := s.cat.Exercise(exerciseID); !ok {
		return fmt.Errorf("%w: unknown exercise %q", ErrInvalid, exerciseID)
	}
	if set.Reps < 0 || set.Weight < 0 {
		return fmt.Errorf("%w: negative weight or reps", ErrInvalid)
	}
	err := s.updateSession(ctx, sessionID, func(sess *Session) error {
		if sess.Finished() {
			return ErrSessionFinished
		}
		i := slices.IndexFunc(sess.Exercises, func(e CompletedExercise) bool { return e.ExerciseID == exerciseID })
		if i < 0 {
			sess.Exercises = append(sess.Exercises, CompletedExercise{ExerciseID: exerciseID, Sets: nil})
			i = len(sess.Exercises) - 1
		}
		sess.Exercises[i].Sets = append(sess.Exercises[i].Sets, set)
		return nil
	})
	if err != nil {
		return fmt.Errorf("log set: %w", err)
	}
	return nil
}

// FinishSession ends a session. A program-linked session completes its scheduled day and replans the rest of
// the schedule. Stats are recomputed and any newly met badge is unlocked and returned.
//
// The stores are written one after another without a transaction spanning them.
func (s *Service) FinishSession(ctx context.Context, sessionID string) (Session, []Badge, error) {
	var finished Session
	end := s.now()
	err := s.updateSession(ctx, sessionID, func(sess *Session) error {
		if sess.Finished() {
			return ErrSessionFinished
		}
		sess.EndTime = &end
		sess.DurationSec = max(int(end.Sub(sess.StartTime).Seconds()), 0)
		finished = *sess
		return nil
	})
	if err != nil {
		return Session{}, nil, fmt.Errorf("finish session: %w", err)
	}

	return s.afterSessionEnded(ctx, finished)
}

// LogManualSession records a session that happened outside the app.
func (s *Service) LogManualSession(ctx context.Context, sess Session) (Session, []Badge, error) {
	if sess.StartTime.IsZero() {
		return Session{}, nil, fmt.Errorf("%w: start time is required", ErrInvalid)
	}
	for _, ex := range sess.Exercises {
		if _, ok := s.cat.Exercise(ex.ExerciseID); !ok {
			return Session{}, nil, fmt.Errorf("%w: unknown exercise %q", ErrInvalid, ex.ExerciseID)
		}
	}
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.EndTime == nil {
		end := sess.StartTime.Add(time.Duration(sess.DurationSec) * time.Second)
		sess.EndTime = &end
	}
	if sess.EndTime.Before(sess.StartTime) {
		return Session{}, nil, fmt.Errorf("%w: session ends before it starts", ErrInvalid)
	}
	sess.DurationSec = int(sess.EndTime.Sub(sess.StartTime).Seconds())
	sess.Source = SourceManual

	err := s.stores.Workout.Update(ctx, func(doc *WorkoutDocument) (bool, error) {
		if slices.ContainsFunc(doc.History, func(h Session) bool { return h.ID == sess.ID }) {
			return false, fmt.Errorf("%w: duplicate session id %q", ErrInvalid, sess.ID)
		}
		doc.History = append(doc.History, sess)
		return true, nil
	})
	if err != nil {
		return Session{}, nil, fmt.Errorf("log manual session: %w", err)
	}
	return s.afterSessionEnded(ctx, sess)
}

func (s *Service) afterSessionEnded(ctx context.Context, sess Session) (Session, []Badge, error) {
	if sess.Program != nil {
		if err := s.completeProgramDay(ctx, *sess.Program, *sess.EndTime); err != nil {
			return Session{}, nil, err
		}
	}

	var stats Stats
	err := s.stores.Workout.Update(ctx, func(doc *WorkoutDocument) (bool, error) {
		doc.Stats = ComputeStats(doc.History)
		stats = doc.Stats
		return true, nil
	})
	if err != nil {
		return Session{}, nil, fmt.Errorf("recompute stats: %w", err)
	}

	fresh, err := s.evaluateBadges(ctx, stats)
	if err != nil {
		return Session{}, nil, err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "session ended",
		slog.String("session_id", sess.ID),
		slog.Int("duration_sec", sess.DurationSec),
		slog.Int("new_badges", len(fresh)))
	return sess, fresh, nil
}

func (s *Service) completeProgramDay(ctx context.Context, link ProgramLink, completed time.Time) error {
	err := s.stores.Program.Update(ctx, func(doc *ProgramDocument) (bool, error) {
		if doc.Program == nil || doc.Schedule == nil || doc.Program.ID != link.ProgramID {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "session linked to an unknown program",
				slog.String("program_id", link.ProgramID))
			return false, nil
		}
		rescheduled := RescheduleForward(*doc.Schedule, link.Week, link.DayIndex, completed)
		doc.Schedule = &rescheduled
		doc.ProgramUpdatedAt = s.now()
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("complete program day: %w", err)
	}
	return nil
}

func (s *Service) evaluateBadges(ctx context.Context, stats Stats) ([]Badge, error) {
	var fresh []Badge
	err := s.stores.Badges.Update(ctx, func(doc *BadgeDocument) (bool, error) {
		*doc, fresh = EvaluateBadges(stats, *doc, s.now())
		return len(fresh) > 0, nil
	})
	if err != nil {
		return nil, fmt.Errorf("evaluate badges: %w", err)
	}
	return fresh, nil
}

// SaveFeedback attaches post-session feedback to a finished session.
func (s *Service) SaveFeedback(ctx context.Context, sessionID string, feedback SessionFeedback) error {
	for _, l := range []Level{feedback.Pump, feedback.Soreness, feedback.Performance} {
		if l < LevelLow || l > LevelHigh {
			return fmt.Errorf("%w: feedback level %d out of range", ErrInvalid, l)
		}
	}
	err := s.updateSession(ctx, sessionID, func(sess *Session) error {
		sess.Feedback = &feedback
		return nil
	})
	if err != nil {
		return fmt.Errorf("save feedback: %w", err)
	}
	return nil
}

// DeleteSession removes a session from the history and recomputes the stats. Unlocked badges are kept.
// The program day of a deleted program session is unlocked again unless another finished session completes it.
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	var (
		reopen *ProgramLink
		err    error
	)
	err = s.stores.Workout.Update(ctx, func(doc *WorkoutDocument) (bool, error) {
		i := slices.IndexFunc(doc.History, func(h Session) bool { return h.ID == sessionID })
		if i < 0 {
			return false, ErrNotFound
		}
		deleted := doc.History[i]
		doc.History = slices.Delete(doc.History, i, i+1)
		doc.Stats = ComputeStats(doc.History)

		if deleted.Program != nil && deleted.EndTime != nil && !slices.ContainsFunc(doc.History, func(h Session) bool {
			return h.EndTime != nil && h.Program != nil && *h.Program == *deleted.Program
		}) {
			reopen = deleted.Program
		}
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if reopen != nil {
		return s.reopenProgramDay(ctx, *reopen)
	}
	return nil
}

// reopenProgramDay clears the completion of a scheduled day. Its planned date is kept.
func (s *Service) reopenProgramDay(ctx context.Context, link ProgramLink) error {
	err := s.stores.Program.Update(ctx, func(doc *ProgramDocument) (bool, error) {
		if doc.Program == nil || doc.Schedule == nil || doc.Program.ID != link.ProgramID {
			return false, nil
		}
		i := slices.IndexFunc(doc.Schedule.Days, func(d ScheduledDay) bool {
			return d.WeekNumber == link.Week && d.DayIndex == link.DayIndex
		})
		if i < 0 || doc.Schedule.Days[i].CompletedDate == nil {
			return false, nil
		}
		schedule := *doc.Schedule
		schedule.Days = slices.Clone(schedule.Days)
		schedule.Days[i].CompletedDate = nil
		doc.Schedule = &schedule
		doc.ProgramUpdatedAt = s.now()
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("reopen program day: %w", err)
	}
	return nil
}

func (s *Service) updateSession(ctx context.Context, sessionID string, fn func(sess *Session) error) error {
	return s.stores.Workout.Update(ctx, func(doc *WorkoutDocument) (bool, error) {
		i := slices.IndexFunc(doc.History, func(h Session) bool { return h.ID == sessionID })
		if i < 0 {
			return false, ErrNotFound
		}
		if err := fn(&doc.History[i]); err != nil {
			return false, err
		}
		return true, nil
	})
}

// GenerateWorkoutRequest asks for an ad-hoc workout for the selected muscles.
type GenerateWorkoutRequest struct {
	Muscles []catalog.Muscle
	// TargetDurationMin overrides the duration from the settings when positive.
	TargetDurationMin int
}

// GenerateWorkout generates a workout from the user's profile, settings and history.
func (s *Service) GenerateWorkout(ctx context.Context, req GenerateWorkoutRequest) (GeneratedWorkout, error) {
	for _, m := range req.Muscles {
		if !m.Valid() {
			return GeneratedWorkout{}, fmt.Errorf("%w: unknown muscle %q", ErrInvalid, m)
		}
	}
	profile, err := s.Profile(ctx)
	if err != nil {
		return GeneratedWorkout{}, err
	}
	settings, err := s.Settings(ctx)
	if err != nil {
		return GeneratedWorkout{}, err
	}
	history, err := s.History(ctx)
	if err != nil {
		return GeneratedWorkout{}, err
	}
	duration := settings.TargetDurationMin
	if req.TargetDurationMin > 0 {
		duration = req.TargetDurationMin
	}
	w := GenerateSmartWorkout(s.cat, GenerateRequest{
		SelectedMuscles:   req.Muscles,
		Equipment:         catalog.SetupEquipment(profile.Setup),
		Goal:              profile.Goal,
		TargetDurationMin: duration,
		History:           history,
		Profile:           profile,
	})
	s.logger.LogAttrs(ctx, slog.LevelDebug, "generated workout",
		slog.Int("exercises", len(w.Exercises)),
		slog.Int("total_sets", w.TotalSets),
		slog.Int("estimated_duration_min", w.EstimatedDurationMin))
	return w, nil
}

// RecoveryOverview derives the recovery state of every muscle from the history.
func (s *Service) RecoveryOverview(ctx context.Context) (RecoveryOverview, error) {
	history, err := s.History(ctx)
	if err != nil {
		return RecoveryOverview{}, err
	}
	return ComputeRecoveryOverview(s.cat, history, s.now()), nil
}

// VolumeOverview derives the weekly volume zone of every muscle from the history.
func (s *Service) VolumeOverview(ctx context.Context) ([]MuscleVolume, error) {
	history, err := s.History(ctx)
	if err != nil {
		return nil, err
	}
	return VolumeOverview(WeeklySets(s.cat, history, s.now())), nil
}

// PreviewVolume returns the zone transitions a planned workout would cause this week.
func (s *Service) PreviewVolume(ctx context.Context, planned GeneratedWorkout) ([]ZoneTransition, error) {
	history, err := s.History(ctx)
	if err != nil {
		return nil, err
	}
	return PreviewZones(WeeklySets(s.cat, history, s.now()), PlannedSets(planned)), nil
}

// CreateProgramRequest describes a new mesocycle and the days it should be scheduled on.
type CreateProgramRequest struct {
	Name          string
	DaysPerWeek   int
	Weeks         int
	PreferredDays []int
	StartDate     time.Time
}

// CreateProgram generates a program, schedules it and replaces the active program.
func (s *Service) CreateProgram(ctx context.Context, req CreateProgramRequest) (ProgramDocument, error) {
	if req.DaysPerWeek != 0 && (req.DaysPerWeek < MinDaysPerWeek || req.DaysPerWeek > MaxDaysPerWeek) {
		return ProgramDocument{}, fmt.Errorf("%w: days per week must be between %d and %d",
			ErrInvalid, MinDaysPerWeek, MaxDaysPerWeek)
	}
	if req.Weeks < 0 || req.Weeks > MaxProgramWeeks {
		return ProgramDocument{}, fmt.Errorf("%w: weeks must be at most %d", ErrInvalid, MaxProgramWeeks)
	}
	profile, err := s.Profile(ctx)
	if err != nil {
		return ProgramDocument{}, err
	}
	now := s.now()
	program := GenerateProgram(s.cat, ProgramRequest{
		Name:        req.Name,
		DaysPerWeek: req.DaysPerWeek,
		Weeks:       req.Weeks,
		Goal:        profile.Goal,
		Equipment:   catalog.SetupEquipment(profile.Setup),
		CreatedAt:   now,
	})
	program.ID = uuid.NewString()
	start := req.StartDate
	if start.IsZero() {
		start = now
	}
	schedule := BuildSchedule(program, PreferencesFromDays(req.PreferredDays), start)

	var out ProgramDocument
	err = s.stores.Program.Update(ctx, func(doc *ProgramDocument) (bool, error) {
		doc.Program = &program
		doc.Schedule = &schedule
		doc.ProgramUpdatedAt = now
		out = *doc
		return true, nil
	})
	if err != nil {
		return ProgramDocument{}, fmt.Errorf("create program: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "created program",
		slog.String("program_id", program.ID),
		slog.Int("weeks", len(program.Weeks)),
		slog.Int("scheduled_days", len(schedule.Days)))
	return out, nil
}

// Program returns the active program and its schedule or ErrNotFound.
func (s *Service) Program(ctx context.Context) (ProgramDocument, error) {
	doc, err := s.stores.Program.Get(ctx)
	if err != nil {
		return ProgramDocument{}, fmt.Errorf("get program document: %w", err)
	}
	if doc.Program == nil {
		return ProgramDocument{}, ErrNotFound
	}
	return doc, nil
}

// NextProgramDay returns the first uncompleted scheduled day with its prescription.
func (s *Service) NextProgramDay(ctx context.Context) (ScheduledDay, ProgramDay, error) {
	doc, err := s.Program(ctx)
	if err != nil {
		return ScheduledDay{}, ProgramDay{}, err
	}
	if doc.Schedule == nil {
		return ScheduledDay{}, ProgramDay{}, ErrNotFound
	}
	next, ok := NextScheduledDay(*doc.Schedule)
	if !ok {
		return ScheduledDay{}, ProgramDay{}, ErrNotFound
	}
	day, ok := doc.Program.Day(next.WeekNumber, next.DayIndex)
	if !ok {
		return ScheduledDay{}, ProgramDay{}, ErrNotFound
	}
	return next, day, nil
}

// WeekTimeline returns the timeline of the week weekOffset weeks from the current one.
func (s *Service) WeekTimeline(ctx context.Context, weekOffset int) ([]TimelineDay, error) {
	history, err := s.History(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := s.stores.Program.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get program document: %w", err)
	}
	return BuildWeekTimeline(s.cat, history, doc.Schedule, doc.Program, weekOffset, s.now()), nil
}

// MonthSummary classifies every day of a month.
func (s *Service) MonthSummary(ctx context.Context, year int, month time.Month) ([]MonthDay, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d", ErrInvalid, month)
	}
	history, err := s.History(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := s.stores.Program.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get program document: %w", err)
	}
	return BuildMonthSummary(history, doc.Schedule, year, month, s.now()), nil
}

// Badges returns the badge overview.
func (s *Service) Badges(ctx context.Context) (BadgeOverview, error) {
	doc, err := s.stores.Badges.Get(ctx)
	if err != nil {
		return BadgeOverview{}, fmt.Errorf("get badge document: %w", err)
	}
	return NewBadgeOverview(doc), nil
}

// AcknowledgeBadgePoints marks the current point total as seen.
func (s *Service) AcknowledgeBadgePoints(ctx context.Context) error {
	err := s.stores.Badges.Update(ctx, func(doc *BadgeDocument) (bool, error) {
		total := TotalPoints(*doc)
		if doc.PreviousPoints == total {
			return false, nil
		}
		doc.PreviousPoints = total
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("acknowledge badge points: %w", err)
	}
	return nil
}

// Stats returns the stats stored with the history.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	doc, err := s.stores.Workout.Get(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("get workout document: %w", err)
	}
	return doc.Stats, nil
}

// CustomWorkouts lists the saved workout templates.
func (s *Service) CustomWorkouts(ctx context.Context) ([]CustomWorkout, error) {
	doc, err := s.stores.Workout.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get workout document: %w", err)
	}
	return doc.CustomWorkouts, nil
}

// SaveCustomWorkout creates or replaces a workout template. An empty id creates a new template.
func (s *Service) SaveCustomWorkout(ctx context.Context, w CustomWorkout) (CustomWorkout, error) {
	if w.Name == "" {
		return CustomWorkout{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	for _, ex := range w.Exercises {
		if _, ok := s.cat.Exercise(ex.ExerciseID); !ok {
			return CustomWorkout{}, fmt.Errorf("%w: unknown exercise %q", ErrInvalid, ex.ExerciseID)
		}
	}
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	w.UpdatedAt = s.now()
	err := s.stores.Workout.Update(ctx, func(doc *WorkoutDocument) (bool, error) {
		i := slices.IndexFunc(doc.CustomWorkouts, func(c CustomWorkout) bool { return c.ID == w.ID })
		if i < 0 {
			doc.CustomWorkouts = append(doc.CustomWorkouts, w)
		} else {
			doc.CustomWorkouts[i] = w
		}
		return true, nil
	})
	if err != nil {
		return CustomWorkout{}, fmt.Errorf("save custom workout: %w", err)
	}
	return w, nil
}

// DeleteCustomWorkout removes a workout template.
func (s *Service) DeleteCustomWorkout(ctx context.Context, id string) error {
	err := s.stores.Workout.Update(ctx, func(doc *WorkoutDocument) (bool, error) {
		before := len(doc.CustomWorkouts)
		doc.CustomWorkouts = slices.DeleteFunc(doc.CustomWorkouts, func(c CustomWorkout) bool { return c.ID == id })
		if len(doc.CustomWorkouts) == before {
			return false, ErrNotFound
		}
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("delete custom workout: %w", err)
	}
	return nil
}
