package workout

import (
	"slices"
	"time"

	"github.com/myrjola/mesocycle/internal/catalog"
)

// Program generation constants.
const (
	DefaultProgramWeeks = 5
	MaxProgramWeeks     = 12
	DefaultDaysPerWeek  = 3
	MinDaysPerWeek      = 2
	MaxDaysPerWeek      = 6
	// baseSetsPerExercise is the week one prescription, ramping by one set per week.
	baseSetsPerExercise = 2
	maxSetsPerExercise  = 4
)

// ProgramRequest describes the mesocycle to generate.
type ProgramRequest struct {
	Name        string
	DaysPerWeek int
	// Weeks includes the final deload week. Zero selects DefaultProgramWeeks, larger values are capped at
	// MaxProgramWeeks.
	Weeks     int
	Goal      catalog.Goal
	Equipment []catalog.Equipment
	CreatedAt time.Time
}

// dayTemplate is a training day before exercise selection.
type dayTemplate struct {
	name    string
	focus   Focus
	muscles []catalog.Muscle
}

//nolint:gochecknoglobals // static templates.
var (
	fullBodyA = dayTemplate{name: "Full Body A", focus: FocusFullBody, muscles: []catalog.Muscle{
		catalog.Quads, catalog.Chest, catalog.Lats, catalog.SideDelts, catalog.Biceps,
	}}
	fullBodyB = dayTemplate{name: "Full Body B", focus: FocusFullBody, muscles: []catalog.Muscle{
		catalog.Hamstrings, catalog.Glutes, catalog.UpperBack, catalog.FrontDelts, catalog.Triceps,
	}}
	fullBodyC = dayTemplate{name: "Full Body C", focus: FocusFullBody, muscles: []catalog.Muscle{
		catalog.Quads, catalog.Chest, catalog.UpperBack, catalog.RearDelts, catalog.Calves,
	}}
	upperA = dayTemplate{name: "Upper A", focus: FocusUpper, muscles: []catalog.Muscle{
		catalog.Chest, catalog.Lats, catalog.SideDelts, catalog.Triceps, catalog.Biceps,
	}}
	upperB = dayTemplate{name: "Upper B", focus: FocusUpper, muscles: []catalog.Muscle{
		catalog.UpperBack, catalog.Chest, catalog.FrontDelts, catalog.RearDelts, catalog.Biceps,
	}}
	lowerA = dayTemplate{name: "Lower A", focus: FocusLower, muscles: []catalog.Muscle{
		catalog.Quads, catalog.Hamstrings, catalog.Calves, catalog.Abs,
	}}
	lowerB = dayTemplate{name: "Lower B", focus: FocusLower, muscles: []catalog.Muscle{
		catalog.Glutes, catalog.Quads, catalog.LowerBack, catalog.Obliques,
	}}
	pushDay = dayTemplate{name: "Push", focus: FocusPush, muscles: catalog.SplitMuscles(catalog.SplitPush)}
	pullDay = dayTemplate{name: "Pull", focus: FocusPull, muscles: catalog.SplitMuscles(catalog.SplitPull)}
	legsDay = dayTemplate{name: "Legs", focus: FocusLegs, muscles: catalog.SplitMuscles(catalog.SplitLegs)}
)

// weekTemplate returns the training days for a days-per-week count.
func weekTemplate(days int) []dayTemplate {
	switch days {
	case MinDaysPerWeek:
		return []dayTemplate{fullBodyA, fullBodyB}
	case 3: //nolint:mnd // full body three times a week.
		return []dayTemplate{fullBodyA, fullBodyB, fullBodyC}
	case 4: //nolint:mnd // upper/lower.
		return []dayTemplate{upperA, lowerA, upperB, lowerB}
	case 5: //nolint:mnd // push/pull/legs plus upper/lower.
		return []dayTemplate{pushDay, pullDay, legsDay, upperA, lowerA}
	default:
		return []dayTemplate{pushDay, pullDay, legsDay, pushDay, pullDay, legsDay}
	}
}

// GenerateProgram builds a mesocycle. Every week has seven days, training days first. Sets ramp by one per
// week up to a cap, and the final week of a multi-week program is a deload at half the previous volume.
// Exercises stay the same across weeks so that progression can be tracked.
func GenerateProgram(cat *catalog.Catalog, req ProgramRequest) TrainingProgram {
	days := req.DaysPerWeek
	if days == 0 {
		days = DefaultDaysPerWeek
	}
	days = min(max(days, MinDaysPerWeek), MaxDaysPerWeek)
	weeks := req.Weeks
	if weeks <= 0 {
		weeks = DefaultProgramWeeks
	}
	weeks = min(weeks, MaxProgramWeeks)
	name := req.Name
	if name == "" {
		name = "Mesocycle"
	}

	templates := weekTemplate(days)
	trainingDays := selectProgramExercises(cat, templates, req.Equipment, goalOrDefault(req.Goal))

	program := TrainingProgram{
		ID:          "",
		Name:        name,
		Goal:        goalOrDefault(req.Goal),
		DaysPerWeek: days,
		CreatedAt:   req.CreatedAt,
		Weeks:       make([]ProgramWeek, 0, weeks),
	}

	prevSets := baseSetsPerExercise
	for w := range weeks {
		deload := weeks > 1 && w == weeks-1
		sets := min(baseSetsPerExercise+w, maxSetsPerExercise)
		if deload {
			sets = max(prevSets/2, 1) //nolint:mnd // deload halves the volume.
		}
		prevSets = sets

		week := ProgramWeek{Number: w + 1, Deload: deload, Days: make([]ProgramDay, 0, daysPerWeek)}
		for _, td := range trainingDays {
			day := ProgramDay{
				Name:      td.Name,
				Focus:     td.Focus,
				Muscles:   slices.Clone(td.Muscles),
				Exercises: make([]ProgramExercise, 0, len(td.Exercises)),
				Rest:      false,
			}
			for _, ex := range td.Exercises {
				ex.Sets = sets
				day.Exercises = append(day.Exercises, ex)
			}
			week.Days = append(week.Days, day)
		}
		for len(week.Days) < daysPerWeek {
			week.Days = append(week.Days, ProgramDay{
				Name:      "Rest",
				Focus:     FocusRest,
				Muscles:   nil,
				Exercises: nil,
				Rest:      true,
			})
		}
		program.Weeks = append(program.Weeks, week)
	}
	return program
}

// selectProgramExercises picks one exercise per muscle and day. A muscle that appears on several days rotates
// through its pool, and no exercise repeats within a day.
func selectProgramExercises(
	cat *catalog.Catalog,
	templates []dayTemplate,
	equipment []catalog.Equipment,
	goal catalog.Goal,
) []ProgramDay {
	rotation := make(map[catalog.Muscle]int)
	days := make([]ProgramDay, 0, len(templates))
	for _, tmpl := range templates {
		day := ProgramDay{Name: tmpl.name, Focus: tmpl.focus, Muscles: nil, Exercises: nil, Rest: false}
		used := make(map[string]bool)
		for _, muscle := range tmpl.muscles {
			pool := cat.PoolWithEquipment(muscle, equipment)
			if len(pool) == 0 {
				continue
			}
			start := rotation[muscle]
			rotation[muscle]++
			for i := range pool {
				ex := pool[(start+i)%len(pool)]
				if used[ex.ID] {
					continue
				}
				used[ex.ID] = true
				cfg := catalog.GoalCategoryConfig(goal, catalog.CategoryOf(ex))
				day.Muscles = append(day.Muscles, muscle)
				day.Exercises = append(day.Exercises, ProgramExercise{
					ExerciseID: ex.ID,
					Muscle:     muscle,
					Sets:       baseSetsPerExercise,
					RepMin:     cfg.RepMin,
					RepMax:     cfg.RepMax,
					RestSec:    cfg.RestSec,
				})
				break
			}
		}
		days = append(days, day)
	}
	return days
}

func goalOrDefault(g catalog.Goal) catalog.Goal {
	if g == "" {
		return catalog.GoalHypertrophy
	}
	return g
}
