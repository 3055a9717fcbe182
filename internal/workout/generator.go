// Package workout provides the training engines: workout and program generation, weight estimation,
// recovery and volume tracking, calendar scheduling and the local stores holding the user's data.
package workout

import (
	"math"
	"slices"

	"github.com/myrjola/mesocycle/internal/catalog"
)

// Smart workout constants.
const (
	// MaxSetsSingleExercise is the largest per-muscle set count served by one exercise.
	MaxSetsSingleExercise = 4
	// MinSetsAfterTrim is the floor when reducing sets to fit the time budget.
	MinSetsAfterTrim = 2
	// sessionsPerWeek is the assumed training frequency per muscle.
	sessionsPerWeek = 2
)

// GenerateRequest describes the ad-hoc workout a user asks for.
type GenerateRequest struct {
	SelectedMuscles []catalog.Muscle
	Equipment       []catalog.Equipment
	Goal            catalog.Goal
	// TargetDurationMin is the time budget in minutes. Zero disables trimming.
	TargetDurationMin int
	History           []Session
	Profile           Profile
}

// GeneratedExercise is one prescription of a generated workout.
type GeneratedExercise struct {
	ExerciseID string           `json:"exerciseId"`
	Name       string           `json:"name"`
	Muscle     catalog.Muscle   `json:"muscle"`
	Category   catalog.Category `json:"category"`
	Compound   bool             `json:"compound"`
	Sets       int              `json:"sets"`
	RepMin     int              `json:"repMin"`
	RepMax     int              `json:"repMax"`
	RestSec    int              `json:"restSec"`
	SetSec     int              `json:"setSec"`
	Weight     float64          `json:"weight"`
	Adjustment Adjustment       `json:"adjustment"`
}

// DurationSec is the time the exercise takes including rests.
func (e GeneratedExercise) DurationSec() int {
	return e.Sets * (e.SetSec + e.RestSec)
}

// GeneratedWorkout is the result of GenerateSmartWorkout.
type GeneratedWorkout struct {
	Exercises            []GeneratedExercise `json:"exercises"`
	TotalSets            int                 `json:"totalSets"`
	EstimatedDurationMin int                 `json:"estimatedDurationMin"`
}

// smartGenerator assembles a same-day workout.
type smartGenerator struct {
	catalog *catalog.Catalog
	request GenerateRequest
	// lastSession holds the exercise ids of the most recent finished session.
	lastSession map[string]bool
	// trainedMuscles holds the muscles with any completed set in the history.
	trainedMuscles map[catalog.Muscle]bool
	// chosen holds the exercise ids already in the workout.
	chosen map[string]bool
}

func newSmartGenerator(cat *catalog.Catalog, req GenerateRequest) *smartGenerator {
	g := &smartGenerator{
		catalog:        cat,
		request:        req,
		lastSession:    make(map[string]bool),
		trainedMuscles: make(map[catalog.Muscle]bool),
		chosen:         make(map[string]bool),
	}
	finished := finishedNewestFirst(req.History)
	if len(finished) > 0 {
		for _, ex := range finished[0].Exercises {
			g.lastSession[ex.ExerciseID] = true
		}
	}
	for _, s := range finished {
		for m := range muscleSets(cat, s) {
			g.trainedMuscles[m] = true
		}
	}
	return g
}

// GenerateSmartWorkout builds a same-day workout for the selected muscles. It is deterministic and never
// fails: muscles without target sets or without exercises for the available equipment are skipped.
func GenerateSmartWorkout(cat *catalog.Catalog, req GenerateRequest) GeneratedWorkout {
	g := newSmartGenerator(cat, req)

	muscles := slices.Clone(req.SelectedMuscles)
	slices.SortStableFunc(muscles, func(a, b catalog.Muscle) int {
		return catalog.Priority(a) - catalog.Priority(b)
	})
	muscles = slices.Compact(muscles)

	var exercises []GeneratedExercise
	for _, muscle := range muscles {
		exercises = append(exercises, g.exercisesFor(muscle)...)
	}

	// Compounds first, then muscle priority. The stable sort keeps slot order within a muscle.
	slices.SortStableFunc(exercises, func(a, b GeneratedExercise) int {
		if a.Compound != b.Compound {
			if a.Compound {
				return -1
			}
			return 1
		}
		return catalog.Priority(a.Muscle) - catalog.Priority(b.Muscle)
	})

	if req.TargetDurationMin > 0 {
		exercises = trimToBudget(exercises, req.TargetDurationMin*60) //nolint:mnd // minutes to seconds.
	}

	workout := GeneratedWorkout{
		Exercises:            exercises,
		TotalSets:            0,
		EstimatedDurationMin: 0,
	}
	if workout.Exercises == nil {
		workout.Exercises = []GeneratedExercise{}
	}
	totalSec := 0
	for _, ex := range exercises {
		workout.TotalSets += ex.Sets
		totalSec += ex.DurationSec()
	}
	workout.EstimatedDurationMin = int(math.Ceil(float64(totalSec) / 60)) //nolint:mnd // seconds to minutes.
	return workout
}

// TargetSessionSets returns the per-session set target of a muscle: half of the low end of its adaptive
// volume range, clamped to the bounds of its size class.
func TargetSessionSets(m catalog.Muscle) int {
	lm := catalog.VolumeLandmarks(m)
	if lm.MAVLow <= 0 {
		return 0
	}
	lo, hi := catalog.SessionSetBounds(catalog.Size(m))
	return min(max(lm.MAVLow/sessionsPerWeek, lo), hi)
}

// exercisesFor selects and prescribes the exercises of one muscle.
func (g *smartGenerator) exercisesFor(muscle catalog.Muscle) []GeneratedExercise {
	total := TargetSessionSets(muscle)
	if total <= 0 {
		return nil
	}
	pool := g.catalog.PoolWithEquipment(muscle, g.request.Equipment)
	if len(pool) == 0 {
		return nil
	}

	slots := 1
	if total > MaxSetsSingleExercise {
		slots = 2
	}

	var picked []catalog.Exercise
	for slot := range slots {
		ex, ok := g.pick(pool, slot == 0)
		if !ok {
			break
		}
		g.chosen[ex.ID] = true
		picked = append(picked, ex)
	}

	sets := []int{total}
	if len(picked) == 2 { //nolint:mnd // two exercises split the muscle total.
		first := (total + 1) / 2 //nolint:mnd // ceil half.
		sets = []int{first, total - first}
	}

	prescribed := make([]GeneratedExercise, 0, len(picked))
	for i, ex := range picked {
		prescribed = append(prescribed, g.prescribe(ex, muscle, sets[i]))
	}
	return prescribed
}

// pick runs the slot selection loops in priority order. Exercises already in the workout are never picked.
//
//  1. not used in the last session, and compound when filling the first slot,
//  2. compound (first slot only),
//  3. anything left in the pool.
func (g *smartGenerator) pick(pool []catalog.Exercise, firstSlot bool) (catalog.Exercise, bool) {
	for _, ex := range pool {
		if g.chosen[ex.ID] || g.lastSession[ex.ID] {
			continue
		}
		if firstSlot && !ex.Compound {
			continue
		}
		return ex, true
	}
	if firstSlot {
		for _, ex := range pool {
			if !g.chosen[ex.ID] && ex.Compound {
				return ex, true
			}
		}
	}
	for _, ex := range pool {
		if !g.chosen[ex.ID] {
			return ex, true
		}
	}
	return catalog.Exercise{}, false
}

func (g *smartGenerator) prescribe(ex catalog.Exercise, muscle catalog.Muscle, sets int) GeneratedExercise {
	category := catalog.CategoryOf(ex)
	cfg := catalog.GoalCategoryConfig(g.request.Goal, category)

	generated := GeneratedExercise{
		ExerciseID: ex.ID,
		Name:       ex.Name,
		Muscle:     muscle,
		Category:   category,
		Compound:   ex.Compound,
		Sets:       sets,
		RepMin:     cfg.RepMin,
		RepMax:     cfg.RepMax,
		RestSec:    cfg.RestSec,
		SetSec:     cfg.SetSec,
		Weight:     0,
		Adjustment: AdjustmentNone,
	}

	progressive := GetProgressiveWeight(g.request.History, ex.ID, ex.Equipment, cfg.RepMin)
	if progressive.Adjustment != AdjustmentNone {
		generated.Weight = progressive.Weight
		generated.Adjustment = progressive.Adjustment
		return generated
	}
	generated.Weight = EstimateWeight(ex.ID, ex.Equipment, ex.Target, g.request.Profile, g.trainedMuscles[ex.Target])
	return generated
}

// trimToBudget cuts the ordered exercises to fit budgetSec. The exercise that crosses the budget is kept at
// first, then sets are taken from the last exercise down to MinSetsAfterTrim before it is dropped.
func trimToBudget(exercises []GeneratedExercise, budgetSec int) []GeneratedExercise {
	running := 0
	for i, ex := range exercises {
		running += ex.DurationSec()
		if running > budgetSec {
			exercises = exercises[:i+1]
			break
		}
	}

	for len(exercises) > 0 && totalDurationSec(exercises) > budgetSec {
		last := &exercises[len(exercises)-1]
		if last.Sets > MinSetsAfterTrim {
			last.Sets--
			continue
		}
		exercises = exercises[:len(exercises)-1]
	}
	return exercises
}

func totalDurationSec(exercises []GeneratedExercise) int {
	total := 0
	for _, ex := range exercises {
		total += ex.DurationSec()
	}
	return total
}
