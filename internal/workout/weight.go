package workout

import (
	"cmp"
	"math"
	"slices"

	"github.com/myrjola/mesocycle/internal/catalog"
)

// Weight estimation constants.
const (
	// FemaleLowerBodyFactor and FemaleUpperBodyFactor scale the male-calibrated ratio tables.
	FemaleLowerBodyFactor = 0.75
	FemaleUpperBodyFactor = 0.55

	// ColdStartFactor is applied in the first mesocycle when the user has no relevant history.
	ColdStartFactor = 0.85

	// DropFactor is the load reduction applied after a regression.
	DropFactor = 0.9

	// ProgressiveLookback is how many recent sessions of an exercise are inspected.
	ProgressiveLookback = 3

	// BumpMinRIR is the reps in reserve at or above which a set counts as low effort.
	BumpMinRIR = 2

	// BrzyckiMaxReps is the last rep count estimated with Brzycki, Epley is used above it.
	BrzyckiMaxReps = 12
)

// EstimateWeight produces a cold-start working weight for an exercise from the user's bodyweight.
// Unloaded equipment always returns 0.
func EstimateWeight(
	exerciseID string,
	equipment catalog.Equipment,
	target catalog.Muscle,
	profile Profile,
	hasHistory bool,
) float64 {
	if equipment.IsUnloaded() {
		return 0
	}

	ratio, _ := catalog.BodyweightRatio(exerciseID, equipment, target)
	weight := ratio * profile.Bodyweight * catalog.ExperienceFactor(profile.Experience)

	if profile.Sex == catalog.SexFemale {
		if catalog.IsLowerBody(target) {
			weight *= FemaleLowerBodyFactor
		} else {
			weight *= FemaleUpperBodyFactor
		}
	}

	if !hasHistory {
		weight *= ColdStartFactor
	}

	return RoundToIncrement(weight, equipment)
}

// RoundToIncrement rounds w to the nearest practical increment of the equipment. The result is never
// less than one increment.
func RoundToIncrement(w float64, equipment catalog.Equipment) float64 {
	inc := equipment.Increment()
	rounded := math.Round(w/inc) * inc
	if rounded < inc || math.IsNaN(rounded) {
		return inc
	}
	return rounded
}

// Adjustment is the progressive overload verdict for the next session.
type Adjustment string

const (
	AdjustmentNone Adjustment = "none"
	AdjustmentHold Adjustment = "hold"
	AdjustmentBump Adjustment = "bump"
	AdjustmentDrop Adjustment = "drop"
)

// ProgressiveWeight is a weight suggestion derived from recent performances.
type ProgressiveWeight struct {
	Weight     float64    `json:"weight"`
	Adjustment Adjustment `json:"adjustment"`
	LastWeight float64    `json:"lastWeight"`
	LastReps   int        `json:"lastReps"`
}

// topSet is the heaviest completed set of an exercise within one session.
type topSet struct {
	weight float64
	reps   int
	rir    *int
}

// recentTopSets returns the top sets of the exercise in the most recent finished sessions, newest first.
func recentTopSets(history []Session, exerciseID string, limit int) []topSet {
	sessions := finishedNewestFirst(history)
	var sets []topSet
	for _, s := range sessions {
		if len(sets) == limit {
			break
		}
		best, ok := sessionTopSet(s, exerciseID)
		if ok {
			sets = append(sets, best)
		}
	}
	return sets
}

func sessionTopSet(s Session, exerciseID string) (topSet, bool) {
	var (
		best  topSet
		found bool
	)
	for _, ex := range s.Exercises {
		if ex.ExerciseID != exerciseID {
			continue
		}
		for _, set := range ex.Sets {
			if !set.Completed || set.Reps <= 0 {
				continue
			}
			if !found || set.Weight > best.weight || (set.Weight == best.weight && set.Reps > best.reps) {
				best = topSet{weight: set.Weight, reps: set.Reps, rir: set.RIR}
				found = true
			}
		}
	}
	return best, found
}

// GetProgressiveWeight inspects the last one to three sessions of an exercise and suggests the next load.
//
// Strictly more than minReps at the last weight with low perceived effort bumps the load by one increment.
// Fewer than minReps at the same or a lower weight than before drops it. Anything else holds.
func GetProgressiveWeight(
	history []Session,
	exerciseID string,
	equipment catalog.Equipment,
	minReps int,
) ProgressiveWeight {
	recent := recentTopSets(history, exerciseID, ProgressiveLookback)
	if len(recent) == 0 {
		return ProgressiveWeight{Weight: 0, Adjustment: AdjustmentNone, LastWeight: 0, LastReps: 0}
	}

	last := recent[0]
	suggestion := ProgressiveWeight{
		Weight:     last.weight,
		Adjustment: AdjustmentHold,
		LastWeight: last.weight,
		LastReps:   last.reps,
	}

	// Unloaded movements performed without added weight progress by reps only.
	repsOnly := equipment.IsUnloaded() && last.weight == 0

	lowEffort := last.rir == nil || *last.rir >= BumpMinRIR
	if last.reps > minReps && lowEffort {
		if !repsOnly {
			suggestion.Weight = last.weight + equipment.Increment()
		}
		suggestion.Adjustment = AdjustmentBump
		return suggestion
	}

	if last.reps < minReps {
		previousMax := last.weight
		if len(recent) > 1 {
			previousMax = slices.MaxFunc(recent[1:], func(a, b topSet) int {
				return cmp.Compare(a.weight, b.weight)
			}).weight
		}
		if last.weight <= previousMax {
			if !repsOnly {
				suggestion.Weight = RoundToIncrement(last.weight*DropFactor, equipment)
			}
			suggestion.Adjustment = AdjustmentDrop
		}
	}

	return suggestion
}

// EstimateOneRepMax uses Brzycki up to 12 reps and Epley above that.
func EstimateOneRepMax(weight float64, reps int) float64 {
	if weight <= 0 || reps <= 0 {
		return 0
	}
	if reps == 1 {
		return weight
	}
	if reps <= BrzyckiMaxReps {
		return weight * 36 / float64(37-reps) //nolint:mnd // Brzycki.
	}
	return weight * (1 + float64(reps)/30) //nolint:mnd // Epley.
}
