package workout

import (
	"math"
	"slices"
	"time"

	"github.com/myrjola/mesocycle/internal/catalog"
)

// RecoveryStatus classifies how ready a muscle is to be trained again.
type RecoveryStatus string

const (
	RecoveryFresh        RecoveryStatus = "fresh"
	RecoveryFatigued     RecoveryStatus = "fatigued"
	RecoveryUndertrained RecoveryStatus = "undertrained"
)

// Recovery engine constants.
const (
	baselineSets          = 4
	volumeFactorPerSet    = 0.05
	minVolumeFactor       = 0.8
	maxVolumeFactor       = 1.6
	highSorenessFactor    = 1.25
	lowSorenessFactor     = 0.9
	jointPainFactor       = 1.4
	poorPerformanceFactor = 1.15

	// FullRestFatiguedMuscles is the number of fatigued muscles at which full rest is recommended.
	FullRestFatiguedMuscles = 10
	// minFreshInSplit is how many fresh muscles a split needs to be recommended.
	minFreshInSplit = 2
	// undertrainedSuggestions caps how many muscles the undertrained nudge names.
	undertrainedSuggestions = 3
)

// RecoveryPoints maps a status to its contribution to the overall score.
func RecoveryPoints(status RecoveryStatus) int {
	switch status {
	case RecoveryFresh:
		return 100 //nolint:mnd // score table.
	case RecoveryUndertrained:
		return 50 //nolint:mnd // score table.
	case RecoveryFatigued:
		return 25 //nolint:mnd // score table.
	default:
		return 0
	}
}

// MuscleRecovery is the derived recovery state of one muscle.
type MuscleRecovery struct {
	Muscle catalog.Muscle `json:"muscle"`
	Status RecoveryStatus `json:"status"`
	// HoursSince is nil when the muscle has never been trained.
	HoursSince  *float64   `json:"hoursSince,omitempty"`
	LastTrained *time.Time `json:"lastTrained,omitempty"`
	LastSets    int        `json:"lastSets"`
	Multiplier  float64    `json:"multiplier"`
	// FreshAfterHours is the fresh threshold after applying the multiplier.
	FreshAfterHours float64 `json:"freshAfterHours"`
}

// RecommendationKind is the type of training recommendation.
type RecommendationKind string

const (
	RecommendRest         RecommendationKind = "rest"
	RecommendSplit        RecommendationKind = "split"
	RecommendUndertrained RecommendationKind = "undertrained"
	RecommendAnything     RecommendationKind = "anything"
)

// Recommendation tells the user what to train next.
type Recommendation struct {
	Kind    RecommendationKind `json:"kind"`
	Split   catalog.Split      `json:"split,omitempty"`
	Muscles []catalog.Muscle   `json:"muscles,omitempty"`
}

// RecoveryOverview summarises the recovery state of every trackable muscle.
type RecoveryOverview struct {
	OverallScore      int              `json:"overallScore"`
	Muscles           []MuscleRecovery `json:"muscles"`
	FreshCount        int              `json:"freshCount"`
	FatiguedCount     int              `json:"fatiguedCount"`
	UndertrainedCount int              `json:"undertrainedCount"`
	Recommendation    Recommendation   `json:"recommendation"`
}

// RecoveryMultiplier scales the fresh threshold by the volume and subjective feedback of the last session.
func RecoveryMultiplier(sets int, feedback *SessionFeedback) float64 {
	m := 1 + float64(sets-baselineSets)*volumeFactorPerSet
	m = math.Min(math.Max(m, minVolumeFactor), maxVolumeFactor)
	if feedback == nil {
		return m
	}
	switch feedback.Soreness { //nolint:exhaustive // moderate soreness is neutral.
	case LevelHigh:
		m *= highSorenessFactor
	case LevelLow:
		m *= lowSorenessFactor
	}
	if feedback.JointPain {
		m *= jointPainFactor
	}
	if feedback.Performance == LevelLow && feedback.Soreness >= LevelModerate {
		m *= poorPerformanceFactor
	}
	return m
}

// lastTraining is the most recent occurrence of a muscle in the history.
type lastTraining struct {
	at       time.Time
	sets     int
	feedback *SessionFeedback
}

// lastTrainedBefore finds, per muscle, the most recent finished session at or before t that logged a
// completed set for it. Only that session counts, sets are not aggregated across sessions.
func lastTrainedBefore(cat *catalog.Catalog, history []Session, t time.Time) map[catalog.Muscle]lastTraining {
	last := make(map[catalog.Muscle]lastTraining)
	for _, s := range finishedNewestFirst(history) {
		if s.StartTime.After(t) {
			continue
		}
		for muscle, sets := range muscleSets(cat, s) {
			if _, seen := last[muscle]; seen {
				continue
			}
			last[muscle] = lastTraining{at: s.StartTime, sets: sets, feedback: s.Feedback}
		}
		if len(last) == len(catalog.Muscles) {
			break
		}
	}
	return last
}

// classifyRecovery applies the fixed thresholds of a muscle to the hours since it was last trained.
func classifyRecovery(hoursSince, freshAfter float64, thresholds catalog.RecoveryHours) RecoveryStatus {
	switch {
	case hoursSince < freshAfter:
		return RecoveryFatigued
	case hoursSince > thresholds.UndertrainedAfter:
		return RecoveryUndertrained
	default:
		return RecoveryFresh
	}
}

// ComputeRecoveryOverview derives the recovery state of every muscle from the history as of now.
func ComputeRecoveryOverview(cat *catalog.Catalog, history []Session, now time.Time) RecoveryOverview {
	last := lastTrainedBefore(cat, history, now)

	overview := RecoveryOverview{
		OverallScore:      0,
		Muscles:           make([]MuscleRecovery, 0, len(catalog.Muscles)),
		FreshCount:        0,
		FatiguedCount:     0,
		UndertrainedCount: 0,
		Recommendation:    Recommendation{Kind: RecommendAnything, Split: "", Muscles: nil},
	}
	points := 0
	for _, muscle := range catalog.Muscles {
		thresholds := catalog.MuscleRecoveryHours(muscle)
		mr := MuscleRecovery{
			Muscle:          muscle,
			Status:          RecoveryUndertrained,
			HoursSince:      nil,
			LastTrained:     nil,
			LastSets:        0,
			Multiplier:      1,
			FreshAfterHours: thresholds.FreshMin,
		}
		if lt, ok := last[muscle]; ok {
			hours := now.Sub(lt.at).Hours()
			at := lt.at
			mr.HoursSince = &hours
			mr.LastTrained = &at
			mr.LastSets = lt.sets
			mr.Multiplier = RecoveryMultiplier(lt.sets, lt.feedback)
			mr.FreshAfterHours = thresholds.FreshMin * mr.Multiplier
			mr.Status = classifyRecovery(hours, mr.FreshAfterHours, thresholds)
		}

		switch mr.Status {
		case RecoveryFresh:
			overview.FreshCount++
		case RecoveryFatigued:
			overview.FatiguedCount++
		case RecoveryUndertrained:
			overview.UndertrainedCount++
		}
		points += RecoveryPoints(mr.Status)
		overview.Muscles = append(overview.Muscles, mr)
	}
	overview.OverallScore = int(math.Round(float64(points) / float64(len(catalog.Muscles))))
	overview.Recommendation = recommend(overview)
	return overview
}

func recommend(overview RecoveryOverview) Recommendation {
	if overview.FatiguedCount >= FullRestFatiguedMuscles {
		return Recommendation{Kind: RecommendRest, Split: "", Muscles: nil}
	}

	status := make(map[catalog.Muscle]MuscleRecovery, len(overview.Muscles))
	for _, mr := range overview.Muscles {
		status[mr.Muscle] = mr
	}

	var (
		bestSplit catalog.Split
		bestFresh []catalog.Muscle
	)
	for _, split := range catalog.Splits {
		var fresh []catalog.Muscle
		for _, m := range catalog.SplitMuscles(split) {
			if status[m].Status == RecoveryFresh {
				fresh = append(fresh, m)
			}
		}
		// Strictly greater keeps the earlier split on ties.
		if len(fresh) > len(bestFresh) {
			bestSplit, bestFresh = split, fresh
		}
	}
	if len(bestFresh) >= minFreshInSplit {
		return Recommendation{Kind: RecommendSplit, Split: bestSplit, Muscles: bestFresh}
	}

	var undertrained []MuscleRecovery
	for _, mr := range overview.Muscles {
		if mr.Status == RecoveryUndertrained {
			undertrained = append(undertrained, mr)
		}
	}
	if len(undertrained) > 0 {
		// Never trained first, then longest since trained. Stable sort keeps priority order on ties.
		slices.SortStableFunc(undertrained, func(a, b MuscleRecovery) int {
			switch {
			case a.HoursSince == nil && b.HoursSince == nil:
				return 0
			case a.HoursSince == nil:
				return -1
			case b.HoursSince == nil:
				return 1
			case *a.HoursSince > *b.HoursSince:
				return -1
			case *a.HoursSince < *b.HoursSince:
				return 1
			default:
				return 0
			}
		})
		muscles := make([]catalog.Muscle, 0, undertrainedSuggestions)
		for _, mr := range undertrained[:min(len(undertrained), undertrainedSuggestions)] {
			muscles = append(muscles, mr.Muscle)
		}
		return Recommendation{Kind: RecommendUndertrained, Split: "", Muscles: muscles}
	}

	return Recommendation{Kind: RecommendAnything, Split: "", Muscles: nil}
}
