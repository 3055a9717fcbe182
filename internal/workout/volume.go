package workout

import (
	"time"

	"github.com/myrjola/mesocycle/internal/catalog"
)

// Zone classifies a weekly set count against the volume landmarks of a muscle.
type Zone string

const (
	ZoneBelowMV  Zone = "below_mv"
	ZoneMVMEV    Zone = "mv_mev"
	ZoneMEVMAV   Zone = "mev_mav"
	ZoneMAVMRV   Zone = "mav_mrv"
	ZoneAboveMRV Zone = "above_mrv"
)

// Rank orders zones from lowest to highest volume.
func (z Zone) Rank() int {
	switch z {
	case ZoneBelowMV:
		return 0
	case ZoneMVMEV:
		return 1
	case ZoneMEVMAV:
		return 2 //nolint:mnd // zone order.
	case ZoneMAVMRV:
		return 3 //nolint:mnd // zone order.
	case ZoneAboveMRV:
		return 4 //nolint:mnd // zone order.
	default:
		return -1
	}
}

// GetVolumeZone maps a weekly set count to its zone. Every band includes its lower bound. Negative counts are
// treated as zero.
//
// This is the only place zones are derived so that every view labels the same count identically.
func GetVolumeZone(sets int, lm catalog.Landmarks) Zone {
	sets = max(sets, 0)
	switch {
	case sets >= lm.MRV:
		return ZoneAboveMRV
	case sets >= lm.MAVLow:
		return ZoneMAVMRV
	case sets >= lm.MEV:
		return ZoneMEVMAV
	case sets >= lm.MV:
		return ZoneMVMEV
	default:
		return ZoneBelowMV
	}
}

// WeeklySets counts completed sets per target muscle over the seven days ending at now.
func WeeklySets(cat *catalog.Catalog, history []Session, now time.Time) map[catalog.Muscle]int {
	since := now.AddDate(0, 0, -daysPerWeek)
	weekly := make(map[catalog.Muscle]int)
	for _, s := range history {
		if !s.Finished() || !s.StartTime.After(since) || s.StartTime.After(now) {
			continue
		}
		for muscle, n := range muscleSets(cat, s) {
			weekly[muscle] += n
		}
	}
	return weekly
}

// MuscleVolume is the weekly volume state of one muscle.
type MuscleVolume struct {
	Muscle    catalog.Muscle    `json:"muscle"`
	Sets      int               `json:"sets"`
	Zone      Zone              `json:"zone"`
	Landmarks catalog.Landmarks `json:"landmarks"`
}

// VolumeOverview returns the weekly volume of every trackable muscle in priority order.
func VolumeOverview(weekly map[catalog.Muscle]int) []MuscleVolume {
	overview := make([]MuscleVolume, 0, len(catalog.Muscles))
	for _, m := range catalog.Muscles {
		lm := catalog.VolumeLandmarks(m)
		overview = append(overview, MuscleVolume{
			Muscle:    m,
			Sets:      weekly[m],
			Zone:      GetVolumeZone(weekly[m], lm),
			Landmarks: lm,
		})
	}
	return overview
}

// ZoneTransition previews how a planned workout moves a muscle between zones.
type ZoneTransition struct {
	Muscle     catalog.Muscle `json:"muscle"`
	SetsBefore int            `json:"setsBefore"`
	SetsAfter  int            `json:"setsAfter"`
	From       Zone           `json:"from"`
	To         Zone           `json:"to"`
}

// Changed reports whether the planned sets move the muscle into another zone.
func (t ZoneTransition) Changed() bool {
	return t.From != t.To
}

// PreviewZones adds planned sets to the weekly counts and reports the resulting zones for every planned muscle
// in priority order.
func PreviewZones(weekly, planned map[catalog.Muscle]int) []ZoneTransition {
	var transitions []ZoneTransition
	for _, m := range catalog.Muscles {
		add, ok := planned[m]
		if !ok || add <= 0 {
			continue
		}
		lm := catalog.VolumeLandmarks(m)
		before := weekly[m]
		after := before + add
		transitions = append(transitions, ZoneTransition{
			Muscle:     m,
			SetsBefore: before,
			SetsAfter:  after,
			From:       GetVolumeZone(before, lm),
			To:         GetVolumeZone(after, lm),
		})
	}
	return transitions
}

// PlannedSets sums the sets of a generated workout per muscle.
func PlannedSets(w GeneratedWorkout) map[catalog.Muscle]int {
	planned := make(map[catalog.Muscle]int)
	for _, ex := range w.Exercises {
		planned[ex.Muscle] += ex.Sets
	}
	return planned
}
