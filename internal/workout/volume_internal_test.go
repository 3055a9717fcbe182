package workout

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/mesocycle/internal/catalog"
)

func TestGetVolumeZone_monotonic(t *testing.T) {
	for _, m := range catalog.Muscles {
		lm := catalog.VolumeLandmarks(m)
		prev := -1
		for sets := -3; sets <= 60; sets++ {
			rank := GetVolumeZone(sets, lm).Rank()
			if rank < 0 {
				t.Fatalf("%s: %d sets map to an unknown zone", m, sets)
			}
			if rank < prev {
				t.Fatalf("%s: zone rank dropped from %d to %d at %d sets", m, prev, rank, sets)
			}
			prev = rank
		}
	}
}

func TestGetVolumeZone_chest(t *testing.T) {
	lm := catalog.VolumeLandmarks(catalog.Chest)
	tests := []struct {
		sets int
		want Zone
	}{
		{sets: -1, want: ZoneBelowMV},
		{sets: 7, want: ZoneBelowMV},
		{sets: 8, want: ZoneMVMEV},
		{sets: 10, want: ZoneMEVMAV},
		{sets: 12, want: ZoneMAVMRV},
		{sets: 21, want: ZoneMAVMRV},
		{sets: 22, want: ZoneAboveMRV},
	}
	for _, tt := range tests {
		if got := GetVolumeZone(tt.sets, lm); got != tt.want {
			t.Errorf("GetVolumeZone(%d) = %s, want %s", tt.sets, got, tt.want)
		}
	}
}

func TestWeeklySets(t *testing.T) {
	now := date(2025, 3, 10, 12)
	unfinished := finished("open", now.Add(-2*time.Hour), completed("barbell_bench_press", 60, 8, 8))
	unfinished.EndTime = nil
	history := []Session{
		finished("recent", now.AddDate(0, 0, -2), completed("barbell_bench_press", 60, 8, 8, 8),
			completed("cable_fly", 15, 12, 12)),
		finished("old", now.AddDate(0, 0, -8), completed("barbell_bench_press", 60, 8, 8, 8)),
		finished("squat", now.AddDate(0, 0, -6), completed("barbell_back_squat", 80, 5, 5)),
		unfinished,
	}
	want := map[catalog.Muscle]int{catalog.Chest: 5, catalog.Quads: 2}
	if diff := cmp.Diff(want, WeeklySets(catalog.Default(), history, now)); diff != "" {
		t.Errorf("WeeklySets mismatch (-want +got):\n%s", diff)
	}
}

func TestPreviewZones(t *testing.T) {
	weekly := map[catalog.Muscle]int{catalog.Chest: 9}
	planned := PlannedSets(GeneratedWorkout{
		Exercises: []GeneratedExercise{
			{ExerciseID: "barbell_bench_press", Muscle: catalog.Chest, Sets: 2},
			{ExerciseID: "cable_fly", Muscle: catalog.Chest, Sets: 1},
			{ExerciseID: "cable_curl", Muscle: catalog.Biceps, Sets: 3},
		},
		TotalSets:            6,
		EstimatedDurationMin: 20,
	})

	want := []ZoneTransition{
		{Muscle: catalog.Chest, SetsBefore: 9, SetsAfter: 12, From: ZoneMVMEV, To: ZoneMAVMRV},
		{Muscle: catalog.Biceps, SetsBefore: 0, SetsAfter: 3, From: ZoneBelowMV, To: ZoneBelowMV},
	}
	got := PreviewZones(weekly, planned)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PreviewZones mismatch (-want +got):\n%s", diff)
	}
	if !got[0].Changed() || got[1].Changed() {
		t.Errorf("Changed() = %v, %v; want true, false", got[0].Changed(), got[1].Changed())
	}
}
