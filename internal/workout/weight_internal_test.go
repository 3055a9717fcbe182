package workout

import (
	"math"
	"testing"

	"github.com/myrjola/mesocycle/internal/catalog"
	"github.com/myrjola/mesocycle/internal/ptr"
)

func TestRoundToIncrement(t *testing.T) {
	tests := []struct {
		name      string
		weight    float64
		equipment catalog.Equipment
		want      float64
	}{
		{name: "zero is one increment", weight: 0, equipment: catalog.Barbell, want: 2.5},
		{name: "rounds down", weight: 61, equipment: catalog.Barbell, want: 60},
		{name: "rounds up", weight: 63.8, equipment: catalog.Barbell, want: 65},
		{name: "dumbbell step", weight: 7, equipment: catalog.Dumbbell, want: 8},
		{name: "tiny machine load", weight: 1, equipment: catalog.Machine, want: 5},
		{name: "negative", weight: -10, equipment: catalog.Cable, want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundToIncrement(tt.weight, tt.equipment); got != tt.want {
				t.Errorf("RoundToIncrement(%v, %s) = %v, want %v", tt.weight, tt.equipment, got, tt.want)
			}
		})
	}
}

func TestRoundToIncrement_positiveMultiple(t *testing.T) {
	for _, eq := range catalog.AllEquipment {
		inc := eq.Increment()
		for w := 0.0; w < 250; w += 0.7 {
			got := RoundToIncrement(w, eq)
			if got < inc {
				t.Fatalf("RoundToIncrement(%v, %s) = %v, below one increment", w, eq, got)
			}
			steps := got / inc
			if math.Abs(steps-math.Round(steps)) > 1e-9 {
				t.Fatalf("RoundToIncrement(%v, %s) = %v, not a multiple of %v", w, eq, got, inc)
			}
		}
	}
}

func TestEstimateWeight_unloadedIsZero(t *testing.T) {
	cat := catalog.Default()
	experiences := []catalog.Experience{
		catalog.ExperienceBeginner, catalog.ExperienceIntermediate, catalog.ExperienceAdvanced,
	}
	for _, ex := range cat.Exercises() {
		if !ex.Equipment.IsUnloaded() {
			continue
		}
		for _, exp := range experiences {
			for _, sex := range []catalog.Sex{catalog.SexMale, catalog.SexFemale} {
				profile := Profile{Bodyweight: 80, Sex: sex, Experience: exp, Goal: "", Setup: ""}
				if got := EstimateWeight(ex.ID, ex.Equipment, ex.Target, profile, true); got != 0 {
					t.Errorf("EstimateWeight(%s, %s, %s) = %v, want 0", ex.ID, exp, sex, got)
				}
			}
		}
	}
}

func TestEstimateWeight(t *testing.T) {
	male := Profile{
		Bodyweight: 80,
		Sex:        catalog.SexMale,
		Experience: catalog.ExperienceIntermediate,
		Goal:       catalog.GoalHypertrophy,
		Setup:      catalog.SetupFullGym,
	}
	female := male
	female.Sex = catalog.SexFemale

	tests := []struct {
		name       string
		exerciseID string
		equipment  catalog.Equipment
		target     catalog.Muscle
		profile    Profile
		hasHistory bool
		want       float64
	}{
		// 0.7 * 80 = 56
		{"bench with history", "barbell_bench_press", catalog.Barbell, catalog.Chest, male, true, 55},
		// 56 * 0.85 = 47.6
		{"bench cold start", "barbell_bench_press", catalog.Barbell, catalog.Chest, male, false, 47.5},
		// 56 * 0.55 = 30.8
		{"female upper body", "barbell_bench_press", catalog.Barbell, catalog.Chest, female, true, 30},
		// 0.9 * 80 * 0.75 = 54
		{"female lower body", "barbell_back_squat", catalog.Barbell, catalog.Quads, female, true, 55},
		// muscle:equipment fallback 0.12 * 80 = 9.6
		{"fallback ratio", "hammer_curl", catalog.Dumbbell, catalog.Biceps, male, true, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateWeight(tt.exerciseID, tt.equipment, tt.target, tt.profile, tt.hasHistory)
			if got != tt.want {
				t.Errorf("EstimateWeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateOneRepMax(t *testing.T) {
	tests := []struct {
		weight float64
		reps   int
		want   float64
	}{
		{weight: 100, reps: 1, want: 100},
		{weight: 100, reps: 10, want: 100 * 36.0 / 27},
		{weight: 100, reps: 12, want: 100 * 36.0 / 25},
		{weight: 100, reps: 15, want: 150},
		{weight: 100, reps: 0, want: 0},
		{weight: 0, reps: 5, want: 0},
	}
	for _, tt := range tests {
		if got := EstimateOneRepMax(tt.weight, tt.reps); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("EstimateOneRepMax(%v, %d) = %v, want %v", tt.weight, tt.reps, got, tt.want)
		}
	}
}

func TestGetProgressiveWeight(t *testing.T) {
	monday := date(2025, 3, 3, 18)
	withRIR := func(ex CompletedExercise, rir int) CompletedExercise {
		for i := range ex.Sets {
			ex.Sets[i].RIR = ptr.Ref(rir)
		}
		return ex
	}

	tests := []struct {
		name      string
		history   []Session
		exercise  string
		equipment catalog.Equipment
		want      ProgressiveWeight
	}{
		{
			name:      "no history",
			history:   nil,
			exercise:  "barbell_bench_press",
			equipment: catalog.Barbell,
			want:      ProgressiveWeight{Weight: 0, Adjustment: AdjustmentNone, LastWeight: 0, LastReps: 0},
		},
		{
			name: "beat the rep floor with reps in reserve",
			history: []Session{
				finished("a", monday, completed("barbell_bench_press", 60, 9, 9, 8)),
			},
			exercise:  "barbell_bench_press",
			equipment: catalog.Barbell,
			want:      ProgressiveWeight{Weight: 62.5, Adjustment: AdjustmentBump, LastWeight: 60, LastReps: 9},
		},
		{
			name: "close to failure holds",
			history: []Session{
				finished("a", monday, withRIR(completed("barbell_bench_press", 60, 9), 1)),
			},
			exercise:  "barbell_bench_press",
			equipment: catalog.Barbell,
			want:      ProgressiveWeight{Weight: 60, Adjustment: AdjustmentHold, LastWeight: 60, LastReps: 9},
		},
		{
			name: "missing the floor at the same weight drops",
			history: []Session{
				finished("a", monday.AddDate(0, 0, -7), completed("barbell_bench_press", 60, 8)),
				finished("b", monday, completed("barbell_bench_press", 60, 6)),
			},
			exercise:  "barbell_bench_press",
			equipment: catalog.Barbell,
			want:      ProgressiveWeight{Weight: 55, Adjustment: AdjustmentDrop, LastWeight: 60, LastReps: 6},
		},
		{
			name: "missing the floor after a weight increase holds",
			history: []Session{
				finished("a", monday.AddDate(0, 0, -7), completed("barbell_bench_press", 60, 9)),
				finished("b", monday, completed("barbell_bench_press", 62.5, 6)),
			},
			exercise:  "barbell_bench_press",
			equipment: catalog.Barbell,
			want:      ProgressiveWeight{Weight: 62.5, Adjustment: AdjustmentHold, LastWeight: 62.5, LastReps: 6},
		},
		{
			name: "bodyweight progresses by reps only",
			history: []Session{
				finished("a", monday, completed("pull_up", 0, 12, 10)),
			},
			exercise:  "pull_up",
			equipment: catalog.Bodyweight,
			want:      ProgressiveWeight{Weight: 0, Adjustment: AdjustmentBump, LastWeight: 0, LastReps: 12},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetProgressiveWeight(tt.history, tt.exercise, tt.equipment, 8)
			if got != tt.want {
				t.Errorf("GetProgressiveWeight() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
