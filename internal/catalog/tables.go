package catalog

// Landmarks are the weekly set-count thresholds of a muscle.
type Landmarks struct {
	// MV is the maintenance volume.
	MV int `json:"mv"`
	// MEV is the minimum effective volume.
	MEV int `json:"mev"`
	// MAVLow and MAVHigh bound the maximum adaptive volume range.
	MAVLow  int `json:"mavLow"`
	MAVHigh int `json:"mavHigh"`
	// MRV is the maximum recoverable volume.
	MRV int `json:"mrv"`
}

//nolint:gochecknoglobals,mnd // static reference data.
var landmarks = map[Muscle]Landmarks{
	Quads:      {MV: 6, MEV: 8, MAVLow: 12, MAVHigh: 18, MRV: 20},
	Hamstrings: {MV: 3, MEV: 6, MAVLow: 10, MAVHigh: 16, MRV: 20},
	Glutes:     {MV: 0, MEV: 0, MAVLow: 4, MAVHigh: 12, MRV: 16},
	Chest:      {MV: 8, MEV: 10, MAVLow: 12, MAVHigh: 20, MRV: 22},
	Lats:       {MV: 8, MEV: 10, MAVLow: 14, MAVHigh: 22, MRV: 25},
	UpperBack:  {MV: 6, MEV: 8, MAVLow: 12, MAVHigh: 20, MRV: 25},
	FrontDelts: {MV: 0, MEV: 0, MAVLow: 6, MAVHigh: 8, MRV: 12},
	SideDelts:  {MV: 6, MEV: 8, MAVLow: 16, MAVHigh: 22, MRV: 26},
	RearDelts:  {MV: 0, MEV: 6, MAVLow: 12, MAVHigh: 18, MRV: 22},
	Triceps:    {MV: 4, MEV: 6, MAVLow: 10, MAVHigh: 14, MRV: 18},
	Biceps:     {MV: 4, MEV: 8, MAVLow: 14, MAVHigh: 20, MRV: 26},
	LowerBack:  {MV: 0, MEV: 0, MAVLow: 4, MAVHigh: 8, MRV: 12},
	Calves:     {MV: 6, MEV: 8, MAVLow: 12, MAVHigh: 16, MRV: 20},
	Forearms:   {MV: 0, MEV: 2, MAVLow: 6, MAVHigh: 10, MRV: 14},
	Abs:        {MV: 0, MEV: 0, MAVLow: 16, MAVHigh: 20, MRV: 25},
	Obliques:   {MV: 0, MEV: 0, MAVLow: 8, MAVHigh: 12, MRV: 16},
}

// VolumeLandmarks returns the landmarks of m. Unknown muscles get the zero value.
func VolumeLandmarks(m Muscle) Landmarks {
	return landmarks[m]
}

// RecoveryHours are the fixed recovery thresholds of a muscle.
type RecoveryHours struct {
	// FreshMin is the baseline number of hours before the muscle counts as fresh.
	FreshMin float64 `json:"freshMin"`
	// UndertrainedAfter is the number of hours after which the muscle counts as undertrained.
	UndertrainedAfter float64 `json:"undertrainedAfter"`
}

//nolint:gochecknoglobals,mnd // static reference data.
var recoveryHours = map[Muscle]RecoveryHours{
	Quads:      {FreshMin: 72, UndertrainedAfter: 144},
	Hamstrings: {FreshMin: 72, UndertrainedAfter: 144},
	Glutes:     {FreshMin: 60, UndertrainedAfter: 144},
	Chest:      {FreshMin: 48, UndertrainedAfter: 120},
	Lats:       {FreshMin: 48, UndertrainedAfter: 120},
	UpperBack:  {FreshMin: 48, UndertrainedAfter: 120},
	FrontDelts: {FreshMin: 36, UndertrainedAfter: 96},
	SideDelts:  {FreshMin: 36, UndertrainedAfter: 96},
	RearDelts:  {FreshMin: 36, UndertrainedAfter: 96},
	Triceps:    {FreshMin: 36, UndertrainedAfter: 96},
	Biceps:     {FreshMin: 36, UndertrainedAfter: 96},
	LowerBack:  {FreshMin: 72, UndertrainedAfter: 168},
	Calves:     {FreshMin: 36, UndertrainedAfter: 96},
	Forearms:   {FreshMin: 24, UndertrainedAfter: 96},
	Abs:        {FreshMin: 24, UndertrainedAfter: 72},
	Obliques:   {FreshMin: 24, UndertrainedAfter: 72},
}

// MuscleRecoveryHours returns the recovery thresholds of m.
func MuscleRecoveryHours(m Muscle) RecoveryHours {
	if h, ok := recoveryHours[m]; ok {
		return h
	}
	return RecoveryHours{FreshMin: 48, UndertrainedAfter: 120} //nolint:mnd // generic default.
}

// Goal is the training goal that selects rep ranges and rest times.
type Goal string

const (
	GoalStrength    Goal = "strength"
	GoalHypertrophy Goal = "hypertrophy"
	GoalEndurance   Goal = "endurance"
)

// Category classifies an exercise for rep, rest and execution time lookups.
type Category string

const (
	CategoryCompoundBarbell  Category = "compound_barbell"
	CategoryDumbbellCompound Category = "dumbbell_compound"
	CategoryMachineCompound  Category = "machine_compound"
	CategoryIsolation        Category = "isolation"
	CategoryMachineIsolation Category = "machine_isolation"
	CategoryAbsCalves        Category = "abs_calves"
)

// IsCompound reports whether the category is one of the compound categories.
func (c Category) IsCompound() bool {
	return c == CategoryCompoundBarbell || c == CategoryDumbbellCompound || c == CategoryMachineCompound
}

// CategoryConfig holds the goal-specific prescription for a category.
type CategoryConfig struct {
	RepMin  int `json:"repMin"`
	RepMax  int `json:"repMax"`
	RestSec int `json:"restSec"`
	// SetSec is the time it takes to perform one set.
	SetSec int `json:"setSec"`
}

//nolint:gochecknoglobals,mnd // static reference data.
var goalConfig = map[Goal]map[Category]CategoryConfig{
	GoalStrength: {
		CategoryCompoundBarbell:  {RepMin: 3, RepMax: 6, RestSec: 180, SetSec: 40},
		CategoryDumbbellCompound: {RepMin: 5, RepMax: 8, RestSec: 150, SetSec: 40},
		CategoryMachineCompound:  {RepMin: 5, RepMax: 8, RestSec: 120, SetSec: 35},
		CategoryIsolation:        {RepMin: 6, RepMax: 10, RestSec: 90, SetSec: 35},
		CategoryMachineIsolation: {RepMin: 6, RepMax: 10, RestSec: 90, SetSec: 35},
		CategoryAbsCalves:        {RepMin: 8, RepMax: 12, RestSec: 60, SetSec: 30},
	},
	GoalHypertrophy: {
		CategoryCompoundBarbell:  {RepMin: 6, RepMax: 10, RestSec: 150, SetSec: 45},
		CategoryDumbbellCompound: {RepMin: 8, RepMax: 12, RestSec: 120, SetSec: 45},
		CategoryMachineCompound:  {RepMin: 8, RepMax: 12, RestSec: 90, SetSec: 40},
		CategoryIsolation:        {RepMin: 10, RepMax: 15, RestSec: 75, SetSec: 40},
		CategoryMachineIsolation: {RepMin: 10, RepMax: 15, RestSec: 60, SetSec: 40},
		CategoryAbsCalves:        {RepMin: 12, RepMax: 20, RestSec: 45, SetSec: 35},
	},
	GoalEndurance: {
		CategoryCompoundBarbell:  {RepMin: 12, RepMax: 15, RestSec: 90, SetSec: 50},
		CategoryDumbbellCompound: {RepMin: 12, RepMax: 20, RestSec: 75, SetSec: 50},
		CategoryMachineCompound:  {RepMin: 15, RepMax: 20, RestSec: 60, SetSec: 50},
		CategoryIsolation:        {RepMin: 15, RepMax: 20, RestSec: 45, SetSec: 45},
		CategoryMachineIsolation: {RepMin: 15, RepMax: 20, RestSec: 45, SetSec: 45},
		CategoryAbsCalves:        {RepMin: 15, RepMax: 25, RestSec: 30, SetSec: 40},
	},
}

// GoalCategoryConfig returns the prescription for a goal and category. Unknown goals fall back to hypertrophy.
func GoalCategoryConfig(goal Goal, category Category) CategoryConfig {
	byCategory, ok := goalConfig[goal]
	if !ok {
		byCategory = goalConfig[GoalHypertrophy]
	}
	if cfg, found := byCategory[category]; found {
		return cfg
	}
	return byCategory[CategoryIsolation]
}

// Equipment is the implement an exercise is performed with.
type Equipment string

const (
	Barbell    Equipment = "barbell"
	Dumbbell   Equipment = "dumbbell"
	Kettlebell Equipment = "kettlebell"
	Cable      Equipment = "cable"
	Machine    Equipment = "machine"
	SmithBar   Equipment = "smith"
	EZBar      Equipment = "ez_bar"
	TrapBar    Equipment = "trap_bar"
	Bodyweight Equipment = "bodyweight"
	Band       Equipment = "band"
)

// AllEquipment lists every known equipment type.
//
//nolint:gochecknoglobals // static reference data.
var AllEquipment = []Equipment{
	Barbell, Dumbbell, Kettlebell, Cable, Machine, SmithBar, EZBar, TrapBar, Bodyweight, Band,
}

// Valid reports whether e is a known equipment type.
func (e Equipment) Valid() bool {
	for _, known := range AllEquipment {
		if e == known {
			return true
		}
	}
	return false
}

// IsUnloaded reports whether the equipment carries no external load.
func (e Equipment) IsUnloaded() bool {
	return e == Bodyweight || e == Band
}

// Increment returns the smallest practical load step for the equipment.
func (e Equipment) Increment() float64 {
	switch e {
	case Barbell, EZBar, SmithBar, TrapBar:
		return 2.5 //nolint:mnd // smallest plate pair.
	case Dumbbell, Kettlebell:
		return 2 //nolint:mnd // typical dumbbell rack step.
	case Cable, Machine:
		return 5 //nolint:mnd // typical stack step.
	case Bodyweight, Band:
		return 2.5 //nolint:mnd // only used when loading is added.
	default:
		return 2.5 //nolint:mnd // generic step.
	}
}

// Setup names a preset of available equipment.
type Setup string

const (
	SetupFullGym    Setup = "full_gym"
	SetupHomeGym    Setup = "home_gym"
	SetupDumbbells  Setup = "dumbbells"
	SetupBodyweight Setup = "bodyweight"
)

// SetupEquipment returns the equipment available in a setup. Unknown setups get a full gym.
func SetupEquipment(s Setup) []Equipment {
	switch s {
	case SetupFullGym:
		return AllEquipment
	case SetupHomeGym:
		return []Equipment{Barbell, Dumbbell, Kettlebell, EZBar, Bodyweight, Band}
	case SetupDumbbells:
		return []Equipment{Dumbbell, Kettlebell, Bodyweight}
	case SetupBodyweight:
		return []Equipment{Bodyweight}
	default:
		return AllEquipment
	}
}

// Sex selects the load modifier applied to bodyweight ratios.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Experience is the self-reported training experience.
type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// ExperienceFactor scales bodyweight ratios, which are calibrated for intermediates.
func ExperienceFactor(e Experience) float64 {
	switch e {
	case ExperienceBeginner:
		return 0.65 //nolint:mnd // untrained lifters move roughly two thirds.
	case ExperienceIntermediate:
		return 1
	case ExperienceAdvanced:
		return 1.25 //nolint:mnd // trained lifters.
	default:
		return 1
	}
}

// exerciseRatios are working-weight to bodyweight ratios for specific exercises.
//
//nolint:gochecknoglobals,mnd // static reference data.
var exerciseRatios = map[string]float64{
	"barbell_back_squat":      0.9,
	"barbell_front_squat":     0.7,
	"barbell_deadlift":        1.1,
	"romanian_deadlift":       0.75,
	"barbell_bench_press":     0.7,
	"incline_barbell_press":   0.6,
	"overhead_press":          0.45,
	"barbell_row":             0.6,
	"barbell_hip_thrust":      1.0,
	"trap_bar_deadlift":       1.2,
	"leg_press":               1.6,
	"lat_pulldown":            0.55,
	"seated_cable_row":        0.55,
	"dumbbell_bench_press":    0.28,
	"dumbbell_shoulder_press": 0.18,
	"dumbbell_row":            0.3,
	"ez_bar_curl":             0.3,
	"barbell_curl":            0.3,
	"leg_extension":           0.5,
	"lying_leg_curl":          0.4,
	"standing_calf_raise":     0.8,
}

// muscleEquipmentRatios are fallbacks keyed by "muscle:equipment", with "*:equipment" as the last resort.
//
//nolint:gochecknoglobals,mnd // static reference data.
var muscleEquipmentRatios = map[string]float64{
	"chest:dumbbell":      0.25,
	"chest:machine":       0.6,
	"chest:cable":         0.2,
	"quads:machine":       0.6,
	"quads:dumbbell":      0.2,
	"hamstrings:machine":  0.4,
	"hamstrings:dumbbell": 0.25,
	"glutes:machine":      0.6,
	"lats:cable":          0.5,
	"lats:machine":        0.55,
	"upper_back:cable":    0.5,
	"upper_back:dumbbell": 0.28,
	"side_delts:dumbbell": 0.08,
	"side_delts:cable":    0.06,
	"rear_delts:dumbbell": 0.07,
	"rear_delts:cable":    0.08,
	"biceps:dumbbell":     0.12,
	"biceps:cable":        0.2,
	"triceps:cable":       0.25,
	"triceps:dumbbell":    0.1,
	"calves:machine":      0.8,
	"*:barbell":           0.5,
	"*:dumbbell":          0.2,
	"*:kettlebell":        0.2,
	"*:cable":             0.25,
	"*:machine":           0.4,
	"*:smith":             0.5,
	"*:ez_bar":            0.3,
	"*:trap_bar":          1.0,
}

// BodyweightRatio resolves the load to bodyweight ratio for an exercise: per-exercise ratio first, then
// muscle:equipment, then *:equipment. The second return value is false when nothing matched.
func BodyweightRatio(exerciseID string, equipment Equipment, target Muscle) (float64, bool) {
	if r, ok := exerciseRatios[exerciseID]; ok {
		return r, true
	}
	if r, ok := muscleEquipmentRatios[string(target)+":"+string(equipment)]; ok {
		return r, true
	}
	if r, ok := muscleEquipmentRatios["*:"+string(equipment)]; ok {
		return r, true
	}
	return 0, false
}
