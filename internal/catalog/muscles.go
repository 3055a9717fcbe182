package catalog

// Muscle is a trackable muscle group. The set of muscles is closed, see Muscles.
type Muscle string

const (
	Quads      Muscle = "quads"
	Hamstrings Muscle = "hamstrings"
	Glutes     Muscle = "glutes"
	Chest      Muscle = "chest"
	Lats       Muscle = "lats"
	UpperBack  Muscle = "upper_back"
	FrontDelts Muscle = "front_delts"
	SideDelts  Muscle = "side_delts"
	RearDelts  Muscle = "rear_delts"
	Triceps    Muscle = "triceps"
	Biceps     Muscle = "biceps"
	LowerBack  Muscle = "lower_back"
	Calves     Muscle = "calves"
	Forearms   Muscle = "forearms"
	Abs        Muscle = "abs"
	Obliques   Muscle = "obliques"
)

// Muscles lists every trackable muscle in priority order: large compound movers first and core last.
//
//nolint:gochecknoglobals // static reference data.
var Muscles = []Muscle{
	Quads, Hamstrings, Glutes, Chest, Lats, UpperBack,
	FrontDelts, SideDelts, RearDelts, Triceps, Biceps,
	LowerBack, Calves, Forearms, Abs, Obliques,
}

//nolint:gochecknoglobals // derived from Muscles.
var priorityIndex = func() map[Muscle]int {
	m := make(map[Muscle]int, len(Muscles))
	for i, muscle := range Muscles {
		m[muscle] = i
	}
	return m
}()

// Priority returns the position of m in the training priority order. Unknown muscles sort last.
func Priority(m Muscle) int {
	if i, ok := priorityIndex[m]; ok {
		return i
	}
	return len(Muscles)
}

// Valid reports whether m belongs to the closed muscle enumeration.
func (m Muscle) Valid() bool {
	_, ok := priorityIndex[m]
	return ok
}

// SizeClass groups muscles by how much per-session volume they tolerate.
type SizeClass int

const (
	SizeMedium SizeClass = iota
	SizeLarge
	SizeSmall
)

// Size returns the size class of m.
func Size(m Muscle) SizeClass {
	switch m {
	case Quads, Hamstrings, Glutes, Chest, Lats, UpperBack:
		return SizeLarge
	case Biceps, Triceps, Forearms, RearDelts:
		return SizeSmall
	case FrontDelts, SideDelts, LowerBack, Calves, Abs, Obliques:
		return SizeMedium
	default:
		return SizeMedium
	}
}

// SessionSetBounds returns the inclusive per-session set range for a muscle of the given size.
func SessionSetBounds(size SizeClass) (int, int) {
	switch size {
	case SizeLarge:
		return 2, 6 //nolint:mnd // large muscles tolerate more per-session sets.
	case SizeSmall:
		return 2, 4 //nolint:mnd // small muscles recover from less.
	case SizeMedium:
		return 2, 5 //nolint:mnd // everything else.
	default:
		return 2, 5 //nolint:mnd // everything else.
	}
}

// IsLowerBody reports whether m is a lower-body muscle for load estimation purposes.
func IsLowerBody(m Muscle) bool {
	switch m { //nolint:exhaustive // only the lower body is listed.
	case Quads, Hamstrings, Glutes, Calves:
		return true
	default:
		return false
	}
}

// Split is a push/pull/legs training bucket.
type Split string

const (
	SplitPush Split = "push"
	SplitPull Split = "pull"
	SplitLegs Split = "legs"
)

// Splits lists the buckets in declaration order which is also the tie-break order.
//
//nolint:gochecknoglobals // static reference data.
var Splits = []Split{SplitPush, SplitPull, SplitLegs}

// SplitMuscles returns the fixed membership of a split bucket.
func SplitMuscles(s Split) []Muscle {
	switch s {
	case SplitPush:
		return []Muscle{Chest, FrontDelts, SideDelts, Triceps}
	case SplitPull:
		return []Muscle{Lats, UpperBack, RearDelts, Biceps, Forearms}
	case SplitLegs:
		return []Muscle{Quads, Hamstrings, Glutes, Calves}
	default:
		return nil
	}
}
