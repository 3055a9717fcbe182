package workout

import (
	"slices"
	"strings"
	"time"
)

// Badge is an achievement with a point value.
type Badge struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	met    func(Stats) bool
}

//nolint:gochecknoglobals,mnd // static badge catalogue.
var badges = []Badge{
	{ID: "first_workout", Name: "First Workout", Points: 10, met: func(s Stats) bool { return s.TotalWorkouts >= 1 }},
	{ID: "workouts_10", Name: "Ten Workouts", Points: 25, met: func(s Stats) bool { return s.TotalWorkouts >= 10 }},
	{ID: "workouts_50", Name: "Fifty Workouts", Points: 50, met: func(s Stats) bool { return s.TotalWorkouts >= 50 }},
	{ID: "workouts_100", Name: "Century", Points: 100, met: func(s Stats) bool { return s.TotalWorkouts >= 100 }},
	{ID: "volume_10k", Name: "10 Tonnes", Points: 25, met: func(s Stats) bool { return s.TotalVolume >= 10_000 }},
	{ID: "volume_100k", Name: "100 Tonnes", Points: 100, met: func(s Stats) bool { return s.TotalVolume >= 100_000 }},
	{ID: "sets_1000", Name: "Thousand Sets", Points: 50, met: func(s Stats) bool { return s.TotalSets >= 1000 }},
	{ID: "first_pr", Name: "Personal Record", Points: 15, met: func(s Stats) bool { return s.PRCount >= 1 }},
	{ID: "streak_4", Name: "Four Week Streak", Points: 30, met: func(s Stats) bool { return s.LongestStreakWeeks >= 4 }},
}

// Badges returns the badge catalogue.
func Badges() []Badge {
	return slices.Clone(badges)
}

// BadgeByID looks up a badge in the catalogue.
func BadgeByID(id string) (Badge, bool) {
	i := slices.IndexFunc(badges, func(b Badge) bool { return b.ID == id })
	if i < 0 {
		return Badge{}, false
	}
	return badges[i], true
}

// EvaluateBadges unlocks every badge met by stats that is not unlocked yet. Unlocked badges are never revoked,
// even when the history that earned them is deleted. The returned slice holds the newly unlocked badges.
func EvaluateBadges(stats Stats, doc BadgeDocument, now time.Time) (BadgeDocument, []Badge) {
	unlocked := make(map[string]bool, len(doc.Unlocked))
	for _, u := range doc.Unlocked {
		unlocked[u.ID] = true
	}

	out := doc
	out.Unlocked = slices.Clone(doc.Unlocked)
	var fresh []Badge
	for _, b := range badges {
		if unlocked[b.ID] || !b.met(stats) {
			continue
		}
		out.Unlocked = append(out.Unlocked, UnlockedBadge{ID: b.ID, UnlockedAt: now})
		fresh = append(fresh, b)
	}
	slices.SortFunc(out.Unlocked, func(a, b UnlockedBadge) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out, fresh
}

// TotalPoints sums the points of the unlocked badges. Unknown ids are worth nothing.
func TotalPoints(doc BadgeDocument) int {
	total := 0
	for _, u := range doc.Unlocked {
		if b, ok := BadgeByID(u.ID); ok {
			total += b.Points
		}
	}
	return total
}

// BadgeOverview is the badge state shown to the user.
type BadgeOverview struct {
	Unlocked      []UnlockedBadge `json:"unlocked"`
	TotalPoints   int             `json:"totalPoints"`
	PendingPoints int             `json:"pendingPoints"`
	Catalogue     []Badge         `json:"catalogue"`
}

// NewBadgeOverview derives the overview of a badge document.
func NewBadgeOverview(doc BadgeDocument) BadgeOverview {
	total := TotalPoints(doc)
	return BadgeOverview{
		Unlocked:      slices.Clone(doc.Unlocked),
		TotalPoints:   total,
		PendingPoints: max(total-doc.PreviousPoints, 0),
		Catalogue:     Badges(),
	}
}
