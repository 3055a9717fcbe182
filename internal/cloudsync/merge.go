package cloudsync

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/myrjola/mesocycle/internal/workout"
)

// MaxHistory is the number of sessions kept after a workout merge.
const MaxHistory = 500

// MergeWorkout merges the workout store. An empty side yields the other side unchanged. Otherwise sessions and
// custom workouts are unioned by id, the history is trimmed to the MaxHistory most recent sessions and the stats
// are recomputed from the merged history.
//
// A session present on both sides keeps the finished copy, and the local copy when both agree. A custom workout
// present on both sides keeps the most recently updated copy, and the local copy on a tie.
func MergeWorkout(local, remote workout.WorkoutDocument) workout.WorkoutDocument {
	if local.Empty() {
		return remote
	}
	if remote.Empty() {
		return local
	}

	sessions := make(map[string]workout.Session, len(local.History)+len(remote.History))
	for _, s := range local.History {
		sessions[s.ID] = s
	}
	for _, s := range remote.History {
		if l, ok := sessions[s.ID]; !ok || (!l.Finished() && s.Finished()) {
			sessions[s.ID] = s
		}
	}
	history := make([]workout.Session, 0, len(sessions))
	for _, s := range sessions {
		history = append(history, s)
	}
	slices.SortFunc(history, func(a, b workout.Session) int {
		if c := b.StartTime.Compare(a.StartTime); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	if len(history) > MaxHistory {
		history = history[:MaxHistory]
	}

	custom := make(map[string]workout.CustomWorkout, len(local.CustomWorkouts)+len(remote.CustomWorkouts))
	for _, c := range local.CustomWorkouts {
		custom[c.ID] = c
	}
	for _, c := range remote.CustomWorkouts {
		if l, ok := custom[c.ID]; !ok || c.UpdatedAt.After(l.UpdatedAt) {
			custom[c.ID] = c
		}
	}
	customWorkouts := make([]workout.CustomWorkout, 0, len(custom))
	for _, c := range custom {
		customWorkouts = append(customWorkouts, c)
	}
	slices.SortFunc(customWorkouts, func(a, b workout.CustomWorkout) int {
		return strings.Compare(a.ID, b.ID)
	})

	merged := local
	merged.History = history
	merged.CustomWorkouts = customWorkouts
	merged.Stats = workout.ComputeStats(history)
	if len(merged.MuscleOrder) == 0 {
		merged.MuscleOrder = remote.MuscleOrder
	}
	if len(merged.HomeCardOrder) == 0 {
		merged.HomeCardOrder = remote.HomeCardOrder
	}
	merged.UpdatedAt = latest(local.UpdatedAt, remote.UpdatedAt)
	return merged
}

// MergeProgram merges the program store. The program with its schedule and the profile are resolved
// independently by last write wins on their own timestamps. A side without a program or profile always loses to
// a side that has one.
func MergeProgram(local, remote workout.ProgramDocument) workout.ProgramDocument {
	merged := local
	if remoteWins(local.Program != nil, local.ProgramUpdatedAt, remote.Program != nil, remote.ProgramUpdatedAt) {
		merged.Program = remote.Program
		merged.Schedule = remote.Schedule
		merged.ProgramUpdatedAt = remote.ProgramUpdatedAt
	}
	if remoteWins(local.Profile != nil, local.ProfileUpdatedAt, remote.Profile != nil, remote.ProfileUpdatedAt) {
		merged.Profile = remote.Profile
		merged.ProfileUpdatedAt = remote.ProfileUpdatedAt
	}
	merged.UpdatedAt = latest(local.UpdatedAt, remote.UpdatedAt)
	return merged
}

// MergeSettings merges the settings store by last write wins. Settings that were never written locally take the
// remote settings.
func MergeSettings(local, remote workout.SettingsDocument) workout.SettingsDocument {
	if remoteWins(!local.UpdatedAt.IsZero(), local.UpdatedAt, !remote.UpdatedAt.IsZero(), remote.UpdatedAt) {
		return remote
	}
	return local
}

// remoteWins decides a last write wins conflict. Local wins ties.
func remoteWins(localPresent bool, localAt time.Time, remotePresent bool, remoteAt time.Time) bool {
	switch {
	case !remotePresent:
		return false
	case !localPresent:
		return true
	default:
		return remoteAt.After(localAt)
	}
}

// MergeBadges unions the unlocked badges by id keeping the earliest unlock time. The acknowledged point total
// takes the larger side. The merge is commutative and idempotent.
func MergeBadges(local, remote workout.BadgeDocument) workout.BadgeDocument {
	earliest := make(map[string]time.Time, len(local.Unlocked)+len(remote.Unlocked))
	for _, u := range slices.Concat(local.Unlocked, remote.Unlocked) {
		if at, ok := earliest[u.ID]; !ok || u.UnlockedAt.Before(at) {
			earliest[u.ID] = u.UnlockedAt
		}
	}
	var unlocked []workout.UnlockedBadge
	for id, at := range earliest {
		unlocked = append(unlocked, workout.UnlockedBadge{ID: id, UnlockedAt: at})
	}
	slices.SortFunc(unlocked, func(a, b workout.UnlockedBadge) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return workout.BadgeDocument{
		Unlocked:       unlocked,
		PreviousPoints: max(local.PreviousPoints, remote.PreviousPoints),
		UpdatedAt:      latest(local.UpdatedAt, remote.UpdatedAt),
	}
}

func latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
