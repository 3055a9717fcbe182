package workout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEvaluateBadges(t *testing.T) {
	now := date(2024, 3, 1, 12)
	doc, fresh := EvaluateBadges(Stats{TotalWorkouts: 1, PRCount: 1}, BadgeDocument{}, now)

	want := []UnlockedBadge{
		{ID: "first_pr", UnlockedAt: now},
		{ID: "first_workout", UnlockedAt: now},
	}
	if diff := cmp.Diff(want, doc.Unlocked); diff != "" {
		t.Errorf("unlocked mismatch (-want +got):\n%s", diff)
	}
	var freshIDs []string
	for _, b := range fresh {
		freshIDs = append(freshIDs, b.ID)
	}
	if diff := cmp.Diff([]string{"first_workout", "first_pr"}, freshIDs); diff != "" {
		t.Errorf("fresh badges mismatch (-want +got):\n%s", diff)
	}

	// Deleting the history drops the stats to zero but never revokes a badge, and the unlock time stays.
	later := date(2024, 3, 2, 12)
	again, fresh := EvaluateBadges(Stats{}, doc, later)
	if len(fresh) != 0 {
		t.Errorf("got fresh badges %v on zero stats", fresh)
	}
	if diff := cmp.Diff(want, again.Unlocked); diff != "" {
		t.Errorf("badges changed after stats dropped (-want +got):\n%s", diff)
	}

	more, fresh := EvaluateBadges(Stats{TotalWorkouts: 10, PRCount: 3, LongestStreakWeeks: 4}, again, later)
	if len(fresh) != 2 || len(more.Unlocked) != 4 {
		t.Errorf("got %d fresh and %d unlocked badges, want 2 and 4", len(fresh), len(more.Unlocked))
	}
}

func TestNewBadgeOverview(t *testing.T) {
	now := date(2024, 3, 1, 12)
	doc := BadgeDocument{
		Unlocked: []UnlockedBadge{
			{ID: "first_workout", UnlockedAt: now},
			{ID: "first_pr", UnlockedAt: now},
			{ID: "retired_badge", UnlockedAt: now},
		},
		PreviousPoints: 10,
		UpdatedAt:      now,
	}

	overview := NewBadgeOverview(doc)
	if overview.TotalPoints != 25 {
		t.Errorf("TotalPoints = %d, want 25", overview.TotalPoints)
	}
	if overview.PendingPoints != 15 {
		t.Errorf("PendingPoints = %d, want 15", overview.PendingPoints)
	}
	if len(overview.Catalogue) != len(Badges()) {
		t.Errorf("catalogue has %d badges, want %d", len(overview.Catalogue), len(Badges()))
	}

	doc.PreviousPoints = 100
	if got := NewBadgeOverview(doc).PendingPoints; got != 0 {
		t.Errorf("PendingPoints = %d after over-acknowledging, want 0", got)
	}
}
