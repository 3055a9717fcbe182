// Package cloudsync keeps the local stores in sync with the remote backend.
//
// Every mutation of a store schedules a debounced push of that store. On login all remote rows are pulled,
// merged into the local stores with a per-store policy and pushed back.
package cloudsync

import (
	"context"
	"time"

	"github.com/myrjola/mesocycle/internal/errors"
	"github.com/myrjola/mesocycle/internal/workout"
)

// ErrNoRow is returned by Remote.Pull when the user has no row in a table.
var ErrNoRow = errors.NewSentinel("no remote row")

// Table names a remote table. Each table holds one row per user.
type Table string

const (
	TableWorkout  Table = "workout_data"
	TableProgram  Table = "program_data"
	TableProfiles Table = "profiles"
	TableBadges   Table = "badge_data"
	TableSettings Table = "settings"
)

// Tables lists every remote table.
//
//nolint:gochecknoglobals // static list.
var Tables = []Table{TableWorkout, TableProgram, TableProfiles, TableBadges, TableSettings}

// Valid reports whether t is one of Tables.
func (t Table) Valid() bool {
	switch t {
	case TableWorkout, TableProgram, TableProfiles, TableBadges, TableSettings:
		return true
	default:
		return false
	}
}

// storeTables maps a local store to the remote tables it is pushed to. The program store carries the profile,
// which has its own table.
func storeTables(store workout.StoreName) []Table {
	switch store {
	case workout.StoreWorkout:
		return []Table{TableWorkout}
	case workout.StoreProgram:
		return []Table{TableProgram, TableProfiles}
	case workout.StoreBadges:
		return []Table{TableBadges}
	case workout.StoreSettings:
		return []Table{TableSettings}
	default:
		return nil
	}
}

// Row is the JSON payload of a remote row and its server-managed modification time.
type Row struct {
	Data      []byte
	UpdatedAt time.Time
}

// Remote is the row-based backend the stores sync to.
type Remote interface {
	// Pull returns the row of userID in table or ErrNoRow.
	Pull(ctx context.Context, table Table, userID string) (Row, error)
	// Push upserts the row of userID in table and returns the new server modification time.
	Push(ctx context.Context, table Table, userID string, data []byte) (time.Time, error)
}
