package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SyncState is the last known sync outcome of one remote table.
type SyncState struct {
	RemoteTable  string     `json:"remoteTable"`
	LastPulledAt *time.Time `json:"lastPulledAt,omitempty"`
	LastPushedAt *time.Time `json:"lastPushedAt,omitempty"`
	LastError    string     `json:"lastError,omitempty"`
}

// RecordPull stores the outcome of a pull. A nil err clears the last error.
func (db *Database) RecordPull(ctx context.Context, table string, at time.Time, err error) error {
	return db.recordSync(ctx, table, "last_pulled_at", at, err)
}

// RecordPush stores the outcome of a push. A nil err clears the last error.
func (db *Database) RecordPush(ctx context.Context, table string, at time.Time, err error) error {
	return db.recordSync(ctx, table, "last_pushed_at", at, err)
}

func (db *Database) recordSync(ctx context.Context, table, column string, at time.Time, syncErr error) error {
	var (
		lastErr   sql.NullString
		timestamp sql.NullString
	)
	if syncErr != nil {
		lastErr = sql.NullString{String: syncErr.Error(), Valid: true}
	} else {
		timestamp = sql.NullString{String: formatTimestamp(at), Valid: true}
	}
	// The column name is one of two constants above.
	query := fmt.Sprintf(`
		INSERT INTO sync_state (remote_table, %[1]s, last_error)
		VALUES (?, ?, ?)
		ON CONFLICT (remote_table) DO UPDATE SET
			%[1]s = COALESCE(excluded.%[1]s, sync_state.%[1]s),
			last_error = excluded.last_error`, column)
	if _, err := db.ReadWrite.ExecContext(ctx, query, table, timestamp, lastErr); err != nil {
		return fmt.Errorf("upsert sync state: %w", err)
	}
	return nil
}

// SyncStates lists the sync state of every remote table that has been synced at least once.
func (db *Database) SyncStates(ctx context.Context) ([]SyncState, error) {
	rows, err := db.ReadOnly.QueryContext(ctx, `
		SELECT remote_table, last_pulled_at, last_pushed_at, last_error
		FROM sync_state
		ORDER BY remote_table`)
	if err != nil {
		return nil, fmt.Errorf("query sync state: %w", err)
	}
	defer rows.Close()

	var states []SyncState
	for rows.Next() {
		var (
			state              SyncState
			pulledAt, pushedAt sql.NullString
			lastErr            sql.NullString
		)
		if err = rows.Scan(&state.RemoteTable, &pulledAt, &pushedAt, &lastErr); err != nil {
			return nil, fmt.Errorf("scan sync state: %w", err)
		}
		if state.LastPulledAt, err = parseNullTimestamp(pulledAt); err != nil {
			return nil, fmt.Errorf("parse last_pulled_at: %w", err)
		}
		if state.LastPushedAt, err = parseNullTimestamp(pushedAt); err != nil {
			return nil, fmt.Errorf("parse last_pushed_at: %w", err)
		}
		state.LastError = lastErr.String
		states = append(states, state)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return states, nil
}

func parseNullTimestamp(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil //nolint:nilnil // absent timestamp is not an error.
	}
	t, err := parseTimestamp(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
