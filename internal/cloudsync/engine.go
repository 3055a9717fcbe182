package cloudsync

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/myrjola/mesocycle/internal/errors"
	"github.com/myrjola/mesocycle/internal/logging"
	"github.com/myrjola/mesocycle/internal/workout"
	"golang.org/x/sync/errgroup"
)

// StateRecorder persists the outcome of pulls and pushes per table.
type StateRecorder interface {
	RecordPull(ctx context.Context, table string, at time.Time, err error) error
	RecordPush(ctx context.Context, table string, at time.Time, err error) error
}

// Config configures an Engine.
type Config struct {
	UserID string
	// Debounce is the quiet period before a mutated store is pushed. Zero selects DefaultDebounce.
	Debounce time.Duration
}

// Engine syncs the local stores with a Remote. Sync failures are logged and counted, they never reach the caller
// of a store mutation.
type Engine struct {
	stores   workout.Stores
	bus      *workout.Bus
	remote   Remote
	recorder StateRecorder
	metrics  *Metrics
	logger   *slog.Logger
	cfg      Config
	now      func() time.Time

	mu          sync.Mutex
	debouncers  map[workout.StoreName]*debouncer
	unsubscribe func()
}

// NewEngine creates an Engine. Call Start to begin pushing mutations.
func NewEngine(
	stores workout.Stores,
	bus *workout.Bus,
	remote Remote,
	recorder StateRecorder,
	metrics *Metrics,
	logger *slog.Logger,
	cfg Config,
	now func() time.Time,
) *Engine {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &Engine{
		stores:      stores,
		bus:         bus,
		remote:      remote,
		recorder:    recorder,
		metrics:     metrics,
		logger:      logger,
		cfg:         cfg,
		now:         now,
		mu:          sync.Mutex{},
		debouncers:  nil,
		unsubscribe: nil,
	}
}

// Start subscribes to store mutations. Debounced pushes run with ctx.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.debouncers != nil {
		return
	}
	e.debouncers = make(map[workout.StoreName]*debouncer, len(workout.StoreNames))
	for _, store := range workout.StoreNames {
		storeCtx := logging.WithAttrs(ctx, slog.String("store", string(store)))
		e.debouncers[store] = newDebouncer(storeCtx, e.cfg.Debounce,
			func(ctx context.Context) { e.pushStore(ctx, store) },
			func(s debounceState) {
				pending := 0.0
				if s == statePending {
					pending = 1
				}
				e.metrics.GaugePending.WithLabelValues(string(store)).Set(pending)
			})
	}
	e.unsubscribe = e.bus.Subscribe(e.handleMutation)
	e.logger.LogAttrs(ctx, slog.LevelInfo, "sync engine started",
		slog.String("user_id", e.cfg.UserID),
		slog.Duration("debounce", e.cfg.Debounce))
}

func (e *Engine) handleMutation(store workout.StoreName) {
	e.mu.Lock()
	d := e.debouncers[store]
	e.mu.Unlock()
	if d != nil {
		d.Trigger()
	}
}

// Close stops listening for mutations, waits for in-flight pushes and pushes the stores that still had
// mutations waiting.
func (e *Engine) Close(ctx context.Context) {
	e.mu.Lock()
	debouncers := e.debouncers
	unsubscribe := e.unsubscribe
	e.debouncers = nil
	e.unsubscribe = nil
	e.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	for _, store := range workout.StoreNames {
		d, ok := debouncers[store]
		if !ok {
			continue
		}
		if d.Close() {
			d.run(ctx)
		}
	}
}

// State reports the debounce state of every store.
func (e *Engine) State() map[workout.StoreName]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	states := make(map[workout.StoreName]string, len(workout.StoreNames))
	for _, store := range workout.StoreNames {
		states[store] = stateIdle.String()
		if d, ok := e.debouncers[store]; ok {
			states[store] = d.State().String()
		}
	}
	return states
}

// serialized runs fn while no debounced push of store is running.
func (e *Engine) serialized(store workout.StoreName, fn func()) {
	e.mu.Lock()
	d := e.debouncers[store]
	e.mu.Unlock()
	if d == nil {
		fn()
		return
	}
	d.runMu.Lock()
	defer d.runMu.Unlock()
	fn()
}

// TableResult is the outcome of syncing one remote table on login.
type TableResult struct {
	Table  Table  `json:"table"`
	Pulled bool   `json:"pulled"`
	Pushed bool   `json:"pushed"`
	Error  string `json:"error,omitempty"`
}

// pulled is the outcome of pulling one table.
type pulled struct {
	row     Row
	present bool
	err     error
}

// usable reports whether the pull succeeded, with or without a row.
func (p pulled) usable() bool {
	return p.err == nil
}

// SyncOnLogin pulls every remote table in parallel, merges each store with its policy, stores the merge locally
// and pushes it back. Tables fail independently. A table whose pull failed is neither merged nor pushed so that
// the local state cannot overwrite remote data it has not seen.
func (e *Engine) SyncOnLogin(ctx context.Context) []TableResult {
	start := time.Now()
	pulls := make(map[Table]pulled, len(Tables))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, table := range Tables {
		g.Go(func() error {
			p := e.pull(gctx, table)
			mu.Lock()
			defer mu.Unlock()
			pulls[table] = p
			return nil
		})
	}
	_ = g.Wait() // pulls never fail the group.

	results := make(map[Table]*TableResult, len(Tables))
	for _, table := range Tables {
		results[table] = &TableResult{Table: table, Pulled: pulls[table].usable(), Pushed: false, Error: ""}
		if err := pulls[table].err; err != nil {
			results[table].Error = err.Error()
		}
	}

	g, gctx = errgroup.WithContext(ctx)
	for _, store := range workout.StoreNames {
		g.Go(func() error {
			storeCtx := logging.WithAttrs(gctx, slog.String("store", string(store)))
			if err := e.mergeStore(storeCtx, store, pulls); err != nil {
				e.logger.LogAttrs(storeCtx, slog.LevelError, "failed to merge store", errors.SlogError(err))
				mu.Lock()
				defer mu.Unlock()
				for _, table := range storeTables(store) {
					results[table].Error = err.Error()
				}
				return nil
			}
			var pushed map[Table]error
			e.serialized(store, func() {
				pushed = e.pushTables(storeCtx, store, func(t Table) bool { return pulls[t].usable() })
			})
			mu.Lock()
			defer mu.Unlock()
			for table, err := range pushed {
				results[table].Pushed = err == nil
				if err != nil {
					results[table].Error = err.Error()
				}
			}
			return nil
		})
	}
	_ = g.Wait() // stores never fail the group.

	out := make([]TableResult, 0, len(Tables))
	failed := 0
	for _, table := range Tables {
		if results[table].Error != "" {
			failed++
		}
		out = append(out, *results[table])
	}
	e.logger.LogAttrs(ctx, slog.LevelInfo, "synced on login",
		slog.String("user_id", e.cfg.UserID),
		slog.Int("failed_tables", failed),
		slog.Duration("duration", time.Since(start)))
	return out
}

func (e *Engine) pull(ctx context.Context, table Table) pulled {
	row, err := e.remote.Pull(ctx, table, e.cfg.UserID)
	switch {
	case errors.Is(err, ErrNoRow):
		e.metrics.CounterPulls.WithLabelValues(string(table), resultMissing).Inc()
		e.record(ctx, table, e.recorder.RecordPull, nil)
		return pulled{row: Row{}, present: false, err: nil}
	case err != nil:
		e.metrics.CounterPulls.WithLabelValues(string(table), resultError).Inc()
		e.logger.LogAttrs(ctx, slog.LevelError, "failed to pull table",
			slog.String("table", string(table)), errors.SlogError(err))
		e.record(ctx, table, e.recorder.RecordPull, err)
		return pulled{row: Row{}, present: false, err: err}
	}
	e.metrics.CounterPulls.WithLabelValues(string(table), resultOK).Inc()
	e.record(ctx, table, e.recorder.RecordPull, nil)
	return pulled{row: row, present: true, err: nil}
}

// mergeStore merges the pulled rows of a store into the local document.
func (e *Engine) mergeStore(ctx context.Context, store workout.StoreName, pulls map[Table]pulled) error {
	var err error
	switch store {
	case workout.StoreWorkout:
		err = reconcile(ctx, e.stores.Workout, pulls[TableWorkout], MergeWorkout)
	case workout.StoreBadges:
		err = reconcile(ctx, e.stores.Badges, pulls[TableBadges], MergeBadges)
	case workout.StoreSettings:
		var remote workout.SettingsDocument
		p := pulls[TableSettings]
		if !p.usable() || !p.present {
			return nil
		}
		if err = json.Unmarshal(p.row.Data, &remote); err != nil {
			return fmt.Errorf("decode %s: %w", TableSettings, err)
		}
		remote.UpdatedAt = p.row.UpdatedAt
		_, err = e.stores.Settings.Reconcile(ctx, func(local workout.SettingsDocument) workout.SettingsDocument {
			return MergeSettings(local, remote)
		})
	case workout.StoreProgram:
		err = e.mergeProgram(ctx, pulls[TableProgram], pulls[TableProfiles])
	}
	if err != nil {
		return fmt.Errorf("reconcile %s: %w", store, err)
	}
	return nil
}

func reconcile[T any](ctx context.Context, repo *workout.Repository[T], p pulled, merge func(local, remote T) T) error {
	if !p.usable() || !p.present {
		return nil
	}
	var remote T
	if err := json.Unmarshal(p.row.Data, &remote); err != nil {
		return fmt.Errorf("decode remote: %w", err)
	}
	_, err := repo.Reconcile(ctx, func(local T) T { return merge(local, remote) })
	return err //nolint:wrapcheck // wrapped by the caller.
}

// programPayload is the program_data row.
type programPayload struct {
	Program  *workout.TrainingProgram `json:"program"`
	Schedule *workout.ProgramSchedule `json:"schedule"`
}

func (e *Engine) mergeProgram(ctx context.Context, programRow, profileRow pulled) error {
	var remote workout.ProgramDocument
	if programRow.usable() && programRow.present {
		var payload programPayload
		if err := json.Unmarshal(programRow.row.Data, &payload); err != nil {
			return fmt.Errorf("decode %s: %w", TableProgram, err)
		}
		remote.Program = payload.Program
		remote.Schedule = payload.Schedule
		remote.ProgramUpdatedAt = programRow.row.UpdatedAt
	}
	if profileRow.usable() && profileRow.present {
		var profile workout.Profile
		if err := json.Unmarshal(profileRow.row.Data, &profile); err != nil {
			return fmt.Errorf("decode %s: %w", TableProfiles, err)
		}
		remote.Profile = &profile
		remote.ProfileUpdatedAt = profileRow.row.UpdatedAt
	}
	if remote.Program == nil && remote.Profile == nil {
		return nil
	}
	_, err := e.stores.Program.Reconcile(ctx, func(local workout.ProgramDocument) workout.ProgramDocument {
		return MergeProgram(local, remote)
	})
	return err //nolint:wrapcheck // wrapped by the caller.
}

// pushStore pushes every table of a store. It runs on the debouncer.
func (e *Engine) pushStore(ctx context.Context, store workout.StoreName) {
	e.pushTables(ctx, store, func(Table) bool { return true })
}

// pushTables pushes the tables of store accepted by include and returns the outcome per attempted table.
// Tables whose local part was never written are skipped.
func (e *Engine) pushTables(ctx context.Context, store workout.StoreName, include func(Table) bool) map[Table]error {
	payloads, err := e.payloads(ctx, store)
	if err != nil {
		e.logger.LogAttrs(ctx, slog.LevelError, "failed to read store for push", errors.SlogError(err))
		out := make(map[Table]error)
		for _, table := range storeTables(store) {
			if include(table) {
				out[table] = err
			}
		}
		return out
	}
	out := make(map[Table]error, len(payloads))
	for _, table := range storeTables(store) {
		data, ok := payloads[table]
		if !ok || !include(table) {
			continue
		}
		out[table] = e.push(ctx, table, data)
	}
	return out
}

func (e *Engine) push(ctx context.Context, table Table, data []byte) error {
	start := time.Now()
	at, err := e.remote.Push(ctx, table, e.cfg.UserID, data)
	e.metrics.HistPushDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		e.metrics.CounterPushes.WithLabelValues(string(table), resultError).Inc()
		e.logger.LogAttrs(ctx, slog.LevelError, "failed to push table",
			slog.String("table", string(table)), errors.SlogError(err))
		e.record(ctx, table, e.recorder.RecordPush, err)
		return fmt.Errorf("push %s: %w", table, err)
	}
	e.metrics.CounterPushes.WithLabelValues(string(table), resultOK).Inc()
	e.logger.LogAttrs(ctx, slog.LevelDebug, "pushed table",
		slog.String("table", string(table)), slog.Time("updated_at", at))
	e.record(ctx, table, e.recorder.RecordPush, nil)
	return nil
}

// payloads encodes the remote rows of a store.
func (e *Engine) payloads(ctx context.Context, store workout.StoreName) (map[Table][]byte, error) {
	out := make(map[Table][]byte)
	add := func(table Table, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", table, err)
		}
		out[table] = data
		return nil
	}
	switch store {
	case workout.StoreWorkout:
		doc, err := e.stores.Workout.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("get workout document: %w", err)
		}
		if doc.UpdatedAt.IsZero() {
			return out, nil
		}
		return out, add(TableWorkout, doc)
	case workout.StoreProgram:
		doc, err := e.stores.Program.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("get program document: %w", err)
		}
		if doc.Program != nil {
			if err = add(TableProgram, programPayload{Program: doc.Program, Schedule: doc.Schedule}); err != nil {
				return nil, err
			}
		}
		if doc.Profile != nil {
			if err = add(TableProfiles, doc.Profile); err != nil {
				return nil, err
			}
		}
		return out, nil
	case workout.StoreBadges:
		doc, err := e.stores.Badges.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("get badge document: %w", err)
		}
		if doc.UpdatedAt.IsZero() {
			return out, nil
		}
		return out, add(TableBadges, doc)
	case workout.StoreSettings:
		doc, err := e.stores.Settings.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("get settings document: %w", err)
		}
		if doc.UpdatedAt.IsZero() {
			return out, nil
		}
		return out, add(TableSettings, doc)
	default:
		return nil, fmt.Errorf("unknown store %q", store)
	}
}

func (e *Engine) record(
	ctx context.Context,
	table Table,
	recordFn func(ctx context.Context, table string, at time.Time, err error) error,
	syncErr error,
) {
	if err := recordFn(ctx, string(table), e.now(), syncErr); err != nil {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "failed to record sync state",
			slog.String("table", string(table)), errors.SlogError(err))
	}
}
