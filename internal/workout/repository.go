package workout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/myrjola/mesocycle/internal/sqlite"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Repository persists one store as a single JSON document. Every successful Update is announced on the bus.
type Repository[T any] struct {
	store StoreName
	db    *sqlite.Database
	bus   *Bus
	now   func() time.Time
	stamp func(doc *T, at time.Time)
	// mu serializes read-modify-write cycles of the document.
	mu sync.Mutex
}

func newRepository[T any](
	store StoreName, db *sqlite.Database, bus *Bus, now func() time.Time, stamp func(*T, time.Time),
) *Repository[T] {
	return &Repository[T]{
		store: store,
		db:    db,
		bus:   bus,
		now:   now,
		stamp: stamp,
		mu:    sync.Mutex{},
	}
}

// Name returns the store the repository persists.
func (r *Repository[T]) Name() StoreName {
	return r.store
}

// Get returns the current document. A store that has never been written returns the zero document.
func (r *Repository[T]) Get(ctx context.Context) (T, error) {
	var doc T
	stored, err := r.db.GetDocument(ctx, string(r.store))
	if errors.Is(err, sqlite.ErrNotFound) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("get %s document: %w", r.store, err)
	}
	if err = json.Unmarshal(stored.Data, &doc); err != nil {
		return doc, fmt.Errorf("unmarshal %s document: %w", r.store, err)
	}
	return doc, nil
}

// Update applies updateFn to the current document and saves it when updateFn reports a change. The document's
// modification time is stamped and subscribers of the bus are notified after the save.
func (r *Repository[T]) Update(ctx context.Context, updateFn func(doc *T) (bool, error)) error {
	updated, err := r.update(ctx, updateFn)
	if err != nil {
		return err
	}
	if updated {
		r.bus.Publish(r.store)
	}
	return nil
}

func (r *Repository[T]) update(ctx context.Context, updateFn func(doc *T) (bool, error)) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.Get(ctx)
	if err != nil {
		return false, err
	}
	updated, err := updateFn(&doc)
	if err != nil {
		return false, fmt.Errorf("update function: %w", err)
	}
	if !updated {
		return false, nil
	}
	now := r.now()
	r.stamp(&doc, now)
	if err = r.put(ctx, doc, now); err != nil {
		return false, err
	}
	return true, nil
}

// Reconcile replaces the document with mergeFn(current) without stamping it or notifying the bus. The sync engine
// uses it to store merge results that are already on their way to the remote.
func (r *Repository[T]) Reconcile(ctx context.Context, mergeFn func(local T) T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.Get(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	merged := mergeFn(doc)
	if err = r.put(ctx, merged, r.now()); err != nil {
		var zero T
		return zero, err
	}
	return merged, nil
}

func (r *Repository[T]) put(ctx context.Context, doc T, at time.Time) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s document: %w", r.store, err)
	}
	if err = r.db.PutDocument(ctx, sqlite.Document{Store: string(r.store), Data: data, UpdatedAt: at}); err != nil {
		return fmt.Errorf("put %s document: %w", r.store, err)
	}
	return nil
}

// Stores bundles the four independently persisted stores.
type Stores struct {
	Workout  *Repository[WorkoutDocument]
	Program  *Repository[ProgramDocument]
	Badges   *Repository[BadgeDocument]
	Settings *Repository[SettingsDocument]
}

// NewStores creates the repositories of every store on top of db. Mutations are published on bus.
func NewStores(db *sqlite.Database, bus *Bus, now func() time.Time) Stores {
	return Stores{
		Workout: newRepository(StoreWorkout, db, bus, now,
			func(d *WorkoutDocument, at time.Time) { d.UpdatedAt = at }),
		Program: newRepository(StoreProgram, db, bus, now,
			func(d *ProgramDocument, at time.Time) { d.UpdatedAt = at }),
		Badges: newRepository(StoreBadges, db, bus, now,
			func(d *BadgeDocument, at time.Time) { d.UpdatedAt = at }),
		Settings: newRepository(StoreSettings, db, bus, now,
			func(d *SettingsDocument, at time.Time) { d.UpdatedAt = at }),
	}
}
