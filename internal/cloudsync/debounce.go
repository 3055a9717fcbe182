package cloudsync

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period after the last mutation before a store is pushed.
const DefaultDebounce = 2500 * time.Millisecond

type debounceState int

const (
	stateIdle debounceState = iota
	statePending
	statePushing
)

func (s debounceState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case statePending:
		return "pending"
	case statePushing:
		return "pushing"
	default:
		return "unknown"
	}
}

// debouncer coalesces the mutations of one store into pushes.
//
// idle -> pending on a mutation. Further mutations while pending restart the window. When the window passes
// the store is pushed. A mutation while pushing marks the store dirty and the next window starts once the push
// is done, so that two pushes of the same store never overlap.
type debouncer struct {
	ctx     context.Context //nolint:containedctx // pushes run on timer goroutines outliving the caller.
	window  time.Duration
	push    func(ctx context.Context)
	onState func(debounceState)

	mu     sync.Mutex
	state  debounceState
	dirty  bool
	closed bool
	gen    int
	timer  *time.Timer
	// runMu serializes pushes, including the ones the login sync runs outside the timer.
	runMu  sync.Mutex
	active sync.WaitGroup
}

func newDebouncer(
	ctx context.Context, window time.Duration, push func(ctx context.Context), onState func(debounceState),
) *debouncer {
	if onState == nil {
		onState = func(debounceState) {}
	}
	return &debouncer{
		ctx:     ctx,
		window:  window,
		push:    push,
		onState: onState,
		mu:      sync.Mutex{},
		state:   stateIdle,
		dirty:   false,
		closed:  false,
		gen:     0,
		timer:   nil,
		runMu:   sync.Mutex{},
		active:  sync.WaitGroup{},
	}
}

// Trigger records a mutation.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	switch d.state {
	case stateIdle:
		d.setState(statePending)
		d.schedule()
	case statePending:
		d.timer.Stop()
		d.schedule()
	case statePushing:
		d.dirty = true
	}
}

// State returns the current state.
func (d *debouncer) State() debounceState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// schedule starts a new window. Callers hold mu.
func (d *debouncer) schedule() {
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

func (d *debouncer) fire(gen int) {
	d.mu.Lock()
	// A stopped timer whose function had already started must not push.
	if d.closed || gen != d.gen || d.state != statePending {
		d.mu.Unlock()
		return
	}
	d.setState(statePushing)
	d.active.Add(1)
	d.mu.Unlock()

	d.run(d.ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.active.Done()
	if d.dirty && !d.closed {
		d.dirty = false
		d.setState(statePending)
		d.schedule()
		return
	}
	d.dirty = false
	d.setState(stateIdle)
}

// run pushes the store once.
func (d *debouncer) run(ctx context.Context) {
	d.runMu.Lock()
	defer d.runMu.Unlock()
	d.push(ctx)
}

// Close stops the debouncer and waits for an in-flight push. It reports whether a mutation was waiting to be
// pushed so that the caller can flush it.
func (d *debouncer) Close() bool {
	d.mu.Lock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	unpushed := d.state == statePending || d.dirty
	d.mu.Unlock()

	d.active.Wait()

	d.mu.Lock()
	d.setState(stateIdle)
	d.mu.Unlock()
	return unpushed
}

func (d *debouncer) setState(s debounceState) {
	d.state = s
	d.onState(s)
}
