package cloudsync

import (
	"context"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"
)

func TestDebouncer_coalescesBursts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var pushes atomic.Int32
		d := newDebouncer(t.Context(), time.Second, func(context.Context) { pushes.Add(1) }, nil)
		defer d.Close()

		d.Trigger()
		if got := d.State(); got != statePending {
			t.Fatalf("state = %s after a mutation, want pending", got)
		}
		time.Sleep(600 * time.Millisecond)
		d.Trigger()
		time.Sleep(600 * time.Millisecond)
		d.Trigger()
		time.Sleep(900 * time.Millisecond)
		synctest.Wait()
		if got := pushes.Load(); got != 0 {
			t.Fatalf("pushed %d times while mutations kept coming", got)
		}

		time.Sleep(200 * time.Millisecond)
		synctest.Wait()
		if got := pushes.Load(); got != 1 {
			t.Errorf("pushed %d times, want the burst coalesced into 1", got)
		}
		if got := d.State(); got != stateIdle {
			t.Errorf("state = %s after the push, want idle", got)
		}
	})
}

func TestDebouncer_mutationDuringPushQueuesNextCycle(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var (
			pushes   atomic.Int32
			inFlight atomic.Int32
			overlap  atomic.Bool
			release  = make(chan struct{})
		)
		d := newDebouncer(t.Context(), time.Second, func(context.Context) {
			if inFlight.Add(1) > 1 {
				overlap.Store(true)
			}
			<-release
			pushes.Add(1)
			inFlight.Add(-1)
		}, nil)
		defer d.Close()

		d.Trigger()
		time.Sleep(time.Second)
		synctest.Wait()
		if got := d.State(); got != statePushing {
			t.Fatalf("state = %s, want pushing", got)
		}

		d.Trigger()
		d.Trigger()
		if got := d.State(); got != statePushing {
			t.Fatalf("state = %s after a mutation during the push, want pushing", got)
		}
		release <- struct{}{}
		synctest.Wait()
		if got := d.State(); got != statePending {
			t.Fatalf("state = %s after a dirty push, want pending", got)
		}

		time.Sleep(time.Second)
		synctest.Wait()
		release <- struct{}{}
		synctest.Wait()
		if got := pushes.Load(); got != 2 {
			t.Errorf("pushed %d times, want 2", got)
		}
		if overlap.Load() {
			t.Error("two pushes of the same store overlapped")
		}
		if got := d.State(); got != stateIdle {
			t.Errorf("state = %s, want idle", got)
		}
	})
}

func TestDebouncer_Close(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var pushes atomic.Int32
		d := newDebouncer(t.Context(), time.Second, func(context.Context) { pushes.Add(1) }, nil)

		d.Trigger()
		if !d.Close() {
			t.Error("Close reported no unpushed mutation while pending")
		}
		d.Trigger()
		time.Sleep(5 * time.Second)
		synctest.Wait()
		if got := pushes.Load(); got != 0 {
			t.Errorf("pushed %d times after Close", got)
		}
		if d.Close() {
			t.Error("second Close reported an unpushed mutation")
		}
	})
}

func TestDebouncer_CloseWaitsForPush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var (
			done    atomic.Bool
			release = make(chan struct{})
		)
		d := newDebouncer(t.Context(), time.Second, func(context.Context) {
			<-release
			done.Store(true)
		}, nil)

		d.Trigger()
		time.Sleep(time.Second)
		synctest.Wait()

		closed := make(chan bool)
		go func() { closed <- d.Close() }()
		synctest.Wait()
		select {
		case <-closed:
			t.Fatal("Close returned while a push was in flight")
		default:
		}

		release <- struct{}{}
		if unpushed := <-closed; unpushed {
			t.Error("Close reported an unpushed mutation")
		}
		if !done.Load() {
			t.Error("Close returned before the push finished")
		}
	})
}
