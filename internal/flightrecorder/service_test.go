package flightrecorder_test

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/myrjola/mesocycle/internal/flightrecorder"
	"github.com/myrjola/mesocycle/internal/testhelpers"
)

// fakeClock is advanced by hand so that cooldowns can be crossed without waiting.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newStartedService(t *testing.T, clock *fakeClock) (*flightrecorder.Service, string) {
	t.Helper()
	traceDir := t.TempDir()
	service, err := flightrecorder.New(flightrecorder.Config{
		Logger:          testhelpers.NewLogger(testhelpers.NewWriter(t)),
		MinAge:          0, // Use default
		MaxBytes:        0, // Use default
		TracesDirectory: traceDir,
		Cooldown:        time.Minute,
		Now:             clock.Now,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()
	if err = service.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { service.Stop(ctx) })
	return service, traceDir
}

func traceFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read trace directory: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestNew_RequiresDirectory(t *testing.T) {
	_, err := flightrecorder.New(flightrecorder.Config{
		Logger:          testhelpers.NewLogger(testhelpers.NewWriter(t)),
		MinAge:          0,
		MaxBytes:        0,
		TracesDirectory: "",
		Cooldown:        0,
		Now:             nil,
	})
	if err == nil {
		t.Fatal("expected an error without a traces directory")
	}
}

func TestService_Capture(t *testing.T) {
	clock := &fakeClock{mu: sync.Mutex{}, now: time.Date(2026, 1, 5, 17, 0, 0, 0, time.UTC)}
	service, traceDir := newStartedService(t, clock)

	path := service.Capture(context.Background(), flightrecorder.ReasonRequestTimeout)
	if path == "" {
		t.Fatal("expected a trace file")
	}

	files := traceFiles(t, traceDir)
	if len(files) != 1 {
		t.Fatalf("expected one trace file, got %v", files)
	}
	if files[0] != "timeout-20260105-170000.trace" {
		t.Errorf("unexpected filename %s", files[0])
	}
}

func TestService_Cooldown(t *testing.T) {
	clock := &fakeClock{mu: sync.Mutex{}, now: time.Date(2026, 1, 5, 17, 0, 0, 0, time.UTC)}
	service, traceDir := newStartedService(t, clock)
	ctx := context.Background()

	service.Capture(ctx, flightrecorder.ReasonRequestTimeout)
	if path := service.Capture(ctx, flightrecorder.ReasonRequestTimeout); path != "" {
		t.Errorf("expected the cooldown to skip the second capture, got %s", path)
	}

	// Reasons cool down independently.
	if path := service.Capture(ctx, flightrecorder.ReasonSyncFailure); path == "" {
		t.Error("expected a sync capture during the timeout cooldown")
	}

	clock.Advance(time.Minute)
	if path := service.Capture(ctx, flightrecorder.ReasonRequestTimeout); path == "" {
		t.Error("expected a capture after the cooldown")
	}

	var timeouts, syncs int
	for _, name := range traceFiles(t, traceDir) {
		switch {
		case strings.HasPrefix(name, "timeout-"):
			timeouts++
		case strings.HasPrefix(name, "sync-"):
			syncs++
		}
	}
	if timeouts != 2 || syncs != 1 {
		t.Errorf("got %d timeout and %d sync traces, want 2 and 1", timeouts, syncs)
	}
}
