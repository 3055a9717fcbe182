// Package flightrecorder keeps a rolling runtime trace in memory and writes it to disk when a request times out
// or a sync round fails, so that the moments before the incident can be inspected with go tool trace.
package flightrecorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"sync"
	"time"
)

const (
	// defaultMinAge is the minimum age of trace events to keep.
	defaultMinAge = 5 * time.Minute

	// defaultMaxBytes is the maximum size of the trace buffer.
	defaultMaxBytes = 64 * 1024 * 1024 // 64MB

	// defaultCooldown is the minimum time between captures of the same reason.
	defaultCooldown = 30 * time.Minute
)

// Reason names the incident a capture belongs to. It becomes the trace file prefix.
type Reason string

const (
	ReasonRequestTimeout Reason = "timeout"
	ReasonSyncFailure    Reason = "sync"
)

// Service manages flight recording for incident capture.
type Service struct {
	logger          *slog.Logger
	flightRecorder  *trace.FlightRecorder
	tracesDirectory string
	cooldown        time.Duration
	now             func() time.Time

	mu          sync.Mutex
	lastCapture map[Reason]time.Time
}

// Config configures the flight recorder service.
type Config struct {
	Logger          *slog.Logger
	MinAge          time.Duration // Minimum age of trace events
	MaxBytes        uint64        // Maximum size of trace buffer
	TracesDirectory string        // Directory where trace files are written
	// Cooldown is the minimum time between two captures of the same reason. Zero selects 30 minutes.
	Cooldown time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// New creates a new flight recorder service.
func New(cfg Config) (*Service, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}

	if cfg.TracesDirectory == "" {
		return nil, errors.New("traces directory is required")
	}

	if stat, err := os.Stat(cfg.TracesDirectory); err != nil {
		if err = os.MkdirAll(cfg.TracesDirectory, 0o750); err != nil { //nolint:mnd // owner and group.
			return nil, fmt.Errorf("create traces directory: %w", err)
		}
	} else if !stat.IsDir() {
		return nil, fmt.Errorf("traces path is not a directory: %s", cfg.TracesDirectory)
	}

	minAge := cfg.MinAge
	if minAge == 0 {
		minAge = defaultMinAge
	}
	maxBytes := cfg.MaxBytes
	if maxBytes == 0 {
		maxBytes = defaultMaxBytes
	}
	cooldown := cfg.Cooldown
	if cooldown == 0 {
		cooldown = defaultCooldown
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	flightRecorder := trace.NewFlightRecorder(trace.FlightRecorderConfig{
		MinAge:   minAge,
		MaxBytes: maxBytes,
	})

	return &Service{
		logger:          cfg.Logger,
		flightRecorder:  flightRecorder,
		tracesDirectory: cfg.TracesDirectory,
		cooldown:        cooldown,
		now:             now,
		mu:              sync.Mutex{},
		lastCapture:     make(map[Reason]time.Time),
	}, nil
}

// Start begins flight recording.
func (s *Service) Start(ctx context.Context) error {
	if err := s.flightRecorder.Start(); err != nil {
		return fmt.Errorf("start flight recorder: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder started",
		slog.String("traces_directory", s.tracesDirectory),
		slog.Duration("cooldown", s.cooldown))

	return nil
}

// Stop ends flight recording.
func (s *Service) Stop(ctx context.Context) {
	s.flightRecorder.Stop()

	s.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder stopped")
}

// Capture writes the recorded trace to a file named after reason. Captures of the same reason within the cooldown
// are skipped. It returns the written path or "" when nothing was written.
func (s *Service) Capture(ctx context.Context, reason Reason) string {
	now := s.now()
	if !s.claim(reason, now) {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "skipping trace capture due to cooldown",
			slog.String("reason", string(reason)))
		return ""
	}

	fPath := filepath.Join(s.tracesDirectory,
		fmt.Sprintf("%s-%s.trace", reason, now.UTC().Format("20060102-150405")))
	file, err := os.Create(fPath)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to create trace file",
			slog.String("file", fPath),
			slog.Any("error", err))
		return ""
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to close trace file",
				slog.String("file", fPath),
				slog.Any("error", closeErr))
		}
	}()

	bytesWritten, err := s.flightRecorder.WriteTo(file)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to write trace",
			slog.String("file", fPath),
			slog.Any("error", err))
		return ""
	}

	s.logger.LogAttrs(ctx, slog.LevelWarn, "captured trace",
		slog.String("reason", string(reason)),
		slog.String("file", fPath),
		slog.Int64("bytes", bytesWritten))
	return fPath
}

// claim reserves the capture slot of reason at now unless the previous capture is within the cooldown.
func (s *Service) claim(reason Reason, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if last, ok := s.lastCapture[reason]; ok && now.Sub(last) < s.cooldown {
		return false
	}
	s.lastCapture[reason] = now
	return true
}
