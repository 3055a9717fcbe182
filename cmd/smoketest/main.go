package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/myrjola/mesocycle/internal/catalog"
	"github.com/myrjola/mesocycle/internal/e2etest"
	"github.com/myrjola/mesocycle/internal/logging"
	"github.com/myrjola/mesocycle/internal/testhelpers"
	"github.com/myrjola/mesocycle/internal/workout"
)

// TestReadAPI exercises the read-only endpoints so that the smoke test never mutates the stores of a deployment.
func TestReadAPI(ctx context.Context, client *e2etest.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	var overview workout.RecoveryOverview
	if err := expectOK(client.DoJSON(ctx, http.MethodGet, "/api/recovery", nil, &overview)); err != nil {
		return fmt.Errorf("recovery: %w", err)
	}
	if len(overview.Muscles) != len(catalog.Muscles) {
		return fmt.Errorf("recovery: got %d muscles, want %d", len(overview.Muscles), len(catalog.Muscles))
	}

	var days []workout.TimelineDay
	if err := expectOK(client.DoJSON(ctx, http.MethodGet, "/api/timeline/week", nil, &days)); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}
	if len(days) != 7 { //nolint:mnd // days in a week
		return fmt.Errorf("timeline: got %d days", len(days))
	}

	var state struct {
		Enabled bool `json:"enabled"`
	}
	if err := expectOK(client.DoJSON(ctx, http.MethodGet, "/api/sync/state", nil, &state)); err != nil {
		return fmt.Errorf("sync state: %w", err)
	}
	return nil
}

func expectOK(status int, err error) error {
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", status)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		client   *e2etest.Client
		err      error
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}
	if err = TestReadAPI(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing read API", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
