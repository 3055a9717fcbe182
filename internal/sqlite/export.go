package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Export writes a consistent snapshot of the local stores into a new SQLite database file under basePath and
// returns its path.
//
// This can be used for handing the user all their data or for backing it up before a destructive sync.
func (db *Database) Export(ctx context.Context, basePath string, at time.Time) (string, error) {
	if err := os.MkdirAll(basePath, 0o750); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	exportPath := filepath.Join(basePath, fmt.Sprintf("mesocycle-%s.sqlite3", at.UTC().Format("20060102T150405.000")))
	if _, err := os.Stat(exportPath); err == nil {
		return "", fmt.Errorf("export %s already exists", exportPath)
	}

	start := time.Now()
	// VACUUM cannot run on the query-only pool, and it cannot run inside a transaction.
	if _, err := db.ReadWrite.ExecContext(ctx, `VACUUM INTO ?`, exportPath); err != nil {
		return "", fmt.Errorf("vacuum into %s: %w", exportPath, err)
	}
	db.logger.LogAttrs(ctx, slog.LevelInfo, "exported database",
		slog.String("path", exportPath),
		slog.Duration("duration", time.Since(start)))
	return exportPath, nil
}
