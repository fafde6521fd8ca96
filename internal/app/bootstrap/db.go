// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/crackenhq/cracken/internal/app/store/sqldb"
	"github.com/crackenhq/cracken/internal/app/system/timeouts"
)

// OpenDB opens the SQLite database at cfg.DBPath, runs migrations, and
// verifies connectivity before handing the handle back.
func OpenDB(ctx context.Context, cfg Config, logger *zap.Logger) (*sqldb.DB, error) {
	db, err := sqldb.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", cfg.DBPath, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database %q: %w", cfg.DBPath, err)
	}

	logger.Info("database ready", zap.String("path", cfg.DBPath))
	return db, nil
}
