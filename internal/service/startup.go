package service

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/jask/splashgate/internal/database"
	"github.com/jask/splashgate/internal/database/repository"
	"github.com/jask/splashgate/internal/readiness"
)

// StartupJob is the backend half of the startup gate: it prepares the store,
// warms up, and then reports readiness.Backend.
type StartupJob struct {
	DBPath  string
	Warmup  time.Duration
	Greeter *GreetService
	Log     zerolog.Logger

	sleep func(time.Duration)
}

// Run performs the backend setup and sends readiness.Backend on events when it
// finishes, whether or not the setup succeeded. The caller owns the returned db,
// which is nil when the store could not be prepared.
func (j *StartupJob) Run(ctx context.Context, events chan<- readiness.Task) *sql.DB {
	defer func() { events <- readiness.Backend }()

	start := time.Now()
	j.Log.Info().Str("db", j.DBPath).Msg("backend setup started")
	db, err := j.prepare(ctx)
	if err != nil {
		// the rendezvous still completes; the greeter runs without a store
		j.Log.Error().Err(err).Msg("backend setup failed")
	}

	sleep := j.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(j.Warmup)
	j.Log.Info().Dur("took", time.Since(start)).Bool("store", db != nil).Msg("backend setup completed")
	return db
}

func (j *StartupJob) prepare(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(j.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(j.DBPath); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(j.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	if j.Greeter != nil {
		j.Greeter.Attach(repository.NewGreetingRepo(db))
	}
	return db, nil
}
