package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/splashgate/internal/config"
	"github.com/jask/splashgate/internal/logging"
	"github.com/jask/splashgate/internal/readiness"
	"github.com/jask/splashgate/internal/service"
	"github.com/jask/splashgate/internal/surface"
	"github.com/jask/splashgate/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logCfg := cfg.Log
	if cfg.UI.Headless {
		logCfg.File = ""
	}
	logger, closer, err := logging.New("splashgate", logCfg)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	logger = logger.With().Str("run", uuid.NewString()).Logger()

	names := readiness.Surfaces{Loading: cfg.Surfaces.Loading, Main: cfg.Surfaces.Main}
	reg := surface.NewRegistry()
	reg.Add(names.Loading, true)
	reg.Add(names.Main, false)

	gate := readiness.NewGate(func() error {
		return readiness.Transition(reg, names)
	}, readiness.WithLogger(logger.With().Str("component", "gate").Logger()))

	greeter := &service.GreetService{}
	job := &service.StartupJob{
		DBPath:  cfg.Database.Path,
		Warmup:  cfg.Startup.BackendDelay,
		Greeter: greeter,
		Log:     logger.With().Str("component", "backend").Logger(),
	}

	events := make(chan readiness.Task, 1)
	go gate.Consume(events)
	dbc := make(chan *sql.DB, 1)
	go func() {
		dbc <- job.Run(ctx, events)
		close(events)
	}()

	if cfg.UI.Headless {
		err = runHeadless(gate, cfg.Startup.FrontendDelay, logger)
	} else {
		err = runTUI(ctx, cfg, gate, greeter, reg, names, logger)
	}

	// the backend may still be warming up if the user quit early
	select {
	case db := <-dbc:
		if db != nil {
			_ = db.Close()
		}
	default:
	}
	if err != nil {
		logger.Error().Err(err).Msg("exit")
		_ = closer.Close()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	_ = closer.Close()
}

func runTUI(ctx context.Context, cfg config.Config, gate *readiness.Gate, greeter *service.GreetService, reg *surface.Registry, names readiness.Surfaces, logger zerolog.Logger) error {
	app := tui.New(ctx, gate, greeter, reg, tui.Options{
		Names:         names,
		FrontendDelay: cfg.Startup.FrontendDelay,
		RecentLimit:   cfg.UI.RecentLimit,
		Log:           logger.With().Str("component", "tui").Logger(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	reg.Subscribe(func(c surface.Change) {
		p.Send(tui.SurfaceChangedMsg(c))
	})
	_, err := p.Run()
	return err
}

// runHeadless drives the frontend half of the gate without a terminal UI and
// waits for the transition.
func runHeadless(gate *readiness.Gate, frontendDelay time.Duration, logger zerolog.Logger) error {
	time.Sleep(frontendDelay)
	if err := gate.ReportName(readiness.Frontend.String()); err != nil {
		return err
	}
	<-gate.Done()
	if err := gate.Err(); err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	logger.Info().Msg("main surface shown")
	return nil
}
