package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/splashgate/internal/database"
	"github.com/jask/splashgate/internal/readiness"
)

func TestGreetWithoutStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var g GreetService

	got, err := g.Greet(ctx, "  Ada ")
	require.NoError(t, err)
	require.Equal(t, "Ada", got.Name)
	require.Equal(t, "Hello, Ada! You've been greeted from Go!", got.Message)
	require.NotEmpty(t, got.ID)
	require.False(t, g.Attached())

	recent, err := g.Recent(ctx, 5)
	require.NoError(t, err)
	require.Empty(t, recent)

	_, err = g.Greet(ctx, "   ")
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestStartupJobPreparesStoreAndReports(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	greeter := &GreetService{}
	var slept time.Duration
	job := &StartupJob{
		DBPath:  filepath.Join(t.TempDir(), "nested", "app.db"),
		Warmup:  3 * time.Second,
		Greeter: greeter,
		Log:     zerolog.Nop(),
		sleep:   func(d time.Duration) { slept = d },
	}
	events := make(chan readiness.Task, 1)

	db := job.Run(ctx, events)
	require.NotNil(t, db)
	t.Cleanup(func() { _ = db.Close() })
	require.Equal(t, readiness.Backend, <-events)
	require.Equal(t, 3*time.Second, slept)
	require.True(t, greeter.Attached())

	_, err := greeter.Greet(ctx, "Grace")
	require.NoError(t, err)
	recent, err := greeter.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "Grace", recent[0].Name)
	require.Equal(t, database.WelcomeName, recent[1].Name)
}

func TestStartupJobReportsEvenWhenSetupFails(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	greeter := &GreetService{}
	job := &StartupJob{
		DBPath:  filepath.Join(blocker, "sub", "app.db"),
		Greeter: greeter,
		Log:     zerolog.Nop(),
		sleep:   func(time.Duration) {},
	}
	events := make(chan readiness.Task, 1)

	db := job.Run(context.Background(), events)
	require.Nil(t, db)
	require.Equal(t, readiness.Backend, <-events)
	require.False(t, greeter.Attached())
}

func TestStartupJobCompletesGate(t *testing.T) {
	t.Parallel()
	fired := make(chan struct{}, 2)
	gate := readiness.NewGate(func() error {
		fired <- struct{}{}
		return nil
	})
	events := make(chan readiness.Task)
	consumed := make(chan struct{})
	go func() {
		gate.Consume(events)
		close(consumed)
	}()

	job := &StartupJob{
		DBPath: filepath.Join(t.TempDir(), "app.db"),
		Log:    zerolog.Nop(),
		sleep:  func(time.Duration) {},
	}
	db := job.Run(context.Background(), events)
	require.NotNil(t, db)
	t.Cleanup(func() { _ = db.Close() })
	close(events)
	<-consumed

	require.True(t, gate.Snapshot().BackendDone)
	require.NoError(t, gate.ReportName("frontend"))
	select {
	case <-gate.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("transition did not run")
	}
	require.Len(t, fired, 1)
}
